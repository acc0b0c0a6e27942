package history

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `File Name, Minutes, Seconds, Time, Date, Status
Starting, 08:00:00, 04-25-19
C:\WinCNC\startup.mac, 0, 5, 08:00:10, 04-25-19, OK, 00:02, 00:03, 00:00, X0.000
C:\Users\bob\part1.tap, 1, 30, 08:15:00, 04-25-19, OK: User interrupt, 00:23, 01:06, 00:00
M2, 0, 1, 08:16:00, 04-25-19, Limit switch tripped, 00:00, 00:01, 00:00
Exiting, 08:30:00, 04-25-19
`

func TestParse_SampleLog(t *testing.T) {
	res, err := Parse(strings.NewReader(sampleLog), nil)
	require.NoError(t, err)

	require.Len(t, res.Records, 3)
	require.Len(t, res.Boundaries, 2)
	assert.Equal(t, 0, res.Skipped)

	first := res.Records[0]
	assert.Equal(t, `c:\wincnc\startup.mac`, first.Name, "names are normalized to lowercase")
	assert.Equal(t, "OK", first.Status)
	want := time.Date(2019, 4, 25, 8, 0, 10, 0, time.UTC)
	assert.True(t, first.Stamp.Equal(want), "Stamp = %v, want %v", first.Stamp, want)
	assert.Equal(t, 5*time.Second, first.RunTime, "rapid+feed+laser")
	assert.True(t, first.Start.Equal(want.Add(-5*time.Second)))
	assert.Equal(t, "X0.000", first.Extra["axis1"])
	assert.Equal(t, "0", first.Extra["minutes"])
	assert.Equal(t, 3, first.Line)

	assert.Equal(t, BoundaryStart, res.Boundaries[0].Kind)
	assert.Equal(t, 0, res.Boundaries[0].Before)
	assert.Equal(t, BoundaryExit, res.Boundaries[1].Kind)
	assert.Equal(t, 3, res.Boundaries[1].Before)
}

func TestParse_Classification(t *testing.T) {
	res, err := Parse(strings.NewReader(sampleLog), nil)
	require.NoError(t, err)

	assert.True(t, res.Records[0].IsCommandFile())
	assert.Equal(t, "command file", res.Records[0].Kind())
	assert.False(t, res.Records[0].IsError())

	assert.True(t, res.Records[1].IsUserFile())
	assert.Equal(t, "user file", res.Records[1].Kind())
	assert.False(t, res.Records[1].IsError(), "interrupted-but-ok status is not an error")

	assert.False(t, res.Records[2].IsFile())
	assert.Equal(t, "command", res.Records[2].Kind())
	assert.True(t, res.Records[2].IsError())
}

func TestParse_EmptyLogIsValid(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n"} {
		res, err := Parse(strings.NewReader(input), nil)
		require.NoError(t, err)
		assert.Empty(t, res.Records)
		assert.Empty(t, res.Boundaries)
	}
}

func TestParse_MalformedRowsAreSkipped(t *testing.T) {
	log := `C:\Users\bob\good.tap, 0, 1, 08:00:00, 04-25-19, OK, 00:00, 00:01, 00:00
, 0, 1, 08:01:00, 04-25-19, OK
C:\Users\bob\badstamp.tap, 0, 1, 99:99:99, xx-yy-zz, OK
short, row
C:\Users\bob\good2.tap, 0, 1, 08:05:00, 04-25-19, OK, 00:00, 00:01, 00:00
`
	res, err := Parse(strings.NewReader(log), nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 3, res.Skipped)
	assert.Equal(t, `c:\users\bob\good.tap`, res.Records[0].Name)
	assert.Equal(t, `c:\users\bob\good2.tap`, res.Records[1].Name)
}

func TestParse_CorruptInput(t *testing.T) {
	res, err := Parse(strings.NewReader("not a log\njust some text\n"), nil)
	require.ErrorIs(t, err, ErrCorruptLog)
	assert.Nil(t, res)
}

func TestParse_MalformedMarkerSkipped(t *testing.T) {
	log := `Starting, badtime
C:\Users\bob\a.tap, 0, 1, 08:00:00, 04-25-19, OK
`
	res, err := Parse(strings.NewReader(log), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Boundaries)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Records, 1)
}

func TestParse_UnknownTrailingColumnsKept(t *testing.T) {
	row := `M2, 0, 1, 08:16:00, 04-25-19, OK` +
		strings.Repeat(", x", 36) + ", beyond\n"
	res, err := Parse(strings.NewReader(row), nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "beyond", res.Records[0].Extra["col43"])
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile("/does/not/exist.csv", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open history log")
}
