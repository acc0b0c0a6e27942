package history

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrCorruptLog is returned when the file contains rows but none of them
// parse as history rows, i.e. it is not a WinCNC log at all.
var ErrCorruptLog = errors.New("file is not a recognizable WinCNC history log")

const maxLineSize = 1 * 1024 * 1024

// BoundaryKind distinguishes the controller's start/stop marker rows.
type BoundaryKind int

const (
	BoundaryStart BoundaryKind = iota
	BoundaryExit
)

// Boundary is a controller start/stop marker from the log. Before is the
// number of records parsed ahead of it, so the segmenter can replay markers
// at their original positions.
type Boundary struct {
	Kind   BoundaryKind
	At     time.Time
	Before int
}

// ParseResult is the parsed log: records in file order, boundary markers at
// their positions, and a count of malformed rows that were skipped.
type ParseResult struct {
	Records    []Record
	Boundaries []Boundary
	Skipped    int
}

// ParseFile opens and parses a WinCNC history log.
func ParseFile(path string, log *zap.SugaredLogger) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()
	return Parse(f, log)
}

// Parse reads a WinCNC history log. Malformed rows are skipped and counted;
// an empty log is a valid empty result. ErrCorruptLog is returned only when
// the input has rows but not a single one is recognizable.
func Parse(r io.Reader, log *zap.SugaredLogger) (*ParseResult, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	result := &ParseResult{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	sawRow := false
	parsedAny := false

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sawRow = true
		lower := strings.ToLower(line)

		// Header rows repeat throughout the log; skip them.
		if strings.HasPrefix(lower, "file name") {
			parsedAny = true
			continue
		}

		if strings.HasPrefix(lower, "starting") || strings.HasPrefix(lower, "exiting") {
			b, err := parseBoundary(line, len(result.Records))
			if err != nil {
				result.Skipped++
				log.Debugf("line %d: %v", lineNum, err)
				continue
			}
			parsedAny = true
			result.Boundaries = append(result.Boundaries, b)
			continue
		}

		rec, err := parseRecord(line, lineNum)
		if err != nil {
			result.Skipped++
			log.Debugf("line %d: %v", lineNum, err)
			continue
		}
		parsedAny = true
		result.Records = append(result.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history log: %w", err)
	}

	if sawRow && !parsedAny {
		return nil, ErrCorruptLog
	}
	return result, nil
}

// parseBoundary parses a marker row: "Starting, 13:05:59, 04-25-19".
func parseBoundary(line string, before int) (Boundary, error) {
	fields, err := splitRow(line)
	if err != nil {
		return Boundary{}, err
	}
	if len(fields) < 3 {
		return Boundary{}, fmt.Errorf("marker row has %d columns, want 3", len(fields))
	}
	at, err := ParseStamp(fields[2], fields[1])
	if err != nil {
		return Boundary{}, err
	}
	kind := BoundaryStart
	if strings.HasPrefix(strings.ToLower(fields[0]), "exiting") {
		kind = BoundaryExit
	}
	return Boundary{Kind: kind, At: at, Before: before}, nil
}

// parseRecord parses a data row into a Record, failing when the required
// fields (name, timestamp) are missing or unparsable.
func parseRecord(line string, lineNum int) (Record, error) {
	fields, err := splitRow(line)
	if err != nil {
		return Record{}, err
	}
	if len(fields) < 6 {
		return Record{}, fmt.Errorf("row has %d columns, want at least 6", len(fields))
	}

	name := strings.ToLower(strings.TrimSpace(fields[0]))
	if name == "" {
		return Record{}, errors.New("row has no file/command name")
	}

	stamp, err := ParseStamp(fields[4], fields[3])
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Name:   name,
		Status: strings.TrimSpace(fields[5]),
		Stamp:  stamp,
		Line:   lineNum,
		Extra:  make(map[string]string),
	}
	if len(fields) > 6 {
		rec.Rapid = ParseClock(fields[6])
	}
	if len(fields) > 7 {
		rec.Feed = ParseClock(fields[7])
	}
	if len(fields) > 8 {
		rec.Laser = ParseClock(fields[8])
	}
	rec.RunTime = rec.Rapid + rec.Feed + rec.Laser
	rec.Start = rec.Stamp.Add(-rec.RunTime)

	// minutes/seconds (columns 1-2) are display-only counters; keep them
	// with the auxiliary columns.
	for _, i := range []int{1, 2} {
		if v := strings.TrimSpace(fields[i]); v != "" {
			rec.Extra[knownColumns[i]] = v
		}
	}
	for i := auxStart; i < len(fields); i++ {
		val := strings.TrimSpace(fields[i])
		if val == "" {
			continue
		}
		if i < len(knownColumns) {
			rec.Extra[knownColumns[i]] = val
		} else {
			rec.Extra[fmt.Sprintf("col%d", i+1)] = val
		}
	}
	return rec, nil
}

// splitRow parses one CSV row. Field counts vary between row shapes, and
// older controllers emit stray quotes, so both are tolerated.
func splitRow(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	fields, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("split row: %w", err)
	}
	return fields, nil
}
