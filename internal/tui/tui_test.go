package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wincnc-tools/cnchist/internal/history"
)

var base = time.Date(2019, 4, 25, 8, 0, 0, 0, time.UTC)

func testSessions() []history.Session {
	return history.Segment(&history.ParseResult{
		Records: []history.Record{
			{Name: `c:\users\bob\part1.tap`, Status: "OK", Stamp: base, RunTime: time.Minute},
			{Name: "m2", Status: "OK", Stamp: base.Add(time.Minute)},
			{Name: `c:\users\bob\part2.tap`, Status: "Limit switch tripped", Stamp: base.Add(2 * time.Hour)},
		},
	}, 30*time.Minute)
}

func TestApplyFilter_MatchesRecordNames(t *testing.T) {
	m := initialModel(testSessions(), false)
	require.Len(t, m.filtered, 2)
	assert.Equal(t, 1, m.filtered[0], "newest session first")

	m.applyFilter("part1")
	require.Len(t, m.filtered, 1)
	assert.Equal(t, 0, m.filtered[0])

	m.applyFilter("PART")
	assert.Len(t, m.filtered, 2, "matching is case-insensitive")

	m.applyFilter("no such job")
	assert.Empty(t, m.filtered)
	assert.Nil(t, m.selected())
}

func TestApplyFilter_MatchesStartStamp(t *testing.T) {
	m := initialModel(testSessions(), false)
	m.applyFilter("04-25-19")
	assert.Len(t, m.filtered, 2)
}

func TestAdjustListScroll_KeepsCursorVisible(t *testing.T) {
	m := initialModel(nil, false)
	m.filtered = make([]int, 20)

	m.cursor = 10
	m.adjustListScroll(8) // 4 visible items
	assert.Equal(t, 7, m.listOffset)

	m.cursor = 2
	m.adjustListScroll(8)
	assert.Equal(t, 2, m.listOffset)
}

func TestFormatSessionItem(t *testing.T) {
	sessions := testSessions()
	lines := formatSessionItem(&sessions[0], 60, true)
	require.Len(t, lines, linesPerItem)
	assert.True(t, strings.Contains(lines[0], "2 cmds"))
	assert.True(t, strings.Contains(lines[0], "> "), "selected marker")
	assert.True(t, strings.Contains(lines[1], "last:"))

	lines = formatSessionItem(&sessions[0], 60, false)
	assert.False(t, strings.Contains(lines[0], ">"))
}

func TestRenderSessionDetail(t *testing.T) {
	sessions := testSessions()
	out := renderSessionDetail(&sessions[0], 200, false)

	assert.Contains(t, out, `c:\users\bob\part1.tap`)
	assert.Contains(t, out, "user file")
	assert.Contains(t, out, "2 commands")
	assert.Contains(t, out, "machine time 01m:00s")

	out = renderSessionDetail(&sessions[1], 200, false)
	assert.Contains(t, out, "idle 1 hour, 59 minutes, 0 seconds since previous session")
}

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, wrapLine("abcdefg", 3))
	assert.Equal(t, []string{""}, wrapLine("", 10))
	assert.Equal(t, []string{"abcdefg"}, wrapLine("abcdefg", 0), "no wrapping without a width")

	// ANSI sequences take no visible width.
	styled := "\033[1;34mabcd\033[0m"
	got := wrapLine(styled, 4)
	require.Len(t, got, 1)
	assert.Equal(t, styled, got[0])
}

func TestCopySummaryFallback(t *testing.T) {
	sessions := testSessions()
	m := initialModel(sessions, false)
	notice := m.copySummary(&sessions[0])
	assert.Contains(t, notice, "2 commands")
}
