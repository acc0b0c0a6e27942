package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/wincnc-tools/cnchist/internal/history"
	"github.com/wincnc-tools/cnchist/internal/render"
)

const (
	ansiReset = "\033[0m"
	ansiDim   = "\033[2m"
	ansiBlue  = "\033[1;34m"
	ansiRed   = "\033[1;31m"
)

// renderSessionDetail renders the right panel: the selected session's
// records with elapsed times, plus each record's auxiliary columns.
func renderSessionDetail(s *history.Session, width int, human bool) string {
	var b strings.Builder
	write := func(line string) {
		for _, wl := range wrapLine(line, width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	write(fmt.Sprintf("%s%s%s", ansiBlue, history.FormatStamp(s.Begin(), human), ansiReset))
	if s.GapBefore > 0 {
		write(fmt.Sprintf("%sidle %s since previous session%s",
			ansiDim, history.FormatDuration(s.GapBefore, false), ansiReset))
	}
	write(fmt.Sprintf("%sspan %s, machine time %s, %d commands%s",
		ansiDim,
		history.FormatDuration(s.Duration, true),
		history.FormatDuration(s.RunTime, true),
		len(s.Records),
		ansiReset))
	write("")

	if len(s.Records) == 0 {
		write(ansiDim + "<no commands>" + ansiReset)
	}

	opts := render.Options{Color: true, Human: human}
	for _, r := range s.Records {
		write(render.RecordLine(r, opts))
		write(fmt.Sprintf("  %s%s, line %d%s", ansiDim, r.Kind(), r.Line, ansiReset))
		for _, col := range r.AuxColumns() {
			write(fmt.Sprintf("  %s%-10s %s%s", ansiDim, col, r.Extra[col], ansiReset))
		}
		write("")
	}

	write(fmt.Sprintf("%s%s%s", ansiRed, history.FormatStamp(s.End(), human), ansiReset))
	return b.String()
}

// wrapLine breaks a single line into lines that fit within maxWidth visible
// columns, skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}
