package render

import (
	"fmt"
	"strings"

	"github.com/wincnc-tools/cnchist/internal/history"
)

const (
	colorReset  = "\033[0m"
	colorBlue   = "\033[1;34m" // session start, user files
	colorRed    = "\033[1;31m" // session end, errors
	colorGreen  = "\033[32m"   // ok status
	colorCyan   = "\033[36m"   // durations
	colorDim    = "\033[2m"    // bare commands, gaps
	colorTeal   = "\033[1;36m" // command files
	colorYellow = "\033[33m"   // clock anomaly flag
)

// Options controls console rendering.
type Options struct {
	Color bool // emit ANSI colors
	Human bool // "Thu, Apr 25" style dates instead of raw 04-25-19
}

func (o Options) paint(s, code string) string {
	if !o.Color || s == "" {
		return s
	}
	return code + s + colorReset
}

// Sessions renders the full history as one text block per session.
func Sessions(sessions []history.Session, opts Options) string {
	var b strings.Builder
	for i := range sessions {
		if i > 0 {
			b.WriteString("\n")
		}
		writeSession(&b, &sessions[i], opts)
	}
	return b.String()
}

func writeSession(b *strings.Builder, s *history.Session, opts Options) {
	b.WriteString(opts.paint(history.FormatStamp(s.Begin(), opts.Human), colorBlue))
	if s.GapBefore > 0 {
		b.WriteString("  " + opts.paint(
			fmt.Sprintf("(idle %s before)", history.FormatDuration(s.GapBefore, true)),
			colorDim,
		))
	}
	b.WriteString("\n")

	if len(s.Records) == 0 {
		b.WriteString("  " + opts.paint("<no commands>", colorDim) + "\n")
	}
	for _, r := range s.Records {
		b.WriteString("  " + RecordLine(r, opts) + "\n")
	}

	b.WriteString(opts.paint(history.FormatStamp(s.End(), opts.Human), colorRed))
	b.WriteString("  " + opts.paint(
		fmt.Sprintf("(span %s, machine %s)",
			history.FormatDuration(s.Duration, true),
			history.FormatDuration(s.RunTime, true)),
		colorDim,
	))
	b.WriteString("\n")
}

// RecordLine renders one record: clock, elapsed since the previous record,
// machine run time, name, status. A negative elapsed is flagged rather than
// hidden so clock anomalies stay visible.
func RecordLine(r history.Record, opts Options) string {
	var elapsed string
	if r.OutOfOrder() {
		elapsed = opts.paint(history.FormatDuration(r.Elapsed, true)+" (clock anomaly)", colorYellow)
	} else {
		elapsed = opts.paint("+"+history.FormatDuration(r.Elapsed, true), colorCyan)
	}

	var nameColor string
	switch {
	case r.IsUserFile():
		nameColor = colorBlue
	case r.IsCommandFile():
		nameColor = colorTeal
	default:
		nameColor = colorDim
	}

	statusColor := colorGreen
	if r.IsError() {
		statusColor = colorRed
	}

	return fmt.Sprintf("%s  %s  run %s  %s  %s",
		history.FormatClock(r.Stamp),
		elapsed,
		opts.paint(history.FormatDuration(r.RunTime, true), colorCyan),
		opts.paint(r.Name, nameColor),
		opts.paint(r.Status, statusColor),
	)
}
