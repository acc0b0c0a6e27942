package history

import (
	"strings"
	"time"
)

// knownColumns are the WinCNC history columns in file order. The log carries
// no reliable header row, so positions are mapped to these canonical names.
var knownColumns = []string{
	"filename", "minutes", "seconds", "time", "date",
	"status", "rapid", "feed", "laser",
	"axis1", "axis2", "axis3", "axis4", "axis5", "axis6",
	"output_c1", "output_c2", "output_c3",
	"input_c1", "input_c2", "input_c3", "input_c4", "input_c5",
	"input_c6", "input_c7", "input_c8", "input_c9", "input_c10",
	"input_c11", "input_c12", "input_c13",
	"atc1_t0", "atc1_t1", "atc1_t2", "atc1_t3", "atc1_t4", "atc1_t5",
	"atc1_t6", "atc1_t7", "atc1_t8", "atc1_t9", "atc1_t10",
}

// auxStart is the column index where auxiliary (display-only) columns begin.
const auxStart = 9

// Record is one executed file or command from the history log.
// It is immutable once parsed, except for Elapsed which the segmenter fills in.
type Record struct {
	Name   string // normalized file/command name (trimmed, lowercased)
	Status string

	// Stamp is the completion timestamp from the date+time columns.
	// Start is Stamp minus the machine run time.
	Stamp time.Time
	Start time.Time

	// Machine time split the way the controller reports it, each from a
	// "MM:SS" column. RunTime is their sum.
	Rapid   time.Duration
	Feed    time.Duration
	Laser   time.Duration
	RunTime time.Duration

	// Elapsed is the time since the previous record in the same session.
	// Zero for the first record; negative when the log's clock stepped
	// backwards (kept and flagged, never dropped).
	Elapsed time.Duration

	// Extra holds the auxiliary columns (axes, inputs, outputs, ATC slots)
	// verbatim, keyed by canonical column name. Columns past the known set
	// are kept too, keyed "col42", "col43", ...
	Extra map[string]string

	// Line is the 1-based line number in the log file.
	Line int
}

// IsFile reports whether the record names a file on disk rather than a
// bare controller command.
func (r Record) IsFile() bool {
	return strings.HasPrefix(r.Name, `c:\`) || strings.HasPrefix(r.Name, "c:/")
}

// IsCommandFile reports whether the record is one of the controller's own
// macro files under the WinCNC install directory.
func (r Record) IsCommandFile() bool {
	return strings.HasPrefix(r.Name, `c:\wincnc`) || strings.HasPrefix(r.Name, "c:/wincnc")
}

// IsUserFile reports whether the record is a user's job file.
func (r Record) IsUserFile() bool {
	return r.IsFile() && !r.IsCommandFile()
}

// IsError reports whether the record finished with anything other than an
// "ok" status.
func (r Record) IsError() bool {
	return !strings.Contains(strings.ToLower(r.Status), "ok")
}

// Kind returns a short classification label for display.
func (r Record) Kind() string {
	switch {
	case r.IsUserFile():
		return "user file"
	case r.IsCommandFile():
		return "command file"
	default:
		return "command"
	}
}

// OutOfOrder reports whether this record's elapsed time went backwards.
func (r Record) OutOfOrder() bool {
	return r.Elapsed < 0
}

// AuxColumns returns the names of this record's auxiliary columns in file
// order, skipping empty values.
func (r Record) AuxColumns() []string {
	var names []string
	for _, name := range append([]string{"minutes", "seconds"}, knownColumns[auxStart:]...) {
		if r.Extra[name] != "" {
			names = append(names, name)
		}
	}
	return names
}
