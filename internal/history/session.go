package history

import "time"

// Session is a contiguous run of records grouped as one logical work
// session, bounded by the controller's Starting/Exiting markers and, when a
// gap threshold is set, by long idle stretches between records.
type Session struct {
	Records []Record

	// StartedAt/EndedAt come from explicit Starting/Exiting markers and are
	// zero when the session was opened or closed implicitly.
	StartedAt time.Time
	EndedAt   time.Time

	// Duration is the wall-clock span from first to last record.
	// RunTime is the summed machine time (rapid+feed+laser) of all records.
	// GapBefore is the idle time since the previous session, zero for the
	// first.
	Duration  time.Duration
	RunTime   time.Duration
	GapBefore time.Duration
}

// Begin is the session's best-known start: the Starting marker when present,
// otherwise the first record's timestamp.
func (s *Session) Begin() time.Time {
	if !s.StartedAt.IsZero() {
		return s.StartedAt
	}
	if len(s.Records) > 0 {
		return s.Records[0].Stamp
	}
	return time.Time{}
}

// End is the session's best-known end: the Exiting marker when present,
// otherwise the last record's timestamp.
func (s *Session) End() time.Time {
	if !s.EndedAt.IsZero() {
		return s.EndedAt
	}
	if len(s.Records) > 0 {
		return s.Records[len(s.Records)-1].Stamp
	}
	return time.Time{}
}

// HasError reports whether any record in the session failed.
func (s *Session) HasError() bool {
	for _, r := range s.Records {
		if r.IsError() {
			return true
		}
	}
	return false
}

// LastStatus returns the status of the session's final record.
func (s *Session) LastStatus() string {
	if len(s.Records) == 0 {
		return "<no commands>"
	}
	return s.Records[len(s.Records)-1].Status
}

// Segment groups parsed records into sessions. A session opens at a Starting
// marker, closes at an Exiting marker, and also breaks whenever the idle gap
// between consecutive records exceeds gap (0 disables the gap rule). Every
// record lands in exactly one session, in input order; out-of-order
// timestamps never break a session, they just yield a negative Elapsed.
func Segment(res *ParseResult, gap time.Duration) []Session {
	var sessions []Session
	var cur *Session

	flush := func() {
		if cur == nil {
			return
		}
		sessions = append(sessions, *cur)
		cur = nil
	}

	bi := 0
	for i := 0; i <= len(res.Records); i++ {
		for bi < len(res.Boundaries) && res.Boundaries[bi].Before == i {
			b := res.Boundaries[bi]
			bi++
			switch b.Kind {
			case BoundaryStart:
				flush()
				cur = &Session{StartedAt: b.At}
			case BoundaryExit:
				if cur == nil {
					// Exit with no open session: a truncated log. The
					// marker carries no records, nothing to keep.
					continue
				}
				cur.EndedAt = b.At
				flush()
			}
		}
		if i == len(res.Records) {
			break
		}

		rec := res.Records[i]
		if cur != nil && len(cur.Records) > 0 {
			idle := rec.Stamp.Sub(cur.Records[len(cur.Records)-1].Stamp)
			if gap > 0 && idle > gap {
				flush()
			}
		}
		if cur == nil {
			cur = &Session{}
		}
		if len(cur.Records) == 0 {
			rec.Elapsed = 0
		} else {
			rec.Elapsed = rec.Stamp.Sub(cur.Records[len(cur.Records)-1].Stamp)
		}
		cur.Records = append(cur.Records, rec)
	}
	flush()

	for i := range sessions {
		s := &sessions[i]
		if n := len(s.Records); n > 1 {
			s.Duration = s.Records[n-1].Stamp.Sub(s.Records[0].Stamp)
		}
		for _, r := range s.Records {
			s.RunTime += r.RunTime
		}
		if i > 0 {
			prev := &sessions[i-1]
			if end, begin := prev.End(), s.Begin(); !end.IsZero() && !begin.IsZero() {
				s.GapBefore = begin.Sub(end)
			}
		}
	}
	return sessions
}
