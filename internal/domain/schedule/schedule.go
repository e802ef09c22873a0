// Package schedule parses day-commitment fields and grades the overlap
// between a volunteer's availability and a role's required days.
package schedule

import (
	"strconv"
	"strings"
)

// Match score constants derived from day-set coverage.
const (
	ScoreFullCoverage    = 5
	ScorePartialCoverage = 3
	ScoreLimitedCoverage = 1
	ScoreDependent       = 3

	partialCoverageRatio = 0.5
)

// EventKind selects the valid day-index range for a commitment field.
type EventKind int

const (
	// Regional events run Thursday through Sunday (days 0-3).
	Regional EventKind = iota
	// District events run Friday through Sunday (days 0-2).
	District
)

var regionalDays = []string{"Thursday", "Friday", "Saturday", "Sunday"}
var districtDays = []string{"Friday", "Saturday", "Sunday"}

// String returns the lowercase name used in config and wire payloads.
func (k EventKind) String() string {
	if k == District {
		return "district"
	}
	return "regional"
}

// DayNames returns the ordered day labels valid for this event kind.
func (k EventKind) DayNames() []string {
	if k == District {
		return districtDays
	}
	return regionalDays
}

// DayCount returns the number of valid day indices for this event kind.
func (k EventKind) DayCount() int {
	return len(k.DayNames())
}

// ParseEventKind maps a wire string to an EventKind.
// Unknown values default to District, the common case for this program.
func ParseEventKind(s string) EventKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regional", "regionals":
		return Regional
	default:
		return District
	}
}

// Fit classifies the relation between two day sets.
type Fit int

const (
	// Disjoint means the sets share no day.
	Disjoint Fit = iota
	// Compatible means a non-empty, non-equal overlap.
	Compatible
	// Exact means the sets are equal.
	Exact
)

// Commitment is a parsed day-commitment field: either the unavailable
// sentinel, a "dependent" marker, or a set of valid day indices.
type Commitment struct {
	kind        EventKind
	days        map[int]bool
	unavailable bool
	dependent   bool
}

// Unavailable reports whether the field carried the unavailable sentinel
// or parsed to an empty day set.
func (c Commitment) Unavailable() bool {
	return c.unavailable || (!c.dependent && len(c.days) == 0)
}

// Dependent reports whether the field carried the "Dependent" marker,
// meaning the requirement varies per event and is graded flat.
func (c Commitment) Dependent() bool {
	return c.dependent
}

// Days returns the sorted day indices in the set.
func (c Commitment) Days() []int {
	out := make([]int, 0, len(c.days))
	for d := 0; d < c.kind.DayCount(); d++ {
		if c.days[d] {
			out = append(out, d)
		}
	}
	return out
}

// Has reports whether the given day index is in the set.
func (c Commitment) Has(day int) bool {
	return c.days[day]
}

// Parse converts a commitment field into a Commitment for the given event
// kind. Accepted forms:
//   - "none", "false" or an empty string: the unavailable sentinel
//   - "dependent": requirement varies per event
//   - whitespace-separated day indices ("0 1 3") or day names, full or
//     abbreviated to three letters ("thu fri")
//
// Out-of-range or unrecognized tokens are dropped silently; a field that
// yields no valid day degrades to unavailable rather than erroring, so one
// malformed cell never invalidates a whole catalog row.
func Parse(field string, kind EventKind) Commitment {
	c := Commitment{kind: kind, days: make(map[int]bool)}

	cleaned := strings.TrimSpace(strings.ReplaceAll(field, "?", ""))
	switch strings.ToLower(cleaned) {
	case "", "none", "false":
		c.unavailable = true
		return c
	case "dependent":
		c.dependent = true
		return c
	}

	for _, token := range strings.Fields(cleaned) {
		if day, err := strconv.Atoi(token); err == nil {
			if day >= 0 && day < kind.DayCount() {
				c.days[day] = true
			}
			continue
		}
		if day, ok := dayByName(token, kind); ok {
			c.days[day] = true
		}
	}
	return c
}

// dayByName resolves a day-name token, matching either the full name or a
// three-letter prefix, case-insensitively.
func dayByName(token string, kind EventKind) (int, bool) {
	t := strings.ToLower(token)
	prefix := t
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	for i, name := range kind.DayNames() {
		n := strings.ToLower(name)
		if n == t || strings.HasPrefix(n, prefix) {
			return i, true
		}
	}
	return 0, false
}

// CompareFit classifies the overlap between a volunteer's day set and a
// role's day set.
func CompareFit(volunteer, role Commitment) Fit {
	overlap := 0
	for d := range role.days {
		if volunteer.days[d] {
			overlap++
		}
	}
	switch {
	case overlap == 0:
		return Disjoint
	case overlap == len(role.days) && overlap == len(volunteer.days):
		return Exact
	default:
		return Compatible
	}
}

// MatchScore grades how well a volunteer's availability covers a role's
// required days. It returns the awarded points and whether the role should
// be eliminated (unavailable for this event kind, or no overlap at all).
func MatchScore(volunteer, role Commitment) (score int, eliminate bool) {
	if role.Dependent() {
		return ScoreDependent, false
	}
	if volunteer.Unavailable() {
		return 0, false
	}
	if role.Unavailable() {
		return 0, true
	}

	overlap := 0
	for d := range role.days {
		if volunteer.days[d] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0, true
	}

	coverage := float64(overlap) / float64(len(role.days))
	switch {
	case coverage >= 1.0:
		return ScoreFullCoverage, false
	case coverage >= partialCoverageRatio:
		return ScorePartialCoverage, false
	default:
		return ScoreLimitedCoverage, false
	}
}
