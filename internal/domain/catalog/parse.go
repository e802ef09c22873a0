package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var firstInteger = regexp.MustCompile(`\d+`)

// boolCell coerces "true"/"false" cells, case-insensitively. The second
// return reports whether the cell was boolean-like at all; any other text
// is left to the field-specific parsers.
func boolCell(cell string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// emptyCell reports sentinel cells that carry no content.
func emptyCell(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "none", "n/a", "nan":
		return true
	default:
		return false
	}
}

// parseRequirement interprets a free-text requirement cell. A false-like or
// empty cell is the "not applicable" sentinel; anything else is kept as
// text for lazy keyword categorization.
func parseRequirement(cell string) Requirement {
	if v, ok := boolCell(cell); ok {
		if v {
			// A bare TRUE names no concrete requirement; treat it as
			// unspecified text so it neither matches nor eliminates.
			return Requirement{}
		}
		return Requirement{NotApplicable: true}
	}
	if emptyCell(cell) {
		return Requirement{NotApplicable: true}
	}
	return Requirement{Text: strings.TrimSpace(cell)}
}

// parsePhysical interprets the physical_req cell: false-like or empty means
// not physically demanding, boolean TRUE means demanding without detail,
// and text means demanding with searchable movement terms.
func parsePhysical(cell string) PhysicalReq {
	if v, ok := boolCell(cell); ok {
		return PhysicalReq{Demanding: v}
	}
	if emptyCell(cell) {
		return PhysicalReq{}
	}
	return PhysicalReq{Demanding: true, Text: strings.TrimSpace(cell)}
}

// parseWorkPref maps a work_pref cell to its enum. Unrecognized text means
// no stated preference.
func parseWorkPref(cell string) WorkPref {
	switch strings.ToUpper(strings.TrimSpace(cell)) {
	case "BTS":
		return WorkPrefBTS
	case "FRONT", "FRONT-FACING", "FRONT FACING":
		return WorkPrefFront
	default:
		return WorkPrefNone
	}
}

// parseTriState maps a boolean-like cell to a TriState; anything else is no
// preference.
func parseTriState(cell string) TriState {
	if v, ok := boolCell(cell); ok {
		if v {
			return True
		}
		return False
	}
	return NoPreference
}

// parseAge interprets the age_min cell: a non-negative integer, the
// "Students" marker, or an integer embedded in text such as "18+". Anything
// else is a data error that skips the row.
func parseAge(cell string) (ageMin int, studentsOnly bool, err error) {
	trimmed := strings.TrimSpace(cell)
	if emptyCell(trimmed) {
		return 0, false, nil
	}
	if _, ok := boolCell(trimmed); ok {
		return 0, false, nil
	}
	if strings.EqualFold(trimmed, "students") {
		return 0, true, nil
	}
	if n, convErr := strconv.Atoi(trimmed); convErr == nil {
		if n < 0 {
			return 0, false, fmt.Errorf("%w: %q", ErrBadAgeToken, cell)
		}
		return n, false, nil
	}
	if m := firstInteger.FindString(trimmed); m != "" {
		n, _ := strconv.Atoi(m)
		return n, false, nil
	}
	return 0, false, fmt.Errorf("%w: %q", ErrBadAgeToken, cell)
}

// parseAgePref extracts an age preference from the cell; 0 means none.
func parseAgePref(cell string) int {
	trimmed := strings.TrimSpace(cell)
	if emptyCell(trimmed) {
		return 0
	}
	if _, ok := boolCell(trimmed); ok {
		return 0
	}
	if m := firstInteger.FindString(trimmed); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	return 0
}

// priorExpKeywords grade free-text prior_first_exp cells.
var (
	requiredExpTerms  = []string{"must", "required", "years", "minimum", "experience required"}
	preferredExpTerms = []string{"preferred", "recommended", "helpful", "knowledge of", "general knowledge"}
)

// parsePriorExperience grades the prior_first_exp cell.
func parsePriorExperience(cell string) ExperienceReq {
	if v, ok := boolCell(cell); ok {
		if v {
			return ExpRequired
		}
		return ExpNotRequired
	}
	if emptyCell(cell) {
		return ExpNotRequired
	}
	lower := strings.ToLower(cell)
	for _, term := range preferredExpTerms {
		if strings.Contains(lower, term) {
			return ExpPreferred
		}
	}
	for _, term := range requiredExpTerms {
		if strings.Contains(lower, term) {
			return ExpRequired
		}
	}
	return ExpUnknown
}

// knowledgeTerms grade free-text basic_game_knowledge cells, checked from
// the most demanding level down.
var knowledgeTerms = []struct {
	level KnowledgeLevel
	terms []string
}{
	{KnowledgeThorough, []string{"thorough", "advanced", "in-depth"}},
	{KnowledgeAverage, []string{"average", "familiar", "general knowledge"}},
	{KnowledgeLimited, []string{"can learn", "basic", "some knowledge", "limited"}},
	{KnowledgeNone, []string{"none"}},
}

// parseGameKnowledge grades the basic_game_knowledge cell. Boolean cells
// collapse to the extremes: TRUE means thorough, FALSE means none.
func parseGameKnowledge(cell string) KnowledgeLevel {
	if v, ok := boolCell(cell); ok {
		if v {
			return KnowledgeThorough
		}
		return KnowledgeNone
	}
	if emptyCell(cell) {
		return KnowledgeNone
	}
	lower := strings.ToLower(cell)
	for _, entry := range knowledgeTerms {
		for _, term := range entry.terms {
			if strings.Contains(lower, term) {
				return entry.level
			}
		}
	}
	return KnowledgeUnknown
}

// ParseKnowledgeLevel maps a volunteer's self-assessment answer to a level.
// The second return is false for unrecognized input.
func ParseKnowledgeLevel(s string) (KnowledgeLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE":
		return KnowledgeNone, true
	case "LIMITED":
		return KnowledgeLimited, true
	case "AVERAGE":
		return KnowledgeAverage, true
	case "THOROUGH":
		return KnowledgeThorough, true
	default:
		return KnowledgeUnknown, false
	}
}
