package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rolematch/rolematch/internal/domain/schedule"
)

// Column names of the catalog sheet. All of them must be present in the
// header; extra columns are ignored.
const (
	colRoleName       = "role_name"
	colWorkPref       = "work_pref"
	colAgeMin         = "age_min"
	colAgePreference  = "age_preference"
	colLeadershipPref = "leadership_pref"
	colRequiredCerts  = "required_certifications"
	colRequiredSkills = "required_skills"
	colRequiredExp    = "required_experience"
	colPreferredExp   = "preferred_experience"
	colPhysicalReq    = "physical_req"
	colPriorFIRSTExp  = "prior_first_exp"
	colGameKnowledge  = "basic_game_knowledge"
	colRegionalDays   = "regionals_day_commitment"
	colDistrictDays   = "district_day_commitment"
)

var requiredColumns = []string{
	colRoleName,
	colWorkPref,
	colAgeMin,
	colAgePreference,
	colLeadershipPref,
	colRequiredCerts,
	colRequiredSkills,
	colRequiredExp,
	colPreferredExp,
	colPhysicalReq,
	colPriorFIRSTExp,
	colGameKnowledge,
	colRegionalDays,
	colDistrictDays,
}

// RowWarning records a skipped catalog row. Row numbers are 1-based and
// count the header.
type RowWarning struct {
	Row    int
	Role   string
	Reason error
}

func (w RowWarning) String() string {
	if w.Role == "" {
		return fmt.Sprintf("row %d: %v", w.Row, w.Reason)
	}
	return fmt.Sprintf("row %d (%s): %v", w.Row, w.Role, w.Reason)
}

// Load reads a role catalog from CSV. A missing required column fails the
// whole load; a malformed row is skipped and reported as a warning so one
// bad sheet entry cannot take the catalog down.
func Load(r io.Reader) (*Catalog, []RowWarning, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	cell := func(record []string, name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		roles    []RoleDefinition
		index    = make(map[string]int)
		warnings []RowWarning
	)
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			warnings = append(warnings, RowWarning{Row: row, Reason: err})
			continue
		}

		name := cell(record, colRoleName)
		if name == "" {
			warnings = append(warnings, RowWarning{Row: row, Reason: ErrBlankRoleName})
			continue
		}
		if _, dup := index[name]; dup {
			warnings = append(warnings, RowWarning{Row: row, Role: name, Reason: ErrDuplicateRole})
			continue
		}

		ageMin, studentsOnly, err := parseAge(cell(record, colAgeMin))
		if err != nil {
			warnings = append(warnings, RowWarning{Row: row, Role: name, Reason: err})
			continue
		}

		role := RoleDefinition{
			Name:                   name,
			WorkPref:               parseWorkPref(cell(record, colWorkPref)),
			AgeMin:                 ageMin,
			StudentsOnly:           studentsOnly,
			AgePref:                parseAgePref(cell(record, colAgePreference)),
			LeadershipPref:         parseTriState(cell(record, colLeadershipPref)),
			RequiredCertifications: parseRequirement(cell(record, colRequiredCerts)),
			RequiredSkills:         parseRequirement(cell(record, colRequiredSkills)),
			RequiredExperience:     parseRequirement(cell(record, colRequiredExp)),
			PreferredExperience:    parseRequirement(cell(record, colPreferredExp)),
			Physical:               parsePhysical(cell(record, colPhysicalReq)),
			PriorFIRSTExp:          parsePriorExperience(cell(record, colPriorFIRSTExp)),
			GameKnowledge:          parseGameKnowledge(cell(record, colGameKnowledge)),
			RegionalDays:           schedule.Parse(cell(record, colRegionalDays), schedule.Regional),
			DistrictDays:           schedule.Parse(cell(record, colDistrictDays), schedule.District),
		}

		index[name] = len(roles)
		roles = append(roles, role)
	}

	if len(roles) == 0 {
		return nil, warnings, ErrEmptyCatalog
	}
	return &Catalog{roles: roles, index: index}, warnings, nil
}

// LoadFile reads a role catalog from a CSV file on disk.
func LoadFile(path string) (*Catalog, []RowWarning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}
