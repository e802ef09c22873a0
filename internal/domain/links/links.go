// Package links loads the role-link sheet mapping each role to its express
// signup, description, and video URLs. It feeds the presentation layer
// only; scoring never consults it.
package links

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMissingColumn reports a link sheet without the required columns.
var ErrMissingColumn = errors.New("link sheet missing required column")

const (
	colRoleName    = "role_name"
	colExpressLink = "express_link"
	colDescLink    = "desc_link"
	colVideoLink   = "video_link"
)

// RoleLinks holds the URLs published for one role. Absent links are empty
// strings, never errors.
type RoleLinks struct {
	Express     string `json:"express_link"`
	Description string `json:"desc_link"`
	Video       string `json:"video_link"`
}

// Table is an immutable role-name lookup of RoleLinks.
type Table struct {
	byRole map[string]RoleLinks
}

// Load reads a link sheet from CSV. Rows with a blank role name are
// dropped; a later duplicate overwrites an earlier one.
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read link sheet header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols[colRoleName]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colRoleName)
	}

	cell := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	t := &Table{byRole: make(map[string]RoleLinks)}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		name := cell(record, colRoleName)
		if name == "" {
			continue
		}
		t.byRole[name] = RoleLinks{
			Express:     cell(record, colExpressLink),
			Description: cell(record, colDescLink),
			Video:       cell(record, colVideoLink),
		}
	}
	return t, nil
}

// LoadFile reads a link sheet from a CSV file on disk. An empty path
// yields an empty table so links stay optional.
func LoadFile(path string) (*Table, error) {
	if path == "" {
		return &Table{byRole: map[string]RoleLinks{}}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open link sheet: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Len returns the number of roles with links.
func (t *Table) Len() int { return len(t.byRole) }

// Get returns the links for a role, matched case-sensitively.
func (t *Table) Get(role string) (RoleLinks, bool) {
	l, ok := t.byRole[role]
	return l, ok
}
