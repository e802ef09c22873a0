package keywords

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dictionary set names recognized in the YAML asset.
const (
	SetRequiredSkills      = "required_skills"
	SetRequiredExperience  = "required_experience"
	SetPreferredExperience = "preferred_experience"
)

//go:embed default_keywords.yaml
var defaultAsset []byte

// Sets groups the named dictionaries loaded from one YAML asset.
type Sets map[string]Dictionary

// LoadFile reads a dictionary asset from disk. An empty path falls back to
// the embedded defaults.
func LoadFile(path string) (Sets, error) {
	if path == "" {
		return Defaults(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadDictionary, err)
	}
	var sets Sets
	if err := yaml.Unmarshal(raw, &sets); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadDictionary, err)
	}
	return sets, nil
}

// Defaults returns the embedded dictionary asset. The asset ships with the
// binary, so a parse failure is a build defect and panics.
func Defaults() Sets {
	var sets Sets
	if err := yaml.Unmarshal(defaultAsset, &sets); err != nil {
		panic("embedded keyword dictionary is invalid: " + err.Error())
	}
	return sets
}

// Categorizer compiles the named dictionary from this set.
func (s Sets) Categorizer(name string) (*Categorizer, error) {
	dict, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSet, name)
	}
	return NewCategorizer(dict)
}
