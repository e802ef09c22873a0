// Package catalog loads and validates volunteer role definitions from
// tabular input. A loaded Catalog is immutable: concurrent sessions read it
// without locking, and admin reloads swap the whole reference atomically at
// the service layer.
package catalog

import (
	"github.com/rolematch/rolematch/internal/domain/schedule"
)

// WorkPref is a role's working-environment preference.
type WorkPref int

const (
	// WorkPrefNone means the role has no stated environment preference.
	WorkPrefNone WorkPref = iota
	// WorkPrefBTS marks behind-the-scenes roles.
	WorkPrefBTS
	// WorkPrefFront marks volunteer-facing roles.
	WorkPrefFront
)

func (w WorkPref) String() string {
	switch w {
	case WorkPrefBTS:
		return "BTS"
	case WorkPrefFront:
		return "FRONT"
	default:
		return "NO_PREFERENCE"
	}
}

// TriState models columns that may require, reject, or not care about an
// attribute.
type TriState int

const (
	// NoPreference means the column carried neither true nor false.
	NoPreference TriState = iota
	// False means the attribute is explicitly not wanted.
	False
	// True means the attribute is explicitly wanted.
	True
)

// ExperienceReq grades a role's prior-FIRST-experience requirement.
type ExperienceReq int

const (
	// ExpUnknown means the cell could not be graded; scoring treats it
	// conservatively (no bonus for the inexperienced).
	ExpUnknown ExperienceReq = iota
	// ExpNotRequired means prior experience is not needed.
	ExpNotRequired
	// ExpPreferred means prior experience is preferred but not required.
	ExpPreferred
	// ExpRequired means prior experience is required.
	ExpRequired
)

// KnowledgeLevel orders game-knowledge requirements from none to thorough.
// The ordering is meaningful: a volunteer qualifies when their level is at
// least the role's level.
type KnowledgeLevel int

const (
	// KnowledgeUnknown means the cell could not be graded; such roles are
	// skipped by knowledge scoring.
	KnowledgeUnknown KnowledgeLevel = iota
	// KnowledgeNone requires no game knowledge.
	KnowledgeNone
	// KnowledgeLimited requires basic familiarity.
	KnowledgeLimited
	// KnowledgeAverage requires general familiarity with game and rules.
	KnowledgeAverage
	// KnowledgeThorough requires in-depth knowledge.
	KnowledgeThorough
)

func (k KnowledgeLevel) String() string {
	switch k {
	case KnowledgeNone:
		return "NONE"
	case KnowledgeLimited:
		return "LIMITED"
	case KnowledgeAverage:
		return "AVERAGE"
	case KnowledgeThorough:
		return "THOROUGH"
	default:
		return "UNKNOWN"
	}
}

// Requirement is a lazily-categorized free-text cell. NotApplicable marks
// the sentinel meaning "no requirement", which satisfies every check.
type Requirement struct {
	Text          string
	NotApplicable bool
}

// PhysicalReq describes a role's physical demands: whether the role is
// physically demanding at all, plus the free text searched for movement
// terms by the scorer.
type PhysicalReq struct {
	Demanding bool
	Text      string
}

// RoleDefinition is one immutable catalog row.
type RoleDefinition struct {
	Name string

	WorkPref       WorkPref
	AgeMin         int
	StudentsOnly   bool
	AgePref        int // 0 means no age preference
	LeadershipPref TriState

	RequiredCertifications Requirement
	RequiredSkills         Requirement
	RequiredExperience     Requirement
	// PreferredExperience is parsed and stored but intentionally excluded
	// from scoring until product intent is clarified.
	PreferredExperience Requirement
	Physical            PhysicalReq

	PriorFIRSTExp ExperienceReq
	GameKnowledge KnowledgeLevel

	RegionalDays schedule.Commitment
	DistrictDays schedule.Commitment
}

// DayCommitment returns the role's day set for the given event kind.
func (r *RoleDefinition) DayCommitment(kind schedule.EventKind) schedule.Commitment {
	if kind == schedule.Regional {
		return r.RegionalDays
	}
	return r.DistrictDays
}

// Catalog is the ordered, read-only set of loaded roles. Load order is
// preserved so ranking ties break deterministically on first-loaded roles.
type Catalog struct {
	roles []RoleDefinition
	index map[string]int
}

// Len returns the number of roles.
func (c *Catalog) Len() int {
	return len(c.roles)
}

// Roles returns the roles in load order. Callers must treat the slice as
// read-only.
func (c *Catalog) Roles() []RoleDefinition {
	return c.roles
}

// Get returns the role with the given name, matched case-sensitively.
func (c *Catalog) Get(name string) (RoleDefinition, bool) {
	i, ok := c.index[name]
	if !ok {
		return RoleDefinition{}, false
	}
	return c.roles[i], true
}

// Index returns the load-order position of the named role.
func (c *Catalog) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Names returns the role names in load order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.roles))
	for i := range c.roles {
		out[i] = c.roles[i].Name
	}
	return out
}
