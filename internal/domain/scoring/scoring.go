// Package scoring maintains per-session score records for every role in the
// catalog, updated incrementally as the volunteer answers the questionnaire.
//
// A Scorer is a per-session value, never shared between sessions. Because
// the serving layer is stateless between requests, a session's state is
// reconstructed by replaying its stored answers in order; replay from the
// same ordered answers always reproduces the same score map and
// elimination set.
package scoring

import (
	"strings"

	"github.com/rolematch/rolematch/internal/domain/catalog"
	"github.com/rolematch/rolematch/internal/domain/keywords"
	"github.com/rolematch/rolematch/internal/domain/questions"
	"github.com/rolematch/rolematch/internal/domain/schedule"
)

// Points awarded per category.
const (
	pointsAgeExact      = 5
	pointsAgeRange      = 3
	pointsPhysicalMatch = 5
	pointsMovementMatch = 3
	pointsWorkPref      = 5
	pointsLeadership    = 5

	pointsExpRequiredMet   = 8
	pointsExpPreferredMet  = 5
	pointsExpPreferredMiss = -2
	pointsExpNotRequired   = 3
	pointsExpNotRequiredOK = 5
	pointsKnowledgeExact   = 8
	pointsKnowledgeCovered = 5
	pointsSkillMatch       = 8
	pointsExperienceMatch  = 3
)

// Movement terms searched in a role's physical requirement text.
var (
	standingTerms = []string{"stand", "walk"}
	mobilityTerms = []string{"move", "walk", "run", "carry", "lift", "transport", "stand"}
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithElimination replaces the set of categories allowed to eliminate
// roles. Categories outside the set only grade; they never eliminate.
func WithElimination(kinds ...questions.Kind) Option {
	return func(s *Scorer) {
		s.eliminationOn = make(map[questions.Kind]bool, len(kinds))
		for _, k := range kinds {
			s.eliminationOn[k] = true
		}
	}
}

// WithoutElimination disables elimination entirely; every role stays
// rankable and scoring is purely additive.
func WithoutElimination() Option {
	return func(s *Scorer) {
		s.eliminationOn = map[questions.Kind]bool{}
	}
}

// WithCategorizers supplies the keyword categorizers used for skill and
// experience requirement matching.
func WithCategorizers(skills, experience *keywords.Categorizer) Option {
	return func(s *Scorer) {
		s.skills = skills
		s.experience = experience
	}
}

// Scorer accumulates score records for one assessment session.
type Scorer struct {
	catalog    *catalog.Catalog
	skills     *keywords.Categorizer
	experience *keywords.Categorizer

	eliminationOn map[questions.Kind]bool
	fallbackFloor *int

	// contrib holds the points attributable to each answered question,
	// per role. Re-applying a question replaces its contribution instead
	// of double-adding, so totals never drift.
	contrib map[questions.Kind][]int
	total   []int
	// eliminated is sticky for the session. Answers are monotonic
	// constraints, so a later answer never clears an elimination.
	eliminated []bool
}

// defaultEliminationKinds are the categories with a defined elimination
// condition. Callers narrow or widen the set via WithElimination.
var defaultEliminationKinds = []questions.Kind{
	questions.KindAge,
	questions.KindAvailability,
	questions.KindLeadership,
	questions.KindGameKnowledge,
}

// New creates a scorer over the given catalog. Without WithCategorizers the
// embedded keyword dictionaries are compiled, which cannot fail.
func New(cat *catalog.Catalog, opts ...Option) (*Scorer, error) {
	if cat == nil {
		return nil, ErrNoCatalog
	}
	s := &Scorer{
		catalog:       cat,
		eliminationOn: make(map[questions.Kind]bool),
		contrib:       make(map[questions.Kind][]int),
		total:         make([]int, cat.Len()),
		eliminated:    make([]bool, cat.Len()),
	}
	for _, k := range defaultEliminationKinds {
		s.eliminationOn[k] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.skills == nil || s.experience == nil {
		sets := keywords.Defaults()
		if s.skills == nil {
			c, err := sets.Categorizer(keywords.SetRequiredSkills)
			if err != nil {
				return nil, err
			}
			s.skills = c
		}
		if s.experience == nil {
			c, err := sets.Categorizer(keywords.SetRequiredExperience)
			if err != nil {
				return nil, err
			}
			s.experience = c
		}
	}
	return s, nil
}

// Apply scores one typed answer against every role, replacing any earlier
// contribution for the same question kind. A nil answer is a no-op so
// unscored questions pass through silently.
func (s *Scorer) Apply(ans Answer) {
	if ans == nil {
		return
	}

	points := make([]int, s.catalog.Len())
	eliminate := make([]bool, s.catalog.Len())

	for i, role := range s.catalog.Roles() {
		switch a := ans.(type) {
		case AgeAnswer:
			points[i], eliminate[i] = s.scoreAge(role, a)
		case PhysicalActivityAnswer:
			points[i] = scorePhysicalActivity(role, a.Choice)
		case StandingAnswer:
			points[i] = scoreMovement(role, a.Choice, standingTerms)
		case MobilityAnswer:
			points[i] = scoreMovement(role, a.Choice, mobilityTerms)
		case AvailabilityAnswer:
			points[i], eliminate[i] = scoreAvailability(role, a)
		case WorkPreferenceAnswer:
			points[i] = scoreWorkPreference(role, a)
		case LeadershipAnswer:
			points[i], eliminate[i] = scoreLeadership(role, a.Choice)
		case PriorExperienceAnswer:
			points[i] = scorePriorExperience(role, a.Experienced)
		case GameKnowledgeAnswer:
			points[i], eliminate[i] = scoreGameKnowledge(role, a.Level)
		case SkillsAnswer:
			points[i] = s.scoreRequirement(role.RequiredSkills, s.skills, a.Selected, pointsSkillMatch)
		case ExperienceAnswer:
			points[i] = s.scoreRequirement(role.RequiredExperience, s.experience, a.Selected, pointsExperienceMatch)
		}
	}

	kind := ans.Kind()
	prev := s.contrib[kind]
	for i := range points {
		old := 0
		if prev != nil {
			old = prev[i]
		}
		s.total[i] += points[i] - old
		if eliminate[i] && s.eliminationOn[kind] {
			s.eliminated[i] = true
		}
	}
	s.contrib[kind] = points
}

// ApplyRaw parses and applies a stored raw answer. Unknown question ids and
// malformed values are returned as errors for the caller to log; the score
// map is left untouched in that case.
func (s *Scorer) ApplyRaw(questionID int, raw string, kind schedule.EventKind) error {
	ans, err := ParseAnswer(questionID, raw, kind)
	if err != nil {
		return err
	}
	s.Apply(ans)
	return nil
}

// Score returns the accumulated score for a role by name. Scores are
// floored at zero: the experience penalty never drives a visible score
// negative.
func (s *Scorer) Score(role string) int {
	i, ok := s.roleIndex(role)
	if !ok {
		return 0
	}
	if s.total[i] < 0 {
		return 0
	}
	return s.total[i]
}

// Eliminated reports whether a role has been excluded from primary ranking.
func (s *Scorer) Eliminated(role string) bool {
	i, ok := s.roleIndex(role)
	return ok && s.eliminated[i]
}

// RemainingCount returns the number of non-eliminated roles.
func (s *Scorer) RemainingCount() int {
	n := 0
	for _, e := range s.eliminated {
		if !e {
			n++
		}
	}
	return n
}

func (s *Scorer) roleIndex(role string) (int, bool) {
	return s.catalog.Index(role)
}

func (s *Scorer) scoreAge(role catalog.RoleDefinition, a AgeAnswer) (int, bool) {
	if role.StudentsOnly {
		if a.Student {
			return pointsAgeExact, false
		}
		return 0, true
	}
	if role.AgeMin > a.MaxAge {
		return 0, true
	}
	if role.AgePref > 0 && role.AgePref > a.MaxAge {
		return pointsAgeRange, false
	}
	return pointsAgeExact, false
}

func scorePhysicalActivity(role catalog.RoleDefinition, choice Choice) int {
	switch choice {
	case Yes:
		if role.Physical.Demanding {
			return pointsPhysicalMatch
		}
	case No:
		if !role.Physical.Demanding {
			return pointsPhysicalMatch
		}
	}
	return 0
}

func scoreMovement(role catalog.RoleDefinition, choice Choice, terms []string) int {
	if choice == NoPreference {
		return 0
	}
	text := strings.ToLower(role.Physical.Text)
	required := false
	for _, term := range terms {
		if strings.Contains(text, term) {
			required = true
			break
		}
	}
	if (choice == Yes && required) || (choice == No && !required) {
		return pointsMovementMatch
	}
	return 0
}

func scoreAvailability(role catalog.RoleDefinition, a AvailabilityAnswer) (int, bool) {
	required := role.DayCommitment(a.EventKind)
	score, _ := schedule.MatchScore(a.Commitment, required)
	// Elimination fires only when the role does not run at this event
	// kind at all; a disjoint day set just scores zero.
	return score, required.Unavailable()
}

func scoreWorkPreference(role catalog.RoleDefinition, a WorkPreferenceAnswer) int {
	if a.NoPreference {
		return 0
	}
	if role.WorkPref == a.Pref {
		return pointsWorkPref
	}
	return 0
}

func scoreLeadership(role catalog.RoleDefinition, choice Choice) (int, bool) {
	if choice == NoPreference {
		return 0, false
	}
	leads := role.LeadershipPref == catalog.True
	if (choice == Yes && leads) || (choice == No && !leads) {
		return pointsLeadership, false
	}
	return 0, true
}

func scorePriorExperience(role catalog.RoleDefinition, experienced bool) int {
	if experienced {
		switch role.PriorFIRSTExp {
		case catalog.ExpRequired:
			return pointsExpRequiredMet
		case catalog.ExpPreferred:
			return pointsExpPreferredMet
		default:
			return pointsExpNotRequired
		}
	}
	switch role.PriorFIRSTExp {
	case catalog.ExpNotRequired:
		return pointsExpNotRequiredOK
	case catalog.ExpPreferred:
		return pointsExpPreferredMiss
	default:
		return 0
	}
}

func scoreGameKnowledge(role catalog.RoleDefinition, level catalog.KnowledgeLevel) (int, bool) {
	required := role.GameKnowledge
	if required == catalog.KnowledgeUnknown || level == catalog.KnowledgeUnknown {
		return 0, false
	}
	if level < required {
		return 0, true
	}
	if level == required {
		return pointsKnowledgeExact, false
	}
	return pointsKnowledgeCovered, false
}

// scoreRequirement matches a role's free-text requirement against the
// categories derived from the volunteer's selected options. The wildcard
// NONE category always satisfies a not-applicable requirement.
func (s *Scorer) scoreRequirement(req catalog.Requirement, cat *keywords.Categorizer, selected []string, weight int) int {
	volunteer := map[string]bool{keywords.None: true}
	for _, text := range selected {
		if strings.EqualFold(strings.TrimSpace(text), keywords.None) {
			continue
		}
		for _, c := range cat.Categories(text) {
			volunteer[c] = true
		}
	}

	top := keywords.None
	if !req.NotApplicable {
		var ok bool
		top, ok = cat.TopCategory(req.Text)
		if !ok {
			// Unmatched requirement text is treated as unspecified.
			return 0
		}
	}
	if volunteer[top] {
		return weight
	}
	return 0
}
