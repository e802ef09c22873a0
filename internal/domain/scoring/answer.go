package scoring

import (
	"fmt"
	"strings"

	"github.com/rolematch/rolematch/internal/domain/catalog"
	"github.com/rolematch/rolematch/internal/domain/questions"
	"github.com/rolematch/rolematch/internal/domain/schedule"
)

// Choice is a yes/no/no-preference answer.
type Choice int

const (
	NoPreference Choice = iota
	Yes
	No
)

// ParseChoice maps wire answer text to a Choice. Anything unrecognized is
// treated as no preference, which contributes nothing.
func ParseChoice(s string) Choice {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES":
		return Yes
	case "NO":
		return No
	default:
		return NoPreference
	}
}

// Answer is one typed questionnaire answer. Each implementation carries the
// payload for its question kind; the scorer dispatches on the concrete type
// with an exhaustive switch.
type Answer interface {
	Kind() questions.Kind
}

// AgeAnswer is the volunteer's age band.
type AgeAnswer struct {
	// MaxAge is the upper bound of the selected band.
	MaxAge int
	// Student reports whether the band is below the adult threshold.
	Student bool
}

func (AgeAnswer) Kind() questions.Kind { return questions.KindAge }

// PhysicalActivityAnswer is the preference for physically demanding roles.
type PhysicalActivityAnswer struct{ Choice Choice }

func (PhysicalActivityAnswer) Kind() questions.Kind { return questions.KindPhysicalActivity }

// StandingAnswer is the ability to stand for long periods.
type StandingAnswer struct{ Choice Choice }

func (StandingAnswer) Kind() questions.Kind { return questions.KindStanding }

// MobilityAnswer is the ability to move around for long periods.
type MobilityAnswer struct{ Choice Choice }

func (MobilityAnswer) Kind() questions.Kind { return questions.KindMobility }

// AvailabilityAnswer is the volunteer's day availability for one event kind.
type AvailabilityAnswer struct {
	EventKind  schedule.EventKind
	Commitment schedule.Commitment
}

func (AvailabilityAnswer) Kind() questions.Kind { return questions.KindAvailability }

// WorkPreferenceAnswer is the behind-the-scenes vs front-facing preference.
type WorkPreferenceAnswer struct {
	NoPreference bool
	Pref         catalog.WorkPref
}

func (WorkPreferenceAnswer) Kind() questions.Kind { return questions.KindWorkPreference }

// LeadershipAnswer is the preference for leadership responsibilities.
type LeadershipAnswer struct{ Choice Choice }

func (LeadershipAnswer) Kind() questions.Kind { return questions.KindLeadership }

// PriorExperienceAnswer reports prior involvement with the program.
type PriorExperienceAnswer struct{ Experienced bool }

func (PriorExperienceAnswer) Kind() questions.Kind { return questions.KindPriorExperience }

// GameKnowledgeAnswer is the self-assessed game knowledge level.
type GameKnowledgeAnswer struct{ Level catalog.KnowledgeLevel }

func (GameKnowledgeAnswer) Kind() questions.Kind { return questions.KindGameKnowledge }

// SkillsAnswer carries the selected skill options as free text; the scorer
// categorizes them against the required-skills dictionary.
type SkillsAnswer struct{ Selected []string }

func (SkillsAnswer) Kind() questions.Kind { return questions.KindRequiredSkills }

// ExperienceAnswer carries the selected experience options as free text.
type ExperienceAnswer struct{ Selected []string }

func (ExperienceAnswer) Kind() questions.Kind { return questions.KindExperience }

// Age bands presented by the questionnaire, keyed to the upper bound used
// for qualification checks.
const (
	ageBandTeen  = 15
	ageBandMinor = 17
	ageBandAdult = 100
	adultAge     = 18
)

func parseAgeBand(raw string) (AgeAnswer, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "13 to 15 years old":
		return AgeAnswer{MaxAge: ageBandTeen, Student: true}, nil
	case "16 to 17 years old":
		return AgeAnswer{MaxAge: ageBandMinor, Student: true}, nil
	case "18 and older":
		return AgeAnswer{MaxAge: ageBandAdult}, nil
	default:
		return AgeAnswer{}, fmt.Errorf("%w: %q", ErrBadAnswer, raw)
	}
}

func parseWorkPreference(raw string) WorkPreferenceAnswer {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BTS":
		return WorkPreferenceAnswer{Pref: catalog.WorkPrefBTS}
	case "FRONT", "FRONT-FACING", "FRONT FACING":
		return WorkPreferenceAnswer{Pref: catalog.WorkPrefFront}
	default:
		return WorkPreferenceAnswer{NoPreference: true}
	}
}

// ParseAnswer converts a stored raw answer into its typed form. The event
// kind only matters for availability answers. Contact-info answers carry no
// scoring signal and return a nil Answer with no error.
func ParseAnswer(questionID int, raw string, kind schedule.EventKind) (Answer, error) {
	qKind, err := questions.KindOf(questionID)
	if err != nil {
		return nil, err
	}

	switch qKind {
	case questions.KindUserInfo:
		return nil, nil
	case questions.KindAge:
		return parseAgeBand(raw)
	case questions.KindPhysicalActivity:
		return PhysicalActivityAnswer{Choice: ParseChoice(raw)}, nil
	case questions.KindStanding:
		return StandingAnswer{Choice: ParseChoice(raw)}, nil
	case questions.KindMobility:
		return MobilityAnswer{Choice: ParseChoice(raw)}, nil
	case questions.KindAvailability:
		field := strings.Join(questions.Choices(raw), " ")
		return AvailabilityAnswer{
			EventKind:  kind,
			Commitment: schedule.Parse(field, kind),
		}, nil
	case questions.KindWorkPreference:
		return parseWorkPreference(raw), nil
	case questions.KindLeadership:
		return LeadershipAnswer{Choice: ParseChoice(raw)}, nil
	case questions.KindPriorExperience:
		return PriorExperienceAnswer{Experienced: ParseChoice(raw) == Yes}, nil
	case questions.KindGameKnowledge:
		level, ok := catalog.ParseKnowledgeLevel(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadAnswer, raw)
		}
		return GameKnowledgeAnswer{Level: level}, nil
	case questions.KindRequiredSkills:
		return SkillsAnswer{Selected: questions.Choices(raw)}, nil
	case questions.KindExperience:
		return ExperienceAnswer{Selected: questions.Choices(raw)}, nil
	default:
		return nil, fmt.Errorf("%w: %d", questions.ErrUnknownQuestion, questionID)
	}
}
