// Package questions defines the assessment questionnaire: the ordered set
// of questions presented to a volunteer, each tagged with the kind of
// scoring signal its answer carries. Scoring dispatches on the kind, never
// on raw question ids, so the questionnaire can be reordered or extended
// without touching the scoring engine.
package questions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind tags what a question's answer means to the scoring engine.
type Kind int

const (
	// KindUserInfo collects contact details and is never scored.
	KindUserInfo Kind = iota
	KindAge
	KindPhysicalActivity
	KindStanding
	KindMobility
	KindAvailability
	KindWorkPreference
	KindLeadership
	KindPriorExperience
	KindGameKnowledge
	KindRequiredSkills
	KindExperience
)

func (k Kind) String() string {
	switch k {
	case KindUserInfo:
		return "user_info"
	case KindAge:
		return "age"
	case KindPhysicalActivity:
		return "physical_ability"
	case KindStanding:
		return "physical_ability_stand"
	case KindMobility:
		return "physical_ability_move"
	case KindAvailability:
		return "availability"
	case KindWorkPreference:
		return "working_preference"
	case KindLeadership:
		return "leadership_preference"
	case KindPriorExperience:
		return "prior_experience"
	case KindGameKnowledge:
		return "game_knowledge"
	case KindRequiredSkills:
		return "required_skills"
	case KindExperience:
		return "experience"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Input types the frontend renders. Multiselect answers arrive as JSON
// arrays; everything else is a plain string.
const (
	TypeUserInfo    = "user-info"
	TypeDropdown    = "custom-dropdown"
	TypeSelectTwo   = "select-2"
	TypeSelectThree = "select-3"
	TypeMultiselect = "multiselect"
)

// Question is one questionnaire entry.
type Question struct {
	ID          int      `json:"id"`
	Kind        Kind     `json:"-"`
	Text        string   `json:"question"`
	Type        string   `json:"type"`
	Options     []string `json:"options,omitempty"`
	Prompt      string   `json:"prompt,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Multiselect reports whether the answer arrives as a list of choices.
func (q Question) Multiselect() bool { return q.Type == TypeMultiselect }

var registry = []Question{
	{
		Kind:   KindUserInfo,
		Text:   "Please provide your contact information",
		Type:   TypeUserInfo,
		Prompt: "We need some basic information to continue",
	},
	{
		Kind:    KindAge,
		Text:    "What is your age?",
		Type:    TypeDropdown,
		Options: []string{"13 to 15 years old", "16 to 17 years old", "18 and older"},
		Prompt:  "Select your age",
	},
	{
		Kind:    KindPhysicalActivity,
		Text:    "Do you prefer roles with physical activity?",
		Type:    TypeSelectThree,
		Options: []string{"Yes", "No", "No Preference"},
	},
	{
		Kind:    KindStanding,
		Text:    "Are you able to stand for long periods of time?",
		Type:    TypeSelectTwo,
		Options: []string{"Yes", "No"},
	},
	{
		Kind:    KindMobility,
		Text:    "Are you able to move around for long periods of time (e.g., walking, lifting)?",
		Type:    TypeSelectTwo,
		Options: []string{"Yes", "No"},
	},
	{
		Kind:        KindAvailability,
		Text:        "How many days are you available to volunteer for?",
		Type:        TypeMultiselect,
		Options:     []string{"Friday", "Saturday", "Sunday"},
		Prompt:      "Select your availability",
		Description: "You can select multiple answers.",
	},
	{
		Kind:    KindWorkPreference,
		Text:    "Do you prefer working behind the scenes, front-facing, or no preference?",
		Type:    TypeSelectThree,
		Options: []string{"BTS", "Front-facing", "No Preference"},
	},
	{
		Kind:    KindLeadership,
		Text:    "Do you prefer roles with leadership responsibilities?",
		Type:    TypeSelectThree,
		Options: []string{"Yes", "No", "No Preference"},
	},
	{
		Kind:    KindPriorExperience,
		Text:    "Do you have any prior experience with FIRST, volunteering or participating in the competitions?",
		Type:    TypeSelectTwo,
		Options: []string{"Yes", "No"},
	},
	{
		Kind:        KindGameKnowledge,
		Text:        "How much knowledge do you have of the FIRST Robotics Competition and game rules?",
		Type:        TypeDropdown,
		Options:     []string{"None", "Limited", "Average", "Thorough"},
		Prompt:      "Select your level of knowledge",
		Description: "Select one option from the dropdown.",
	},
	{
		Kind: KindRequiredSkills,
		Text: "Which of the following required skills do you have?",
		Type: TypeMultiselect,
		Options: []string{
			"Basic computer literacy",
			"Programming (C++, Java, Python, or LabVIEW)",
			"Photo and video editing",
			"Control systems and diagnostics",
			"Technical writing",
			"Event coordination",
			"FIRST Robotics safety protocol compliance",
			"None",
		},
		Prompt:      "Select your skills",
		Description: "You can select multiple answers.",
	},
	{
		Kind: KindExperience,
		Text: "Which of the following experiences do you have?",
		Type: TypeMultiselect,
		Options: []string{
			"FIRST Robotics Competition Control System experience",
			"4 years of FIRST Robotics Competition referee experience",
			"2 years of FIRST robot build experience",
			"Event management experience",
			"3 years of Robotics Competition judging experience",
			"Technical inspection experience",
			"None",
		},
		Prompt:      "Select your experience",
		Description: "You can select multiple answers.",
	},
}

func init() {
	for i := range registry {
		registry[i].ID = i
	}
}

// Count returns the number of questions in the assessment.
func Count() int { return len(registry) }

// Get returns the question with the given id.
func Get(id int) (Question, error) {
	if id < 0 || id >= len(registry) {
		return Question{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, id)
	}
	return registry[id], nil
}

// All returns the questions in presentation order.
func All() []Question {
	out := make([]Question, len(registry))
	copy(out, registry)
	return out
}

// KindOf maps a question id to its scoring kind.
func KindOf(id int) (Kind, error) {
	q, err := Get(id)
	if err != nil {
		return 0, err
	}
	return q.Kind, nil
}

// Choices decodes a raw answer into its selected options. Multiselect
// answers are stored as JSON arrays; single-choice answers pass through as
// a one-element slice.
func Choices(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
			return list
		}
	}
	if trimmed == "" {
		return nil
	}
	return []string{trimmed}
}
