package smoketest

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"github.com/rolematch/rolematch/pkg/logger"
)

// Constants for persona distribution.
const (
	personaDivisor = 8
)

// Constants for persona cases.
const (
	casePragmaticAdult = 0
	caseEnthusiast     = 1
	caseYoungStudent   = 2
	caseTeenStudent    = 3
	caseBackstage      = 4
	caseWeekender      = 5
	caseLeader         = 6
	caseWildcard       = 7
)

// Question type constants matching the service's questionnaire payload.
const (
	typeUserInfo    = "user-info"
	typeMultiselect = "multiselect"
)

// Age band answers accepted by the scoring engine.
const (
	ageYoung = "13 to 15 years old"
	ageTeen  = "16 to 17 years old"
	ageAdult = "18 and older"
)

// persona biases the generated answers toward a volunteer archetype.
type persona struct {
	name       string
	age        string
	physical   string
	workPref   string
	leadership string
	knowledge  string
	allDays    bool
	days       []string
}

// randomIndex returns a random int in [0, n) using crypto/rand.
func randomIndex(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// pickPersona selects a volunteer archetype with varied distribution.
func pickPersona() persona {
	switch randomIndex(personaDivisor) {
	case casePragmaticAdult:
		return persona{name: "pragmatic_adult", age: ageAdult}
	case caseEnthusiast:
		return persona{
			name:       "enthusiast",
			age:        ageAdult,
			physical:   "Yes",
			leadership: "Yes",
			knowledge:  "Thorough",
			allDays:    true,
		}
	case caseYoungStudent:
		return persona{name: "young_student", age: ageYoung, knowledge: "Limited"}
	case caseTeenStudent:
		return persona{name: "teen_student", age: ageTeen}
	case caseBackstage:
		return persona{name: "backstage", physical: "No", workPref: "BTS"}
	case caseWeekender:
		return persona{name: "weekender", days: []string{"Saturday", "Sunday"}}
	case caseLeader:
		return persona{name: "leader", age: ageAdult, leadership: "Yes", workPref: "Front-facing"}
	default:
		return persona{name: "wildcard"}
	}
}

// generateProfiles creates the specified number of volunteer profiles from
// the questionnaire served by the service.
func generateProfiles(ctx context.Context, config *Config, questions []QuestionInfo, stats *Stats) ([]Profile, error) {
	logger.Get().Info(ctx, "generating volunteer profiles",
		logger.Int("numProfiles", config.NumProfiles),
		logger.Int("questions", len(questions)))

	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions to answer")
	}

	profiles := make([]Profile, config.NumProfiles)
	for i := 0; i < config.NumProfiles; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during profile generation: %w", ctx.Err())
		default:
		}
		profiles[i] = generateSingleProfile(i, questions)
	}

	stats.ProfilesGenerated = len(profiles)
	logger.Get().Info(ctx, "generated profiles successfully", logger.Int("count", len(profiles)))

	return profiles, nil
}

// generateSingleProfile builds one full questionnaire for a random persona.
func generateSingleProfile(index int, questions []QuestionInfo) Profile {
	p := pickPersona()

	kind := "district"
	if randomIndex(2) == 0 {
		kind = "regional"
	}

	profile := Profile{
		Name:      "volunteer_" + strconv.Itoa(index),
		EventKind: kind,
		Persona:   p.name,
		Answers:   make([]Answer, 0, len(questions)),
	}

	for _, q := range questions {
		profile.Answers = append(profile.Answers, Answer{
			QuestionID: q.ID,
			Answer:     answerFor(index, q, p),
		})
	}

	return profile
}

// answerFor produces a persona-biased answer for one question.
func answerFor(index int, q QuestionInfo, p persona) string {
	switch q.Type {
	case typeUserInfo:
		return userInfoAnswer(index)
	case typeMultiselect:
		return multiselectAnswer(q, p)
	default:
		return singleChoiceAnswer(q, p)
	}
}

// userInfoAnswer fabricates contact details for the unscored intake question.
func userInfoAnswer(index int) string {
	id := uuid.NewString()
	info := map[string]string{
		"name":  "Volunteer " + strconv.Itoa(index),
		"email": "volunteer." + id[:8] + "@example.org",
	}
	data, _ := json.Marshal(info)
	return string(data)
}

// singleChoiceAnswer picks one option, honoring the persona's fixed choices.
func singleChoiceAnswer(q QuestionInfo, p persona) string {
	if forced := forcedChoice(q, p); forced != "" {
		return forced
	}
	if len(q.Options) == 0 {
		return ""
	}
	return q.Options[randomIndex(len(q.Options))]
}

// forcedChoice returns the persona's fixed answer for a question, if the
// question offers it as an option.
func forcedChoice(q QuestionInfo, p persona) string {
	for _, want := range []string{p.age, p.physical, p.workPref, p.leadership, p.knowledge} {
		if want == "" {
			continue
		}
		for _, opt := range q.Options {
			if opt == want {
				return want
			}
		}
	}
	return ""
}

// multiselectAnswer builds a JSON array answer from a random subset of
// options, biased by the persona for availability questions.
func multiselectAnswer(q QuestionInfo, p persona) string {
	var picked []string

	switch {
	case len(p.days) > 0 && isAvailability(q):
		picked = p.days
	case p.allDays && isAvailability(q):
		picked = q.Options
	default:
		for _, opt := range q.Options {
			if opt == "None" {
				continue
			}
			if randomIndex(2) == 0 {
				picked = append(picked, opt)
			}
		}
		if len(picked) == 0 && len(q.Options) > 0 {
			picked = []string{q.Options[randomIndex(len(q.Options))]}
		}
	}

	data, _ := json.Marshal(picked)
	return string(data)
}

// isAvailability reports whether the question asks for day availability.
func isAvailability(q QuestionInfo) bool {
	for _, opt := range q.Options {
		if opt == "Saturday" {
			return true
		}
	}
	return false
}
