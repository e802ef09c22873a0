package smoketest

import "time"

// Config holds configuration for the assessment smoke test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumProfiles int           // Number of volunteer profiles to generate
	TopN        int           // Expected size of the best-fit bucket
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for assessment outcomes
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// Answer is a single questionnaire answer keyed by question id.
type Answer struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// Profile is a generated volunteer questionnaire ready for submission.
type Profile struct {
	Name      string   `json:"name"`
	EventKind string   `json:"event_kind"`
	Persona   string   `json:"persona"`
	Answers   []Answer `json:"answers"`
}

// QuestionInfo mirrors the question payload served by /get-questions.
type QuestionInfo struct {
	ID      int      `json:"id"`
	Text    string   `json:"question"`
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

// Outcome is the result of one completed assessment.
type Outcome struct {
	SessionID string   `json:"session_id"`
	Persona   string   `json:"persona"`
	EventKind string   `json:"event_kind"`
	Best      []string `json:"best"`
	NextBest  []string `json:"next_best"`
}

// startSessionResponse is the response from /start-session.
type startSessionResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

// saveAnswerResponse is the response from /save-answer.
type saveAnswerResponse struct {
	Status   string `json:"status"`
	SkipNext bool   `json:"skip_next"`
}

// submitResponse is the response from /submit.
type submitResponse struct {
	Status    string            `json:"status"`
	SessionID string            `json:"session_id"`
	Results   map[string]string `json:"results"`
}

// rolesResponse is the response from /get-roles.
type rolesResponse struct {
	Roles []string `json:"roles"`
}

// Stats holds smoke test statistics
type Stats struct {
	ProfilesGenerated  int
	ProfilesSubmitted  int
	ProfilesSuccessful int
	ProfilesFailed     int
	AnswersSaved       int
	QuestionsSkipped   int
	RolesInCatalog     int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
