package smoketest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// fetchQuestions retrieves the questionnaire from the service.
func fetchQuestions(ctx context.Context, client *HTTPClient, baseURL string) ([]QuestionInfo, error) {
	resp, err := client.Get(ctx, baseURL+"/get-questions")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("unexpected status fetching questions: %d", resp.StatusCode)
	}

	var questions []QuestionInfo
	if err := json.Unmarshal(body, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions response: %w", err)
	}
	return questions, nil
}

// fetchRoles retrieves the catalog role names from the service.
func fetchRoles(ctx context.Context, client *HTTPClient, baseURL string) ([]string, error) {
	resp, err := client.Get(ctx, baseURL+"/get-roles")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read roles response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("unexpected status fetching roles: %d", resp.StatusCode)
	}

	var roles rolesResponse
	if err := json.Unmarshal(body, &roles); err != nil {
		return nil, fmt.Errorf("failed to parse roles response: %w", err)
	}
	return roles.Roles, nil
}

// runProfiles drives the full assessment flow for every profile using a
// worker pool and returns the collected outcomes.
func runProfiles(ctx context.Context, config *Config, profiles []Profile, stats *Stats) ([]Outcome, error) {
	log.Printf("📤 Running %d assessments with %d workers...", len(profiles), config.Workers)

	client := newHTTPClient(config.Timeout)

	outcomes := make([]Outcome, len(profiles))

	// Counters for statistics
	var (
		successful int64
		failed     int64
		submitted  int64
		answers    int64
		skipped    int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	profileChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for index := range profileChan {
				select {
				case <-ctx.Done():
					return
				default:
					outcome, saved, skips, err := runSingleProfile(ctx, client, config.BaseURL, profiles[index])

					atomic.AddInt64(&submitted, 1)
					atomic.AddInt64(&answers, saved)
					atomic.AddInt64(&skipped, skips)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Assessment failed for %s: %v", profiles[index].Name, err)
						}
					} else {
						outcomes[index] = outcome
						atomic.AddInt64(&successful, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d assessed (success: %d, failed: %d)",
								total, len(profiles), succ, fail)
						} else {
							fmt.Printf("\r📤 Assessed: %d/%d (success: %d, failed: %d)",
								total, len(profiles), succ, fail)
						}
					}
				}
			}
		}(i)
	}

	// Send profile indices to workers
	go func() {
		defer close(profileChan)
		for i := range profiles {
			select {
			case <-ctx.Done():
				return
			case profileChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.ProfilesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.ProfilesSuccessful = int(atomic.LoadInt64(&successful))
	stats.ProfilesFailed = int(atomic.LoadInt64(&failed))
	stats.AnswersSaved = int(atomic.LoadInt64(&answers))
	stats.QuestionsSkipped = int(atomic.LoadInt64(&skipped))

	log.Printf(`✅ Assessment runs completed:
   Successful: %d
   Failed: %d
   Answers saved: %d
   Questions skipped: %d
`, stats.ProfilesSuccessful, stats.ProfilesFailed, stats.AnswersSaved, stats.QuestionsSkipped)

	return outcomes, nil
}

// runSingleProfile walks one profile through start-session, save-answer for
// every question, and submit. It honors the skip hint returned by the
// service: a skip_next response drops the following answer.
func runSingleProfile(ctx context.Context, client *HTTPClient, baseURL string, profile Profile) (Outcome, int64, int64, error) {
	sessionID, err := startSession(ctx, client, baseURL)
	if err != nil {
		return Outcome{}, 0, 0, err
	}

	var saved, skipped int64
	skipNext := false
	for _, ans := range profile.Answers {
		if skipNext {
			skipNext = false
			skipped++
			continue
		}

		skip, err := saveAnswer(ctx, client, baseURL, sessionID, profile.EventKind, ans)
		if err != nil {
			return Outcome{}, saved, skipped, fmt.Errorf("save answer %d: %w", ans.QuestionID, err)
		}
		saved++
		skipNext = skip
	}

	outcome, err := submitAssessment(ctx, client, baseURL, sessionID)
	if err != nil {
		return Outcome{}, saved, skipped, err
	}
	outcome.Persona = profile.Persona
	outcome.EventKind = profile.EventKind

	return outcome, saved, skipped, nil
}

// startSession opens a new assessment session.
func startSession(ctx context.Context, client *HTTPClient, baseURL string) (string, error) {
	resp, err := client.Post(ctx, baseURL+"/start-session", map[string]string{})
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "", fmt.Errorf("read start-session response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return "", fmt.Errorf("start session returned status %d", resp.StatusCode)
	}

	var started startSessionResponse
	if err := json.Unmarshal(body, &started); err != nil {
		return "", fmt.Errorf("parse start-session response: %w", err)
	}
	if started.SessionID == "" {
		return "", fmt.Errorf("start session returned empty session id")
	}
	return started.SessionID, nil
}

// saveAnswer records one answer and reports whether the next question
// should be skipped.
func saveAnswer(ctx context.Context, client *HTTPClient, baseURL, sessionID, eventKind string, ans Answer) (bool, error) {
	payload := map[string]interface{}{
		"session_id":  sessionID,
		"question_id": ans.QuestionID,
		"answer":      ans.Answer,
		"event_kind":  eventKind,
	}

	resp, err := client.Post(ctx, baseURL+"/save-answer", payload)
	if err != nil {
		return false, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != StatusOK {
		return false, fmt.Errorf("save answer returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var savedResp saveAnswerResponse
	if err := json.Unmarshal(body, &savedResp); err != nil {
		return false, fmt.Errorf("parse save-answer response: %w", err)
	}
	return savedResp.SkipNext, nil
}

// submitAssessment finalizes the session and parses the role buckets out of
// the comma-joined result strings.
func submitAssessment(ctx context.Context, client *HTTPClient, baseURL, sessionID string) (Outcome, error) {
	resp, err := client.Post(ctx, baseURL+"/submit", map[string]string{"session_id": sessionID})
	if err != nil {
		return Outcome{}, fmt.Errorf("submit: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Outcome{}, fmt.Errorf("read submit response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return Outcome{}, fmt.Errorf("submit returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var submitted submitResponse
	if err := json.Unmarshal(body, &submitted); err != nil {
		return Outcome{}, fmt.Errorf("parse submit response: %w", err)
	}

	return Outcome{
		SessionID: sessionID,
		Best:      splitRoles(submitted.Results["Best fit roles"]),
		NextBest:  splitRoles(submitted.Results["Next best roles"]),
	}, nil
}

// splitRoles splits a comma-joined role list, dropping empty entries.
func splitRoles(s string) []string {
	var roles []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			roles = append(roles, part)
		}
	}
	return roles
}
