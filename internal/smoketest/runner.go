package smoketest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rolematch/rolematch/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete assessment smoke test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting assessment smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("profiles", config.NumProfiles),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	client := newHTTPClient(config.Timeout)

	// Step 2: Fetch the questionnaire and catalog roles
	questions, err := fetchQuestions(ctx, client, config.BaseURL)
	if err != nil {
		return fmt.Errorf("questionnaire retrieval failed: %w", err)
	}
	roles, err := fetchRoles(ctx, client, config.BaseURL)
	if err != nil {
		return fmt.Errorf("role retrieval failed: %w", err)
	}

	// Step 3: Generate volunteer profiles
	profiles, err := generateProfiles(ctx, config, questions, stats)
	if err != nil {
		return fmt.Errorf("profile generation failed: %w", err)
	}

	// Step 4: Run assessments concurrently
	outcomes, err := runProfiles(ctx, config, profiles, stats)
	if err != nil {
		return fmt.Errorf("assessment runs failed: %w", err)
	}

	// Step 5: Verify outcomes
	if err := verifyOutcomes(config, outcomes, roles, stats); err != nil {
		return fmt.Errorf("outcome verification failed: %w", err)
	}

	// Step 6: Save outcomes to file
	if err := saveOutcomesToFile(ctx, config, outcomes); err != nil {
		logger.Get().Warn(ctx, "failed to save outcomes to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "smoke test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveOutcomesToFile saves the assessment outcomes to a JSON file.
func saveOutcomesToFile(ctx context.Context, config *Config, outcomes []Outcome) error {
	if len(outcomes) == 0 {
		return fmt.Errorf("no outcomes to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "assessment_outcomes_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write outcomes to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(outcomes); err != nil {
		return fmt.Errorf("failed to write outcomes: %w", err)
	}

	logger.Get().Info(ctx, "outcomes saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, profilesPerSecond float64

	if stats.ProfilesSubmitted > 0 {
		successRate = float64(stats.ProfilesSuccessful) / float64(stats.ProfilesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		profilesPerSecond = float64(stats.ProfilesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("profilesGenerated", stats.ProfilesGenerated),
		logger.Int("profilesSubmitted", stats.ProfilesSubmitted),
		logger.Int("profilesSuccessful", stats.ProfilesSuccessful),
		logger.Int("profilesFailed", stats.ProfilesFailed),
		logger.Int("answersSaved", stats.AnswersSaved),
		logger.Int("questionsSkipped", stats.QuestionsSkipped),
		logger.Int("rolesInCatalog", stats.RolesInCatalog),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("profilesPerSecond", profilesPerSecond))
}
