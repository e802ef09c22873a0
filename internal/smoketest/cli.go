package smoketest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/rolematch/rolematch/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "smoke_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the assessment smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`Role Match Assessment Smoke Tool
================================

A concurrent tool for exercising the volunteer assessment flow end to end:
start-session, save-answer for every question, submit, and verification of
the returned role buckets.

Usage:
  go run cmd/assess-smoke/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -profiles int
        Number of volunteer profiles to generate and submit (default 200)
  -top int
        Expected size of the best-fit bucket (default 3)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for assessment outcomes (default: assessment_outcomes_TIMESTAMP.json)
  -log string
        Log file for test output (default: smoke_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/assess-smoke/main.go

  # Test with custom parameters
  go run cmd/assess-smoke/main.go -profiles 1000 -workers 16 -url http://localhost:8080

  # Test with verbose output
  go run cmd/assess-smoke/main.go -verbose -profiles 50

  # Test with custom log file
  go run cmd/assess-smoke/main.go -profiles 500 -log my_smoke.log
`)
}
