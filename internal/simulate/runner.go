package simulate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/echolearn/arena/pkg/logger"
)

// probeUser identifies the catalog discovery requests.
const probeUser = "sim-probe"

// Run executes the complete contest simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting arena simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("users", config.NumUsers),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
	)

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, config, client); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	contest, err := findCompletedContest(ctx, config, client)
	if err != nil {
		return fmt.Errorf("contest discovery failed: %w", err)
	}

	users := generateUsers(ctx, config, stats)

	results := submitAll(ctx, config, contest, users, stats)

	// A second round with the same users must be rejected wholesale.
	submitAll(ctx, config, contest, users, stats)
	if stats.SubmissionsDuplicate < stats.SubmissionsSuccessful {
		return fmt.Errorf("expected every repeat submission to be rejected, got %d duplicates for %d successes",
			stats.SubmissionsDuplicate, stats.SubmissionsSuccessful)
	}

	if err := verifyResults(ctx, results, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	if err := verifyStats(ctx, config, client, users, stats); err != nil {
		return fmt.Errorf("stats verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config, client *HTTPClient) error {
	resp, err := client.Get(ctx, config.BaseURL+"/healthz", "")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// findCompletedContest picks the newest completed contest so the answer key
// is exposed and submissions are gradable against it.
func findCompletedContest(ctx context.Context, config *Config, client *HTTPClient) (contestDetail, error) {
	var catalog []contestView
	if err := getJSON(ctx, client, config.BaseURL+"/contests", probeUser, &catalog); err != nil {
		return contestDetail{}, fmt.Errorf("listing contests: %w", err)
	}

	for _, c := range catalog {
		if c.Status != "completed" {
			continue
		}
		var detail contestDetail
		if err := getJSON(ctx, client, config.BaseURL+"/contests/"+c.ID, probeUser, &detail); err != nil {
			return contestDetail{}, fmt.Errorf("fetching contest %d: %w", c.ContestNumber, err)
		}
		if len(detail.GrammarQuestions) == 0 {
			continue
		}
		logger.Get().Info(ctx, "selected contest",
			logger.Int("number", detail.ContestNumber),
			logger.String("date", c.Date),
		)
		return detail, nil
	}

	return contestDetail{}, fmt.Errorf("no completed contest with questions found")
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var successRate, submissionsPerSecond float64

	if stats.SubmissionsAttempted > 0 {
		successRate = float64(stats.SubmissionsSuccessful) / float64(stats.SubmissionsAttempted) * 100
	}
	if stats.Duration > 0 {
		submissionsPerSecond = float64(stats.SubmissionsAttempted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("usersGenerated", stats.UsersGenerated),
		logger.Int("submissionsAttempted", stats.SubmissionsAttempted),
		logger.Int("submissionsSuccessful", stats.SubmissionsSuccessful),
		logger.Int("submissionsDuplicate", stats.SubmissionsDuplicate),
		logger.Int("submissionsFailed", stats.SubmissionsFailed),
		logger.Int("invariantViolations", stats.InvariantViolations),
		logger.Int("statsVerified", stats.StatsVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Any("successRate", successRate),
		logger.Any("submissionsPerSecond", submissionsPerSecond),
	)
}
