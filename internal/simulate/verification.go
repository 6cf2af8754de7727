package simulate

import (
	"context"
	"fmt"

	"github.com/echolearn/arena/pkg/logger"
)

// Scoring bounds the service is expected to honor.
const (
	compositeMax = 300
	ratingFloor  = 500
)

// verifyResults checks every graded result against the scoring invariants.
func verifyResults(ctx context.Context, results []submitResult, stats *Stats) error {
	if len(results) == 0 {
		return fmt.Errorf("no graded results to verify")
	}

	violations := 0
	for _, r := range results {
		if err := verifySingle(r); err != nil {
			violations++
			logger.Get().Warn(ctx, "scoring invariant violated", logger.Error(err), logger.Any("result", r))
		}
	}

	stats.InvariantViolations += violations
	if violations > 0 {
		return fmt.Errorf("%d of %d results violated scoring invariants", violations, len(results))
	}

	logger.Get().Info(ctx, "all graded results satisfy scoring invariants", logger.Int("results", len(results)))
	return nil
}

// verifySingle checks one result: section bounds, the composite identity and
// the rating floor.
func verifySingle(r submitResult) error {
	switch {
	case r.GrammarScore < 0 || r.GrammarScore > 10:
		return fmt.Errorf("grammar score %d out of range", r.GrammarScore)
	case r.SpeakingScore < 0 || r.SpeakingScore > 100:
		return fmt.Errorf("speaking score %d out of range", r.SpeakingScore)
	case r.ReadingScore < 0 || r.ReadingScore > 100:
		return fmt.Errorf("reading score %d out of range", r.ReadingScore)
	case r.TotalScore < 0 || r.TotalScore > compositeMax:
		return fmt.Errorf("total score %d out of range", r.TotalScore)
	case r.TotalScore != r.GrammarScore*10+r.SpeakingScore+r.ReadingScore:
		return fmt.Errorf("total score %d does not match section sum", r.TotalScore)
	case r.NewRating < ratingFloor:
		return fmt.Errorf("rating %d fell below the floor", r.NewRating)
	}
	return nil
}

// verifyStats cross-checks sampled users' stats views after the run.
func verifyStats(ctx context.Context, config *Config, client *HTTPClient, users []user, stats *Stats) error {
	url := config.BaseURL + "/contests/stats"

	sample := users
	if len(sample) > 10 {
		sample = sample[:10]
	}

	for _, u := range sample {
		var view statsView
		if err := getJSON(ctx, client, url, u.ID, &view); err != nil {
			return fmt.Errorf("fetching stats for %s: %w", u.ID, err)
		}

		if view.ContestRating < ratingFloor {
			return fmt.Errorf("user %s rating %d below floor", u.ID, view.ContestRating)
		}
		if view.ContestsAttended != len(view.RatingHistory) {
			return fmt.Errorf("user %s attended %d contests but has %d history entries",
				u.ID, view.ContestsAttended, len(view.RatingHistory))
		}
		if view.Tier == "" || view.TierColor == "" {
			return fmt.Errorf("user %s has an unresolved tier", u.ID)
		}

		stats.StatsVerified++
		if config.Verbose {
			logger.Get().Info(ctx, "verified user stats",
				logger.String("userID", u.ID),
				logger.Int("rating", view.ContestRating),
				logger.String("tier", view.Tier),
			)
		}
	}

	return nil
}
