// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/echolearn/arena/internal/adapters/repository"
	"github.com/echolearn/arena/internal/content"
	"github.com/echolearn/arena/internal/domain/dedupe"
	"github.com/echolearn/arena/internal/domain/grading"
	"github.com/echolearn/arena/internal/domain/model"
	"github.com/echolearn/arena/internal/domain/rating"
	"github.com/echolearn/arena/internal/domain/schedule"
	"github.com/echolearn/arena/internal/domain/types"
	"github.com/echolearn/arena/pkg/logger"
	"github.com/echolearn/arena/pkg/metrics"
)

// Seeded participant counts are cosmetic and land in [10, 59].
const (
	seedParticipantBase = 10
	seedParticipantSpan = 50
)

// Service implements the API dependencies for the contest arena.
type Service struct {
	mu sync.Mutex

	// Core components
	store   repository.Store
	library *content.Library
	clock   schedule.Clock
	engine  *rating.Engine
	deduper dedupe.Deduper

	// State
	seeded bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClock sets the clock used for schedule resolution.
func WithClock(clock schedule.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRatingEngine sets a custom rating engine.
func WithRatingEngine(engine *rating.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithDeduper sets the duplicate-submission fast path cache.
func WithDeduper(deduper dedupe.Deduper) Option {
	return func(s *Service) {
		if deduper != nil {
			s.deduper = deduper
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a Service over a store and a content library.
func New(store repository.Store, library *content.Library, opts ...Option) *Service {
	s := &Service{
		store:   store,
		library: library,
		clock:   schedule.SystemClock{},
		engine:  rating.NewEngine(),
		deduper: dedupe.NewInMemoryDeduper(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	return s
}

// EnsureSeeded backfills the contest catalog when the store is empty and
// guarantees the upcoming slot is occupied. Safe to call on every request.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded {
		count, err := s.store.CountContests(ctx)
		if err != nil {
			return fmt.Errorf("counting contests: %w", err)
		}
		if count == 0 {
			if err := s.seedCatalog(ctx); err != nil {
				return err
			}
		}
		s.seeded = true
	}

	return s.ensureNextSlot(ctx)
}

// seedCatalog creates one contest per template, dated on consecutive past
// weekly slots ending at the most recent one. Caller holds s.mu.
func (s *Service) seedCatalog(ctx context.Context) error {
	n := s.library.Count()
	last := schedule.LastSlotDate(s.clock.Now())

	contests := make([]model.Contest, 0, n)
	for i := 0; i < n; i++ {
		number := i + 1
		tpl := s.library.ForNumber(number)
		contests = append(contests, model.Contest{
			ID:               uuid.NewString(),
			Number:           number,
			Title:            contestTitle(number),
			Date:             schedule.ShiftWeeks(last, -(n - 1 - i)),
			StartTime:        schedule.StartTime,
			DurationMinutes:  schedule.DurationMinutes,
			GrammarQuestions: tpl.GrammarQuestions,
			SpeakingTopic:    tpl.SpeakingTopic,
			ReadingPassage:   tpl.ReadingPassage,
			ParticipantCount: seedParticipantBase + rand.Intn(seedParticipantSpan),
		})
	}

	if err := s.store.CreateContests(ctx, contests); err != nil {
		return fmt.Errorf("seeding contests: %w", err)
	}

	metrics.RecordContestsSeeded(n)
	s.logger.Info(ctx, "seeded contest catalog",
		logger.Int("contests", n),
		logger.String("lastSlot", last),
	)
	return nil
}

// ensureNextSlot creates the contest for the upcoming weekly slot if the
// slot is still empty. Caller holds s.mu.
func (s *Service) ensureNextSlot(ctx context.Context) error {
	next := schedule.NextSlotDate(s.clock.Now())

	_, err := s.store.GetContestByDate(ctx, next)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("resolving slot %s: %w", next, err)
	}

	highest, err := s.store.MaxContestNumber(ctx)
	if err != nil {
		return fmt.Errorf("resolving max contest number: %w", err)
	}

	number := highest + 1
	tpl := s.library.ForNumber(number)
	contest := model.Contest{
		ID:               uuid.NewString(),
		Number:           number,
		Title:            contestTitle(number),
		Date:             next,
		StartTime:        schedule.StartTime,
		DurationMinutes:  schedule.DurationMinutes,
		GrammarQuestions: tpl.GrammarQuestions,
		SpeakingTopic:    tpl.SpeakingTopic,
		ReadingPassage:   tpl.ReadingPassage,
	}

	if err := s.store.CreateContests(ctx, []model.Contest{contest}); err != nil {
		return fmt.Errorf("creating contest for slot %s: %w", next, err)
	}

	metrics.RecordContestCreated()
	s.logger.Info(ctx, "created upcoming contest",
		logger.Int("number", number),
		logger.String("date", next),
	)
	return nil
}

func contestTitle(number int) string {
	return fmt.Sprintf("ECHO Weekly Contest #%d", number)
}

// ListContests returns the full catalog, newest first, annotated with the
// requesting user's submission facts.
func (s *Service) ListContests(ctx context.Context, userID string) ([]types.ContestSummary, error) {
	if err := s.EnsureSeeded(ctx); err != nil {
		return nil, err
	}

	contests, err := s.store.ListContests(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contests: %w", err)
	}

	now := s.clock.Now()
	summaries := make([]types.ContestSummary, 0, len(contests))
	for _, c := range contests {
		summary := types.ContestSummary{
			ID:               c.ID,
			ContestNumber:    c.Number,
			Title:            c.Title,
			Date:             c.Date,
			StartTime:        c.StartTime,
			DurationMinutes:  c.DurationMinutes,
			ParticipantCount: c.ParticipantCount,
			Status:           schedule.ContestStatus(c.Date, now),
		}

		sub, err := s.store.GetSubmission(ctx, userID, c.ID)
		switch {
		case err == nil:
			score := sub.TotalScore
			change := sub.RatingChange
			summary.UserSubmitted = true
			summary.UserScore = &score
			summary.UserRatingChange = &change
		case !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("resolving submission for contest %d: %w", c.Number, err)
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// GetContest returns the full contest view. Grammar answers and
// explanations are withheld until the contest has completed.
func (s *Service) GetContest(ctx context.Context, userID, contestID string) (types.ContestDetail, error) {
	if err := s.EnsureSeeded(ctx); err != nil {
		return types.ContestDetail{}, err
	}

	c, err := s.store.GetContest(ctx, contestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return types.ContestDetail{}, ErrContestNotFound
		}
		return types.ContestDetail{}, fmt.Errorf("resolving contest: %w", err)
	}

	status := schedule.ContestStatus(c.Date, s.clock.Now())
	detail := types.ContestDetail{
		ID:               c.ID,
		ContestNumber:    c.Number,
		Title:            c.Title,
		Date:             c.Date,
		StartTime:        c.StartTime,
		DurationMinutes:  c.DurationMinutes,
		ParticipantCount: c.ParticipantCount,
		Status:           status,
		GrammarQuestions: make([]types.QuestionView, 0, len(c.GrammarQuestions)),
		SpeakingTopic: types.SpeakingTopicView{
			Topic:          c.SpeakingTopic.Topic,
			Description:    c.SpeakingTopic.Description,
			MinDurationSec: c.SpeakingTopic.MinDurationSec,
			MaxDurationSec: c.SpeakingTopic.MaxDurationSec,
		},
		ReadingPassage: types.ReadingPassageView{
			Title:     c.ReadingPassage.Title,
			Text:      c.ReadingPassage.Text,
			WordCount: c.ReadingPassage.WordCount,
		},
	}

	for i, q := range c.GrammarQuestions {
		view := types.QuestionView{
			Index:    i,
			Question: q.Question,
			Options:  q.Options,
		}
		if status == schedule.StatusCompleted {
			view.Answer = q.Answer
			view.Explanation = q.Explanation
		}
		detail.GrammarQuestions = append(detail.GrammarQuestions, view)
	}

	sub, err := s.store.GetSubmission(ctx, userID, contestID)
	switch {
	case err == nil:
		detail.UserSubmitted = true
		detail.ExistingSubmission = &sub
	case !errors.Is(err, repository.ErrNotFound):
		return types.ContestDetail{}, fmt.Errorf("resolving submission: %w", err)
	}

	return detail, nil
}

// Submit grades all three sections, applies the rating change and records
// the submission. A second submission for the same contest is rejected.
func (s *Service) Submit(ctx context.Context, userID, contestID string, req types.SubmitRequest) (types.SubmitResult, error) {
	if err := s.EnsureSeeded(ctx); err != nil {
		return types.SubmitResult{}, err
	}

	c, err := s.store.GetContest(ctx, contestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return types.SubmitResult{}, ErrContestNotFound
		}
		return types.SubmitResult{}, fmt.Errorf("resolving contest: %w", err)
	}

	if s.deduper.SeenAndRecord(ctx, userID, contestID) {
		metrics.RecordDuplicateSubmission()
		return types.SubmitResult{}, ErrAlreadySubmitted
	}

	grammar := grading.Grammar(c.GrammarQuestions, req.GrammarAnswers)
	speaking := grading.Speaking(req.SpeakingTranscript)
	reading := grading.Reading(req.ReadingTranscript, c.ReadingPassage.Text)
	total := grading.Composite(grammar.Score, speaking.Score, reading.Score)

	current, err := s.store.GetUserRating(ctx, userID)
	if err != nil {
		s.deduper.Unrecord(ctx, userID, contestID)
		return types.SubmitResult{}, fmt.Errorf("resolving user rating: %w", err)
	}

	delta := s.engine.Delta(current.ContestRating, total)
	newRating := rating.Apply(current.ContestRating, delta)

	sub := model.Submission{
		ID:                 uuid.NewString(),
		UserID:             userID,
		ContestID:          contestID,
		ContestNumber:      c.Number,
		GrammarAnswers:     grammar.Answers,
		GrammarScore:       grammar.Score,
		SpeakingTranscript: req.SpeakingTranscript,
		SpeakingScore:      speaking.Score,
		SpeakingFeedback:   speaking.Feedback,
		ReadingTranscript:  req.ReadingTranscript,
		ReadingScore:       reading.Score,
		ReadingFeedback:    reading.Feedback,
		TotalScore:         total,
		RatingChange:       newRating - current.ContestRating,
		CreatedAt:          s.clock.Now(),
	}
	event := model.RatingEvent{
		ContestNumber: c.Number,
		Rating:        newRating,
		RatingChange:  newRating - current.ContestRating,
		Date:          schedule.DateString(s.clock.Now()),
	}

	if err := s.store.RecordSubmission(ctx, sub, event, newRating); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubmission) {
			metrics.RecordDuplicateSubmission()
			return types.SubmitResult{}, ErrAlreadySubmitted
		}
		s.deduper.Unrecord(ctx, userID, contestID)
		return types.SubmitResult{}, fmt.Errorf("recording submission: %w", err)
	}

	metrics.RecordSubmission()
	metrics.RecordCompositeScore(total)
	metrics.RecordRatingDelta(sub.RatingChange)
	s.logger.Info(ctx, "submission recorded",
		logger.String("userID", userID),
		logger.Int("contest", c.Number),
		logger.Int("total", total),
		logger.Int("ratingChange", sub.RatingChange),
		logger.Int("newRating", newRating),
	)

	return types.SubmitResult{
		GrammarScore:     grammar.Score,
		SpeakingScore:    speaking.Score,
		SpeakingFeedback: speaking.Feedback,
		ReadingScore:     reading.Score,
		ReadingFeedback:  reading.Feedback,
		TotalScore:       total,
		RatingChange:     sub.RatingChange,
		NewRating:        newRating,
		Submission:       sub,
	}, nil
}

// Stats aggregates a user's rating, tier and full contest history.
func (s *Service) Stats(ctx context.Context, userID string) (types.StatsView, error) {
	if err := s.EnsureSeeded(ctx); err != nil {
		return types.StatsView{}, err
	}

	ur, err := s.store.GetUserRating(ctx, userID)
	if err != nil {
		return types.StatsView{}, fmt.Errorf("resolving user rating: %w", err)
	}

	subs, err := s.store.ListSubmissions(ctx, userID)
	if err != nil {
		return types.StatsView{}, fmt.Errorf("listing submissions: %w", err)
	}

	tier := rating.TierFor(ur.ContestRating)
	view := types.StatsView{
		ContestRating:    ur.ContestRating,
		ContestsAttended: ur.ContestsAttended,
		Tier:             tier.Name,
		TierColor:        tier.Color,
		RatingHistory:    ur.RatingHistory,
		Submissions:      make([]types.SubmissionSummary, 0, len(subs)),
	}

	for _, sub := range subs {
		summary := types.SubmissionSummary{
			ContestNumber: sub.ContestNumber,
			ContestTitle:  contestTitle(sub.ContestNumber),
			Date:          schedule.DateString(sub.CreatedAt),
			GrammarScore:  sub.GrammarScore,
			SpeakingScore: sub.SpeakingScore,
			ReadingScore:  sub.ReadingScore,
			TotalScore:    sub.TotalScore,
			RatingChange:  sub.RatingChange,
		}
		if c, err := s.store.GetContest(ctx, sub.ContestID); err == nil {
			summary.ContestTitle = c.Title
			summary.Date = c.Date
		}
		view.Submissions = append(view.Submissions, summary)
	}

	return view, nil
}

// Discussions returns the seed discussion threads for a contest.
func (s *Service) Discussions(ctx context.Context, contestID string) ([]model.Discussion, error) {
	if err := s.EnsureSeeded(ctx); err != nil {
		return nil, err
	}

	c, err := s.store.GetContest(ctx, contestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("resolving contest: %w", err)
	}

	return s.library.DiscussionsFor(c.Number), nil
}

// Totals reports catalog and ledger sizes for the metrics updater.
func (s *Service) Totals(ctx context.Context) (contests, submissions int64, err error) {
	contests, err = s.store.CountContests(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("counting contests: %w", err)
	}
	submissions, err = s.store.CountSubmissions(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("counting submissions: %w", err)
	}
	return contests, submissions, nil
}
