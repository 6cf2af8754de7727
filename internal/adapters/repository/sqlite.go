package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/echolearn/arena/internal/domain/model"
	"github.com/echolearn/arena/internal/domain/rating"
	"github.com/echolearn/arena/pkg/metrics"
)

// SQLiteStore implements Store on an embedded SQLite database via gorm.
type SQLiteStore struct {
	db *gorm.DB
}

// Option applies a configuration option to the SQLiteStore.
type Option func(*settings)

type settings struct {
	logMode gormlogger.LogLevel
}

// WithQueryLogging enables gorm statement logging, useful when debugging.
func WithQueryLogging() Option {
	return func(s *settings) {
		s.logMode = gormlogger.Info
	}
}

// New opens (creating if needed) the database at path and migrates the
// schema.
func New(path string, opts ...Option) (*SQLiteStore, error) {
	cfg := settings{logMode: gormlogger.Silent}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(cfg.logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&contestRecord{},
		&questionRecord{},
		&submissionRecord{},
		&userRecord{},
		&ratingEventRecord{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("resolve connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// CountContests returns the catalog size.
func (s *SQLiteStore) CountContests(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&contestRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count contests: %w", err)
	}
	return n, nil
}

// CountSubmissions returns the ledger size.
func (s *SQLiteStore) CountSubmissions(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&submissionRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

func withQuestions(db *gorm.DB) *gorm.DB {
	return db.Preload("Questions", func(q *gorm.DB) *gorm.DB {
		return q.Order("position ASC")
	})
}

// ListContests returns all contests newest-first.
func (s *SQLiteStore) ListContests(ctx context.Context) ([]model.Contest, error) {
	start := time.Now()
	var recs []contestRecord
	err := withQuestions(s.db.WithContext(ctx)).Order("date DESC").Find(&recs).Error
	metrics.RecordStoreQuery(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}

	out := make([]model.Contest, 0, len(recs))
	for _, rec := range recs {
		c, err := fromContestRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// GetContest resolves one contest by id.
func (s *SQLiteStore) GetContest(ctx context.Context, id string) (model.Contest, error) {
	var rec contestRecord
	err := withQuestions(s.db.WithContext(ctx)).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Contest{}, ErrNotFound
	}
	if err != nil {
		return model.Contest{}, fmt.Errorf("get contest: %w", err)
	}
	return fromContestRecord(rec)
}

// GetContestByDate resolves the contest occupying a calendar slot.
func (s *SQLiteStore) GetContestByDate(ctx context.Context, date string) (model.Contest, error) {
	var rec contestRecord
	err := withQuestions(s.db.WithContext(ctx)).Where("date = ?", date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Contest{}, ErrNotFound
	}
	if err != nil {
		return model.Contest{}, fmt.Errorf("get contest by date: %w", err)
	}
	return fromContestRecord(rec)
}

// MaxContestNumber returns the highest assigned number, zero when empty.
func (s *SQLiteStore) MaxContestNumber(ctx context.Context) (int, error) {
	var highest int
	err := s.db.WithContext(ctx).
		Model(&contestRecord{}).
		Select("COALESCE(MAX(number), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, fmt.Errorf("max contest number: %w", err)
	}
	return highest, nil
}

// CreateContests inserts contests with their questions.
func (s *SQLiteStore) CreateContests(ctx context.Context, contests []model.Contest) error {
	if len(contests) == 0 {
		return nil
	}
	recs := make([]contestRecord, 0, len(contests))
	for _, c := range contests {
		rec, err := toContestRecord(c)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}

	start := time.Now()
	err := s.db.WithContext(ctx).Create(&recs).Error
	metrics.RecordStoreWrite(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return fmt.Errorf("create contests: %w", err)
	}
	return nil
}

// GetSubmission resolves the submission for a (user, contest) pair.
func (s *SQLiteStore) GetSubmission(ctx context.Context, userID, contestID string) (model.Submission, error) {
	var rec submissionRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND contest_id = ?", userID, contestID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Submission{}, ErrNotFound
	}
	if err != nil {
		return model.Submission{}, fmt.Errorf("get submission: %w", err)
	}
	return fromSubmissionRecord(rec)
}

// ListSubmissions returns a user's submissions ordered by contest number.
func (s *SQLiteStore) ListSubmissions(ctx context.Context, userID string) ([]model.Submission, error) {
	var recs []submissionRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("contest_number ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	out := make([]model.Submission, 0, len(recs))
	for _, rec := range recs {
		sub, err := fromSubmissionRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

// GetUserRating returns rating facts, defaulting for unknown users.
func (s *SQLiteStore) GetUserRating(ctx context.Context, userID string) (model.UserRating, error) {
	facts := model.UserRating{
		UserID:        userID,
		ContestRating: rating.DefaultRating,
		RatingHistory: []model.RatingEvent{},
	}

	var user userRecord
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return facts, nil
	}
	if err != nil {
		return model.UserRating{}, fmt.Errorf("get user: %w", err)
	}
	facts.ContestRating = user.ContestRating
	facts.ContestsAttended = user.ContestsAttended

	var events []ratingEventRecord
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return model.UserRating{}, fmt.Errorf("list rating events: %w", err)
	}
	for _, e := range events {
		facts.RatingHistory = append(facts.RatingHistory, model.RatingEvent{
			ContestNumber: e.ContestNumber,
			Rating:        e.Rating,
			RatingChange:  e.RatingChange,
			Date:          e.Date,
		})
	}
	return facts, nil
}

// RecordSubmission persists the submission and rating facts atomically.
// The composite unique index rejects a concurrent duplicate inside the
// transaction, so a lost pre-check race cannot double-apply a rating.
func (s *SQLiteStore) RecordSubmission(ctx context.Context, sub model.Submission, event model.RatingEvent, newRating int) error {
	rec, err := toSubmissionRecord(sub)
	if err != nil {
		return err
	}

	start := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateSubmission
			}
			return fmt.Errorf("insert submission: %w", err)
		}

		var user userRecord
		err := tx.Where("id = ?", sub.UserID).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = userRecord{ID: sub.UserID, ContestRating: rating.DefaultRating}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("create user: %w", err)
			}
		case err != nil:
			return fmt.Errorf("load user: %w", err)
		}

		updates := map[string]any{
			"contest_rating":    newRating,
			"contests_attended": gorm.Expr("contests_attended + 1"),
		}
		if err := tx.Model(&userRecord{}).Where("id = ?", sub.UserID).Updates(updates).Error; err != nil {
			return fmt.Errorf("update user rating: %w", err)
		}

		historyRow := ratingEventRecord{
			UserID:        sub.UserID,
			ContestNumber: event.ContestNumber,
			Rating:        event.Rating,
			RatingChange:  event.RatingChange,
			Date:          event.Date,
		}
		if err := tx.Create(&historyRow).Error; err != nil {
			return fmt.Errorf("append rating history: %w", err)
		}

		err = tx.Model(&contestRecord{}).
			Where("id = ?", sub.ContestID).
			UpdateColumn("participant_count", gorm.Expr("participant_count + 1")).Error
		if err != nil {
			return fmt.Errorf("bump participant count: %w", err)
		}
		return nil
	})
	metrics.RecordStoreWrite(float64(time.Since(start).Milliseconds()))
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
