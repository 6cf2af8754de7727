// Package repository persists contests, submissions and rating facts.
package repository

import (
	"context"

	"github.com/echolearn/arena/internal/domain/model"
)

// Store provides durable access to the contest state. The composite unique
// index on (user, contest) inside the store is the authoritative
// single-submission guard; callers may pre-check but must not rely on the
// pre-check alone.
type Store interface {
	// CountContests returns the catalog size.
	CountContests(ctx context.Context) (int64, error)

	// CountSubmissions returns the ledger size across all users.
	CountSubmissions(ctx context.Context) (int64, error)

	// ListContests returns all contests newest-first with full content.
	ListContests(ctx context.Context) ([]model.Contest, error)

	// GetContest resolves one contest by id.
	// Returns ErrNotFound if the id is unknown.
	GetContest(ctx context.Context, id string) (model.Contest, error)

	// GetContestByDate resolves the contest occupying a calendar slot.
	// Returns ErrNotFound if the slot is empty.
	GetContestByDate(ctx context.Context, date string) (model.Contest, error)

	// MaxContestNumber returns the highest assigned contest number, zero
	// when the catalog is empty.
	MaxContestNumber(ctx context.Context) (int, error)

	// CreateContests inserts contests in the given order.
	CreateContests(ctx context.Context, contests []model.Contest) error

	// GetSubmission resolves the submission for a (user, contest) pair.
	// Returns ErrNotFound if the user has not submitted.
	GetSubmission(ctx context.Context, userID, contestID string) (model.Submission, error)

	// ListSubmissions returns a user's submissions ordered by contest number.
	ListSubmissions(ctx context.Context, userID string) ([]model.Submission, error)

	// GetUserRating returns the user's rating facts, defaulting to the
	// initial rating for users with no contest history.
	GetUserRating(ctx context.Context, userID string) (model.UserRating, error)

	// RecordSubmission persists a submission, the updated rating facts, the
	// appended history entry and the participant count bump as one unit.
	// Returns ErrDuplicateSubmission when the unique index rejects the pair.
	RecordSubmission(ctx context.Context, sub model.Submission, event model.RatingEvent, newRating int) error

	// Close releases the underlying database handle.
	Close() error
}
