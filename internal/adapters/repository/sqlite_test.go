package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	repository "github.com/echolearn/arena/internal/adapters/repository"
	"github.com/echolearn/arena/internal/domain/model"
)

func openStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()
	store, err := repository.New(filepath.Join(t.TempDir(), "arena.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleContest(number int, date string) model.Contest {
	return model.Contest{
		ID:              uuid.NewString(),
		Number:          number,
		Title:           "ECHO Weekly Contest #1",
		Date:            date,
		StartTime:       "20:00",
		DurationMinutes: 70,
		GrammarQuestions: []model.GrammarQuestion{
			{Question: "pick a", Options: []string{"a", "b"}, Answer: "a", Explanation: "because"},
			{Question: "pick b", Options: []string{"a", "b"}, Answer: "b"},
		},
		SpeakingTopic: model.SpeakingTopic{
			Topic:          "Your city",
			Description:    "Describe it",
			MinDurationSec: 30,
			MaxDurationSec: 120,
		},
		ReadingPassage: model.ReadingPassage{
			Title:     "Sample",
			Text:      "one two three four",
			WordCount: 4,
		},
		ParticipantCount: 7,
	}
}

func sampleSubmission(userID, contestID string, number int) model.Submission {
	return model.Submission{
		ID:            uuid.NewString(),
		UserID:        userID,
		ContestID:     contestID,
		ContestNumber: number,
		GrammarAnswers: []model.GradedAnswer{
			{QuestionIndex: 0, SelectedAnswer: "a", Correct: true},
			{QuestionIndex: 1, SelectedAnswer: "a", Correct: false},
		},
		GrammarScore:       1,
		SpeakingTranscript: "hello there",
		SpeakingScore:      8,
		SpeakingFeedback:   "keep going",
		ReadingScore:       50,
		ReadingFeedback:    "good attempt",
		TotalScore:         68,
		RatingChange:       -10,
		CreatedAt:          time.Now().UTC(),
	}
}

func TestContestRoundTrip(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store := openStore(t)
		ctx := context.Background()

		Convey("The catalog starts empty", func() {
			n, err := store.CountContests(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 0)

			highest, err := store.MaxContestNumber(ctx)
			So(err, ShouldBeNil)
			So(highest, ShouldEqual, 0)
		})

		Convey("When contests are created", func() {
			first := sampleContest(1, "2026-08-23")
			second := sampleContest(2, "2026-08-30")
			So(store.CreateContests(ctx, []model.Contest{first, second}), ShouldBeNil)

			Convey("They round-trip with questions in order", func() {
				got, err := store.GetContest(ctx, first.ID)
				So(err, ShouldBeNil)
				So(got.Number, ShouldEqual, 1)
				So(got.GrammarQuestions, ShouldHaveLength, 2)
				So(got.GrammarQuestions[0].Answer, ShouldEqual, "a")
				So(got.GrammarQuestions[0].Options, ShouldResemble, []string{"a", "b"})
				So(got.SpeakingTopic.Topic, ShouldEqual, "Your city")
				So(got.ReadingPassage.WordCount, ShouldEqual, 4)
			})

			Convey("Listing is newest-first", func() {
				all, err := store.ListContests(ctx)
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 2)
				So(all[0].Number, ShouldEqual, 2)
				So(all[1].Number, ShouldEqual, 1)
			})

			Convey("Lookup by slot date works", func() {
				got, err := store.GetContestByDate(ctx, "2026-08-30")
				So(err, ShouldBeNil)
				So(got.Number, ShouldEqual, 2)

				_, err = store.GetContestByDate(ctx, "2030-01-06")
				So(err, ShouldWrap, repository.ErrNotFound)
			})

			Convey("MaxContestNumber tracks the highest", func() {
				highest, err := store.MaxContestNumber(ctx)
				So(err, ShouldBeNil)
				So(highest, ShouldEqual, 2)
			})

			Convey("An unknown id is ErrNotFound", func() {
				_, err := store.GetContest(ctx, uuid.NewString())
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})
	})
}

func TestRecordSubmission(t *testing.T) {
	Convey("Given a store with one contest", t, func() {
		store := openStore(t)
		ctx := context.Background()
		contest := sampleContest(1, "2026-08-30")
		So(store.CreateContests(ctx, []model.Contest{contest}), ShouldBeNil)

		sub := sampleSubmission("user-1", contest.ID, contest.Number)
		event := model.RatingEvent{ContestNumber: 1, Rating: 990, RatingChange: -10, Date: contest.Date}

		Convey("When a submission is recorded", func() {
			So(store.RecordSubmission(ctx, sub, event, 990), ShouldBeNil)

			Convey("The submission round-trips", func() {
				got, err := store.GetSubmission(ctx, "user-1", contest.ID)
				So(err, ShouldBeNil)
				So(got.TotalScore, ShouldEqual, 68)
				So(got.GrammarAnswers, ShouldHaveLength, 2)
				So(got.GrammarAnswers[0].Correct, ShouldBeTrue)
			})

			Convey("The user's rating facts were applied atomically", func() {
				facts, err := store.GetUserRating(ctx, "user-1")
				So(err, ShouldBeNil)
				So(facts.ContestRating, ShouldEqual, 990)
				So(facts.ContestsAttended, ShouldEqual, 1)
				So(facts.RatingHistory, ShouldHaveLength, 1)
				So(facts.RatingHistory[0].RatingChange, ShouldEqual, -10)
			})

			Convey("The participant count was bumped", func() {
				got, err := store.GetContest(ctx, contest.ID)
				So(err, ShouldBeNil)
				So(got.ParticipantCount, ShouldEqual, 8)
			})

			Convey("A duplicate insert is rejected and changes nothing", func() {
				dupe := sampleSubmission("user-1", contest.ID, contest.Number)
				err := store.RecordSubmission(ctx, dupe, event, 980)
				So(err, ShouldWrap, repository.ErrDuplicateSubmission)

				facts, err := store.GetUserRating(ctx, "user-1")
				So(err, ShouldBeNil)
				So(facts.ContestRating, ShouldEqual, 990)
				So(facts.ContestsAttended, ShouldEqual, 1)
				So(facts.RatingHistory, ShouldHaveLength, 1)

				got, err := store.GetContest(ctx, contest.ID)
				So(err, ShouldBeNil)
				So(got.ParticipantCount, ShouldEqual, 8)
			})

			Convey("A different user may still submit", func() {
				other := sampleSubmission("user-2", contest.ID, contest.Number)
				So(store.RecordSubmission(ctx, other, event, 990), ShouldBeNil)

				n, err := store.CountSubmissions(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
			})

			Convey("Submissions list in contest-number order", func() {
				second := sampleContest(2, "2026-09-06")
				So(store.CreateContests(ctx, []model.Contest{second}), ShouldBeNil)
				next := sampleSubmission("user-1", second.ID, second.Number)
				So(store.RecordSubmission(ctx, next, model.RatingEvent{ContestNumber: 2, Rating: 1000, RatingChange: 10, Date: second.Date}, 1000), ShouldBeNil)

				subs, err := store.ListSubmissions(ctx, "user-1")
				So(err, ShouldBeNil)
				So(subs, ShouldHaveLength, 2)
				So(subs[0].ContestNumber, ShouldEqual, 1)
				So(subs[1].ContestNumber, ShouldEqual, 2)
			})
		})

		Convey("An unknown user has default rating facts", func() {
			facts, err := store.GetUserRating(ctx, "stranger")
			So(err, ShouldBeNil)
			So(facts.ContestRating, ShouldEqual, 1000)
			So(facts.ContestsAttended, ShouldEqual, 0)
			So(facts.RatingHistory, ShouldBeEmpty)
		})

		Convey("An unknown submission is ErrNotFound", func() {
			_, err := store.GetSubmission(ctx, "nobody", contest.ID)
			So(err, ShouldWrap, repository.ErrNotFound)
		})
	})
}
