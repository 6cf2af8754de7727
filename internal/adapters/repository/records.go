package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/echolearn/arena/internal/domain/model"
)

// contestRecord is the stored shape of a contest. Lifecycle status is never
// persisted; it is derived from Date on every read.
type contestRecord struct {
	ID               string `gorm:"primaryKey;size:36"`
	Number           int    `gorm:"uniqueIndex;not null"`
	Title            string `gorm:"not null"`
	Date             string `gorm:"uniqueIndex;size:10;not null"`
	StartTime        string `gorm:"size:5;not null"`
	DurationMinutes  int    `gorm:"not null"`
	SpeakingTopic    string `gorm:"not null"`
	SpeakingDesc     string
	SpeakingMinSec   int
	SpeakingMaxSec   int
	ReadingTitle     string
	ReadingText      string `gorm:"not null"`
	ReadingWordCount int
	ParticipantCount int `gorm:"not null;default:0"`
	CreatedAt        time.Time
	Questions        []questionRecord `gorm:"foreignKey:ContestID;references:ID"`
}

func (contestRecord) TableName() string { return "contests" }

type questionRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	ContestID   string `gorm:"index;size:36;not null"`
	Position    int    `gorm:"not null"`
	Question    string `gorm:"not null"`
	OptionsRaw  string `gorm:"not null"`
	Answer      string `gorm:"not null"`
	Explanation string
}

func (questionRecord) TableName() string { return "contest_questions" }

// submissionRecord carries the composite unique index that makes the
// single-submission invariant authoritative at the write boundary.
type submissionRecord struct {
	ID                 string `gorm:"primaryKey;size:36"`
	UserID             string `gorm:"uniqueIndex:idx_user_contest;size:64;not null"`
	ContestID          string `gorm:"uniqueIndex:idx_user_contest;size:36;not null"`
	ContestNumber      int    `gorm:"index;not null"`
	AnswersRaw         string `gorm:"not null"`
	GrammarScore       int    `gorm:"not null"`
	SpeakingTranscript string
	SpeakingScore      int `gorm:"not null"`
	SpeakingFeedback   string
	ReadingTranscript  string
	ReadingScore       int `gorm:"not null"`
	ReadingFeedback    string
	TotalScore         int `gorm:"not null"`
	RatingChange       int `gorm:"not null"`
	CreatedAt          time.Time
}

func (submissionRecord) TableName() string { return "contest_submissions" }

type userRecord struct {
	ID               string `gorm:"primaryKey;size:64"`
	ContestRating    int    `gorm:"not null"`
	ContestsAttended int    `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (userRecord) TableName() string { return "users" }

type ratingEventRecord struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	UserID        string `gorm:"index;size:64;not null"`
	ContestNumber int    `gorm:"not null"`
	Rating        int    `gorm:"not null"`
	RatingChange  int    `gorm:"not null"`
	Date          string `gorm:"size:10;not null"`
	CreatedAt     time.Time
}

func (ratingEventRecord) TableName() string { return "rating_events" }

func toContestRecord(c model.Contest) (contestRecord, error) {
	rec := contestRecord{
		ID:               c.ID,
		Number:           c.Number,
		Title:            c.Title,
		Date:             c.Date,
		StartTime:        c.StartTime,
		DurationMinutes:  c.DurationMinutes,
		SpeakingTopic:    c.SpeakingTopic.Topic,
		SpeakingDesc:     c.SpeakingTopic.Description,
		SpeakingMinSec:   c.SpeakingTopic.MinDurationSec,
		SpeakingMaxSec:   c.SpeakingTopic.MaxDurationSec,
		ReadingTitle:     c.ReadingPassage.Title,
		ReadingText:      c.ReadingPassage.Text,
		ReadingWordCount: c.ReadingPassage.WordCount,
		ParticipantCount: c.ParticipantCount,
	}
	rec.Questions = make([]questionRecord, 0, len(c.GrammarQuestions))
	for i, q := range c.GrammarQuestions {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return contestRecord{}, fmt.Errorf("encode options: %w", err)
		}
		rec.Questions = append(rec.Questions, questionRecord{
			ContestID:   c.ID,
			Position:    i,
			Question:    q.Question,
			OptionsRaw:  string(opts),
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
	}
	return rec, nil
}

func fromContestRecord(rec contestRecord) (model.Contest, error) {
	c := model.Contest{
		ID:              rec.ID,
		Number:          rec.Number,
		Title:           rec.Title,
		Date:            rec.Date,
		StartTime:       rec.StartTime,
		DurationMinutes: rec.DurationMinutes,
		SpeakingTopic: model.SpeakingTopic{
			Topic:          rec.SpeakingTopic,
			Description:    rec.SpeakingDesc,
			MinDurationSec: rec.SpeakingMinSec,
			MaxDurationSec: rec.SpeakingMaxSec,
		},
		ReadingPassage: model.ReadingPassage{
			Title:     rec.ReadingTitle,
			Text:      rec.ReadingText,
			WordCount: rec.ReadingWordCount,
		},
		ParticipantCount: rec.ParticipantCount,
	}
	c.GrammarQuestions = make([]model.GrammarQuestion, 0, len(rec.Questions))
	for _, q := range rec.Questions {
		var opts []string
		if err := json.Unmarshal([]byte(q.OptionsRaw), &opts); err != nil {
			return model.Contest{}, fmt.Errorf("decode options: %w", err)
		}
		c.GrammarQuestions = append(c.GrammarQuestions, model.GrammarQuestion{
			Question:    q.Question,
			Options:     opts,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
	}
	return c, nil
}

func toSubmissionRecord(s model.Submission) (submissionRecord, error) {
	answers, err := json.Marshal(s.GrammarAnswers)
	if err != nil {
		return submissionRecord{}, fmt.Errorf("encode answers: %w", err)
	}
	return submissionRecord{
		ID:                 s.ID,
		UserID:             s.UserID,
		ContestID:          s.ContestID,
		ContestNumber:      s.ContestNumber,
		AnswersRaw:         string(answers),
		GrammarScore:       s.GrammarScore,
		SpeakingTranscript: s.SpeakingTranscript,
		SpeakingScore:      s.SpeakingScore,
		SpeakingFeedback:   s.SpeakingFeedback,
		ReadingTranscript:  s.ReadingTranscript,
		ReadingScore:       s.ReadingScore,
		ReadingFeedback:    s.ReadingFeedback,
		TotalScore:         s.TotalScore,
		RatingChange:       s.RatingChange,
		CreatedAt:          s.CreatedAt,
	}, nil
}

func fromSubmissionRecord(rec submissionRecord) (model.Submission, error) {
	var answers []model.GradedAnswer
	if rec.AnswersRaw != "" {
		if err := json.Unmarshal([]byte(rec.AnswersRaw), &answers); err != nil {
			return model.Submission{}, fmt.Errorf("decode answers: %w", err)
		}
	}
	return model.Submission{
		ID:                 rec.ID,
		UserID:             rec.UserID,
		ContestID:          rec.ContestID,
		ContestNumber:      rec.ContestNumber,
		GrammarAnswers:     answers,
		GrammarScore:       rec.GrammarScore,
		SpeakingTranscript: rec.SpeakingTranscript,
		SpeakingScore:      rec.SpeakingScore,
		SpeakingFeedback:   rec.SpeakingFeedback,
		ReadingTranscript:  rec.ReadingTranscript,
		ReadingScore:       rec.ReadingScore,
		ReadingFeedback:    rec.ReadingFeedback,
		TotalScore:         rec.TotalScore,
		RatingChange:       rec.RatingChange,
		CreatedAt:          rec.CreatedAt,
	}, nil
}
