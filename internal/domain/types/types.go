// Package types contains the API-facing view types shared between the
// service and the HTTP adapter.
package types

import (
	"github.com/echolearn/arena/internal/domain/model"
	"github.com/echolearn/arena/internal/domain/schedule"
)

// ContestSummary is a single row in the contest catalog listing.
type ContestSummary struct {
	ID               string          `json:"id"`
	ContestNumber    int             `json:"contestNumber"`
	Title            string          `json:"title"`
	Date             string          `json:"date"`
	StartTime        string          `json:"startTime"`
	DurationMinutes  int             `json:"durationMinutes"`
	ParticipantCount int             `json:"participantCount"`
	Status           schedule.Status `json:"status"`
	UserSubmitted    bool            `json:"userSubmitted"`
	UserScore        *int            `json:"userScore,omitempty"`
	UserRatingChange *int            `json:"userRatingChange,omitempty"`
}

// QuestionView is a grammar question as exposed to clients. Answer and
// Explanation are populated only once the contest has completed.
type QuestionView struct {
	Index       int      `json:"index"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// SpeakingTopicView describes the speaking section prompt.
type SpeakingTopicView struct {
	Topic          string `json:"topic"`
	Description    string `json:"description"`
	MinDurationSec int    `json:"minDurationSec"`
	MaxDurationSec int    `json:"maxDurationSec"`
}

// ReadingPassageView describes the reading section passage.
type ReadingPassageView struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
}

// ContestDetail is the full contest view including section content.
type ContestDetail struct {
	ID                 string             `json:"id"`
	ContestNumber      int                `json:"contestNumber"`
	Title              string             `json:"title"`
	Date               string             `json:"date"`
	StartTime          string             `json:"startTime"`
	DurationMinutes    int                `json:"durationMinutes"`
	ParticipantCount   int                `json:"participantCount"`
	Status             schedule.Status    `json:"status"`
	GrammarQuestions   []QuestionView     `json:"grammarQuestions"`
	SpeakingTopic      SpeakingTopicView  `json:"speakingTopic"`
	ReadingPassage     ReadingPassageView `json:"readingPassage"`
	UserSubmitted      bool               `json:"userSubmitted"`
	ExistingSubmission *model.Submission  `json:"existingSubmission,omitempty"`
}

// SubmitRequest carries a user's answers for all three sections.
type SubmitRequest struct {
	GrammarAnswers     []model.GrammarAnswer `json:"grammarAnswers"`
	SpeakingTranscript string                `json:"speakingTranscript"`
	ReadingTranscript  string                `json:"readingTranscript"`
}

// SubmitResult reports the graded outcome and the rating update.
type SubmitResult struct {
	GrammarScore     int              `json:"grammarScore"`
	SpeakingScore    int              `json:"speakingScore"`
	SpeakingFeedback string           `json:"speakingFeedback"`
	ReadingScore     int              `json:"readingScore"`
	ReadingFeedback  string           `json:"readingFeedback"`
	TotalScore       int              `json:"totalScore"`
	RatingChange     int              `json:"ratingChange"`
	NewRating        int              `json:"newRating"`
	Submission       model.Submission `json:"submission"`
}

// SubmissionSummary is a single row in a user's submission history.
type SubmissionSummary struct {
	ContestNumber int    `json:"contestNumber"`
	ContestTitle  string `json:"contestTitle"`
	Date          string `json:"date"`
	GrammarScore  int    `json:"grammarScore"`
	SpeakingScore int    `json:"speakingScore"`
	ReadingScore  int    `json:"readingScore"`
	TotalScore    int    `json:"totalScore"`
	RatingChange  int    `json:"ratingChange"`
}

// StatsView aggregates a user's rating, tier and contest history.
type StatsView struct {
	ContestRating    int                 `json:"contestRating"`
	ContestsAttended int                 `json:"contestsAttended"`
	Tier             string              `json:"tier"`
	TierColor        string              `json:"tierColor"`
	RatingHistory    []model.RatingEvent `json:"ratingHistory"`
	Submissions      []SubmissionSummary `json:"submissions"`
}
