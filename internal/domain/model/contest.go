// Package model contains domain models passed between layers.
package model

import "time"

// GrammarQuestion is a single multiple-choice grammar item.
type GrammarQuestion struct {
	Question    string
	Options     []string
	Answer      string
	Explanation string
}

// SpeakingTopic is the spoken-response prompt for a contest.
type SpeakingTopic struct {
	Topic          string
	Description    string
	MinDurationSec int
	MaxDurationSec int
}

// ReadingPassage is the reference text for the read-aloud section.
type ReadingPassage struct {
	Title     string
	Text      string
	WordCount int
}

// Contest is one weekly contest occupying a single calendar slot.
// Status is never stored here; it is derived from Date and the clock.
type Contest struct {
	ID               string
	Number           int
	Title            string
	Date             string // YYYY-MM-DD in the contest time zone
	StartTime        string // local wall-clock start, e.g. "20:00"
	DurationMinutes  int
	GrammarQuestions []GrammarQuestion
	SpeakingTopic    SpeakingTopic
	ReadingPassage   ReadingPassage
	ParticipantCount int
}

// Discussion is a read-only seed discussion thread entry.
type Discussion struct {
	ContestNumber int    `json:"contestNumber"`
	Author        string `json:"author"`
	Comment       string `json:"comment"`
	Likes         int    `json:"likes"`
}

// GrammarAnswer is one submitted answer, aligned to a question index.
type GrammarAnswer struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedAnswer string `json:"selectedAnswer"`
}

// GradedAnswer is a grammar answer with its correctness verdict.
type GradedAnswer struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedAnswer string `json:"selectedAnswer"`
	Correct        bool   `json:"isCorrect"`
}

// Submission is one immutable graded submission per (user, contest).
type Submission struct {
	ID                 string         `json:"id"`
	UserID             string         `json:"userId"`
	ContestID          string         `json:"contestId"`
	ContestNumber      int            `json:"contestNumber"`
	GrammarAnswers     []GradedAnswer `json:"grammarAnswers"`
	GrammarScore       int            `json:"grammarScore"`
	SpeakingTranscript string         `json:"speakingTranscript"`
	SpeakingScore      int            `json:"speakingScore"`
	SpeakingFeedback   string         `json:"speakingFeedback"`
	ReadingTranscript  string         `json:"readingTranscript"`
	ReadingScore       int            `json:"readingScore"`
	ReadingFeedback    string         `json:"readingFeedback"`
	TotalScore         int            `json:"totalScore"`
	RatingChange       int            `json:"ratingChange"`
	CreatedAt          time.Time      `json:"createdAt"`
}

// RatingEvent is one append-only rating history entry.
type RatingEvent struct {
	ContestNumber int    `json:"contestNumber"`
	Rating        int    `json:"rating"`
	RatingChange  int    `json:"ratingChange"`
	Date          string `json:"date"`
}

// UserRating bundles a user's contest rating facts.
type UserRating struct {
	UserID           string
	ContestRating    int
	ContestsAttended int
	RatingHistory    []RatingEvent
}
