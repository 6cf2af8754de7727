package simulate

import "time"

// Config holds configuration for the contest simulation.
type Config struct {
	BaseURL  string        // Base URL of the service
	NumUsers int           // Number of simulated users
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for simulation output
	Verbose  bool          // Enable verbose logging
}

// contestView mirrors the catalog row returned by GET /contests.
type contestView struct {
	ID               string `json:"id"`
	ContestNumber    int    `json:"contestNumber"`
	Title            string `json:"title"`
	Date             string `json:"date"`
	Status           string `json:"status"`
	ParticipantCount int    `json:"participantCount"`
}

// questionView mirrors one grammar question in GET /contests/{id}.
type questionView struct {
	Index       int      `json:"index"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// contestDetail mirrors GET /contests/{id}.
type contestDetail struct {
	ID               string         `json:"id"`
	ContestNumber    int            `json:"contestNumber"`
	Status           string         `json:"status"`
	GrammarQuestions []questionView `json:"grammarQuestions"`
	ReadingPassage   struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"readingPassage"`
}

// grammarAnswer is one submitted grammar answer.
type grammarAnswer struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedAnswer string `json:"selectedAnswer"`
}

// submitRequest mirrors POST /contests/{id}/submit.
type submitRequest struct {
	GrammarAnswers     []grammarAnswer `json:"grammarAnswers"`
	SpeakingTranscript string          `json:"speakingTranscript"`
	ReadingTranscript  string          `json:"readingTranscript"`
}

// submitResult mirrors the graded response.
type submitResult struct {
	GrammarScore  int `json:"grammarScore"`
	SpeakingScore int `json:"speakingScore"`
	ReadingScore  int `json:"readingScore"`
	TotalScore    int `json:"totalScore"`
	RatingChange  int `json:"ratingChange"`
	NewRating     int `json:"newRating"`
}

// statsView mirrors GET /contests/stats.
type statsView struct {
	ContestRating    int    `json:"contestRating"`
	ContestsAttended int    `json:"contestsAttended"`
	Tier             string `json:"tier"`
	TierColor        string `json:"tierColor"`
	RatingHistory    []struct {
		ContestNumber int `json:"contestNumber"`
		Rating        int `json:"rating"`
		RatingChange  int `json:"ratingChange"`
	} `json:"ratingHistory"`
}

// Stats holds simulation statistics.
type Stats struct {
	UsersGenerated        int
	SubmissionsAttempted  int
	SubmissionsSuccessful int
	SubmissionsDuplicate  int
	SubmissionsFailed     int
	InvariantViolations   int
	StatsVerified         int
	StartTime             time.Time
	EndTime               time.Time
	Duration              time.Duration
}
