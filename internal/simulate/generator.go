package simulate

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/echolearn/arena/pkg/logger"
)

// Proficiency profiles controlling how well a simulated user performs.
const (
	profileElite   = 0
	profileStrong  = 1
	profileAverage = 2
	profileWeak    = 3
	profileSilent  = 4
	profileCount   = 5
)

// user is one simulated contest participant.
type user struct {
	ID      string
	Profile int
}

// generateUsers creates the requested number of users with a spread of
// proficiency profiles.
func generateUsers(ctx context.Context, config *Config, stats *Stats) []user {
	logger.Get().Info(ctx, "generating simulated users", logger.Int("numUsers", config.NumUsers))

	users := make([]user, config.NumUsers)
	for i := range users {
		users[i] = user{
			ID:      "sim-" + uuid.New().String(),
			Profile: randomInt(profileCount),
		}
	}

	stats.UsersGenerated = len(users)
	return users
}

// buildSubmission fills a submit request according to the user's profile.
// Elite users answer everything correctly and produce long transcripts;
// weak users guess and barely speak; silent users send nothing.
func buildSubmission(u user, detail contestDetail) submitRequest {
	var req submitRequest

	switch u.Profile {
	case profileElite:
		req.GrammarAnswers = answerGrammar(detail, 100)
		req.SpeakingTranscript = transcript(120)
		req.ReadingTranscript = detail.ReadingPassage.Text
	case profileStrong:
		req.GrammarAnswers = answerGrammar(detail, 80)
		req.SpeakingTranscript = transcript(55)
		req.ReadingTranscript = partialText(detail.ReadingPassage.Text, 80)
	case profileAverage:
		req.GrammarAnswers = answerGrammar(detail, 50)
		req.SpeakingTranscript = transcript(35)
		req.ReadingTranscript = partialText(detail.ReadingPassage.Text, 55)
	case profileWeak:
		req.GrammarAnswers = answerGrammar(detail, 20)
		req.SpeakingTranscript = transcript(8)
		req.ReadingTranscript = partialText(detail.ReadingPassage.Text, 25)
	case profileSilent:
		// Empty submission: all sections score zero.
	}

	return req
}

// answerGrammar selects the correct option with the given percent chance,
// otherwise a wrong one. Completed contests expose the answer key, which is
// what makes the simulation able to steer accuracy.
func answerGrammar(detail contestDetail, accuracyPercent int) []grammarAnswer {
	answers := make([]grammarAnswer, 0, len(detail.GrammarQuestions))
	for _, q := range detail.GrammarQuestions {
		selected := q.Answer
		if randomInt(100) >= accuracyPercent || selected == "" {
			selected = wrongOption(q)
		}
		answers = append(answers, grammarAnswer{
			QuestionIndex:  q.Index,
			SelectedAnswer: selected,
		})
	}
	return answers
}

// wrongOption picks any option that is not the answer key.
func wrongOption(q questionView) string {
	for _, opt := range q.Options {
		if opt != q.Answer {
			return opt
		}
	}
	return "unknown"
}

// transcript produces a speaking transcript with the given word count.
func transcript(words int) string {
	if words <= 0 {
		return ""
	}
	filler := []string{"practice", "every", "day", "makes", "speaking", "english", "much", "easier", "for", "me"}
	parts := make([]string, words)
	for i := range parts {
		parts[i] = filler[i%len(filler)]
	}
	return strings.Join(parts, " ")
}

// partialText keeps roughly the given percent of the passage words.
func partialText(text string, percent int) string {
	words := strings.Fields(text)
	keep := len(words) * percent / 100
	if keep > len(words) {
		keep = len(words)
	}
	return strings.Join(words[:keep], " ")
}

// randomInt returns a uniform int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}
