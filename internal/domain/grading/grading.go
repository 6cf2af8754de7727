// Package grading implements the three contest section graders.
//
// All graders are pure functions: deterministic, no I/O, no external
// services. Malformed or partial input degrades to a lower score instead of
// failing, since partial section completion is a normal user flow.
package grading

import (
	"math"
	"strings"

	"github.com/echolearn/arena/internal/domain/model"
)

// Score bounds.
const (
	sectionMax   = 100
	grammarScale = 10
	CompositeMax = 300
)

// Speaking word-count bands.
const (
	speakingShortBand  = 10
	speakingMidBand    = 30
	speakingLongBand   = 50
	speakingLongBonus  = 15
	speakingShortMulti = 4
)

// Feedback copy per band.
const (
	speakingFeedbackLong  = "Excellent speech! Good length and detail."
	speakingFeedbackMid   = "Good effort! Try to elaborate more for a higher score."
	speakingFeedbackShort = "Try to speak more. Aim for at least 30 seconds of speaking."

	readingFeedbackHigh = "Great reading! Clear and accurate pronunciation."
	readingFeedbackMid  = "Good attempt! Practice reading aloud to improve accuracy."
	readingFeedbackLow  = "Keep practicing! Try to read the paragraph more carefully."
)

// GrammarResult is the graded grammar section.
type GrammarResult struct {
	Answers []model.GradedAnswer
	Score   int
}

// SectionResult is a bounded score with human-readable feedback.
type SectionResult struct {
	Score    int
	Feedback string
}

// Grammar grades submitted answers against the contest's question list.
// Correctness is case-insensitive, whitespace-trimmed equality. One graded
// answer is produced per question; indices without a submitted answer, and
// answers pointing outside the question list, count as incorrect.
func Grammar(questions []model.GrammarQuestion, answers []model.GrammarAnswer) GrammarResult {
	selected := make([]string, len(questions))
	for _, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(questions) {
			continue
		}
		selected[a.QuestionIndex] = a.SelectedAnswer
	}

	result := GrammarResult{Answers: make([]model.GradedAnswer, 0, len(questions))}
	for i, q := range questions {
		correct := selected[i] != "" && normalize(selected[i]) == normalize(q.Answer)
		if correct {
			result.Score++
		}
		result.Answers = append(result.Answers, model.GradedAnswer{
			QuestionIndex:  i,
			SelectedAnswer: selected[i],
			Correct:        correct,
		})
	}
	return result
}

// Speaking scores a free-form transcript by a piecewise function of its word
// count, increasing within each band and clamped to [0, 100]. An empty
// transcript scores zero with no feedback.
func Speaking(transcript string) SectionResult {
	words := strings.Fields(transcript)
	wc := len(words)
	if wc == 0 {
		return SectionResult{}
	}

	var score int
	switch {
	case wc >= speakingLongBand:
		score = 85 + minInt(speakingLongBonus, (wc-speakingLongBand)/5)
	case wc >= speakingMidBand:
		score = 65 + (wc-speakingMidBand)/2
	case wc >= speakingShortBand:
		score = 40 + wc
	default:
		score = wc * speakingShortMulti
	}
	score = clamp(score, 0, sectionMax)

	feedback := speakingFeedbackShort
	switch {
	case wc >= speakingLongBand:
		feedback = speakingFeedbackLong
	case wc >= speakingMidBand:
		feedback = speakingFeedbackMid
	}
	return SectionResult{Score: score, Feedback: feedback}
}

// Reading scores a transcript by lexical overlap with the reference passage.
// Both texts are lowercased and whitespace-tokenized; every transcript token
// found in the reference vocabulary counts, including repeats. This is
// deliberate overlap scoring, not word alignment.
func Reading(transcript, passage string) SectionResult {
	spoken := strings.Fields(strings.ToLower(transcript))
	if len(spoken) == 0 {
		return SectionResult{}
	}

	reference := strings.Fields(strings.ToLower(passage))
	vocabulary := make(map[string]struct{}, len(reference))
	for _, w := range reference {
		vocabulary[w] = struct{}{}
	}

	matches := 0
	for _, w := range spoken {
		if _, ok := vocabulary[w]; ok {
			matches++
		}
	}

	accuracy := 0.0
	if len(reference) > 0 {
		accuracy = float64(matches) / float64(len(reference)) * 100
	}
	score := clamp(int(math.Round(accuracy)), 0, sectionMax)

	feedback := readingFeedbackLow
	switch {
	case score >= 80:
		feedback = readingFeedbackHigh
	case score >= 50:
		feedback = readingFeedbackMid
	}
	return SectionResult{Score: score, Feedback: feedback}
}

// Composite folds the three section scores into the total, with grammar
// scaled to the same 0-100 weight as the other sections.
func Composite(grammarScore, speakingScore, readingScore int) int {
	return grammarScore*grammarScale + speakingScore + readingScore
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
