package grading_test

import (
	"strings"
	"testing"

	"github.com/echolearn/arena/internal/domain/grading"
	"github.com/echolearn/arena/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func questions(answers ...string) []model.GrammarQuestion {
	qs := make([]model.GrammarQuestion, len(answers))
	for i, a := range answers {
		qs[i] = model.GrammarQuestion{
			Question: "q",
			Options:  []string{a, "other"},
			Answer:   a,
		}
	}
	return qs
}

func TestGrammar(t *testing.T) {
	Convey("Given a grammar section", t, func() {
		Convey("Matching is case-insensitive and whitespace-trimmed", func() {
			qs := questions("Cat", " dog ")
			res := grading.Grammar(qs, []model.GrammarAnswer{
				{QuestionIndex: 0, SelectedAnswer: "cat"},
				{QuestionIndex: 1, SelectedAnswer: "dog"},
			})
			So(res.Score, ShouldEqual, 2)
			So(res.Answers, ShouldHaveLength, 2)
			So(res.Answers[0].Correct, ShouldBeTrue)
			So(res.Answers[1].Correct, ShouldBeTrue)
		})

		Convey("Unanswered indices count as incorrect", func() {
			qs := questions("a", "b", "c")
			res := grading.Grammar(qs, []model.GrammarAnswer{
				{QuestionIndex: 1, SelectedAnswer: "b"},
			})
			So(res.Score, ShouldEqual, 1)
			So(res.Answers[0].Correct, ShouldBeFalse)
			So(res.Answers[0].SelectedAnswer, ShouldBeEmpty)
			So(res.Answers[2].Correct, ShouldBeFalse)
		})

		Convey("Out-of-range indices are ignored, never panic", func() {
			qs := questions("a")
			res := grading.Grammar(qs, []model.GrammarAnswer{
				{QuestionIndex: -1, SelectedAnswer: "a"},
				{QuestionIndex: 5, SelectedAnswer: "a"},
			})
			So(res.Score, ShouldEqual, 0)
			So(res.Answers, ShouldHaveLength, 1)
		})

		Convey("A wrong option scores zero for that index", func() {
			qs := questions("a", "b")
			res := grading.Grammar(qs, []model.GrammarAnswer{
				{QuestionIndex: 0, SelectedAnswer: "b"},
				{QuestionIndex: 1, SelectedAnswer: "b"},
			})
			So(res.Score, ShouldEqual, 1)
		})

		Convey("Score never exceeds the question count", func() {
			qs := questions("a", "b", "c", "d")
			answers := make([]model.GrammarAnswer, 0, len(qs))
			for i, q := range qs {
				answers = append(answers, model.GrammarAnswer{QuestionIndex: i, SelectedAnswer: q.Answer})
			}
			res := grading.Grammar(qs, answers)
			So(res.Score, ShouldEqual, len(qs))
		})

		Convey("No questions means no score and no graded answers", func() {
			res := grading.Grammar(nil, []model.GrammarAnswer{{QuestionIndex: 0, SelectedAnswer: "a"}})
			So(res.Score, ShouldEqual, 0)
			So(res.Answers, ShouldBeEmpty)
		})
	})
}

func transcriptOfWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return strings.Join(words, " ")
}

func TestSpeaking(t *testing.T) {
	Convey("Given the speaking grader", t, func() {
		Convey("An empty transcript scores zero with no feedback", func() {
			res := grading.Speaking("")
			So(res.Score, ShouldEqual, 0)
			So(res.Feedback, ShouldBeEmpty)

			res = grading.Speaking("   \n\t ")
			So(res.Score, ShouldEqual, 0)
		})

		Convey("Band values match the piecewise function", func() {
			cases := map[int]int{
				1:   4,   // wc*4
				9:   36,  // wc*4
				10:  50,  // 40+wc
				29:  69,  // 40+wc
				30:  65,  // 65+(wc-30)/2
				49:  74,  // 65+(wc-30)/2
				50:  85,  // 85+(wc-50)/5
				54:  85,  // bonus floors to 0
				55:  86,  //
				125: 100, // bonus capped at 15
				500: 100,
			}
			for wc, want := range cases {
				So(grading.Speaking(transcriptOfWords(wc)).Score, ShouldEqual, want)
			}
		})

		Convey("Scores stay within [0, 100] and grow within each band", func() {
			prev := -1
			for _, wc := range []int{1, 2, 5, 9} {
				score := grading.Speaking(transcriptOfWords(wc)).Score
				So(score, ShouldBeGreaterThan, prev)
				So(score, ShouldBeBetweenOrEqual, 0, 100)
				prev = score
			}
			prev = -1
			for wc := 50; wc <= 200; wc += 10 {
				score := grading.Speaking(transcriptOfWords(wc)).Score
				So(score, ShouldBeGreaterThanOrEqualTo, prev)
				So(score, ShouldBeBetweenOrEqual, 0, 100)
				prev = score
			}
		})

		Convey("Feedback bands follow the word count", func() {
			So(grading.Speaking(transcriptOfWords(60)).Feedback, ShouldContainSubstring, "Excellent")
			So(grading.Speaking(transcriptOfWords(35)).Feedback, ShouldContainSubstring, "elaborate")
			So(grading.Speaking(transcriptOfWords(5)).Feedback, ShouldContainSubstring, "speak more")
		})
	})
}

func TestReading(t *testing.T) {
	Convey("Given the reading grader", t, func() {
		passage := "The quick brown fox jumps over the lazy dog near the quiet river bank today"

		Convey("An empty transcript scores zero", func() {
			So(grading.Reading("", passage).Score, ShouldEqual, 0)
			So(grading.Reading("   ", passage).Score, ShouldEqual, 0)
		})

		Convey("A transcript identical to the passage scores 100", func() {
			res := grading.Reading(passage, passage)
			So(res.Score, ShouldEqual, 100)
			So(res.Feedback, ShouldContainSubstring, "Great reading")
		})

		Convey("Case and surrounding whitespace do not matter", func() {
			res := grading.Reading("  "+strings.ToUpper(passage)+"  ", passage)
			So(res.Score, ShouldEqual, 100)
		})

		Convey("A partial reading scores proportionally", func() {
			res := grading.Reading("the quick brown fox", passage)
			So(res.Score, ShouldBeBetween, 0, 100)
		})

		Convey("Unrelated words score zero", func() {
			res := grading.Reading("zebra elephant giraffe", passage)
			So(res.Score, ShouldEqual, 0)
			So(res.Feedback, ShouldContainSubstring, "Keep practicing")
		})

		Convey("Scores are clamped to 100 even with repeated matches", func() {
			res := grading.Reading(passage+" "+passage+" "+passage, passage)
			So(res.Score, ShouldEqual, 100)
		})

		Convey("An empty passage yields zero, not a panic", func() {
			So(grading.Reading("anything", "").Score, ShouldEqual, 0)
		})
	})
}

func TestComposite(t *testing.T) {
	Convey("Given the composite formula", t, func() {
		Convey("Grammar is scaled by ten", func() {
			So(grading.Composite(10, 100, 100), ShouldEqual, 300)
			So(grading.Composite(0, 0, 0), ShouldEqual, 0)
			So(grading.Composite(7, 85, 90), ShouldEqual, 245)
		})
	})
}
