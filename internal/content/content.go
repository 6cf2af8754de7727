// Package content loads the fixed contest template set and seed discussion
// data embedded in the binary. Templates are static configuration: the
// catalog cycles through them, so the set is finite by design.
package content

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/echolearn/arena/internal/domain/model"
)

//go:embed templates.yaml
var embedded []byte

// Default speaking window when a template omits it.
const (
	defaultMinDurationSec = 30
	defaultMaxDurationSec = 120
)

type questionSpec struct {
	Question    string   `koanf:"question"`
	Options     []string `koanf:"options"`
	Answer      string   `koanf:"answer"`
	Explanation string   `koanf:"explanation"`
}

type speakingSpec struct {
	Topic          string `koanf:"topic"`
	Description    string `koanf:"description"`
	MinDurationSec int    `koanf:"min_duration_sec"`
	MaxDurationSec int    `koanf:"max_duration_sec"`
}

type readingSpec struct {
	Title string `koanf:"title"`
	Text  string `koanf:"text"`
}

type templateSpec struct {
	GrammarQuestions []questionSpec `koanf:"grammar_questions"`
	SpeakingTopic    speakingSpec   `koanf:"speaking_topic"`
	ReadingPassage   readingSpec    `koanf:"reading_passage"`
}

type discussionSpec struct {
	ContestNumber int    `koanf:"contest_number"`
	Author        string `koanf:"author"`
	Comment       string `koanf:"comment"`
	Likes         int    `koanf:"likes"`
}

type librarySpec struct {
	Templates   []templateSpec   `koanf:"templates"`
	Discussions []discussionSpec `koanf:"discussions"`
}

// Template is one full contest content set.
type Template struct {
	GrammarQuestions []model.GrammarQuestion
	SpeakingTopic    model.SpeakingTopic
	ReadingPassage   model.ReadingPassage
}

// Library is the parsed template set plus seed discussions.
type Library struct {
	templates   []Template
	discussions []model.Discussion
}

// Load parses the embedded template set.
func Load() (*Library, error) {
	return Parse(embedded)
}

// Parse builds a Library from YAML bytes.
func Parse(data []byte) (*Library, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	var spec librarySpec
	if err := k.UnmarshalWithConf("", &spec, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal templates: %w", err)
	}
	if len(spec.Templates) == 0 {
		return nil, ErrNoTemplates
	}

	lib := &Library{
		templates:   make([]Template, 0, len(spec.Templates)),
		discussions: make([]model.Discussion, 0, len(spec.Discussions)),
	}
	for i, t := range spec.Templates {
		tpl, err := buildTemplate(t)
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", i+1, err)
		}
		lib.templates = append(lib.templates, tpl)
	}
	for _, d := range spec.Discussions {
		lib.discussions = append(lib.discussions, model.Discussion{
			ContestNumber: d.ContestNumber,
			Author:        d.Author,
			Comment:       d.Comment,
			Likes:         d.Likes,
		})
	}
	return lib, nil
}

func buildTemplate(spec templateSpec) (Template, error) {
	if len(spec.GrammarQuestions) == 0 {
		return Template{}, ErrNoQuestions
	}
	if strings.TrimSpace(spec.ReadingPassage.Text) == "" {
		return Template{}, ErrNoPassage
	}

	questions := make([]model.GrammarQuestion, 0, len(spec.GrammarQuestions))
	for i, q := range spec.GrammarQuestions {
		if strings.TrimSpace(q.Answer) == "" {
			return Template{}, fmt.Errorf("question %d: %w", i+1, ErrNoAnswer)
		}
		questions = append(questions, model.GrammarQuestion{
			Question:    q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
	}

	speaking := model.SpeakingTopic{
		Topic:          spec.SpeakingTopic.Topic,
		Description:    spec.SpeakingTopic.Description,
		MinDurationSec: spec.SpeakingTopic.MinDurationSec,
		MaxDurationSec: spec.SpeakingTopic.MaxDurationSec,
	}
	if speaking.MinDurationSec <= 0 {
		speaking.MinDurationSec = defaultMinDurationSec
	}
	if speaking.MaxDurationSec <= 0 {
		speaking.MaxDurationSec = defaultMaxDurationSec
	}

	text := spec.ReadingPassage.Text
	return Template{
		GrammarQuestions: questions,
		SpeakingTopic:    speaking,
		ReadingPassage: model.ReadingPassage{
			Title:     spec.ReadingPassage.Title,
			Text:      text,
			WordCount: len(strings.Fields(text)),
		},
	}, nil
}

// Count returns the number of templates in the set.
func (l *Library) Count() int {
	return len(l.templates)
}

// ForNumber returns the template for a contest number, cycling modulo the
// set size so content repeats predictably once the set is exhausted.
func (l *Library) ForNumber(n int) Template {
	if n < 1 {
		n = 1
	}
	return l.templates[(n-1)%len(l.templates)]
}

// DiscussionsFor returns the seed discussion threads for a contest number.
func (l *Library) DiscussionsFor(contestNumber int) []model.Discussion {
	out := make([]model.Discussion, 0)
	for _, d := range l.discussions {
		if d.ContestNumber == contestNumber {
			out = append(out, d)
		}
	}
	return out
}
