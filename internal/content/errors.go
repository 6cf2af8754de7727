package content

import "errors"

// Sentinel kinds for template parsing errors.
var (
	ErrNoTemplates = errors.New("template set is empty")
	ErrNoQuestions = errors.New("template has no grammar questions")
	ErrNoPassage   = errors.New("template has no reading passage text")
	ErrNoAnswer    = errors.New("grammar question has no answer")
)
