package service

import "errors"

// Sentinel kinds for contest operations.
var (
	ErrContestNotFound  = errors.New("contest not found")
	ErrAlreadySubmitted = errors.New("contest already submitted")
)
