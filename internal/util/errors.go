package util

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRegistered    = errors.New("email already registered")

	ErrNoQuizToday      = errors.New("no quiz available for today")
	ErrQuestionNotFound = errors.New("quiz not found")
	ErrAlreadyAnswered  = errors.New("quiz already completed")
	ErrHintNotAvailable = errors.New("no hint available")
	ErrHintAlreadyUsed  = errors.New("hint already used")
	ErrQuizDateTaken    = errors.New("quiz already exists for this date")
	ErrPastQuizDate     = errors.New("cannot create quiz for past dates")

	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrOptionCount         = errors.New("must provide exactly 4 options")
	ErrInvalidAnswerLetter = errors.New("correct answer must be A, B, C, or D")
)
