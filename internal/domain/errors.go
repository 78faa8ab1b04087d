package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every error caused by bad client input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is the parent of every missing-record error.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned when an id is not a well-formed object id.
	ErrInvalidID = fmt.Errorf("%w: invalid id", ErrValidation)
	// ErrInvalidCredentials hides whether the username or the password was wrong.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrValidation)
	// ErrUsernameTaken is returned on registration with an existing username.
	ErrUsernameTaken = fmt.Errorf("%w: username already exists", ErrValidation)
	// ErrMissingCredentials is returned when registering without username or password.
	ErrMissingCredentials = fmt.Errorf("%w: username and password are required", ErrValidation)
	// ErrInvalidAnswer is returned when correctAnswer does not fit the question type.
	ErrInvalidAnswer = fmt.Errorf("%w: invalid correct answer", ErrValidation)
	// ErrInvalidQuestion covers the remaining shape checks on a question.
	ErrInvalidQuestion = fmt.Errorf("%w: invalid question", ErrValidation)
	// ErrInvalidHighScore is returned when a supplied high score is not a number.
	ErrInvalidHighScore = fmt.Errorf("%w: invalid high score", ErrValidation)
	// ErrNotAnImage is returned for avatar uploads without an image MIME type.
	ErrNotAnImage = fmt.Errorf("%w: only image uploads are allowed", ErrValidation)
	// ErrFileTooLarge is returned for avatar uploads over the size limit.
	ErrFileTooLarge = fmt.Errorf("%w: file too large", ErrValidation)

	// ErrUserNotFound indicates no user has the requested id.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrQuestionNotFound indicates no question has the requested id.
	ErrQuestionNotFound = fmt.Errorf("question %w", ErrNotFound)
)
