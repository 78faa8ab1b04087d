package domain

import (
	"fmt"
	"strings"
)

// ValidAnswer reports whether answer is an acceptable correct answer for type t.
func ValidAnswer(t QuestionType, answer string) bool {
	switch t {
	case TrueFalse:
		return answer == "true" || answer == "false"
	case MultipleChoice:
		switch answer {
		case "A", "B", "C", "D":
			return true
		}
	}
	return false
}

// Validate checks the mutable question fields. The answer is always checked
// against the type carried by the same input.
func (in QuestionInput) Validate() error {
	if strings.TrimSpace(in.QuestionText) == "" {
		return fmt.Errorf("%w: questionText is required", ErrInvalidQuestion)
	}
	if in.Type != TrueFalse && in.Type != MultipleChoice {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidQuestion, in.Type)
	}
	for i, opt := range in.Options {
		if opt == "" {
			return fmt.Errorf("%w: option %d is empty", ErrInvalidQuestion, i)
		}
	}
	if !ValidAnswer(in.Type, in.CorrectAnswer) {
		return ErrInvalidAnswer
	}
	return nil
}
