package assessment

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against ValidationError and RangeError.
var (
	ErrValidation = errors.New("validation error")
	ErrRange      = errors.New("range error")
)

// ValidationError reports malformed caller input: an empty company name,
// an unknown question id or an answer outside the Likert scale.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// RangeError reports a percentage outside [0,100] reaching classification.
// It indicates a bug upstream of the classifier, never bad user input.
type RangeError struct {
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("percentage %v outside [0, 100]", e.Value)
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }
