package models

import (
	"fmt"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field of a campaign that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

// Validate checks a campaign before it is appended.
func (c Campaign) Validate() error {
	verr := &ValidationError{}

	if strings.TrimSpace(c.Name) == "" {
		verr.Add("name", "is required")
	}

	for i, t := range c.Tasks {
		prefix := fmt.Sprintf("tasks[%d].", i)
		if strings.TrimSpace(t.Name) == "" {
			verr.Add(prefix+"name", "is required")
		}
		if strings.TrimSpace(t.Description) == "" {
			verr.Add(prefix+"description", "is required")
		}

		if t.PointsEarned.IsEmpty() {
			verr.Add(prefix+"pointsEarned", "is required")
		} else if v, err := t.PointsEarned.Float64(); err != nil {
			verr.Add(prefix+"pointsEarned", "must be a number")
		} else if v < 0 {
			verr.Add(prefix+"pointsEarned", "must not be negative")
		}

		if !t.Price.IsEmpty() {
			if v, err := t.Price.Float64(); err != nil {
				verr.Add(prefix+"price", "must be a number")
			} else if v != 0 {
				verr.Add(prefix+"price", "must be 0")
			}
		}
	}

	if verr.Empty() {
		return nil
	}
	return verr
}
