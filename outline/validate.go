package outline

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requireString validates that a field is not empty
func requireString(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// validateRuneLength validates string length constraints in runes
func validateRuneLength(field, value string, minLen, maxLen int) error {
	length := utf8.RuneCountInString(value)
	if length < minLen {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters", minLen),
		}
	}
	if maxLen > 0 && length > maxLen {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d characters", maxLen),
		}
	}
	return nil
}

// validateIntRange validates that value lies in [minVal, maxVal]
func validateIntRange(field string, value, minVal, maxVal int) error {
	if value < minVal || value > maxVal {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d", minVal, maxVal),
		}
	}
	return nil
}

func indexedMessage(i int, msg string) string {
	return fmt.Sprintf("item %d: %s", i, msg)
}

// indexedFieldError prefixes a slide-level validation error with the slide
// index so callers can identify the offending entry.
func indexedFieldError(err error, i int) error {
	if ve, ok := err.(*ValidationError); ok {
		return &ValidationError{
			Field:   fmt.Sprintf("slides[%d].%s", i, ve.Field),
			Message: ve.Message,
		}
	}
	return err
}
