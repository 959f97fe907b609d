package validation

import (
	"errors"
	"strings"
)

var (
	// ErrMalformedInput is returned when a request body cannot be decoded into
	// the expected form. It is reported to clients the same way as a rule
	// violation.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidTag is returned by NewVocabulary for empty tags or tags that
	// contain the storage delimiter.
	ErrInvalidTag = errors.New("invalid vocabulary tag")
)

// Violation is a single field rule failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Errors is the ordered list of violations found in one request.
// A non-empty Errors is returned as an error by the services.
type Errors []Violation

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any violation names field.
func (e Errors) Has(field string) bool {
	for _, v := range e {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Malformed builds the violation list for a body that failed to decode.
// field is empty when the failure cannot be attributed to one field.
func Malformed(field string) Errors {
	if field == "" {
		return Errors{{Field: "body", Message: "Request body must be a valid JSON object."}}
	}
	return Errors{{Field: field, Message: "Invalid value type for " + field + "."}}
}
