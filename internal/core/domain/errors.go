package domain

import "errors"

var ErrBookNotFound = errors.New("book not found")
var ErrDuplicateISBN = errors.New("isbn already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already taken")
var ErrTokenNotFound = errors.New("token not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("unauthenticated")

// ValidationError maps field names to one or more human-readable
// violation messages. Every rule is evaluated before a mutation is
// aborted, so a single response carries all violations at once.
type ValidationError struct {
	Fields map[string][]string `json:"errors"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// FieldTaken builds the uniqueness violation for a single field.
func FieldTaken(field string) *ValidationError {
	ve := NewValidationError()
	ve.Add(field, TakenMessage(field))
	return ve
}

// TakenMessage is the canonical message for a uniqueness violation.
func TakenMessage(field string) string {
	return "The " + field + " has already been taken."
}

func (e *ValidationError) Error() string {
	return "The given data was invalid."
}

// Add appends a violation message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Has reports whether field already carries at least one violation.
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Empty reports whether no violations were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}
