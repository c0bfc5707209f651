package services

import (
	"errors"
	"strings"

	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
)

// Error taxonomy surfaced to handlers. Missing and cross-owner rows are both
// ErrNotFound so responses never reveal whether a foreign row exists.
var (
	ErrNotFound           = repo.ErrNotFound
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many attempts")
)

type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// ValidationError carries a message and optionally per-field errors for 400
// responses.
type ValidationError struct {
	Msg    string       `json:"-"`
	Fields []FieldError `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Msg)
	}
	return strings.Join(parts, "; ")
}

func Invalid(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func InvalidField(field, msg string) *ValidationError {
	return &ValidationError{Msg: "Invalid data", Fields: []FieldError{{Field: field, Msg: msg}}}
}
