package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound         = errors.New("not found")
	ErrNotInitialized   = errors.New("not initialized")
	ErrInvalidInput     = errors.New("invalid input")
	ErrParse            = errors.New("parse failed")
	ErrOracle           = errors.New("search backend unavailable")
	ErrCapacityExceeded = errors.New("project capacity exceeded")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "slot", "member", "project"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ParseError indicates a malformed import document (CSV, XML, decklist).
// Imports that fail to parse leave the project untouched.
type ParseError struct {
	Format  string // "csv", "xml", "decklist"
	Line    int    // 1-based line or row number, 0 if not line-specific
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s parse error at line %d: %s", e.Format, e.Line, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// OracleError indicates the search backend failed. The affected queries
// stay pending and can be retried; project state is left unchanged.
type OracleError struct {
	Operation string // "search", "cardbacks", "dfc_pairs", "metadata"
	Err       error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("search backend %s failed: %v", e.Operation, e.Err)
}

func (e *OracleError) Unwrap() error {
	return ErrOracle
}

// CapacityExceededError reports rows dropped because a project hit its
// maximum size. The store truncates silently; import paths surface this.
type CapacityExceededError struct {
	Dropped int
	Max     int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("project is full (max %d slots): %d row(s) dropped", e.Max, e.Dropped)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// NotInitializedError indicates no project exists in the directory.
type NotInitializedError struct {
	Path string
}

func (e *NotInitializedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("no project in %s (run 'mpcproject init')", e.Path)
	}
	return "no project found (run 'mpcproject init')"
}

func (e *NotInitializedError) Unwrap() error {
	return ErrNotInitialized
}

// Helper constructors for common cases

func SlotNotFound(slot int) error {
	return &NotFoundError{Resource: "slot", ID: fmt.Sprintf("%d", slot)}
}

func MemberNotFound(slot int, face string) error {
	return &NotFoundError{Resource: "member", ID: fmt.Sprintf("%d:%s", slot, face)}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func ProjectNotInitialized(path string) error {
	return &NotInitializedError{Path: path}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsParse checks if an error is an import parse error.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsOracle checks if an error is a search backend error.
func IsOracle(err error) bool {
	return errors.Is(err, ErrOracle)
}

// IsCapacityExceeded checks if an error reports dropped rows.
func IsCapacityExceeded(err error) bool {
	return errors.Is(err, ErrCapacityExceeded)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
