package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ConstraintKind tells which store rule rejected a write
type ConstraintKind string

const (
	ConstraintRequired     ConstraintKind = "required"
	ConstraintCheck        ConstraintKind = "check"
	ConstraintForeignKey   ConstraintKind = "foreign_key"
	ConstraintRestrict     ConstraintKind = "restrict"
	ConstraintDuplicateKey ConstraintKind = "duplicate_key"
)

// ConstraintViolationError represents a write rejected by the relational rules of the store:
// a missing or malformed field, a dangling foreign key, a restrict-delete blocked by children
// or a primary/unique key collision.
type ConstraintViolationError struct {
	Entity string
	Kind   ConstraintKind
	Detail string
	Err    error
}

func (e *ConstraintViolationError) Error() string {
	msg := fmt.Sprintf("%s constraint violation (%s)", e.Entity, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap exposes the driver error, if any
func (e *ConstraintViolationError) Unwrap() error {
	return e.Err
}

// Is matches on entity and kind; an empty field in the target acts as a wildcard
func (e *ConstraintViolationError) Is(target error) bool {
	t, ok := target.(*ConstraintViolationError)
	if !ok {
		return false
	}
	return (t.Entity == "" || e.Entity == t.Entity) && (t.Kind == "" || e.Kind == t.Kind)
}

// ConflictError is returned when an update was made against a stale version of a row
type ConflictError struct {
	Entity string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s was modified concurrently", e.Entity)
}

// Is enables errors.Is() comparison for ConflictError
func (e *ConflictError) Is(target error) bool {
	t, ok := target.(*ConflictError)
	if !ok {
		return false
	}
	return t.Entity == "" || e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this email"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrCompanyNotFound      = &NotFoundError{Entity: "company"}
	ErrLocationNotFound     = &NotFoundError{Entity: "location"}
	ErrProductNotFound      = &NotFoundError{Entity: "product"}
	ErrMaterialNotFound     = &NotFoundError{Entity: "material"}
	ErrMatchNotFound        = &NotFoundError{Entity: "match"}
	ErrCompanyMatchNotFound = &NotFoundError{Entity: "company match"}
	ErrUserMatchNotFound    = &NotFoundError{Entity: "user match"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
)

// Already Exists Errors
var (
	ErrUserExists = &AlreadyExistsError{Entity: "user", Context: "with this email"}
)

// Business Logic Errors
var (
	ErrInvalidMatchState = errors.New("invalid match state")
	ErrMissingPrimaryKey = errors.New("record has no primary key")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsConstraintViolation checks if an error is a ConstraintViolationError
func IsConstraintViolation(err error) bool {
	var violation *ConstraintViolationError
	return errors.As(err, &violation)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewConstraintViolation creates a ConstraintViolationError wrapping the underlying cause
func NewConstraintViolation(entity string, kind ConstraintKind, detail string, cause error) error {
	return &ConstraintViolationError{Entity: entity, Kind: kind, Detail: detail, Err: cause}
}

// NewConflictError creates a new ConflictError
func NewConflictError(entity string) error {
	return &ConflictError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
