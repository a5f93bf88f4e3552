// Package entities holds the error types of the credential subsystem.
package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detailed information.
var (
	// ErrHelperNotFound is returned when a configured credential helper executable does not exist.
	ErrHelperNotFound = errors.New("credential helper not found")

	// ErrCredentialNotFound is returned when no retriever in a chain produced a credential.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrInvalidConfig is returned when a configuration file fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// HelperNotFoundError indicates a credential helper could not be located.
type HelperNotFoundError struct {
	Helper string
	Cause  error
}

func (e *HelperNotFoundError) Error() string {
	return fmt.Sprintf("specified credential helper was not found: %s", e.Helper)
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, entities.ErrHelperNotFound)
func (e *HelperNotFoundError) Is(target error) bool {
	return target == ErrHelperNotFound
}

// Unwrap returns the lookup failure, if any.
func (e *HelperNotFoundError) Unwrap() error {
	return e.Cause
}

// CredentialNotFoundError indicates that no retriever yielded a credential for a registry.
type CredentialNotFoundError struct {
	Registry string
	Tried    int
}

func (e *CredentialNotFoundError) Error() string {
	return fmt.Sprintf("no credential found for %s after trying %d retrievers", e.Registry, e.Tried)
}

// Is implements error matching for errors.Is() checks.
func (e *CredentialNotFoundError) Is(target error) bool {
	return target == ErrCredentialNotFound
}
