package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrProviderDisabled   = errors.New("sign-in provider is not enabled")
	ErrProviderToken      = errors.New("provider rejected the credential")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")

	ErrProfileExists   = errors.New("profile already exists")
	ErrProfileNotFound = errors.New("profile not found")

	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	// ErrSubmissionFailed carries the only message shown to the user after a rollback
	ErrSubmissionFailed = errors.New("We could not create your profile. Please try again.")
)

// IdentityError is returned when the identity backend refused to create an account.
// Its message is safe to show to the user.
type IdentityError struct {
	Err error
}

func (e *IdentityError) Error() string {
	return e.Err.Error()
}

func (e *IdentityError) Unwrap() error {
	return e.Err
}

func identityError(err error) error {
	return &IdentityError{Err: err}
}

// submissionFailed keeps the cause for logs while matching ErrSubmissionFailed
func submissionFailed(cause error) error {
	return fmt.Errorf("%w: %w", ErrSubmissionFailed, cause)
}
