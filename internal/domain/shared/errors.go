package shared

import "fmt"

// DomainError is the base error type for all game-rule errors.
// Its message is part of the client contract and must stay stable.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ExternalUnavailableError marks a failure of an external collaborator
// (chain gateway, signer). It is the only retryable error class: clients
// are expected to resubmit the same batch with the same session.
type ExternalUnavailableError struct {
	*DomainError
	Cause error
}

func NewExternalUnavailableError(cause error) *ExternalUnavailableError {
	return &ExternalUnavailableError{
		DomainError: &DomainError{Message: "External service unavailable"},
		Cause:       cause,
	}
}

func (e *ExternalUnavailableError) Unwrap() error {
	return e.Cause
}

// InvalidRequestError marks a request whose values failed validation
// before reaching any game rule: malformed IDs, addresses, tokens,
// quantities.
type InvalidRequestError struct {
	*DomainError
	Cause error
}

func NewInvalidRequestError(message string, cause error) *InvalidRequestError {
	if cause != nil {
		message = fmt.Sprintf("%s: %s", message, cause)
	}
	return &InvalidRequestError{
		DomainError: &DomainError{Message: message},
		Cause:       cause,
	}
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Cause
}
