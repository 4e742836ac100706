package llm

import (
	"errors"
	"fmt"
)

// QuotaError indicates the provider rejected a call for quota or rate-limit
// reasons. The fallback chain treats it the same as any other provider
// failure; the distinct type exists so callers can log it precisely.
type QuotaError struct {
	Provider string
	Message  string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %s", e.Provider, e.Message)
}

// TransportError covers every other provider call failure: network errors,
// bad credentials, unexpected response shapes.
type TransportError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s call failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s call failed: %s", e.Provider, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsQuota reports whether err is a quota/rate-limit error.
func IsQuota(err error) bool {
	var quota *QuotaError
	return errors.As(err, &quota)
}
