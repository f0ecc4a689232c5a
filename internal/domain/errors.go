package domain

import (
	"errors"
	"fmt"
)

// ErrSubaccountSuspended marks a subaccount whose session exchange was
// refused because the account is suspended. Callers skip it, they do not
// fail the run.
var ErrSubaccountSuspended = errors.New("subaccount is suspended")

// ConfigError reports invalid or contradictory CLI input. It is always
// raised before any network call.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// AuthError reports a rejected credential exchange.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("authentication failed: status %d", e.Status)
	}
	return fmt.Sprintf("authentication failed: status %d: %s", e.Status, e.Body)
}

// APIError reports a non-success response from a listing or query call. The
// first APIError aborts the whole run.
type APIError struct {
	Status   int
	Endpoint string
	Body     string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api request %s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("api request %s: status %d: %s", e.Endpoint, e.Status, e.Body)
}

// IOError reports a report output failure.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write report to %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
