package domain

import "fmt"

// Error taxonomy for a single poll cycle. None of these is fatal to the
// process: a failing cycle logs its error and the next tick is the
// retry.

// AuthError means the credential is missing, rejected, or the code
// exchange failed. Surfaced to the operator, never retried on its own.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: not authorized", e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TransientError covers network failures and 5xx responses. The cycle
// is skipped and the next scheduled tick retries.
type TransientError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// DataShapeError means the response decoded into nonsense. The cycle is
// skipped; retrying immediately would not help.
type DataShapeError struct {
	Op  string
	Err error
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %v", e.Op, e.Err)
}

func (e *DataShapeError) Unwrap() error { return e.Err }

// WriteError means an outbound reply or read-mark failed. State is left
// so the action retries on the next cycle.
type WriteError struct {
	Op     string
	Status int
	Err    error
}

func (e *WriteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
