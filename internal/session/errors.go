package session

import "errors"

var (
	// ErrNotFound marks a test id the catalog does not know.
	ErrNotFound = errors.New("test not found")
	// ErrNetwork marks a transient transport failure; the operation may be
	// retried from the state the controller reports.
	ErrNetwork = errors.New("network error")
)

// ValidationError rejects a caller input without changing session state:
// advancing past an unanswered question or selecting an option index that
// does not exist.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// ConcurrentOperationError rejects a call made while a network request is
// outstanding (Loading or Submitting). The session state is unchanged; the
// in-flight request keeps running.
type ConcurrentOperationError struct {
	Op string
}

func (e *ConcurrentOperationError) Error() string {
	return e.Op + " rejected: a request is already in flight"
}

// StateError rejects an operation invoked in a state that does not support
// it, such as advancing a session that never loaded.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return e.Op + " is not valid in state " + e.State.String()
}
