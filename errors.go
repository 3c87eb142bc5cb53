package pose

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected is matched by every user-action rejection.
	ErrRejected = errors.New("pose: action rejected")
	// ErrNotFound is matched when an editor operation names an entity the
	// document does not hold.
	ErrNotFound = errors.New("pose: not found")
	// ErrInvalidState is matched when Restore is given a DocumentState that
	// breaks a document invariant.
	ErrInvalidState = errors.New("pose: invalid document state")
)

// RejectedError reports a user action that is not valid in the current
// state, such as editing keys outside animate mode. It is meant to be shown
// to the user, not treated as a crash.
type RejectedError struct {
	Op     string
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("pose: %s rejected: %s", e.Op, e.Reason)
}

// Unwrap lets errors.Is(err, ErrRejected) match.
func (e *RejectedError) Unwrap() error { return ErrRejected }

func reject(op, format string, args ...any) error {
	return &RejectedError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func notFound(op, kind string, id ID) error {
	return fmt.Errorf("%s: %s %d: %w", op, kind, id, ErrNotFound)
}
