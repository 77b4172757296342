package hookline

import (
	"errors"
	"fmt"
)

// Sentinel errors for dispatch.
var (
	// ErrReentrant indicates a pass tried to run a (name, identity, priority)
	// slot that is already running further up the stack.
	ErrReentrant = errors.New("handler still in progress")

	// ErrMaxDepth indicates nested dispatch exceeded the configured depth.
	ErrMaxDepth = errors.New("exceeded maximum dispatch depth")

	// ErrNilContext indicates Dispatch was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)

// ReentrancyError reports the slot that would have been re-entered.
// The pass that raised it is aborted; handlers that already completed in
// that pass stay recorded.
type ReentrancyError struct {
	// Name is the event being dispatched.
	Name string
	// Identity is the handler identity of the busy slot.
	Identity Identity
	// Priority is the priority of the busy slot.
	Priority int
}

// Error implements the error interface.
func (e *ReentrancyError) Error() string {
	return fmt.Sprintf("event %s(%s)(%d) still in progress", e.Name, e.Identity, e.Priority)
}

// Unwrap returns ErrReentrant for errors.Is support.
func (e *ReentrancyError) Unwrap() error {
	return ErrReentrant
}

// DepthError reports a dispatch refused by the depth guard.
type DepthError struct {
	// Name is the event that was not dispatched.
	Name string
	// Max is the configured depth limit.
	Max int
}

// Error implements the error interface.
func (e *DepthError) Error() string {
	return fmt.Sprintf("dispatch %s: exceeded maximum depth (%d)", e.Name, e.Max)
}

// Unwrap returns ErrMaxDepth for errors.Is support.
func (e *DepthError) Unwrap() error {
	return ErrMaxDepth
}

// TypeError reports a Fold result that is not of the requested type.
type TypeError struct {
	Name string
	Want string
	Got  string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("dispatch %s: result is %s, want %s", e.Name, e.Got, e.Want)
}
