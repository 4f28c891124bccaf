package errs

import "errors"

// Common sentinel errors.
var (
	// ErrNotFound reports an unknown identifier.
	ErrNotFound = errors.New("not found")
	// ErrNotEnoughFunds reports a failed balance precondition.
	ErrNotEnoughFunds = errors.New("not enough funds")
	// ErrInvalidState reports a lifecycle transition attempted from the
	// wrong current state. The caller must refresh and re-decide.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidRequest reports malformed or missing caller input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDataConflict reports a uniqueness or active-record conflict.
	ErrDataConflict = errors.New("data conflict")
	// ErrTransientStore reports a storage failure that is safe to retry
	// as a whole logical operation.
	ErrTransientStore = errors.New("storage temporarily unavailable")
)

// Type just for marshalling purpose.
// Should only be used immediately before marshalling.
type JSON struct {
	Error string `json:"error"`
}
