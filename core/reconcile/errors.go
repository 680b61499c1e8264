package reconcile

import "errors"

// ErrInvariantViolation reports an address owned by more than one list after
// arbitration. It indicates a bug, never bad input.
var ErrInvariantViolation = errors.New("address owned by more than one list")
