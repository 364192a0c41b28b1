package editor

import (
	"errors"
	"fmt"
)

// ErrNoImage is the reason carried by a PreconditionError when a render or
// export is requested before any image has been loaded.
var ErrNoImage = errors.New("no image loaded")

// PreconditionError reports an operation that cannot run in the session's
// current state. It unwraps to the underlying reason.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func noImage(op string) error {
	return &PreconditionError{Op: op, Err: ErrNoImage}
}
