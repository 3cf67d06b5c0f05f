package store

import (
	"errors"
	"fmt"
)

var ErrNoStore = errors.New("store: no application store in scope")

// ErrSnapshotUnavailable fails every local write after the snapshot could
// not be read, so the stored copy is never replaced by the empty state.
var ErrSnapshotUnavailable = errors.New("store: snapshot could not be loaded, writes disabled")

// UserAlert marks a persistence failure the admin must be told about, not
// just the logs. Only banner replacement raises it.
type UserAlert struct {
	Message string
	Err     error
}

func (e *UserAlert) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UserAlert) Unwrap() error {
	return e.Err
}

// partialLoad is implemented by load errors that still came with a usable
// state, e.g. one table failing while the rest were read.
type partialLoad interface {
	PartialLoad() bool
}
