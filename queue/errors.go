package queue

import "errors"

var (
	// ErrEmpty is returned by Pop when the queue has no more valid
	// candidates.
	ErrEmpty = errors.New("queue: empty")
)
