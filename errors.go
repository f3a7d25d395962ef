package mandel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidViewport is returned for non-positive or non-finite extents
	// and for pixel dimensions below one.
	ErrInvalidViewport = errors.New("invalid viewport")

	// ErrInvalidParams is returned for an iteration budget below one or a
	// non-positive escape bound.
	ErrInvalidParams = errors.New("invalid render parameters")

	// ErrWorkerFailure matches any *WorkerError.
	ErrWorkerFailure = errors.New("worker failure")

	// ErrNumericOverflow is returned by strict colour mapping when a channel
	// falls outside [0, 255].
	ErrNumericOverflow = errors.New("numeric overflow")
)

// WorkerError reports the failure of one column partition.
// The whole evaluation is abandoned when it occurs.
type WorkerError struct {
	Partition int
	Err       error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("partition %d: %v", e.Partition, e.Err)
}

func (e *WorkerError) Unwrap() error { return e.Err }

func (e *WorkerError) Is(target error) bool { return target == ErrWorkerFailure }
