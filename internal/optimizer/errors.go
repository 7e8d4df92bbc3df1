package optimizer

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyCombinations is matched by every TooManyCombinationsError.
	ErrTooManyCombinations = errors.New("too many combinations")

	// ErrCancelled is returned when the caller's context ends mid-search. It is a
	// terminal outcome, not a failure.
	ErrCancelled = errors.New("optimisation cancelled")
)

type TooManyCombinationsError struct {
	Combinations int64
	Ceiling      int64
}

func (e *TooManyCombinationsError) Error() string {
	return fmt.Sprintf("too many combinations (%d, limit %d): narrow the gear pool", e.Combinations, e.Ceiling)
}

func (e *TooManyCombinationsError) Is(target error) bool {
	return target == ErrTooManyCombinations
}

func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
