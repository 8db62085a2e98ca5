package hive

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Hive operations, following the same
// package-prefixed errors.New style used throughout the rest of this
// codebase's queue implementations.
var (
	// ErrDomain is returned when requested block-capacity limits fall
	// outside the hard bounds [3, SKIP_MAX], or min > max.
	ErrDomain = errors.New("hive: block capacity limits out of bounds")

	// ErrCapacity is returned when a Reserve target exceeds MaxSize.
	ErrCapacity = errors.New("hive: reserve target exceeds max size")
)

func domainErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDomain}, args...)...)
}

func capacityErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCapacity}, args...)...)
}
