package cli

import (
	"errors"

	"github.com/winksaville/cubes/part"
	"github.com/winksaville/cubes/sweep"
)

// usageError marks errors caused by the command line or configuration.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func asUsage(err error) error {
	if err == nil {
		return nil
	}
	return usageError{err}
}

// IsUsageError reports whether err was caused by invalid arguments, flags
// or configuration, in which case the usage text should be shown.
func IsUsageError(err error) bool {
	var ue usageError
	return errors.As(err, &ue) ||
		errors.Is(err, part.ErrInvalidSpec) ||
		errors.Is(err, sweep.ErrInvalidSweep)
}
