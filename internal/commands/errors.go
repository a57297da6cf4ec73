package commands

import (
	"errors"
	"fmt"
)

// UsageError is a failure the user can fix by invoking the command
// differently. It is shown as a one-line message without a stack of causes.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Usagef returns a *UsageError with a formatted message.
func Usagef(format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// AsUsage wraps err as a *UsageError so that failures of external
// collaborators look like every other usage failure. nil stays nil.
func AsUsage(prefix string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return err
	}
	if prefix != "" {
		err = fmt.Errorf("%s: %w", prefix, err)
	}
	return &UsageError{Err: err}
}

// IsUsage reports whether err is, or wraps, a *UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
