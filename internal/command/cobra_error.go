package command

import (
	"errors"
	"fmt"
)

var (
	ExitCodeBaseError = fmt.Errorf("exit with code")
)

const (
	OkExitCode           = 0
	DefaultErrorExitCode = 1
)

type ExitCodeError struct {
	Cause    error
	ExitCode int
}

func (ece *ExitCodeError) Error() string {
	if ece.Cause != nil {
		return fmt.Errorf("%w %d: %w", ExitCodeBaseError, ece.ExitCode, ece.Cause).Error()
	}
	return fmt.Errorf("%w: %d", ExitCodeBaseError, ece.ExitCode).Error()
}

func (ece *ExitCodeError) Unwrap() error {
	return ece.Cause
}

// ExtractExitCode returns the exit code for the error returned by the
// command tree. Errors that do not carry an exit code come from cobra
// itself, such as an unknown subcommand, and exit with
// DefaultErrorExitCode.
func ExtractExitCode(err error) (exitCode int, rootCause error) {
	if err == nil {
		return OkExitCode, nil
	}
	var expected *ExitCodeError
	if !errors.As(err, &expected) {
		return DefaultErrorExitCode, err
	}
	return expected.ExitCode, expected.Cause
}
