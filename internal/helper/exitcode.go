package helper

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// exitNotFound is the status bash uses when the command does not exist.
const exitNotFound = 127

var (
	// ErrTimeout is returned when the helper outlived its timeout.
	ErrTimeout = errors.New("helper timed out")
	// ErrNotFound is returned when bash could not find the helper program.
	ErrNotFound = errors.New("helper command not found")
)

// exitCode extracts the helper's exit status from a command error.
// A deadline hit while the helper ran yields ErrTimeout rather than the -1
// of a killed process, and status 127 yields ErrNotFound together with the
// code. Other ExitErrors give (code, nil), non-exit errors (0, err).
func exitCode(ctx context.Context, err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return -1, fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code == exitNotFound {
			return code, ErrNotFound
		}
		return code, nil
	}
	return 0, err
}
