package pager

import (
	"errors"
	"fmt"
)

// Sentinel errors for pager lifecycle misuse.
var (
	ErrAlreadyActive          = errors.New("a pager is already active")
	ErrAlreadyRedirected      = errors.New("standard streams are already redirected")
	ErrDuplicationUnsupported = errors.New("process duplication is not supported on this platform")
)

// ExitLaunchFailure is the exit status for a run whose pager could not start.
const ExitLaunchFailure = 255

// LaunchError reports that the selected pager could not be started. It is
// fatal to the whole run, not just to paging.
type LaunchError struct {
	Pager string
	Err   error
}

func (e *LaunchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fatal: cannot start pager %q", e.Pager)
	}
	return fmt.Sprintf("fatal: cannot start pager %q: %s", e.Pager, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitCode returns the process exit status for a launch failure.
func (e *LaunchError) ExitCode() int { return ExitLaunchFailure }
