package pager

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"
)

// pipe starts the pager as a child process reading from a fresh pipe and
// points the session's stream variables at the pipe's write end.
func (s *Session) pipe(choice string) error {
	argv, err := shlex.Split(choice)
	if err != nil {
		return &LaunchError{Pager: choice, Err: fmt.Errorf("parse pager command: %w", err)}
	}
	if len(argv) == 0 {
		return &LaunchError{Pager: choice, Err: errors.New("empty pager command")}
	}

	r, w, err := os.Pipe()
	if err != nil {
		return &LaunchError{Pager: choice, Err: fmt.Errorf("create pipe: %w", err)}
	}

	stdout, stderr := s.streams.Current()
	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // G204: pager comes from the user's environment or config
	cmd.Stdin = r
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		_ = r.Close()
		_ = w.Close()
		return &LaunchError{Pager: choice, Err: err}
	}
	// The child holds its own copy of the read end.
	_ = r.Close()

	if err := s.streams.Redirect(w); err != nil {
		_ = w.Close()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return err
	}

	s.handle = &pagerHandle{cmd: cmd, w: w}
	s.active = true
	s.logger.Debug("pager started", "pager", choice, "pid", cmd.Process.Pid)
	return nil
}

// Terminate shuts down a pager started by Run. It flushes and closes the
// pager's input, waits for the pager to exit and restores the original
// streams, so later output goes straight to the terminal.
//
// Terminate is idempotent and a no-op when no pager process is owned by this
// Session, which includes the worker half of a duplicated run: there the
// worker's own exit closes the pipe.
func (s *Session) Terminate() {
	h := s.handle
	if h == nil {
		return
	}
	s.handle = nil

	_ = h.w.Sync()
	if err := h.w.Close(); err != nil {
		s.logger.Debug("close pager input", "error", err)
	}
	if err := h.cmd.Wait(); err != nil {
		s.logger.Debug("pager exited", "error", err)
	}

	s.streams.Restore()
	s.active = false
	s.logger.Debug("pager terminated")
}
