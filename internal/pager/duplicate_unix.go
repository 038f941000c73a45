//go:build unix

package pager

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

const canDuplicate = true

// lessDefaults matches git's default for $LESS: quit if one screen, pass raw
// control characters, don't clear the screen on exit.
const lessDefaults = "FRX"

func defaultExec(path string, argv []string, env []string) error {
	return unix.Exec(path, argv, env)
}

// duplicate splits the run in two. The current binary is re-executed as the
// worker, with stdout and stderr on the write end of a pipe; this process
// takes the read end as stdin and becomes the pager, which leaves the pager
// owning the terminal.
//
// On success in a real process duplicate never returns.
func (s *Session) duplicate(choice string) error {
	self := s.opts.Executable
	if self == "" {
		var err error
		if self, err = os.Executable(); err != nil {
			return &LaunchError{Pager: choice, Err: fmt.Errorf("locate executable: %w", err)}
		}
	}

	r, w, err := os.Pipe()
	if err != nil {
		return &LaunchError{Pager: choice, Err: fmt.Errorf("create pipe: %w", err)}
	}

	worker := exec.Command(self, s.opts.Args...) //nolint:gosec // G204: re-executes this binary with its own arguments
	worker.Env = append(os.Environ(), EnvRole+"="+RoleWorker.String())
	worker.Stdin = s.opts.Stdin
	worker.Stdout = w
	worker.Stderr = w

	if err := worker.Start(); err != nil {
		_ = r.Close()
		_ = w.Close()
		return &LaunchError{Pager: choice, Err: fmt.Errorf("start worker: %w", err)}
	}
	// Only the worker may hold the write end, or the pager never sees EOF.
	_ = w.Close()
	s.logger.Debug("pager worker started", "pid", worker.Process.Pid)

	err = dupTo(int(r.Fd()), s.opts.StdinFd) //nolint:gosec // fd conversion is safe on all supported platforms
	_ = r.Close()
	if err != nil {
		return s.abortWorker(worker, choice, fmt.Errorf("redirect stdin: %w", err))
	}

	s.role = RolePager
	if err := s.becomePager(choice); err != nil {
		return s.abortWorker(worker, choice, err)
	}
	return nil
}

// abortWorker stops a worker whose pager could not start, so it cannot keep
// writing into a pipe nobody reads.
func (s *Session) abortWorker(worker *exec.Cmd, choice string, err error) error {
	_ = worker.Process.Kill()
	_ = worker.Wait()
	return &LaunchError{Pager: choice, Err: err}
}

// becomePager waits for the first output (or EOF) on the pager half's stdin
// and then replaces this process with the pager. If the pager can't be
// executed directly it is run through /bin/sh, so pager strings with
// arguments or shell syntax work too.
func (s *Session) becomePager(choice string) error {
	// Some versions of less misbehave when started before input is ready.
	if err := waitReadable(s.opts.StdinFd); err != nil {
		return fmt.Errorf("wait for output: %w", err)
	}

	setDefaultLess()
	env := os.Environ()

	if path, err := exec.LookPath(choice); err == nil {
		err = s.opts.Exec(path, []string{choice}, env)
		if err == nil {
			return nil
		}
		s.logger.Debug("exec pager failed, retrying through shell", "pager", choice, "error", err)
	}

	if err := s.opts.Exec("/bin/sh", []string{"sh", "-c", choice}, env); err != nil {
		return fmt.Errorf("exec /bin/sh: %w", err)
	}
	return nil
}

// waitReadable blocks until fd has data to read or has reached end of stream.
func waitReadable(fd int) error {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}} //nolint:gosec // descriptors fit in int32
	for {
		_, err := unix.Poll(fds, -1)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}

// setDefaultLess sets $LESS when the user hasn't.
func setDefaultLess() {
	if _, ok := os.LookupEnv("LESS"); !ok {
		_ = os.Setenv("LESS", lessDefaults)
	}
}
