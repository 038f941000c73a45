package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// interruptGrace is how long a cancelled command has to return before the
// process exits with the signal's status.
const interruptGrace = 2 * time.Second

// InterruptedError is the cancellation cause of a run stopped by a signal.
type InterruptedError struct {
	Signal os.Signal
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("interrupted by signal: %s", e.Signal)
}

// ExitCode returns 128 plus the signal number, as shells report it.
func (e *InterruptedError) ExitCode() int {
	if s, ok := e.Signal.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 130
}

// NotifyInterrupt returns a context that is cancelled on SIGINT or SIGTERM.
// After the first signal the default disposition is back in place, so a
// second one kills the process, and a command still running after
// interruptGrace is ended with the signal's exit status. stop must be called
// once the command has returned.
func NotifyInterrupt(parent context.Context) (ctx context.Context, stop func()) {
	return notifyInterrupt(parent, interruptGrace, os.Exit)
}

func notifyInterrupt(parent context.Context, grace time.Duration, exit func(int)) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	done := make(chan struct{})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigs:
			signal.Stop(sigs)
			interrupted := &InterruptedError{Signal: sig}
			slog.Debug("interrupted", "signal", sig)
			cancel(interrupted)

			timer := time.NewTimer(grace)
			defer timer.Stop()
			select {
			case <-timer.C:
				exit(interrupted.ExitCode())
			case <-done:
			}
		case <-done:
			signal.Stop(sigs)
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			close(done)
			cancel(nil)
		})
	}
}
