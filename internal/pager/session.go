// Package pager routes a command's standard output and standard error
// through an external pager program such as less.
//
// A Session owns the process-wide pager state: the selected pager, the
// running pager process and the saved standard streams. Run starts paging
// (or does nothing when stdin/stdout are not terminals or no pager is
// wanted); Terminate tears it down again and must run before the process
// exits.
//
// On POSIX systems the default strategy re-executes the current binary as a
// worker whose output feeds a pipe, and the original process then replaces
// itself with the pager so the pager owns the terminal. Elsewhere the pager
// is an ordinary child process and os.Stdout/os.Stderr are swapped for the
// pipe feeding it.
package pager

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"golang.org/x/term"
)

// Strategy selects how the pager is attached to the process output.
type Strategy string

// Pager strategies.
const (
	StrategyAuto      Strategy = "auto"
	StrategyDuplicate Strategy = "duplicate"
	StrategyPipe      Strategy = "pipe"
)

// ParseStrategy parses a core.pagerStrategy value. Empty means auto.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyAuto:
		return StrategyAuto, nil
	case StrategyDuplicate, StrategyPipe:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown pager strategy %q (valid: auto, duplicate, pipe)", s)
	}
}

// Resolve turns StrategyAuto into the strategy this platform supports.
func (s Strategy) Resolve() Strategy {
	if s != StrategyAuto && s != "" {
		return s
	}
	if canDuplicate {
		return StrategyDuplicate
	}
	return StrategyPipe
}

// ExecFunc replaces the current process image. It only returns on failure.
type ExecFunc func(path string, argv []string, env []string) error

// Options configures a Session. Zero values select the real process state.
type Options struct {
	// Config supplies core.pager.
	Config ConfigGetter
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv LookupEnvFunc

	// Stdin and Stdout must both be terminals for paging to start.
	Stdin  *os.File
	Stdout *os.File

	// StdoutVar and StderrVar are the stream variables the pipe strategy
	// redirects. They default to &os.Stdout and &os.Stderr.
	StdoutVar **os.File
	StderrVar **os.File

	Strategy Strategy
	Logger   *slog.Logger

	// Executable and Args start the worker half under the duplication
	// strategy. They default to os.Executable() and os.Args[1:].
	Executable string
	Args       []string

	// StdinFd is the descriptor the pager half reads from (0 by default).
	StdinFd int
	// Exec defaults to unix.Exec.
	Exec ExecFunc
}

// pagerHandle is a running pager started by the pipe strategy.
type pagerHandle struct {
	cmd *exec.Cmd
	w   *os.File
}

// Session is the process-wide pager state. At most one pager is active per
// Session; a Session is not safe for concurrent use.
type Session struct {
	opts   Options
	logger *slog.Logger

	role     ProcessRole
	selected bool
	choice   string
	source   Source

	active  bool
	handle  *pagerHandle
	streams *Redirector
}

// NewSession returns a Session. The process role is read from the
// environment once, here.
func NewSession(opts Options) *Session {
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyAuto
	}
	if opts.Args == nil && len(os.Args) > 0 {
		opts.Args = os.Args[1:]
	}
	if opts.Exec == nil {
		opts.Exec = defaultExec
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		opts:    opts,
		logger:  logger,
		role:    roleFromEnv(opts.LookupEnv),
		streams: NewRedirector(opts.StdoutVar, opts.StderrVar),
	}
}

// Role returns which half of a paged run this process is.
func (s *Session) Role() ProcessRole { return s.role }

// Active reports whether this process's output is currently going to a pager.
func (s *Session) Active() bool { return s.active }

// Choice returns the selected pager command. It is resolved on first use and
// never changes afterwards.
func (s *Session) Choice() (string, Source) {
	if !s.selected {
		s.choice, s.source = SelectWithSource(s.opts.LookupEnv, s.opts.Config)
		s.selected = true
	}
	return s.choice, s.source
}

// Strategy returns the strategy Run will use on this platform.
func (s *Session) Strategy() Strategy { return s.opts.Strategy.Resolve() }

// Run starts paging if the terminal and configuration ask for it.
//
// In the worker half of a duplicated run it only marks the Session active.
// Under the duplication strategy the original process does not return from a
// successful Run: it becomes the pager. Any failure to start the pager is a
// *LaunchError, which callers must treat as fatal.
func (s *Session) Run() error {
	if s.active {
		return ErrAlreadyActive
	}

	if s.role == RoleWorker {
		s.active = true
		s.logger.Debug("running as pager worker")
		return nil
	}

	if !isTerminal(s.opts.Stdin) || !isTerminal(s.opts.Stdout) {
		return nil
	}

	choice, source := s.Choice()
	if Disabled(choice) {
		s.logger.Debug("paging disabled", "pager", choice, "source", source)
		return nil
	}

	strategy := s.Strategy()
	s.logger.Debug("starting pager", "pager", choice, "source", source, "strategy", strategy)

	switch strategy {
	case StrategyDuplicate:
		return s.duplicate(choice)
	case StrategyPipe:
		return s.pipe(choice)
	default:
		return &LaunchError{Pager: choice, Err: fmt.Errorf("unknown pager strategy %q", strategy)}
	}
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd conversion is safe on all supported platforms
}
