package pager

import "os"

// Redirector swaps a pair of stream variables (normally os.Stdout and
// os.Stderr) for a substitute and puts the originals back on Restore.
type Redirector struct {
	stdout, stderr **os.File

	savedStdout *os.File
	savedStderr *os.File
	redirected  bool
}

// NewRedirector returns a Redirector for the given stream variables.
// Nil arguments default to &os.Stdout and &os.Stderr.
func NewRedirector(stdout, stderr **os.File) *Redirector {
	if stdout == nil {
		stdout = &os.Stdout
	}
	if stderr == nil {
		stderr = &os.Stderr
	}
	return &Redirector{stdout: stdout, stderr: stderr}
}

// Redirect points both streams at w, remembering the current ones.
// Redirecting again before Restore fails with ErrAlreadyRedirected.
func (r *Redirector) Redirect(w *os.File) error {
	if r.redirected {
		return ErrAlreadyRedirected
	}
	r.savedStdout, r.savedStderr = *r.stdout, *r.stderr
	*r.stdout, *r.stderr = w, w
	r.redirected = true
	return nil
}

// Restore puts the saved streams back. It reports false if nothing was
// redirected.
func (r *Redirector) Restore() bool {
	if !r.redirected {
		return false
	}
	*r.stdout, *r.stderr = r.savedStdout, r.savedStderr
	r.savedStdout, r.savedStderr = nil, nil
	r.redirected = false
	return true
}

// Redirected reports whether the streams currently point at a substitute.
func (r *Redirector) Redirected() bool { return r.redirected }

// Current returns the streams the variables point at right now.
func (r *Redirector) Current() (stdout, stderr *os.File) {
	return *r.stdout, *r.stderr
}
