// Package executor runs privileged hypervisor commands and performs
// filesystem operations on the hypervisor host, locally or over SSH.
package executor

import (
	"fmt"
	"os"
	"strings"
)

// Result holds the outcome of one completed external command. It is
// transient: callers consume the captured output immediately and never
// hold on to it.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExecError reports an external command that exited non-zero or could
// not be started at all. ExitCode is -1 when no exit status is
// available (binary missing, timeout).
type ExecError struct {
	Cmd      string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("command %q failed with exit code %d: %s", e.Cmd, e.ExitCode, msg)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Executor abstracts where hypervisor commands and the instance
// configuration files live. Implementations exist for the local
// machine and for a remote host reached over SSH.
//
// Every Run call spawns exactly one external process and waits
// synchronously for it to finish.
type Executor interface {
	// Run executes a command given as an argv vector and returns the
	// captured output. A non-zero exit or a failure to start returns
	// a *ExecError; the Result still carries any captured output.
	Run(name string, args ...string) (Result, error)

	// WriteFile writes content to a file on the target system
	WriteFile(path string, content []byte, mode os.FileMode) error

	// MkdirAll creates a directory and any missing parents; it
	// succeeds if the directory already exists
	MkdirAll(path string, mode os.FileMode) error

	// RemoveAll removes a path and everything below it
	RemoveAll(path string) error

	// PathExists reports whether a path exists on the target system
	PathExists(path string) (bool, error)

	// String returns a description of this executor (for logging)
	String() string
}

// cmdString renders an argv vector for log messages
func cmdString(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
