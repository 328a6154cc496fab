package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/Stealthiumio/nova/pkg/log"
)

// LocalExecutor executes commands on the local machine
type LocalExecutor struct {
	timeout time.Duration
}

// NewLocalExecutor creates a LocalExecutor. Every command invocation is
// bounded by the given timeout.
func NewLocalExecutor(timeout time.Duration) *LocalExecutor {
	return &LocalExecutor{timeout: timeout}
}

// Run executes a command locally as an argv vector. The command is
// never passed through a shell.
func (e *LocalExecutor) Run(name string, args ...string) (Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	log.Debug("Executing: %s", cmdString(name, args))

	cmd := exec.CommandContext(ctx, name, args...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	result := Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		log.Error("Command failed: %s: %s", cmdString(name, args), result.Stderr)
		return result, &ExecError{
			Cmd:      cmdString(name, args),
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
			Err:      err,
		}
	}

	return result, nil
}

// WriteFile writes content to a file on the local system
func (e *LocalExecutor) WriteFile(path string, content []byte, mode os.FileMode) error {
	return os.WriteFile(path, content, mode)
}

// MkdirAll creates a directory and any missing parents locally
func (e *LocalExecutor) MkdirAll(path string, mode os.FileMode) error {
	return os.MkdirAll(path, mode)
}

// RemoveAll removes a path recursively on the local system
func (e *LocalExecutor) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// PathExists reports whether a path exists on the local system
func (e *LocalExecutor) PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// String returns a description of this executor
func (e *LocalExecutor) String() string {
	return "local"
}
