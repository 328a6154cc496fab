package executor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	gossh "golang.org/x/crypto/ssh"

	"github.com/Stealthiumio/nova/pkg/config"
	"github.com/Stealthiumio/nova/pkg/log"
	"github.com/Stealthiumio/nova/pkg/ssh"
)

// SSHExecutor executes commands on a remote hypervisor host via SSH
type SSHExecutor struct {
	client  *ssh.Client
	config  *config.RemoteConfig
	timeout time.Duration
}

// NewSSHExecutor creates an SSHExecutor for the configured remote host
func NewSSHExecutor(cfg *config.RemoteConfig, timeout time.Duration) *SSHExecutor {
	return &SSHExecutor{
		client:  ssh.NewClient(cfg),
		config:  cfg,
		timeout: timeout,
	}
}

// WaitUntilReady waits until the remote host accepts SSH connections
func (e *SSHExecutor) WaitUntilReady(timeout time.Duration) error {
	return e.client.WaitForSSH(timeout)
}

// Run executes a command on the remote host. The argv vector is
// single-quote escaped so arguments survive the remote shell intact.
func (e *SSHExecutor) Run(name string, args ...string) (Result, error) {
	command := quoteCommand(name, args)
	log.Debug("Executing on %s: %s", e.String(), command)

	stdout, stderr, err := e.client.ExecuteWithTimeout(command, e.timeout)
	result := Result{
		Stdout: stdout,
		Stderr: stderr,
	}

	if err != nil {
		result.ExitCode = -1
		var exitErr *gossh.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitStatus()
		}
		log.Error("Command failed on %s: %s: %s", e.String(), command, result.Stderr)
		return result, &ExecError{
			Cmd:      cmdString(name, args),
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
			Err:      err,
		}
	}

	return result, nil
}

// WriteFile writes content to a file on the remote system. The bytes
// travel base64-encoded so the remote shell never interprets them:
// quotes, heredoc-looking lines and a missing trailing newline all
// arrive verbatim.
func (e *SSHExecutor) WriteFile(path string, content []byte, mode os.FileMode) error {
	command := writeFileCommand(path, content, mode)
	if _, stderr, err := e.client.ExecuteWithTimeout(command, e.timeout); err != nil {
		return fmt.Errorf("failed to write file via SSH: %s: %w", strings.TrimSpace(stderr), err)
	}
	return nil
}

// writeFileCommand builds the remote command that decodes content into
// path and sets its mode.
func writeFileCommand(path string, content []byte, mode os.FileMode) string {
	encoded := base64.StdEncoding.EncodeToString(content)
	return fmt.Sprintf("printf '%%s' '%s' | base64 -d > '%s' && chmod %o '%s'",
		encoded, path, mode, path)
}

// MkdirAll creates a directory and any missing parents on the remote system
func (e *SSHExecutor) MkdirAll(path string, mode os.FileMode) error {
	command := fmt.Sprintf("mkdir -p -m %o '%s'", mode, path)
	if _, stderr, err := e.client.ExecuteWithTimeout(command, e.timeout); err != nil {
		return fmt.Errorf("failed to create directory via SSH: %s: %w", strings.TrimSpace(stderr), err)
	}
	return nil
}

// RemoveAll removes a path recursively on the remote system
func (e *SSHExecutor) RemoveAll(path string) error {
	command := fmt.Sprintf("rm -rf '%s'", path)
	if _, stderr, err := e.client.ExecuteWithTimeout(command, e.timeout); err != nil {
		return fmt.Errorf("failed to remove path via SSH: %s: %w", strings.TrimSpace(stderr), err)
	}
	return nil
}

// PathExists reports whether a path exists on the remote system
func (e *SSHExecutor) PathExists(path string) (bool, error) {
	command := fmt.Sprintf("test -e '%s'", path)
	_, _, err := e.client.ExecuteWithTimeout(command, e.timeout)
	if err == nil {
		return true, nil
	}
	var exitErr *gossh.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}

// String returns a description of this executor
func (e *SSHExecutor) String() string {
	return fmt.Sprintf("ssh://%s@%s", e.config.User, e.config.Host)
}

// quoteCommand builds a shell command line from an argv vector,
// escaping single quotes in each argument.
func quoteCommand(name string, args []string) string {
	command := name
	for _, arg := range args {
		escaped := strings.ReplaceAll(arg, "'", "'\"'\"'")
		command += " '" + escaped + "'"
	}
	return command
}
