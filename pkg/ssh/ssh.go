// Package ssh provides SSH client utilities for driving xl on a
// remote hypervisor host.
package ssh

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/Stealthiumio/nova/pkg/config"
)

// Client represents an SSH client for executing commands on a remote host
type Client struct {
	config *config.RemoteConfig
}

// NewClient creates a new SSH client
func NewClient(cfg *config.RemoteConfig) *Client {
	return &Client{
		config: cfg,
	}
}

// authMethods builds the authentication methods from the remote config.
// Key auth is preferred; a password is used as fallback when configured.
func (c *Client) authMethods() ([]ssh.AuthMethod, error) {
	methods := make([]ssh.AuthMethod, 0, 2)

	if c.config.KeyPath != "" {
		key, err := os.ReadFile(c.config.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read SSH key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SSH key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if c.config.Password != "" {
		methods = append(methods, ssh.Password(c.config.Password))
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("no SSH authentication methods configured")
	}

	return methods, nil
}

// Execute executes a command on the remote host via SSH
func (c *Client) Execute(command string) (stdout, stderr string, err error) {
	return c.ExecuteWithTimeout(command, 30*time.Second)
}

// ExecuteWithTimeout executes a command with a specific timeout
func (c *Client) ExecuteWithTimeout(command string, timeout time.Duration) (stdout, stderr string, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return c.ExecuteWithContext(ctx, command)
}

// ExecuteWithContext executes a command with a context for cancellation
func (c *Client) ExecuteWithContext(ctx context.Context, command string) (stdout, stderr string, err error) {
	auth, err := c.authMethods()
	if err != nil {
		return "", "", err
	}

	sshConfig := &ssh.ClientConfig{
		User:            c.config.User,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	}

	addr := fmt.Sprintf("%s:22", c.config.Host)
	client, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return "", "", fmt.Errorf("failed to dial SSH: %w", err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", "", fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	select {
	case <-ctx.Done():
		session.Signal(ssh.SIGKILL)
		return stdoutBuf.String(), stderrBuf.String(), fmt.Errorf("command timed out: %w", ctx.Err())
	case err := <-done:
		return stdoutBuf.String(), stderrBuf.String(), err
	}
}

// WaitForSSH waits for SSH to become available on the remote host
func (c *Client) WaitForSSH(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for SSH on %s: %w", c.config.Host, ctx.Err())
		case <-ticker.C:
			_, _, err := c.ExecuteWithTimeout("echo test", 10*time.Second)
			if err == nil {
				return nil
			}
			// Continue waiting
		}
	}
}
