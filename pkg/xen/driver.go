// Package xen manages Xen domains by driving the xl command-line tool
// and translating its text and JSON output into a normalized model.
//
// The driver is stateless: the hypervisor is the source of truth for
// domain state, and every query re-runs the corresponding xl command.
// Operations against the same instance name must be serialized by the
// caller; the driver performs no per-instance locking.
package xen

import (
	"fmt"
	"path/filepath"

	"github.com/Stealthiumio/nova/pkg/config"
	"github.com/Stealthiumio/nova/pkg/executor"
)

// configFileName is the name of the config artifact inside each
// per-instance directory
const configFileName = "config"

// Driver drives the xl tool for one hypervisor host
type Driver struct {
	cfg  *config.Config
	exec executor.Executor
}

// New creates a Driver bound to the given executor. It verifies that
// the xl binary exists at its configured path and fails fast with a
// ConfigError before any operation is attempted.
func New(cfg *config.Config, exec executor.Executor) (*Driver, error) {
	exists, err := exec.PathExists(cfg.XLPath)
	if err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("failed to check xl binary at %s on %s: %v", cfg.XLPath, exec, err)}
	}
	if !exists {
		return nil, &ConfigError{Msg: fmt.Sprintf("xl binary not found at %s on %s", cfg.XLPath, exec)}
	}

	return &Driver{
		cfg:  cfg,
		exec: exec,
	}, nil
}

// NewFromConfig creates a Driver with an executor chosen from the
// configuration: local execution by default, SSH when a remote host
// is configured.
func NewFromConfig(cfg *config.Config) (*Driver, error) {
	var exec executor.Executor
	if cfg.IsRemote() {
		exec = executor.NewSSHExecutor(cfg.Remote, cfg.CommandTimeout())
	} else {
		exec = executor.NewLocalExecutor(cfg.CommandTimeout())
	}
	return New(cfg, exec)
}

// runXL invokes the xl binary with the given arguments
func (d *Driver) runXL(args ...string) (executor.Result, error) {
	return d.exec.Run(d.cfg.XLPath, args...)
}

// instanceDir returns the per-instance configuration directory
func (d *Driver) instanceDir(name string) string {
	return filepath.Join(d.cfg.ConfigRoot, name)
}

// instanceConfigPath returns the path of an instance's config artifact
func (d *Driver) instanceConfigPath(name string) string {
	return filepath.Join(d.instanceDir(name), configFileName)
}
