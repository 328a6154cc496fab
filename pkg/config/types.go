package config

import "time"

// Default locations and values applied by validateAndSetDefaults.
const (
	DefaultXLPath     = "/usr/local/sbin/xl"
	DefaultConfigRoot = "/etc/xen"

	DefaultVolumeGroup = "vg0"
	DefaultDiskTarget  = "hda"
	DefaultDiskMode    = "w"

	DefaultVNCListen = "0.0.0.0"

	DefaultCommandTimeoutSeconds = 60
)

// Config is the top-level driver configuration
type Config struct {
	// XLPath is the path to the xl binary on the hypervisor host
	XLPath string `yaml:"xl_path"`

	// ConfigRoot is the directory under which per-instance
	// configuration directories are created
	ConfigRoot string `yaml:"config_root"`

	Disk     DiskConfig     `yaml:"disk"`
	Graphics GraphicsConfig `yaml:"graphics"`

	// CommandTimeoutSeconds bounds every external command invocation
	CommandTimeoutSeconds int `yaml:"command_timeout_seconds"`

	// LogLevel is one of error, warn, info, debug
	LogLevel string `yaml:"log_level"`

	// Remote, when set, runs all xl commands and file operations on a
	// remote hypervisor host over SSH instead of the local machine
	Remote *RemoteConfig `yaml:"remote"`
}

// DiskConfig describes how instance root disks are mapped into domains
type DiskConfig struct {
	// VolumeGroup is the LVM volume group holding per-instance
	// logical volumes, named after the instance
	VolumeGroup string `yaml:"volume_group"`
	// Target is the guest-visible device name (e.g. hda, xvda)
	Target string `yaml:"target"`
	// Mode is the access mode, "w" or "r"
	Mode string `yaml:"mode"`
}

// GraphicsConfig controls the display settings written into domain configs
type GraphicsConfig struct {
	VNC       *bool  `yaml:"vnc"`
	VNCListen string `yaml:"vnc_listen"`
}

// VNCEnabled reports whether VNC graphics are enabled (default true)
func (g GraphicsConfig) VNCEnabled() bool {
	if g.VNC == nil {
		return true
	}
	return *g.VNC
}

// RemoteConfig describes an SSH connection to a remote hypervisor host
type RemoteConfig struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	KeyPath  string `yaml:"key_path"`
	Password string `yaml:"password"`
}

// CommandTimeout returns the configured command timeout as a Duration
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}
