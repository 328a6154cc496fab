package xen

import (
	"fmt"
	"net"
	"os"
	"regexp"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// validName restricts instance names to characters that are safe both
// in the xl config syntax and as a directory name under the config root.
var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// InterfaceSpec describes one virtual network interface of an instance
type InterfaceSpec struct {
	MAC    string `yaml:"mac"`
	Bridge string `yaml:"bridge"`
	ID     string `yaml:"id"`
}

// InstanceSpec is the caller-supplied description of an instance. The
// driver treats it as read-only.
type InstanceSpec struct {
	// Name is unique per host and stable for the instance lifetime
	Name string `yaml:"name"`
	// UUID is globally unique; generated when left empty
	UUID string `yaml:"uuid"`

	MemoryMB int `yaml:"memory_mb"`
	VCPUs    int `yaml:"vcpus"`

	// DiskDevice overrides the default /dev/<volume_group>/<name>
	// block device backing the instance root disk
	DiskDevice string `yaml:"disk_device"`

	Interfaces []InterfaceSpec `yaml:"interfaces"`
}

// LoadInstanceSpec reads an instance specification from a YAML file
func LoadInstanceSpec(path string) (*InstanceSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instance spec %s: %w", path, err)
	}

	var spec InstanceSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse instance spec %s: %w", path, err)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &spec, nil
}

// Validate checks the specification for structural problems. Name and
// UUID are untrusted input embedded into the generated config file, so
// anything that could break the config syntax is rejected here rather
// than escaped.
func (s *InstanceSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("instance spec: 'name' is required")
	}
	if !validName.MatchString(s.Name) {
		return fmt.Errorf("instance spec: invalid name %q: only alphanumerics, '_', '.', '-' are allowed", s.Name)
	}
	if s.UUID != "" {
		if _, err := uuid.Parse(s.UUID); err != nil {
			return fmt.Errorf("instance spec: invalid uuid %q: %w", s.UUID, err)
		}
	}
	if s.MemoryMB <= 0 {
		return fmt.Errorf("instance spec: 'memory_mb' must be greater than 0, got %d", s.MemoryMB)
	}
	if s.VCPUs <= 0 {
		return fmt.Errorf("instance spec: 'vcpus' must be greater than 0, got %d", s.VCPUs)
	}
	for i, iface := range s.Interfaces {
		if err := iface.Validate(); err != nil {
			return fmt.Errorf("instance spec: interfaces[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks a single interface descriptor
func (i InterfaceSpec) Validate() error {
	if i.MAC == "" {
		return fmt.Errorf("'mac' is required")
	}
	if _, err := net.ParseMAC(i.MAC); err != nil {
		return fmt.Errorf("invalid mac %q: %w", i.MAC, err)
	}
	if i.Bridge == "" {
		return fmt.Errorf("'bridge' is required")
	}
	if !validName.MatchString(i.Bridge) {
		return fmt.Errorf("invalid bridge %q", i.Bridge)
	}
	return nil
}
