package xen

import (
	"fmt"
	"strings"
)

// SynthesizeConfig generates the declarative xl config for an instance.
// The output is a pure function of the specification and the driver
// configuration: identical inputs produce byte-identical artifacts, in
// a stable field order.
func (d *Driver) SynthesizeConfig(spec InstanceSpec) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}
	if spec.UUID == "" {
		return "", fmt.Errorf("instance spec: 'uuid' must be set before config generation")
	}

	disk := spec.DiskDevice
	if disk == "" {
		disk = fmt.Sprintf("/dev/%s/%s", d.cfg.Disk.VolumeGroup, spec.Name)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("name = '%s'\n", spec.Name))
	sb.WriteString(fmt.Sprintf("memory = %d\n", spec.MemoryMB))
	sb.WriteString(fmt.Sprintf("vcpus = %d\n", spec.VCPUs))
	sb.WriteString(fmt.Sprintf("uuid = '%s'\n", spec.UUID))
	sb.WriteString("builder = 'hvm'\n")
	sb.WriteString("boot = 'c'\n")
	sb.WriteString("acpi = 1\n")
	sb.WriteString("apic = 1\n")
	sb.WriteString(fmt.Sprintf("disk = ['phy:%s,%s,%s']\n", disk, d.cfg.Disk.Target, d.cfg.Disk.Mode))

	if len(spec.Interfaces) > 0 {
		vifs := make([]string, 0, len(spec.Interfaces))
		for _, iface := range spec.Interfaces {
			vifs = append(vifs, fmt.Sprintf("'mac=%s,bridge=%s'", iface.MAC, iface.Bridge))
		}
		sb.WriteString(fmt.Sprintf("vif = [%s]\n", strings.Join(vifs, ", ")))
	}

	if d.cfg.Graphics.VNCEnabled() {
		sb.WriteString("vnc = 1\n")
		sb.WriteString(fmt.Sprintf("vnclisten = '%s'\n", d.cfg.Graphics.VNCListen))
	} else {
		sb.WriteString("vnc = 0\n")
	}

	return sb.String(), nil
}

// ParseConfig decodes a generated config artifact back into its fields.
// Quoted values have their quotes stripped; list values are kept raw.
// Lines that are not `key = value` assignments are skipped.
func ParseConfig(content string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		if strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}
		fields[key] = value
	}
	return fields
}

// ReadConfig fetches and decodes the persisted config artifact of an
// instance from the hypervisor host.
func (d *Driver) ReadConfig(name string) (map[string]string, error) {
	path := d.instanceConfigPath(name)

	exists, err := d.exec.PathExists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config for instance %s: %w", name, err)
	}
	if !exists {
		return nil, &NotFoundError{Instance: name}
	}

	// cat keeps the read path uniform across local and SSH executors.
	res, err := d.exec.Run("cat", path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config for instance %s: %w", name, err)
	}
	return ParseConfig(res.Stdout), nil
}
