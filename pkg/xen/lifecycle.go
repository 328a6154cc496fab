package xen

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Stealthiumio/nova/pkg/log"
)

// RebootMode selects between a graceful reboot and a forced reset
type RebootMode int

const (
	// RebootSoft asks the guest to reboot gracefully
	RebootSoft RebootMode = iota
	// RebootHard resets the domain without involving the guest
	RebootHard
)

// Spawn creates a new domain from the given specification. It creates
// the per-instance config directory (idempotent), persists the config
// artifact, invokes `xl create`, and when powerOn is false immediately
// pauses the fresh domain.
//
// On a partial failure the domain is left in whatever state the
// hypervisor reports; there is no automatic rollback. The leftover
// directory is logged so an operator can reclaim it.
func (d *Driver) Spawn(spec InstanceSpec, powerOn bool) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if spec.UUID == "" {
		spec.UUID = uuid.NewString()
	}

	dir := d.instanceDir(spec.Name)
	if err := d.exec.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create instance directory %s: %w", dir, err)
	}

	cfg, err := d.SynthesizeConfig(spec)
	if err != nil {
		return err
	}

	cfgPath := d.instanceConfigPath(spec.Name)
	if err := d.exec.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		return fmt.Errorf("failed to write config for instance %s: %w", spec.Name, err)
	}

	if _, err := d.runXL("create", cfgPath); err != nil {
		log.Warn("Domain create failed for %s, leaving %s behind: %v", spec.Name, dir, err)
		return err
	}

	if !powerOn {
		if _, err := d.runXL("pause", spec.Name); err != nil {
			return err
		}
	}

	log.Info("Spawned instance %s (power on: %t)", spec.Name, powerOn)
	return nil
}

// Destroy tears down a domain and, when destroyDisks is set, removes
// its config directory. Destroy is best-effort idempotent: callers may
// invoke it on an already-gone domain, so every step downgrades its
// failure to a warning and the operation always returns normally.
func (d *Driver) Destroy(name string, destroyDisks bool) {
	clean := d.bestEffort(fmt.Sprintf("destroy domain %s", name), func() error {
		_, err := d.runXL("destroy", name)
		return err
	})

	if destroyDisks {
		dir := d.instanceDir(name)
		clean = d.bestEffort(fmt.Sprintf("remove instance directory %s", dir), func() error {
			return d.exec.RemoveAll(dir)
		}) && clean
	}

	if clean {
		log.Info("Destroyed instance %s", name)
	} else {
		log.Warn("Destroy of instance %s completed with warnings", name)
	}
}

// bestEffort runs an operation whose failure must not surface to the
// caller, logging it as a warning instead. It reports whether the
// operation succeeded.
func (d *Driver) bestEffort(op string, fn func() error) bool {
	if err := fn(); err != nil {
		log.Warn("Best-effort %s failed: %v", op, err)
		return false
	}
	return true
}

// Reboot restarts a domain. RebootSoft issues a graceful `xl reboot`;
// RebootHard issues a forced `xl reset`. Unlike Destroy, failures are
// fatal and propagate to the caller.
func (d *Driver) Reboot(name string, mode RebootMode) error {
	verb := "reboot"
	if mode == RebootHard {
		verb = "reset"
	}

	if _, err := d.runXL(verb, name); err != nil {
		return err
	}

	log.Info("Rebooted instance %s (%s)", name, verb)
	return nil
}

// Pause suspends a running domain in memory
func (d *Driver) Pause(name string) error {
	_, err := d.runXL("pause", name)
	return err
}

// Unpause resumes a paused domain
func (d *Driver) Unpause(name string) error {
	_, err := d.runXL("unpause", name)
	return err
}

// AttachInterface hot-plugs a network interface into a running domain.
// The hypervisor remains the source of truth for attached interfaces;
// no local state is kept.
func (d *Driver) AttachInterface(name string, iface InterfaceSpec) error {
	if err := iface.Validate(); err != nil {
		return err
	}

	_, err := d.runXL("network-attach", name,
		fmt.Sprintf("mac=%s", iface.MAC),
		fmt.Sprintf("bridge=%s", iface.Bridge))
	return err
}

// DetachInterface hot-unplugs a network interface from a running domain
func (d *Driver) DetachInterface(name, deviceID string) error {
	_, err := d.runXL("network-detach", name, deviceID)
	return err
}
