package xen

import (
	"errors"

	"golang.org/x/sync/errgroup"
)

// DomainInfo is the normalized view of one domain. Values are fetched
// on demand and never cached.
type DomainInfo struct {
	State    PowerState
	MaxMemKB uint64
	MemKB    uint64
	VCPUs    uint
}

// HostResources is a point-in-time aggregate of hypervisor host
// capacity and usage. The memory and CPU figures come from independent
// queries and each reflects its own query instant; the numbers are
// advisory for scheduling, not transactional.
type HostResources struct {
	MemoryMB     int64
	MemoryMBUsed int64
	VCPUs        int
}

// GetInfo queries the hypervisor for one domain via `xl list -l` and
// returns its normalized record. Any failure on this path, whether the
// domain is genuinely absent, the command failed, or the output did
// not parse, is reported as a NotFoundError; the underlying cause is
// preserved and reachable with errors.As or errors.Unwrap.
func (d *Driver) GetInfo(name string) (DomainInfo, error) {
	res, err := d.runXL("list", "-l", name)
	if err != nil {
		return DomainInfo{}, &NotFoundError{Instance: name, Err: err}
	}

	rec, err := parseDomainList(res.Stdout)
	if err != nil {
		if errors.Is(err, errNoDomains) {
			return DomainInfo{}, &NotFoundError{Instance: name}
		}
		return DomainInfo{}, &NotFoundError{Instance: name, Err: err}
	}

	// xl reports domain memory in MiB.
	return DomainInfo{
		State:    PowerStateFromToken(*rec.State),
		MaxMemKB: *rec.MaxMem * 1024,
		MemKB:    *rec.Mem * 1024,
		VCPUs:    *rec.VCPUs,
	}, nil
}

// ListInstances returns the names of all domains currently known to
// the hypervisor. Each call re-queries; nothing is cached.
func (d *Driver) ListInstances() ([]string, error) {
	res, err := d.runXL("list")
	if err != nil {
		return nil, err
	}
	return parseNameList(res.Stdout)
}

// GetAvailableResource composes host memory totals and the logical CPU
// count into one snapshot. The two underlying queries are independent
// and run concurrently; they are not transactionally consistent with
// each other.
func (d *Driver) GetAvailableResource() (HostResources, error) {
	var (
		totalKB, freeKB int64
		cpus            int
	)

	var g errgroup.Group
	g.Go(func() error {
		res, err := d.runXL("info", "-n")
		if err != nil {
			return err
		}
		totalKB, freeKB = parseHostMemory(res.Stdout)
		return nil
	})
	g.Go(func() error {
		res, err := d.runXL("info", "-n", "cpu")
		if err != nil {
			return err
		}
		cpus = countCPULines(res.Stdout)
		return nil
	})
	if err := g.Wait(); err != nil {
		return HostResources{}, err
	}

	return HostResources{
		MemoryMB:     totalKB / 1024,
		MemoryMBUsed: (totalKB - freeKB) / 1024,
		VCPUs:        cpus,
	}, nil
}
