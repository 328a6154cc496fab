package xen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stealthiumio/nova/pkg/executor"
)

func TestGetInfo(t *testing.T) {
	drv, fake := newTestDriver(t)
	fake.respond(xl+" list -l vm1", fakeResult{
		stdout: `[{"name": "vm1", "state": "running", "maxmem": 512, "mem": 256, "vcpus": 2}]`,
	})

	info, err := drv.GetInfo("vm1")
	require.NoError(t, err)

	assert.Equal(t, StateRunning, info.State)
	assert.Equal(t, uint64(512*1024), info.MaxMemKB)
	assert.Equal(t, uint64(256*1024), info.MemKB)
	assert.Equal(t, uint(2), info.VCPUs)
}

func TestGetInfoUnknownStateToken(t *testing.T) {
	drv, fake := newTestDriver(t)
	fake.respond(xl+" list -l vm1", fakeResult{
		stdout: `[{"name": "vm1", "state": "rebooting", "maxmem": 512, "mem": 256, "vcpus": 2}]`,
	})

	info, err := drv.GetInfo("vm1")
	require.NoError(t, err)
	assert.Equal(t, StateNoState, info.State)
}

func TestGetInfoEmptyListing(t *testing.T) {
	drv, fake := newTestDriver(t)
	fake.respond(xl+" list -l vm1", fakeResult{stdout: "[]"})

	_, err := drv.GetInfo("vm1")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "vm1", notFound.Instance)
}

func TestGetInfoExecFailureReclassified(t *testing.T) {
	drv, fake := newTestDriver(t)
	fake.respond(xl+" list -l vm1", fakeResult{code: 1, stderr: "libxl: error"})

	_, err := drv.GetInfo("vm1")

	// The caller sees a not-found error, but the original execution
	// failure stays reachable through the error chain.
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	var execErr *executor.ExecError
	assert.True(t, errors.As(err, &execErr))
	assert.Equal(t, 1, execErr.ExitCode)
}

func TestGetInfoParseFailureReclassified(t *testing.T) {
	drv, fake := newTestDriver(t)
	fake.respond(xl+" list -l vm1", fakeResult{
		stdout: `[{"name": "vm1", "maxmem": 512, "mem": 256, "vcpus": 2}]`,
	})

	_, err := drv.GetInfo("vm1")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestListInstances(t *testing.T) {
	drv, fake := newTestDriver(t)
	fake.respond(xl+" list", fakeResult{
		stdout: "NAME STATE MEM VCPUS\nvm1 running 512 2\nvm2 paused 256 1\n",
	})

	names, err := drv.ListInstances()
	require.NoError(t, err)
	assert.Equal(t, []string{"vm1", "vm2"}, names)
}

func TestListInstancesExecFailure(t *testing.T) {
	drv, fake := newTestDriver(t)
	fake.respond(xl+" list", fakeResult{code: 1, stderr: "cannot connect"})

	_, err := drv.ListInstances()

	var execErr *executor.ExecError
	assert.True(t, errors.As(err, &execErr))
}

func TestGetAvailableResource(t *testing.T) {
	drv, fake := newTestDriver(t)
	fake.respond(xl+" info -n", fakeResult{
		stdout: "host : xen0\nnr_cpus : 4\ntotal_memory : 8192\nfree_memory : 2048\nxen_version : 4.18\n",
	})
	fake.respond(xl+" info -n cpu", fakeResult{
		stdout: "cpu0\ncpu1\ncpu2\ncpu3\n",
	})

	res, err := drv.GetAvailableResource()
	require.NoError(t, err)

	assert.Equal(t, int64(8), res.MemoryMB)
	assert.Equal(t, int64(6), res.MemoryMBUsed)
	assert.Equal(t, 4, res.VCPUs)
}

func TestGetAvailableResourceQueryFailure(t *testing.T) {
	drv, fake := newTestDriver(t)
	fake.respond(xl+" info -n", fakeResult{code: 1, stderr: "cannot connect"})
	fake.respond(xl+" info -n cpu", fakeResult{stdout: "cpu0\n"})

	_, err := drv.GetAvailableResource()
	assert.Error(t, err)
}
