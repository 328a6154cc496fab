package xen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDomainList(t *testing.T) {
	rec, err := parseDomainList(`[{"name": "vm1", "state": "blocked", "maxmem": 1024, "mem": 512, "vcpus": 4}]`)
	require.NoError(t, err)

	assert.Equal(t, "blocked", *rec.State)
	assert.Equal(t, uint64(1024), *rec.MaxMem)
	assert.Equal(t, uint64(512), *rec.Mem)
	assert.Equal(t, uint(4), *rec.VCPUs)
}

func TestParseDomainListEmpty(t *testing.T) {
	_, err := parseDomainList("[]")
	assert.True(t, errors.Is(err, errNoDomains))
}

func TestParseDomainListInvalidJSON(t *testing.T) {
	_, err := parseDomainList("NAME STATE\nvm1 running\n")

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseDomainListMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing state", `[{"name": "vm1", "maxmem": 1024, "mem": 512, "vcpus": 4}]`},
		{"missing maxmem", `[{"name": "vm1", "state": "running", "mem": 512, "vcpus": 4}]`},
		{"missing mem", `[{"name": "vm1", "state": "running", "maxmem": 1024, "vcpus": 4}]`},
		{"missing vcpus", `[{"name": "vm1", "state": "running", "maxmem": 1024, "mem": 512}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDomainList(tt.input)
			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestParseNameList(t *testing.T) {
	names, err := parseNameList("NAME STATE MEM VCPUS\nvm1 running 512 2\nvm2 paused 256 1\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"vm1", "vm2"}, names)
}

func TestParseNameListHeaderOnly(t *testing.T) {
	names, err := parseNameList("NAME STATE MEM VCPUS\n")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestParseNameListSkipsBlankLines(t *testing.T) {
	names, err := parseNameList("NAME STATE MEM VCPUS\nvm1 running 512 2\n   \nvm2 paused 256 1\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"vm1", "vm2"}, names)
}

func TestParseNameListMissingHeader(t *testing.T) {
	_, err := parseNameList("")

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseHostMemory(t *testing.T) {
	output := "host : xen0\ntotal_memory : 8192\nfree_memory : 2048\nnr_nodes : 1\n"

	total, free := parseHostMemory(output)
	assert.Equal(t, int64(8192), total)
	assert.Equal(t, int64(2048), free)
}

func TestParseHostMemoryIgnoresMalformedLines(t *testing.T) {
	output := "total_memory : not-a-number\nfree_memory : 2048\n"

	total, free := parseHostMemory(output)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, int64(2048), free)
}

func TestParseHostMemoryNoMatches(t *testing.T) {
	total, free := parseHostMemory("host : xen0\nnr_cpus : 4\n")
	assert.Equal(t, int64(0), total)
	assert.Equal(t, int64(0), free)
}

func TestTrailingInt(t *testing.T) {
	tests := []struct {
		line  string
		want  int64
		valid bool
	}{
		{"total_memory : 8192", 8192, true},
		{"total_memory:8192", 8192, true},
		{"total_memory 8192", 0, false},
		{"total_memory : abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := trailingInt(tt.line)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountCPULines(t *testing.T) {
	assert.Equal(t, 0, countCPULines(""))
	assert.Equal(t, 1, countCPULines("cpu0\n"))
	assert.Equal(t, 4, countCPULines("cpu0\ncpu1\ncpu2\ncpu3\n"))
	assert.Equal(t, 4, countCPULines("cpu0\ncpu1\ncpu2\ncpu3"))
}
