package xen

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// domainRecord is one entry of the JSON listing produced by
// `xl list -l`. Pointer fields let the parser distinguish an absent
// field from a zero value.
type domainRecord struct {
	Name   *string `json:"name"`
	State  *string `json:"state"`
	MaxMem *uint64 `json:"maxmem"`
	Mem    *uint64 `json:"mem"`
	VCPUs  *uint   `json:"vcpus"`
}

// parseDomainList decodes the JSON array emitted by `xl list -l` and
// returns its first record. An empty array means the queried domain
// does not exist. Required fields must be present; a listing without
// them is a ParseError rather than a silently defaulted record.
func parseDomainList(output string) (*domainRecord, error) {
	var records []domainRecord
	if err := json.Unmarshal([]byte(output), &records); err != nil {
		return nil, &ParseError{Msg: fmt.Sprintf("invalid domain listing JSON: %v", err)}
	}
	if len(records) == 0 {
		return nil, errNoDomains
	}

	rec := records[0]
	required := []struct {
		name    string
		present bool
	}{
		{"state", rec.State != nil},
		{"maxmem", rec.MaxMem != nil},
		{"mem", rec.Mem != nil},
		{"vcpus", rec.VCPUs != nil},
	}
	for _, field := range required {
		if !field.present {
			return nil, &ParseError{Msg: fmt.Sprintf("domain listing is missing required field %q", field.name)}
		}
	}

	return &rec, nil
}

// parseNameList decodes the tabular output of `xl list`: exactly one
// header line, then one domain per line with the name as the first
// whitespace-delimited token. Blank lines are skipped; output with no
// header at all is a ParseError.
func parseNameList(output string) ([]string, error) {
	trimmed := strings.TrimRight(output, "\n")
	if strings.TrimSpace(trimmed) == "" {
		return nil, &ParseError{Msg: "domain list output is empty, expected a header line"}
	}

	lines := strings.Split(trimmed, "\n")
	names := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		names = append(names, fields[0])
	}

	return names, nil
}

// parseHostMemory scans `xl info -n` output for the total_memory and
// free_memory lines and parses the numeric token after the colon.
// Unmatched or malformed lines are ignored.
func parseHostMemory(output string) (totalKB, freeKB int64) {
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.Contains(line, "total_memory"):
			if v, ok := trailingInt(line); ok {
				totalKB = v
			}
		case strings.Contains(line, "free_memory"):
			if v, ok := trailingInt(line); ok {
				freeKB = v
			}
		}
	}
	return totalKB, freeKB
}

// trailingInt parses the integer after the first colon of a
// `key : value` line
func trailingInt(line string) (int64, bool) {
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// countCPULines counts the lines of `xl info -n cpu` output, one per
// logical CPU.
func countCPULines(output string) int {
	trimmed := strings.TrimRight(output, "\n")
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "\n"))
}
