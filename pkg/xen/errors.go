package xen

import (
	"errors"
	"fmt"
)

// ConfigError reports an unusable driver configuration, discovered at
// construction time before any operation is attempted.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// NotFoundError reports that a queried instance does not exist. Query
// failures on the info path are reclassified into this type; the
// underlying cause stays reachable through Unwrap so callers can still
// distinguish a genuinely missing domain from a failed query.
type NotFoundError struct {
	Instance string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("instance %s not found: %v", e.Instance, e.Err)
	}
	return fmt.Sprintf("instance %s not found", e.Instance)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError reports tool output that did not match the expected
// structured or line-oriented format.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse xl output: %s", e.Msg)
}

// errNoDomains signals an empty domain listing. It never escapes the
// package; GetInfo converts it into a NotFoundError.
var errNoDomains = errors.New("no domains in listing")
