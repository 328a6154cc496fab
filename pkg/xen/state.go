package xen

import "strings"

// PowerState is the canonical power state of a domain
type PowerState int

const (
	// StateNoState means the hypervisor reported a state this driver
	// does not recognize
	StateNoState PowerState = iota
	// StateRunning covers both actively running and blocked domains
	StateRunning
	// StatePaused means the domain is suspended in memory
	StatePaused
	// StateShutdown means the domain has shut down
	StateShutdown
	// StateCrashed covers crashed and dying domains
	StateCrashed
)

// String returns the string representation of the power state
func (s PowerState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateShutdown:
		return "Shutdown"
	case StateCrashed:
		return "Crashed"
	default:
		return "No State"
	}
}

// powerStateMap maps raw xl domain state tokens to canonical power states
var powerStateMap = map[string]PowerState{
	"running":  StateRunning,
	"blocked":  StateRunning,
	"paused":   StatePaused,
	"shutdown": StateShutdown,
	"crashed":  StateCrashed,
	"dying":    StateCrashed,
}

// PowerStateFromToken converts a raw xl state token into a canonical
// power state. The mapping is total: unrecognized tokens map to
// StateNoState rather than failing the caller.
func PowerStateFromToken(token string) PowerState {
	if state, ok := powerStateMap[strings.ToLower(strings.TrimSpace(token))]; ok {
		return state
	}
	return StateNoState
}
