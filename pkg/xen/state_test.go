package xen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPowerStateFromToken(t *testing.T) {
	tests := []struct {
		token string
		want  PowerState
	}{
		{"running", StateRunning},
		{"blocked", StateRunning},
		{"paused", StatePaused},
		{"shutdown", StateShutdown},
		{"crashed", StateCrashed},
		{"dying", StateCrashed},
		{"migrating", StateNoState},
		{"", StateNoState},
		{"Running", StateRunning},
		{"  paused  ", StatePaused},
	}

	for _, tt := range tests {
		t.Run("token "+tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, PowerStateFromToken(tt.token))
		})
	}
}

func TestPowerStateString(t *testing.T) {
	assert.Equal(t, "Running", StateRunning.String())
	assert.Equal(t, "Paused", StatePaused.String())
	assert.Equal(t, "Shutdown", StateShutdown.String())
	assert.Equal(t, "Crashed", StateCrashed.String())
	assert.Equal(t, "No State", StateNoState.String())
	assert.Equal(t, "No State", PowerState(42).String())
}
