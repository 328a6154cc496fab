package ssh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stealthiumio/nova/pkg/config"
)

func TestNewClient(t *testing.T) {
	cfg := &config.RemoteConfig{
		Host:     "192.168.1.100",
		User:     "root",
		KeyPath:  "/home/user/.ssh/id_rsa",
		Password: "password",
	}

	client := NewClient(cfg)
	assert.NotNil(t, client)
	assert.Equal(t, cfg, client.config)
}

func TestAuthMethods(t *testing.T) {
	t.Run("password only", func(t *testing.T) {
		client := NewClient(&config.RemoteConfig{
			Host:     "192.168.1.100",
			User:     "root",
			Password: "secret",
		})

		methods, err := client.authMethods()
		require.NoError(t, err)
		assert.Len(t, methods, 1)
	})

	t.Run("no credentials", func(t *testing.T) {
		client := NewClient(&config.RemoteConfig{
			Host: "192.168.1.100",
			User: "root",
		})

		_, err := client.authMethods()
		assert.Error(t, err)
	})

	t.Run("missing key file", func(t *testing.T) {
		client := NewClient(&config.RemoteConfig{
			Host:    "192.168.1.100",
			User:    "root",
			KeyPath: "/nonexistent/id_rsa",
		})

		_, err := client.authMethods()
		assert.Error(t, err)
	})
}
