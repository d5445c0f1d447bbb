package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CHATWIRE_HOME_DIR", filepath.Join(home, ".chatwire"))
	t.Setenv("CHATWIRE_SERVER_URL", "")
	t.Setenv("CHATWIRE_DEBUG", "")
	t.Setenv("DEBUG", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, defaultServerURL, cfg.ServerURL)
	require.Equal(t, defaultSocketPath, cfg.SocketPath)
	require.Equal(t, defaultRequestTimeout, cfg.RequestTimeout)
	require.Equal(t, defaultConnectAttempts, cfg.ConnectAttempts)
	require.False(t, cfg.Debug)
	require.DirExists(t, cfg.ChatwireHome)
	require.Equal(t, filepath.Join(cfg.ChatwireHome, "access.token"), cfg.TokenFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHATWIRE_HOME_DIR", filepath.Join(t.TempDir(), ".chatwire"))
	t.Setenv("CHATWIRE_SERVER_URL", "http://localhost:4000")
	t.Setenv("CHATWIRE_REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("CHATWIRE_CONNECT_ATTEMPTS", "5")
	t.Setenv("CHATWIRE_DEBUG", "1")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:4000", cfg.ServerURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, 5, cfg.ConnectAttempts)
	require.True(t, cfg.Debug)
}

func TestLoadIgnoresBadNumericOverrides(t *testing.T) {
	t.Setenv("CHATWIRE_HOME_DIR", filepath.Join(t.TempDir(), ".chatwire"))
	t.Setenv("CHATWIRE_REQUEST_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("CHATWIRE_CONNECT_ATTEMPTS", "-2")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, defaultRequestTimeout, cfg.RequestTimeout)
	require.Equal(t, defaultConnectAttempts, cfg.ConnectAttempts)
}
