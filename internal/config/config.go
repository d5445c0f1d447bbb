package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// defaultServerURL is the production TechCrush API origin.
	defaultServerURL = "https://api.techcrush.live"
	// defaultSocketPath is the socket.io handshake path on the server.
	defaultSocketPath = "/socket.io"
	// defaultRequestTimeout bounds every acknowledged chat request.
	defaultRequestTimeout = 15 * time.Second
	// defaultConnectTimeout bounds a single connection attempt.
	defaultConnectTimeout = 10 * time.Second
	// defaultConnectAttempts is the bounded dial retry budget.
	defaultConnectAttempts = 3
	// defaultConnectDelay is the fixed delay between dial attempts.
	defaultConnectDelay = 2 * time.Second
)

type Config struct {
	// ServerURL is the base URL of the TechCrush backend API.
	ServerURL string
	// SocketPath is the socket.io handshake path.
	SocketPath string

	// ChatwireHome is the directory where chatwire stores local state.
	ChatwireHome string
	// SecretKey is the path to the local secret key file.
	SecretKey string
	// TokenFile is the path to the encrypted access token file.
	TokenFile string
	// DeviceFile is the path to the stable device ID file.
	DeviceFile string

	// RequestTimeout bounds every acknowledged chat request.
	RequestTimeout time.Duration
	// ConnectTimeout bounds a single connection attempt.
	ConnectTimeout time.Duration
	// ConnectAttempts is the bounded dial retry budget.
	ConnectAttempts int
	// ConnectDelay is the fixed delay between dial attempts.
	ConnectDelay time.Duration

	// Debug enables verbose logging.
	Debug bool
}

// Load loads configuration from the environment (and an optional .env file)
// with defaults.
func Load() (*Config, error) {
	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	chatwireHome := os.Getenv("CHATWIRE_HOME_DIR")
	if chatwireHome == "" {
		chatwireHome = filepath.Join(homeDir, ".chatwire")
	}
	if err := os.MkdirAll(chatwireHome, 0700); err != nil {
		return nil, fmt.Errorf("failed to create chatwire home: %w", err)
	}

	serverURL := os.Getenv("CHATWIRE_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	socketPath := os.Getenv("CHATWIRE_SOCKET_PATH")
	if socketPath == "" {
		socketPath = defaultSocketPath
	}

	debug := os.Getenv("DEBUG") == "true" || os.Getenv("DEBUG") == "1"
	if !debug {
		debug = os.Getenv("CHATWIRE_DEBUG") == "true" || os.Getenv("CHATWIRE_DEBUG") == "1"
	}

	return &Config{
		ServerURL:       serverURL,
		SocketPath:      socketPath,
		ChatwireHome:    chatwireHome,
		SecretKey:       filepath.Join(chatwireHome, "secret.key"),
		TokenFile:       filepath.Join(chatwireHome, "access.token"),
		DeviceFile:      filepath.Join(chatwireHome, "device.id"),
		RequestTimeout:  durationEnv("CHATWIRE_REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout),
		ConnectTimeout:  durationEnv("CHATWIRE_CONNECT_TIMEOUT_SECONDS", defaultConnectTimeout),
		ConnectAttempts: intEnv("CHATWIRE_CONNECT_ATTEMPTS", defaultConnectAttempts),
		ConnectDelay:    durationEnv("CHATWIRE_CONNECT_DELAY_SECONDS", defaultConnectDelay),
		Debug:           debug,
	}, nil
}

// durationEnv reads a whole-second duration override from the environment.
func durationEnv(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

func intEnv(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
