package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	socket "github.com/zishang520/socket.io/clients/socket/v3"

	"github.com/techcrush-lms/chatwire/internal/wire"
)

func TestConnectRejectsUndecodableToken(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{ServerURL: "http://example.invalid"})

	// Identity derivation happens before any dialing, so this fails fast
	// without network access.
	err := c.Connect("garbage")
	require.Error(t, err)
	require.False(t, c.IsConnected())
	require.Empty(t, c.UserID())
}

func TestConnectNoopWhenAlreadyOpen(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{ServerURL: "http://example.invalid"})

	// Seed an existing transport.
	c.mu.Lock()
	c.socket = &socket.Socket{}
	c.mu.Unlock()

	// The guard precedes identity decoding and dialing: an undecodable token
	// would fail loudly on either path, so a nil error proves neither ran and
	// no second transport was created.
	require.NoError(t, c.Connect("garbage"))
	require.Empty(t, c.UserID())
}

func TestPresencePayloadTyped(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		wire.UserOnlinePayload{UserID: "u1"},
		presencePayload(wire.EventUserOnline, "u1"))
	require.Equal(t,
		wire.UserOfflinePayload{UserID: "u1"},
		presencePayload(wire.EventUserOffline, "u1"))
	require.Nil(t, presencePayload(wire.EventSendMessage, "u1"))
}

func TestEmitWhileDisconnected(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{ServerURL: "http://example.invalid"})

	err := c.Emit("sendMessage", map[string]any{})
	require.ErrorIs(t, err, ErrNotConnected)

	_, err = c.EmitWithAck(context.Background(), "sendMessage", map[string]any{})
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestDisconnectIdempotent(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{ServerURL: "http://example.invalid"})
	c.Disconnect()
	c.Disconnect()
	require.False(t, c.IsConnected())
}

func TestWaitForConnectTimesOut(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{ServerURL: "http://example.invalid"})

	start := time.Now()
	require.False(t, c.WaitForConnect(120*time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()

	opts := Options{ServerURL: "http://example.invalid"}
	opts.applyDefaults()

	require.Equal(t, defaultPath, opts.Path)
	require.Equal(t, defaultConnectTimeout, opts.ConnectTimeout)
	require.Equal(t, defaultDialAttempts, opts.DialAttempts)
	require.Equal(t, defaultDialDelay, opts.DialDelay)
}

func TestLifecycleHooksInvoked(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{ServerURL: "http://example.invalid"})

	var connects int
	var reasons []string
	c.OnConnect(func() { connects++ })
	c.OnDisconnect(func(reason string) { reasons = append(reasons, reason) })

	c.runConnectHooks()
	c.runDisconnectHooks("transport close")

	require.Equal(t, 1, connects)
	require.Equal(t, []string{"transport close"}, reasons)
}
