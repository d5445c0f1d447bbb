// Package websocket owns the lifecycle of the single realtime connection to
// the TechCrush chat backend and the event subscription registry attached to
// it.
package websocket

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	socket "github.com/zishang520/socket.io/clients/socket/v3"
	"github.com/zishang520/socket.io/v3/pkg/types"

	"github.com/techcrush-lms/chatwire/internal/identity"
	"github.com/techcrush-lms/chatwire/internal/wire"
	"github.com/techcrush-lms/chatwire/pkg/logger"
)

const (
	defaultPath           = "/socket.io"
	defaultConnectTimeout = 10 * time.Second
	defaultDialAttempts   = 3
	defaultDialDelay      = 2 * time.Second
	connectPollInterval   = 50 * time.Millisecond
)

// ErrNotConnected is returned by emit operations while no connection exists.
var ErrNotConnected = errors.New("not connected")

// Options configures a Client.
type Options struct {
	// ServerURL is the backend origin (scheme + host).
	ServerURL string
	// Path is the socket.io handshake path.
	Path string
	// DeviceID is the stable local device identifier sent as an auth param.
	DeviceID string
	// ConnectTimeout bounds a single connection attempt.
	ConnectTimeout time.Duration
	// DialAttempts is the bounded retry budget for Connect.
	DialAttempts int
	// DialDelay is the fixed delay between dial attempts.
	DialDelay time.Duration
	// Debug enables verbose socket logging.
	Debug bool
}

func (o *Options) applyDefaults() {
	if o.Path == "" {
		o.Path = defaultPath
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.DialAttempts <= 0 {
		o.DialAttempts = defaultDialAttempts
	}
	if o.DialDelay <= 0 {
		o.DialDelay = defaultDialDelay
	}
}

// Client owns a single socket.io connection authenticated by a bearer token.
//
// Client is constructed explicitly and passed by reference to whatever needs
// it; there is no package-level singleton. Callers are expected to serialize
// Connect/Disconnect.
type Client struct {
	opts Options

	mu             sync.RWMutex
	socket         *socket.Socket
	connected      bool
	token          string
	userID         string
	attached       map[string]bool
	lastConnectErr error

	registry *Registry

	hookMu       sync.Mutex
	onConnect    []func()
	onDisconnect []func(reason string)
}

// NewClient creates a disconnected client.
func NewClient(opts Options) *Client {
	opts.applyDefaults()
	c := &Client{
		opts:     opts,
		attached: make(map[string]bool),
	}
	c.registry = newRegistry(c)
	return c
}

// Registry returns the client's event subscription registry.
func (c *Client) Registry() *Registry {
	return c.registry
}

// UserID returns the identifier derived from the bearer token, empty before
// the first Connect.
func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// OnConnect registers a lifecycle callback invoked after every successful
// (re)connect.
func (c *Client) OnConnect(fn func()) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.onConnect = append(c.onConnect, fn)
}

// OnDisconnect registers a lifecycle callback invoked after the connection
// drops.
func (c *Client) OnDisconnect(fn func(reason string)) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.onDisconnect = append(c.onDisconnect, fn)
}

// Connect establishes the realtime connection.
//
// It is a no-op if a connection already exists. The user identifier is
// decoded from the token's claims before anything is dialed; an undecodable
// token fails immediately. Dialing retries up to DialAttempts times with a
// fixed DialDelay between attempts and returns an explicit error once the
// budget is exhausted. After the transport reports connected, a userOnline
// presence signal is emitted and all registered subscriptions are attached.
func (c *Client) Connect(token string) error {
	c.mu.Lock()
	if c.socket != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	userID, err := identity.UserIDFromToken(token)
	if err != nil {
		return fmt.Errorf("failed to derive identity: %w", err)
	}

	c.mu.Lock()
	c.token = token
	c.userID = userID
	c.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= c.opts.DialAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(c.opts.DialDelay)
		}

		if err := c.dial(token, userID); err != nil {
			lastErr = err
			logger.Debugf("dial attempt %d/%d failed: %v", attempt, c.opts.DialAttempts, err)
			continue
		}

		if c.WaitForConnect(c.opts.ConnectTimeout) {
			logger.Infof("connected to %s as %s", c.opts.ServerURL, userID)
			return nil
		}

		lastErr = c.takeConnectErr()
		if lastErr == nil {
			lastErr = fmt.Errorf("attempt %d timed out after %s", attempt, c.opts.ConnectTimeout)
		}
		c.teardown()
		logger.Debugf("dial attempt %d/%d: %v", attempt, c.opts.DialAttempts, lastErr)
	}

	return fmt.Errorf("unable to connect after %d attempts: %w", c.opts.DialAttempts, lastErr)
}

// dial opens a socket and installs the lifecycle handlers.
func (c *Client) dial(token, userID string) error {
	opts := socket.DefaultOptions()
	opts.SetPath(c.opts.Path)
	// Single low-overhead transport; no polling fallback negotiation.
	opts.SetTransports(types.NewSet(socket.WebSocket))
	opts.SetAuth(map[string]interface{}{
		"token":    token,
		"userId":   userID,
		"deviceId": c.opts.DeviceID,
	})

	sock, err := socket.Connect(c.opts.ServerURL, opts)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.socket = sock
	c.attached = make(map[string]bool)
	c.lastConnectErr = nil
	c.mu.Unlock()

	sock.On(types.EventName("connect"), func(args ...any) {
		c.mu.Lock()
		c.connected = true
		c.mu.Unlock()

		if c.opts.Debug {
			logger.Debugf("socket connected, id=%s", sock.Id())
		}

		// Presence first, then resubscribe, then application hooks.
		c.emitPresence(wire.EventUserOnline)
		c.registry.attachAll()
		c.runConnectHooks()
	})

	sock.On(types.EventName("disconnect"), func(args ...any) {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()

		reason := ""
		if len(args) > 0 {
			if r, ok := args[0].(string); ok {
				reason = r
			}
		}
		logger.Debugf("socket disconnected: %s", reason)
		c.runDisconnectHooks(reason)
	})

	sock.On(types.EventName("connect_error"), func(args ...any) {
		if len(args) == 0 {
			return
		}
		c.mu.Lock()
		c.lastConnectErr = fmt.Errorf("connect error: %v", args[0])
		c.mu.Unlock()
		logger.Warnf("socket connect error: %v", args[0])
	})

	return nil
}

func (c *Client) takeConnectErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.lastConnectErr
	c.lastConnectErr = nil
	return err
}

// teardown drops the current socket without emitting presence.
func (c *Client) teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.socket != nil {
		c.socket.Disconnect()
		c.socket = nil
	}
	c.connected = false
	c.attached = make(map[string]bool)
}

// Disconnect tears down the transport and clears the reference. Idempotent.
//
// A userOffline presence signal is emitted first while the transport is still
// usable.
func (c *Client) Disconnect() {
	c.mu.RLock()
	connected := c.connected
	c.mu.RUnlock()

	if connected {
		c.emitPresence(wire.EventUserOffline)
	}
	c.teardown()
}

// IsConnected returns the current connection state. Never fails.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	sock := c.socket
	connected := c.connected
	c.mu.RUnlock()

	if connected {
		return true
	}

	if sock != nil && sock.Connected() {
		c.mu.Lock()
		c.connected = true
		c.mu.Unlock()
		return true
	}

	return false
}

// WaitForConnect waits for the socket to report connected or times out.
func (c *Client) WaitForConnect(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if c.IsConnected() {
			return true
		}
		time.Sleep(connectPollInterval)
	}
	return c.IsConnected()
}

// Emit sends a fire-and-forget event.
func (c *Client) Emit(event string, payload any) error {
	c.mu.RLock()
	sock := c.socket
	c.mu.RUnlock()

	if sock == nil {
		return ErrNotConnected
	}

	logger.Tracef("emit %q", event)
	sock.Emit(event, payload)
	return nil
}

// EmitWithAck sends an event and waits for its single acknowledgment, bounded
// by ctx. A late acknowledgment after ctx expires is discarded; exactly one
// settlement happens per call.
func (c *Client) EmitWithAck(ctx context.Context, event string, payload any) (any, error) {
	c.mu.RLock()
	sock := c.socket
	c.mu.RUnlock()

	if sock == nil {
		return nil, ErrNotConnected
	}

	logger.Tracef("emit %q with ack", event)

	resultCh := make(chan any, 1)
	errCh := make(chan error, 1)

	sock.Emit(event, payload, func(args []any, err error) {
		if err != nil {
			errCh <- err
			return
		}
		if len(args) == 0 {
			resultCh <- nil
			return
		}
		resultCh <- args[0]
	})

	select {
	case res := <-resultCh:
		return res, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// bindDispatcher ensures a dispatcher for event is registered on the live
// socket. Safe to call repeatedly; each socket instance gets at most one
// dispatcher per event name.
func (c *Client) bindDispatcher(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sock := c.socket
	if sock == nil || c.attached[event] {
		return
	}
	c.attached[event] = true

	sock.On(types.EventName(event), func(args ...any) {
		var data any
		if len(args) > 0 {
			data = args[0]
		}
		c.registry.Dispatch(event, data)
	})
}

// presencePayload builds the typed payload for a presence event, nil for
// anything that is not a presence event.
func presencePayload(event, userID string) any {
	switch event {
	case wire.EventUserOnline:
		return wire.UserOnlinePayload{UserID: userID}
	case wire.EventUserOffline:
		return wire.UserOfflinePayload{UserID: userID}
	}
	return nil
}

func (c *Client) emitPresence(event string) {
	c.mu.RLock()
	sock := c.socket
	userID := c.userID
	c.mu.RUnlock()

	if sock == nil || userID == "" {
		return
	}
	payload := presencePayload(event, userID)
	if payload == nil {
		return
	}
	sock.Emit(event, payload)
}

func (c *Client) runConnectHooks() {
	c.hookMu.Lock()
	hooks := make([]func(), len(c.onConnect))
	copy(hooks, c.onConnect)
	c.hookMu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

func (c *Client) runDisconnectHooks(reason string) {
	c.hookMu.Lock()
	hooks := make([]func(reason string), len(c.onDisconnect))
	copy(hooks, c.onDisconnect)
	c.hookMu.Unlock()

	for _, fn := range hooks {
		fn(reason)
	}
}
