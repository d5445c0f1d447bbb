// Package chat implements the request/acknowledgment bridge for the seven
// chat operations, the presence tracker, and the session wiring that binds
// both to a live connection.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/techcrush-lms/chatwire/internal/wire"
)

// defaultRequestTimeout bounds every acknowledged request unless overridden.
const defaultRequestTimeout = 15 * time.Second

// ErrAckTimeout is returned when the far end never acknowledges a request
// within its timeout budget. The pending acknowledgment is discarded; a late
// ack settles nothing.
var ErrAckTimeout = errors.New("request timed out waiting for acknowledgment")

// ProtocolError carries the far end's message for an ack with a non-success
// status. Error() returns exactly that message.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return e.Message
}

// Conn is the transport surface the bridge needs. *websocket.Client
// implements it; tests substitute a fake.
type Conn interface {
	// Emit sends a fire-and-forget event.
	Emit(event string, payload any) error
	// EmitWithAck sends an event and returns its single acknowledgment,
	// bounded by ctx.
	EmitWithAck(ctx context.Context, event string, payload any) (any, error)
}

// Bridge converts the chat operations into validated request/response calls.
//
// Every operation validates its payload before anything is emitted, so a
// malformed request never costs a network round-trip. Acknowledged operations
// settle exactly once: with the ack's data on success, with a ProtocolError
// carrying the far end's message on failure, or with ErrAckTimeout if no
// acknowledgment arrives in time.
type Bridge struct {
	conn    Conn
	timeout time.Duration
}

// BridgeOption customizes a Bridge.
type BridgeOption func(*Bridge)

// WithRequestTimeout overrides the per-request acknowledgment timeout.
func WithRequestTimeout(d time.Duration) BridgeOption {
	return func(b *Bridge) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// NewBridge creates a Bridge on top of conn.
func NewBridge(conn Conn, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		conn:    conn,
		timeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RetrieveChats requests the caller's one-to-one chat list.
//
// This operation is fire-and-forget by protocol contract: the server answers
// on the "chats" push event, not on this request's ack. Subscribe via
// Session.OnChats to receive the result.
func (b *Bridge) RetrieveChats(p wire.RetrieveChatsPayload) error {
	if err := wire.Validate(&p); err != nil {
		return err
	}
	return b.conn.Emit(wire.EventRetrieveChats, p)
}

// RetrieveMessages requests a page of messages with a chat buddy.
func (b *Bridge) RetrieveMessages(ctx context.Context, p wire.RetrieveMessagesPayload) (json.RawMessage, error) {
	if err := wire.Validate(&p); err != nil {
		return nil, err
	}
	return b.request(ctx, wire.EventRetrieveMessages, p)
}

// RetrieveMessagePage requests a page of messages and decodes the ack data
// into a MessagePage.
func (b *Bridge) RetrieveMessagePage(ctx context.Context, p wire.RetrieveMessagesPayload) (*MessagePage, error) {
	data, err := b.RetrieveMessages(ctx, p)
	if err != nil {
		return nil, err
	}

	var page MessagePage
	if err := wire.DecodeInto(data, &page); err != nil {
		return nil, fmt.Errorf("%s: %w", wire.EventRetrieveMessages, err)
	}
	return &page, nil
}

// SendMessage sends a message (text and/or file) to a chat buddy.
func (b *Bridge) SendMessage(ctx context.Context, p wire.SendMessagePayload) (json.RawMessage, error) {
	if err := wire.Validate(&p); err != nil {
		return nil, err
	}
	return b.request(ctx, wire.EventSendMessage, p)
}

// CreateGroupChat creates a group chat with the given members.
func (b *Bridge) CreateGroupChat(ctx context.Context, p wire.CreateGroupChatPayload) (json.RawMessage, error) {
	if err := wire.Validate(&p); err != nil {
		return nil, err
	}
	return b.request(ctx, wire.EventCreateGroupChat, p)
}

// LeaveGroupChat removes the caller from a group chat.
func (b *Bridge) LeaveGroupChat(ctx context.Context, p wire.LeaveGroupChatPayload) (json.RawMessage, error) {
	if err := wire.Validate(&p); err != nil {
		return nil, err
	}
	return b.request(ctx, wire.EventLeaveGroupChat, p)
}

// RetrieveGroupChats requests the caller's group chat list.
func (b *Bridge) RetrieveGroupChats(ctx context.Context, p wire.RetrieveGroupChatsPayload) (json.RawMessage, error) {
	if err := wire.Validate(&p); err != nil {
		return nil, err
	}
	return b.request(ctx, wire.EventRetrieveGroupChats, p)
}

// UpdateGroupChat updates a group chat's name, description, or image.
func (b *Bridge) UpdateGroupChat(ctx context.Context, p wire.UpdateGroupChatPayload) (json.RawMessage, error) {
	if err := wire.Validate(&p); err != nil {
		return nil, err
	}
	return b.request(ctx, wire.EventUpdateGroupChat, p)
}

// request emits an acknowledged event and settles on its ack envelope.
func (b *Bridge) request(ctx context.Context, event string, payload any) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	raw, err := b.conn.EmitWithAck(ctx, event, payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", event, ErrAckTimeout)
		}
		return nil, fmt.Errorf("%s: %w", event, err)
	}

	ack, err := wire.DecodeAck(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", event, err)
	}
	if !ack.OK() {
		return nil, &ProtocolError{Message: ack.Message}
	}
	return ack.Data, nil
}
