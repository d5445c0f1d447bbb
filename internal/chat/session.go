package chat

import (
	"sync"

	"github.com/techcrush-lms/chatwire/internal/wire"
	"github.com/techcrush-lms/chatwire/internal/websocket"
	"github.com/techcrush-lms/chatwire/pkg/logger"
)

// Session binds a connection, the bridge, and the presence tracker together
// for one authenticated user. It is owned by the composition root and passed
// by reference to whatever needs it.
type Session struct {
	client *websocket.Client

	// Bridge issues the chat operations over the session's connection.
	Bridge *Bridge
	// Presence tracks online users from inbound presence events.
	Presence *Presence
}

// NewSession wires a session on top of client. Presence updates are consumed
// immediately; the set is cleared whenever the connection drops.
func NewSession(client *websocket.Client, opts ...BridgeOption) *Session {
	s := &Session{
		client:   client,
		Bridge:   NewBridge(client, opts...),
		Presence: NewPresence(),
	}

	client.Registry().On(wire.EventPresenceUpdate, func(data any) {
		var update wire.PresenceUpdatePayload
		if err := wire.DecodeInto(data, &update); err != nil {
			logger.Warnf("bad presence update: %v", err)
			return
		}
		s.Presence.Apply(update)
	})

	client.OnDisconnect(func(reason string) {
		s.Presence.Reset()
	})

	return s
}

// Client returns the underlying connection.
func (s *Session) Client() *websocket.Client {
	return s.client
}

// Connect establishes the session's connection.
func (s *Session) Connect(token string) error {
	return s.client.Connect(token)
}

// Disconnect tears the connection down. Idempotent.
func (s *Session) Disconnect() {
	s.client.Disconnect()
}

// OnChats subscribes to the chat list push that answers retrieveChats.
func (s *Session) OnChats(cb func(chats []Chat)) {
	s.client.Registry().On(wire.EventChats, func(data any) {
		var chats []Chat
		if err := wire.DecodeInto(data, &chats); err != nil {
			logger.Warnf("bad chats push: %v", err)
			return
		}
		cb(chats)
	})
}

// OnNewMessage subscribes to inbound message pushes.
func (s *Session) OnNewMessage(cb func(msg wire.NewMessagePayload)) {
	s.client.Registry().On(wire.EventNewMessage, func(data any) {
		var msg wire.NewMessagePayload
		if err := wire.DecodeInto(data, &msg); err != nil {
			logger.Warnf("bad message push: %v", err)
			return
		}
		cb(msg)
	})
}

// OnGroupChatCreated subscribes to the per-user group-created notification.
// The event name embeds the user ID, which is only known once a token has
// been decoded, so registration is deferred to the first connect when needed.
func (s *Session) OnGroupChatCreated(cb func(group wire.GroupChatCreatedPayload)) {
	handler := func(data any) {
		var group wire.GroupChatCreatedPayload
		if err := wire.DecodeInto(data, &group); err != nil {
			logger.Warnf("bad group-created push: %v", err)
			return
		}
		cb(group)
	}

	if userID := s.client.UserID(); userID != "" {
		s.client.Registry().On(wire.GroupChatCreatedEvent(userID), handler)
		return
	}

	var once sync.Once
	s.client.OnConnect(func() {
		userID := s.client.UserID()
		if userID == "" {
			return
		}
		once.Do(func() {
			s.client.Registry().On(wire.GroupChatCreatedEvent(userID), handler)
		})
	})
}
