package chat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/techcrush-lms/chatwire/internal/websocket"
	"github.com/techcrush-lms/chatwire/internal/wire"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	client := websocket.NewClient(websocket.Options{ServerURL: "http://example.invalid"})
	return NewSession(client)
}

func TestSessionTracksPresenceFromPushes(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	reg := s.Client().Registry()

	reg.Dispatch(wire.EventPresenceUpdate, map[string]any{"userId": "u1", "online": true})
	require.True(t, s.Presence.IsUserOnline("u1"))

	reg.Dispatch(wire.EventPresenceUpdate, map[string]any{"userId": "u1", "online": false})
	require.False(t, s.Presence.IsUserOnline("u1"))
}

func TestSessionIgnoresMalformedPresencePush(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	s.Client().Registry().Dispatch(wire.EventPresenceUpdate, "not an object")
	require.Empty(t, s.Presence.Online())
}

func TestSessionOnChats(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)

	var got []Chat
	s.OnChats(func(chats []Chat) { got = chats })

	s.Client().Registry().Dispatch(wire.EventChats, []any{
		map[string]any{"id": "c1", "chatBuddy": "u2", "lastMessage": "hey"},
	})

	require.Len(t, got, 1)
	require.Equal(t, "c1", got[0].ID)
	require.Equal(t, "u2", got[0].ChatBuddy)
}

func TestSessionOnNewMessage(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)

	var got wire.NewMessagePayload
	s.OnNewMessage(func(msg wire.NewMessagePayload) { got = msg })

	s.Client().Registry().Dispatch(wire.EventNewMessage, map[string]any{
		"id":      "m1",
		"sender":  "u2",
		"message": "hello",
	})

	require.Equal(t, "m1", got.ID)
	require.Equal(t, "u2", got.Sender)
	require.Equal(t, "hello", got.Message)
}

func TestSessionOnGroupChatCreatedWaitsForIdentity(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)

	called := false
	// No token decoded yet, so the per-user event name is unknown and the
	// subscription must not be registered eagerly under an empty user ID.
	s.OnGroupChatCreated(func(group wire.GroupChatCreatedPayload) { called = true })

	s.Client().Registry().Dispatch(wire.GroupChatCreatedEvent(""), map[string]any{"groupId": "g1"})
	require.False(t, called)
}
