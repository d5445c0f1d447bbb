package chat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/techcrush-lms/chatwire/internal/wire"
)

func TestPresenceOnlineOffline(t *testing.T) {
	t.Parallel()

	p := NewPresence()

	require.False(t, p.IsUserOnline("u1"), "never-seen user must be offline")

	p.Apply(wire.PresenceUpdatePayload{UserID: "u1", Online: true})
	require.True(t, p.IsUserOnline("u1"))

	p.Apply(wire.PresenceUpdatePayload{UserID: "u1", Online: false})
	require.False(t, p.IsUserOnline("u1"))
}

func TestPresenceOfflineForUnknownUserIsNoop(t *testing.T) {
	t.Parallel()

	p := NewPresence()
	p.Apply(wire.PresenceUpdatePayload{UserID: "ghost", Online: false})
	require.False(t, p.IsUserOnline("ghost"))
}

func TestPresenceIgnoresEmptyUserID(t *testing.T) {
	t.Parallel()

	p := NewPresence()
	p.Apply(wire.PresenceUpdatePayload{UserID: "", Online: true})
	require.Empty(t, p.Online())
}

func TestPresenceOnlineSorted(t *testing.T) {
	t.Parallel()

	p := NewPresence()
	p.Apply(wire.PresenceUpdatePayload{UserID: "u2", Online: true})
	p.Apply(wire.PresenceUpdatePayload{UserID: "u1", Online: true})
	p.Apply(wire.PresenceUpdatePayload{UserID: "u3", Online: true})

	require.Equal(t, []string{"u1", "u2", "u3"}, p.Online())
}

func TestPresenceReset(t *testing.T) {
	t.Parallel()

	p := NewPresence()
	p.Apply(wire.PresenceUpdatePayload{UserID: "u1", Online: true})
	p.Apply(wire.PresenceUpdatePayload{UserID: "u2", Online: true})

	p.Reset()

	require.False(t, p.IsUserOnline("u1"))
	require.False(t, p.IsUserOnline("u2"))
	require.Empty(t, p.Online())
}
