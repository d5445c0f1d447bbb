package chat

import (
	"sort"
	"sync"

	"github.com/techcrush-lms/chatwire/internal/wire"
)

// Presence tracks which users are currently online.
//
// Membership reflects the most recent presence event received; the server is
// authoritative. The set is cleared when the connection drops, since presence
// pushes cannot reach a dead socket, and rebuilds from events after
// reconnect.
type Presence struct {
	mu     sync.RWMutex
	online map[string]struct{}
}

// NewPresence creates an empty tracker.
func NewPresence() *Presence {
	return &Presence{online: make(map[string]struct{})}
}

// Apply records a single user's online/offline transition.
func (p *Presence) Apply(update wire.PresenceUpdatePayload) {
	if update.UserID == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if update.Online {
		p.online[update.UserID] = struct{}{}
	} else {
		delete(p.online, update.UserID)
	}
}

// IsUserOnline reports whether userID is currently considered online.
// Unknown identifiers are offline.
func (p *Presence) IsUserOnline(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.online[userID]
	return ok
}

// Online returns the online user IDs, sorted for stable output.
func (p *Presence) Online() []string {
	p.mu.RLock()
	ids := make([]string, 0, len(p.online))
	for id := range p.online {
		ids = append(ids, id)
	}
	p.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Reset empties the set.
func (p *Presence) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online = make(map[string]struct{})
}
