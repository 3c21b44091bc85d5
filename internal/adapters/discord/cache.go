package discord

import "sync"

type lookupKind string

const (
	kindChannel lookupKind = "channel"
	kindRole    lookupKind = "role"
	kindMember  lookupKind = "member"
)

// lookupCache remembers names fetched over REST for entities the gateway
// state did not have.
type lookupCache struct {
	mu    sync.RWMutex
	items map[string]string
}

func newLookupCache() *lookupCache {
	return &lookupCache{
		items: make(map[string]string),
	}
}

func (c *lookupCache) Get(guildID string, kind lookupKind, id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.items[c.key(guildID, kind, id)]
	return name, ok
}

func (c *lookupCache) Set(guildID string, kind lookupKind, id, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.key(guildID, kind, id)] = name
}

func (c *lookupCache) Invalidate(guildID string, kind lookupKind, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, c.key(guildID, kind, id))
}

func (c *lookupCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *lookupCache) key(guildID string, kind lookupKind, id string) string {
	return guildID + ":" + string(kind) + ":" + id
}
