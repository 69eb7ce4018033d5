// ABOUTME: In-memory Cache implementation
// ABOUTME: Lets hosts and tests run the pipeline without a real persistent store

package conversation

import (
	"context"
	"sync"
)

// MemoryCache is a map-backed Cache. It marks saved records synchronized
// and returns an independent copy, the way a real store round-trip would.
type MemoryCache struct {
	mu     sync.RWMutex
	bySID  map[string]*Conversation
	reject bool
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{bySID: make(map[string]*Conversation)}
}

// Save stores a copy of model keyed by SID and returns the stored copy.
func (c *MemoryCache) Save(ctx context.Context, model *Conversation) (*Conversation, bool) {
	if model == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reject {
		return nil, false
	}

	stored := *model
	stored.Synchronized = true
	if len(model.Attributes) > 0 {
		stored.Attributes = make(map[string]any, len(model.Attributes))
		for k, v := range model.Attributes {
			stored.Attributes[k] = v
		}
	}
	c.bySID[stored.SID] = &stored

	result := stored
	return &result, true
}

// Get returns the stored record for sid, if any.
func (c *MemoryCache) Get(sid string) (*Conversation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stored, ok := c.bySID[sid]
	if !ok {
		return nil, false
	}
	result := *stored
	return &result, true
}

// Len returns the number of stored records.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bySID)
}

// SetReject makes subsequent saves yield nothing, simulating a store that
// declines writes.
func (c *MemoryCache) SetReject(reject bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reject = reject
}
