package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

// MemoryCache provides an in-memory L1 cache for census participant lists,
// fronting the census repository for repeated run and drill-down requests.
type MemoryCache struct {
	participants map[uuid.UUID]participantEntry
	mu           sync.RWMutex
	ttl          time.Duration
}

type participantEntry struct {
	data      []models.Participant
	fetchedAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		participants: make(map[uuid.UUID]participantEntry),
		ttl:          ttl,
	}
}

// GetParticipants retrieves cached participants if fresh.
func (c *MemoryCache) GetParticipants(censusID uuid.UUID) ([]models.Participant, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.participants[censusID]
	if !exists {
		return nil, false
	}
	if time.Since(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.data, true
}

// SetParticipants caches a census participant list.
func (c *MemoryCache) SetParticipants(censusID uuid.UUID, data []models.Participant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.participants[censusID] = participantEntry{
		data:      data,
		fetchedAt: time.Now(),
	}
}

// Invalidate removes a census from the cache.
func (c *MemoryCache) Invalidate(censusID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.participants, censusID)
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.participants = make(map[uuid.UUID]participantEntry)
	c.mu.Unlock()
}
