package matchmaking

import (
	"sync"
)

// PairTable is the in-memory id→id routing map for active pairings. It is
// a cache over the persisted pairing rows and must be updated on every
// pairing mutation.
type PairTable struct {
	mu       sync.RWMutex
	partners map[int64]int64
}

func NewPairTable() *PairTable {
	return &PairTable{partners: make(map[int64]int64)}
}

// Partner returns the active partner of a user, if any
func (t *PairTable) Partner(userID int64) (int64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	partner, ok := t.partners[userID]
	return partner, ok
}

// Set links two users in both directions
func (t *PairTable) Set(userA, userB int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.partners[userA] = userB
	t.partners[userB] = userA
}

// Delete unlinks a user and their partner. Returns the vacated partner id
// and whether a link existed.
func (t *PairTable) Delete(userID int64) (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	partner, ok := t.partners[userID]
	if !ok {
		return 0, false
	}
	delete(t.partners, userID)
	delete(t.partners, partner)
	return partner, true
}

// Load replaces the table contents from directional (user, partner) rows
func (t *PairTable) Load(rows map[int64]int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.partners = make(map[int64]int64, len(rows))
	for user, partner := range rows {
		t.partners[user] = partner
	}
}

// Len returns the number of directional links
func (t *PairTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.partners)
}
