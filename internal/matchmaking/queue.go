package matchmaking

import (
	"sync"
	"time"
)

// PrefAny matches any gender preference
const PrefAny = "any"

// WaitingEntry is one user waiting for a partner. Lives only in process
// memory; the queue holds at most one entry per user.
type WaitingEntry struct {
	UserID     int64
	GenderPref string
	AgePref    *int
	EnqueuedAt time.Time
}

// Queue is the in-memory waiting pool. Every compound operation (scan,
// remove, enqueue) happens under one mutex, so two concurrent match
// requests can never select the same waiting partner.
type Queue struct {
	mu      sync.Mutex
	entries []*WaitingEntry
	byUser  map[int64]*WaitingEntry
}

func NewQueue() *Queue {
	return &Queue{byUser: make(map[int64]*WaitingEntry)}
}

// MatchOrEnqueue atomically searches the pool oldest-first for the first
// entry satisfying compatible and removes it. If none matches, the
// requester replaces any prior entry of its own at the tail. The requester
// never matches itself.
func (q *Queue) MatchOrEnqueue(e *WaitingEntry, compatible func(a, b *WaitingEntry) bool) (*WaitingEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.removeLocked(e.UserID)

	for i, candidate := range q.entries {
		if compatible(e, candidate) {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			delete(q.byUser, candidate.UserID)
			return candidate, true
		}
	}

	q.entries = append(q.entries, e)
	q.byUser[e.UserID] = e
	return nil, false
}

// TakeHeadOrEnqueueFront atomically pops the oldest waiting entry,
// ignoring preferences. If the pool is empty the requester is inserted at
// the head instead of the tail.
func (q *Queue) TakeHeadOrEnqueueFront(e *WaitingEntry) (*WaitingEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.removeLocked(e.UserID)

	if len(q.entries) > 0 {
		head := q.entries[0]
		q.entries = q.entries[1:]
		delete(q.byUser, head.UserID)
		return head, true
	}

	q.entries = append([]*WaitingEntry{e}, q.entries...)
	q.byUser[e.UserID] = e
	return nil, false
}

// EnqueueFront inserts an entry at the head of the pool, replacing any
// prior entry for the same user.
func (q *Queue) EnqueueFront(e *WaitingEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removeLocked(e.UserID)
	q.entries = append([]*WaitingEntry{e}, q.entries...)
	q.byUser[e.UserID] = e
}

// Remove drops a user's waiting entry if present
func (q *Queue) Remove(userID int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.removeLocked(userID)
}

// EvictBefore removes every entry enqueued before the cutoff and returns
// the evicted user ids.
func (q *Queue) EvictBefore(cutoff time.Time) []int64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	var evicted []int64
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.EnqueuedAt.Before(cutoff) {
			delete(q.byUser, e.UserID)
			evicted = append(evicted, e.UserID)
		} else {
			kept = append(kept, e)
		}
	}
	q.entries = kept
	return evicted
}

// Contains reports whether a user is waiting
func (q *Queue) Contains(userID int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.byUser[userID]
	return ok
}

// Len returns the number of waiting users
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *Queue) removeLocked(userID int64) bool {
	if _, ok := q.byUser[userID]; !ok {
		return false
	}
	delete(q.byUser, userID)
	for i, e := range q.entries {
		if e.UserID == userID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			break
		}
	}
	return true
}
