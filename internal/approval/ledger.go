// Package approval holds pending mutating commands between the turn
// that proposes them and the turn that resolves them.
package approval

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Pending is a reified proposal awaiting the user's yes/no.
type Pending struct {
	ID                string    `json:"id"`
	Intent            string    `json:"intent"`
	Argument          string    `json:"argument,omitempty"`
	OriginalUtterance string    `json:"original_utterance"`
	SuggestedCommand  string    `json:"suggested_command"`
	TaskDescription   string    `json:"task_description"`
	Urgency           string    `json:"urgency"`
	CreatedAt         time.Time `json:"created_at"`
}

// Ledger is the session-scoped store of pending approvals. Ids are
// monotonic within a session, so "the most recent" is unambiguous.
//
// A non-zero TTL makes entries expire; an expired entry is swept at
// the next ledger access, which the router reports as no_pending
// (implicit rejection). There is no background eviction.
type Ledger struct {
	mu      sync.Mutex
	seq     uint64
	ttl     time.Duration
	entries map[string]*Pending
	order   []string

	// now is swappable for tests.
	now func() time.Time
}

// NewLedger creates an empty ledger. ttl <= 0 disables expiry.
func NewLedger(ttl time.Duration) *Ledger {
	return &Ledger{
		ttl:     ttl,
		entries: make(map[string]*Pending),
		now:     time.Now,
	}
}

// Insert stores a new pending approval and returns its generated id.
func (l *Ledger) Insert(p *Pending) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep()

	l.seq++
	p.ID = fmt.Sprintf("apr-%06d-%s", l.seq, uuid.NewString()[:8])
	p.CreatedAt = l.now()

	l.entries[p.ID] = p
	l.order = append(l.order, p.ID)
	return p.ID
}

// Resolve removes and returns the entry if present. A second resolve
// of the same id yields false.
func (l *Ledger) Resolve(id string) (*Pending, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep()

	p, ok := l.entries[id]
	if !ok {
		return nil, false
	}
	l.remove(id)
	return p, true
}

// Get returns the entry if present, without removing it.
func (l *Ledger) Get(id string) (*Pending, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep()

	p, ok := l.entries[id]
	return p, ok
}

// MostRecent returns the id of the newest pending approval.
func (l *Ledger) MostRecent() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep()

	if len(l.order) == 0 {
		return "", false
	}
	return l.order[len(l.order)-1], true
}

// Len returns the number of pending approvals.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep()
	return len(l.entries)
}

// sweep drops expired entries. Caller holds the lock.
func (l *Ledger) sweep() {
	if l.ttl <= 0 {
		return
	}
	cutoff := l.now().Add(-l.ttl)
	for id, p := range l.entries {
		if p.CreatedAt.Before(cutoff) {
			l.remove(id)
		}
	}
}

// remove deletes an entry and its order slot. Caller holds the lock.
func (l *Ledger) remove(id string) {
	delete(l.entries, id)
	for i, oid := range l.order {
		if oid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}
