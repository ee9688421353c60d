package cache

import (
	"sync"

	"github.com/parsascontentcorner/discordlite/model"
)

// SharedUser is the canonical record for one user id. Every member,
// presence, and channel recipient that refers to the user holds the same
// *SharedUser, so a patch through any path is observed through all of them.
type SharedUser struct {
	mu sync.RWMutex
	u  model.User
}

// NewSharedUser wraps a wire user in a fresh shared record.
func NewSharedUser(u model.User) *SharedUser {
	return &SharedUser{u: u}
}

// ID returns the user's id. IDs are immutable, so no lock is required by
// callers holding the record.
func (s *SharedUser) ID() model.UserID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.u.ID
}

// User returns a snapshot of the record.
func (s *SharedUser) User() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.u
}

// patch overwrites the record with the incoming wire value.
func (s *SharedUser) patch(in model.User) {
	s.mu.Lock()
	s.u = in
	s.mu.Unlock()
}

// upsertUser canonicalizes an incoming wire user: the table entry is created
// on first sight, otherwise patched in place, and the shared handle is
// returned.
func (c *Cache) upsertUser(in model.User) *SharedUser {
	actual, loaded := c.users.LoadOrCompute(in.ID, func() *SharedUser {
		return NewSharedUser(in)
	})
	if loaded {
		actual.patch(in)
	}
	return actual
}

// User looks up the canonical record for a user id.
func (c *Cache) User(id model.UserID) (*SharedUser, bool) {
	return c.users.Load(id)
}
