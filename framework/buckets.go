package framework

import (
	"sync"
	"time"

	"github.com/parsascontentcorner/discordlite/model"
)

// Bucket is a per-user cooldown class shared by the commands naming it.
type Bucket struct {
	mu      sync.Mutex
	delay   time.Duration
	lastUse map[model.UserID]time.Time
	now     func() time.Time
}

// NewBucket creates a cooldown bucket enforcing delay between uses per
// user.
func NewBucket(delay time.Duration) *Bucket {
	return &Bucket{
		delay:   delay,
		lastUse: make(map[model.UserID]time.Time),
		now:     time.Now,
	}
}

// Take attempts to consume the user's cooldown. On rejection the remaining
// wait is returned.
func (b *Bucket) Take(userID model.UserID) (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if last, ok := b.lastUse[userID]; ok {
		if wait := b.delay - now.Sub(last); wait > 0 {
			return wait, false
		}
	}
	b.lastUse[userID] = now
	return 0, true
}
