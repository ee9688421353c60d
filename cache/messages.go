package cache

import (
	"sync"

	"github.com/parsascontentcorner/discordlite/model"
)

// messageCache is one channel's bounded FIFO of messages. The oldest
// message is evicted when the configured maximum is reached.
type messageCache struct {
	mu    sync.Mutex
	max   int
	order []model.MessageID
	byID  map[model.MessageID]model.Message
}

func newMessageCache(max int) *messageCache {
	return &messageCache{
		max:  max,
		byID: make(map[model.MessageID]model.Message, max),
	}
}

// insert appends a message, evicting the oldest when full. The second
// return reports whether an eviction happened.
func (mc *messageCache) insert(m model.Message) (model.MessageID, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	var evicted model.MessageID
	var ok bool
	if len(mc.order) >= mc.max {
		evicted = mc.order[0]
		mc.order = mc.order[1:]
		delete(mc.byID, evicted)
		ok = true
	}
	mc.order = append(mc.order, m.ID)
	mc.byID[m.ID] = m
	return evicted, ok
}

// patch applies fn to a held message, if present.
func (mc *messageCache) patch(id model.MessageID, fn func(m *model.Message)) bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	m, ok := mc.byID[id]
	if !ok {
		return false
	}
	fn(&m)
	mc.byID[id] = m
	return true
}

// remove drops one message. Reports whether it was held.
func (mc *messageCache) remove(id model.MessageID) (model.Message, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	m, ok := mc.byID[id]
	if !ok {
		return model.Message{}, false
	}
	delete(mc.byID, id)
	for i, held := range mc.order {
		if held == id {
			mc.order = append(mc.order[:i], mc.order[i+1:]...)
			break
		}
	}
	return m, true
}

// get returns one message by id.
func (mc *messageCache) get(id model.MessageID) (model.Message, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	m, ok := mc.byID[id]
	return m, ok
}

// snapshot returns the held messages oldest first.
func (mc *messageCache) snapshot() []model.Message {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	out := make([]model.Message, 0, len(mc.order))
	for _, id := range mc.order {
		out = append(out, mc.byID[id])
	}
	return out
}
