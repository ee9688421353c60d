// Package cache keeps a concurrent in-memory projection of gateway state:
// guilds, channels, users, messages, presences, and voice states, kept
// coherent by applying the typed event stream.
package cache

import (
	"encoding/binary"
	"hash/maphash"
	"sync"

	"github.com/puzpuzpuz/xsync/v2"
	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/model"
)

// Settings configures the cache.
type Settings struct {
	// MaxMessages is the per-channel message FIFO capacity. Zero disables
	// message caching entirely.
	MaxMessages int
}

// DefaultSettings caches no messages, matching the platform default of a
// state-only projection.
func DefaultSettings() Settings {
	return Settings{MaxMessages: 0}
}

// Cache is the shared projection. All top-level maps are safe for
// concurrent use; per-guild mutation is serialized by the guild's own lock.
type Cache struct {
	settings Settings
	logger   *zap.Logger

	// stateMu guards the current user and shard count.
	stateMu    sync.RWMutex
	user       model.CurrentUser
	shardCount uint16

	users             *xsync.MapOf[model.UserID, *SharedUser]
	guilds            *xsync.MapOf[model.GuildID, *GuildRef]
	unavailableGuilds *xsync.MapOf[model.GuildID, struct{}]
	// guildChannels indexes every guild channel to its owning guild.
	guildChannels   *xsync.MapOf[model.ChannelID, model.GuildID]
	privateChannels *xsync.MapOf[model.ChannelID, *PrivateChannel]
	groups          *xsync.MapOf[model.ChannelID, *Group]
	messages        *xsync.MapOf[model.ChannelID, *messageCache]
	// presences holds the global presence set delivered by READY; guild
	// presences live inside each guild.
	presences *xsync.MapOf[model.UserID, Presence]
}

func snowflakeHasher[K ~uint64](seed maphash.Seed, k K) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// New creates an empty cache.
func New(settings Settings, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		settings:          settings,
		logger:            logger,
		shardCount:        1,
		users:             xsync.NewTypedMapOf[model.UserID, *SharedUser](snowflakeHasher[model.UserID]),
		guilds:            xsync.NewTypedMapOf[model.GuildID, *GuildRef](snowflakeHasher[model.GuildID]),
		unavailableGuilds: xsync.NewTypedMapOf[model.GuildID, struct{}](snowflakeHasher[model.GuildID]),
		guildChannels:     xsync.NewTypedMapOf[model.ChannelID, model.GuildID](snowflakeHasher[model.ChannelID]),
		privateChannels:   xsync.NewTypedMapOf[model.ChannelID, *PrivateChannel](snowflakeHasher[model.ChannelID]),
		groups:            xsync.NewTypedMapOf[model.ChannelID, *Group](snowflakeHasher[model.ChannelID]),
		messages:          xsync.NewTypedMapOf[model.ChannelID, *messageCache](snowflakeHasher[model.ChannelID]),
		presences:         xsync.NewTypedMapOf[model.UserID, Presence](snowflakeHasher[model.UserID]),
	}
}

// Settings returns the cache configuration.
func (c *Cache) Settings() Settings {
	return c.settings
}

// CurrentUser returns the authenticated user as of the last READY or
// USER_UPDATE.
func (c *Cache) CurrentUser() model.CurrentUser {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.user
}

// ShardCount returns the shard total announced by READY.
func (c *Cache) ShardCount() uint16 {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.shardCount
}

// ShardID returns the shard owning a guild under the current shard count.
func (c *Cache) ShardID(id model.GuildID) uint16 {
	c.stateMu.RLock()
	total := c.shardCount
	c.stateMu.RUnlock()

	shard := uint16((uint64(id) >> 22) % uint64(total))
	return shard
}

// Guild returns the shared handle for a guild.
func (c *Cache) Guild(id model.GuildID) (*GuildRef, bool) {
	return c.guilds.Load(id)
}

// GuildUnavailable reports whether the guild is in the unavailable set.
func (c *Cache) GuildUnavailable(id model.GuildID) bool {
	_, ok := c.unavailableGuilds.Load(id)
	return ok
}

// Channel searches guild channels, private channels, and groups, in that
// order, returning the first match.
func (c *Cache) Channel(id model.ChannelID) (model.Channel, bool) {
	if guildID, ok := c.guildChannels.Load(id); ok {
		if ref, ok := c.guilds.Load(guildID); ok {
			var found model.GuildChannel
			var have bool
			ref.View(func(g *Guild) {
				found, have = g.Channels[id]
			})
			if have {
				return found, true
			}
		}
	}
	if pc, ok := c.privateChannels.Load(id); ok {
		return *pc, true
	}
	if group, ok := c.groups.Load(id); ok {
		return *group, true
	}
	return nil, false
}

// PrivateChannel returns a direct message channel.
func (c *Cache) PrivateChannel(id model.ChannelID) (*PrivateChannel, bool) {
	return c.privateChannels.Load(id)
}

// Group returns a group direct message channel.
func (c *Cache) Group(id model.ChannelID) (*Group, bool) {
	return c.groups.Load(id)
}

// AllPrivateChannels returns the ids of every group and private channel.
func (c *Cache) AllPrivateChannels() []model.ChannelID {
	var ids []model.ChannelID
	c.groups.Range(func(id model.ChannelID, _ *Group) bool {
		ids = append(ids, id)
		return true
	})
	c.privateChannels.Range(func(id model.ChannelID, _ *PrivateChannel) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// Member returns a cloned snapshot of a guild member.
func (c *Cache) Member(guildID model.GuildID, userID model.UserID) (Member, bool) {
	ref, ok := c.guilds.Load(guildID)
	if !ok {
		return Member{}, false
	}
	var m Member
	var have bool
	ref.View(func(g *Guild) {
		m, have = g.Members[userID]
	})
	return m, have
}

// Role returns a guild role.
func (c *Cache) Role(guildID model.GuildID, roleID model.RoleID) (model.Role, bool) {
	ref, ok := c.guilds.Load(guildID)
	if !ok {
		return model.Role{}, false
	}
	var r model.Role
	var have bool
	ref.View(func(g *Guild) {
		r, have = g.Roles[roleID]
	})
	return r, have
}

// UnknownMembers sums the member-count gap across all guilds.
func (c *Cache) UnknownMembers() uint64 {
	var total uint64
	c.guilds.Range(func(_ model.GuildID, ref *GuildRef) bool {
		ref.View(func(g *Guild) {
			total += g.UnknownMembers()
		})
		return true
	})
	return total
}

// Message returns one cached message.
func (c *Cache) Message(channelID model.ChannelID, messageID model.MessageID) (model.Message, bool) {
	mc, ok := c.messages.Load(channelID)
	if !ok {
		return model.Message{}, false
	}
	return mc.get(messageID)
}

// MessagesOf returns the cached messages of a channel, oldest first. The
// second return distinguishes an empty cache from an untracked channel.
func (c *Cache) MessagesOf(channelID model.ChannelID) ([]model.Message, bool) {
	mc, ok := c.messages.Load(channelID)
	if !ok {
		return nil, false
	}
	return mc.snapshot(), true
}

// Presence returns a user's global presence, as seeded by READY.
func (c *Cache) Presence(userID model.UserID) (Presence, bool) {
	return c.presences.Load(userID)
}

// GuildCount returns the number of fully known guilds.
func (c *Cache) GuildCount() int {
	return c.guilds.Size()
}
