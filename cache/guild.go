package cache

import (
	"sync"
	"time"

	"github.com/parsascontentcorner/discordlite/model"
)

// Member is the cached projection of a guild member. User points at the
// canonical shared record.
type Member struct {
	User     *SharedUser
	GuildID  model.GuildID
	Nick     *string
	Roles    []model.RoleID
	JoinedAt time.Time
	Mute     bool
	Deaf     bool
}

// DisplayName returns the nickname when set, otherwise the username.
func (m Member) DisplayName() string {
	if m.Nick != nil && *m.Nick != "" {
		return *m.Nick
	}
	return m.User.User().Name
}

// Presence is the cached projection of a guild or global presence.
type Presence struct {
	UserID   model.UserID
	Status   model.OnlineStatus
	Activity *model.Activity
	User     *SharedUser
}

// Guild is the cached projection of one guild. It is owned by a GuildRef
// and must only be touched through View and update.
type Guild struct {
	ID                          model.GuildID
	Name                        string
	OwnerID                     model.UserID
	Region                      string
	Icon                        *string
	Splash                      *string
	AFKChannelID                *model.ChannelID
	AFKTimeout                  uint64
	VerificationLevel           model.VerificationLevel
	MFALevel                    model.MFALevel
	DefaultMessageNotifications model.DefaultMessageNotificationLevel
	Features                    []string
	JoinedAt                    *time.Time
	Large                       bool
	MemberCount                 uint64
	Members                     map[model.UserID]Member
	Channels                    map[model.ChannelID]model.GuildChannel
	Roles                       map[model.RoleID]model.Role
	Emojis                      map[model.EmojiID]model.Emoji
	Presences                   map[model.UserID]Presence
	VoiceStates                 map[model.UserID]model.VoiceState
}

// EveryoneRoleID returns the id of the implicit @everyone role.
func (g *Guild) EveryoneRoleID() model.RoleID {
	return model.RoleID(g.ID)
}

// UnknownMembers returns the gap between the advertised member count and the
// members actually held.
func (g *Guild) UnknownMembers() uint64 {
	known := uint64(len(g.Members))
	if g.MemberCount <= known {
		return 0
	}
	return g.MemberCount - known
}

// GuildRef is the shared handle to a cached guild. Mutation is serialized by
// the embedded lock; readers go through View or Snapshot.
type GuildRef struct {
	mu sync.RWMutex
	g  Guild
}

// View runs fn with read access to the guild. The guild must not be
// retained or mutated past the call.
func (r *GuildRef) View(fn func(g *Guild)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn(&r.g)
}

// update runs fn with exclusive access to the guild.
func (r *GuildRef) update(fn func(g *Guild)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.g)
}

// Snapshot returns a deep enough copy for callers to keep: the maps are
// duplicated, the shared user handles are not.
func (r *GuildRef) Snapshot() Guild {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g := r.g
	g.Members = copyMap(r.g.Members)
	g.Channels = copyMap(r.g.Channels)
	g.Roles = copyMap(r.g.Roles)
	g.Emojis = copyMap(r.g.Emojis)
	g.Presences = copyMap(r.g.Presences)
	g.VoiceStates = copyMap(r.g.VoiceStates)
	return g
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// projectGuild converts a wire guild into the cached form, canonicalizing
// every embedded user through the user table.
func (c *Cache) projectGuild(in model.Guild) Guild {
	g := Guild{
		ID:                          in.ID,
		Name:                        in.Name,
		OwnerID:                     in.OwnerID,
		Region:                      in.Region,
		Icon:                        in.Icon,
		Splash:                      in.Splash,
		AFKChannelID:                in.AFKChannelID,
		AFKTimeout:                  in.AFKTimeout,
		VerificationLevel:           in.VerificationLevel,
		MFALevel:                    in.MFALevel,
		DefaultMessageNotifications: in.DefaultMessageNotifications,
		Features:                    in.Features,
		JoinedAt:                    in.JoinedAt,
		Large:                       in.Large,
		MemberCount:                 in.MemberCount,
		Members:                     make(map[model.UserID]Member, len(in.Members)),
		Channels:                    make(map[model.ChannelID]model.GuildChannel),
		Roles:                       make(map[model.RoleID]model.Role, len(in.Roles)),
		Emojis:                      make(map[model.EmojiID]model.Emoji, len(in.Emojis)),
		Presences:                   make(map[model.UserID]Presence, len(in.Presences)),
		VoiceStates:                 make(map[model.UserID]model.VoiceState, len(in.VoiceStates)),
	}

	for _, m := range in.Members {
		g.Members[m.User.ID] = c.projectMember(m)
	}
	for _, r := range in.Roles {
		g.Roles[r.ID] = r
	}
	for _, e := range in.Emojis {
		g.Emojis[e.ID] = e
	}
	for _, p := range in.Presences {
		g.Presences[p.UserID] = c.projectPresence(p)
	}
	for _, vs := range in.VoiceStates {
		g.VoiceStates[vs.UserID] = vs
	}
	return g
}

func (c *Cache) projectMember(in model.Member) Member {
	return Member{
		User:     c.upsertUser(in.User),
		GuildID:  in.GuildID,
		Nick:     in.Nick,
		Roles:    in.Roles,
		JoinedAt: in.JoinedAt,
		Mute:     in.Mute,
		Deaf:     in.Deaf,
	}
}

func (c *Cache) projectPresence(in model.Presence) Presence {
	p := Presence{
		UserID:   in.UserID,
		Status:   in.Status,
		Activity: in.Activity,
	}
	if in.User != nil {
		p.User = c.upsertUser(*in.User)
	} else if shared, ok := c.users.Load(in.UserID); ok {
		p.User = shared
	}
	return p
}
