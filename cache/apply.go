package cache

import (
	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/gateway"
	"github.com/parsascontentcorner/discordlite/model"
)

// Apply routes a typed event to its update method. Events the cache does
// not project are ignored. Re-applying an event is idempotent at the state
// level; the cache always reflects the last event applied.
func (c *Cache) Apply(ev gateway.Event) {
	switch v := ev.(type) {
	case gateway.ReadyEvent:
		c.ApplyReady(v.Ready)
	case gateway.ChannelCreateEvent:
		c.ApplyChannelCreate(v.Channel)
	case gateway.ChannelDeleteEvent:
		c.ApplyChannelDelete(v.Channel.ChannelID())
	case gateway.ChannelPinsUpdateEvent:
		c.ApplyChannelPinsUpdate(v)
	case gateway.ChannelUpdateEvent:
		c.ApplyChannelUpdate(v.Channel)
	case gateway.ChannelRecipientAddEvent:
		c.ApplyChannelRecipientAdd(v.ChannelID, v.User)
	case gateway.ChannelRecipientRemoveEvent:
		c.ApplyChannelRecipientRemove(v.ChannelID, v.User.ID)
	case gateway.GuildCreateEvent:
		c.ApplyGuildCreate(v.Guild)
	case gateway.GuildDeleteEvent:
		c.ApplyGuildDelete(v.GuildID)
	case gateway.GuildEmojisUpdateEvent:
		c.ApplyGuildEmojisUpdate(v.GuildID, v.Emojis)
	case gateway.GuildMemberAddEvent:
		c.ApplyGuildMemberAdd(v.Member)
	case gateway.GuildMemberRemoveEvent:
		c.ApplyGuildMemberRemove(v.GuildID, v.User.ID)
	case gateway.GuildMemberUpdateEvent:
		c.ApplyGuildMemberUpdate(v)
	case gateway.GuildMembersChunkEvent:
		c.ApplyGuildMembersChunk(v.GuildID, v.Members)
	case gateway.GuildRoleCreateEvent:
		c.ApplyGuildRoleCreate(v.GuildID, v.Role)
	case gateway.GuildRoleUpdateEvent:
		c.ApplyGuildRoleUpdate(v.GuildID, v.Role)
	case gateway.GuildRoleDeleteEvent:
		c.ApplyGuildRoleDelete(v.GuildID, v.RoleID)
	case gateway.GuildUnavailableEvent:
		c.ApplyGuildUnavailable(v.GuildID)
	case gateway.GuildUpdateEvent:
		c.ApplyGuildUpdate(v.Guild)
	case gateway.MessageCreateEvent:
		c.ApplyMessageCreate(v.Message)
	case gateway.MessageUpdateEvent:
		c.ApplyMessageUpdate(v)
	case gateway.MessageDeleteEvent:
		c.ApplyMessageDelete(v.ChannelID, v.MessageID)
	case gateway.MessageDeleteBulkEvent:
		for _, id := range v.IDs {
			c.ApplyMessageDelete(v.ChannelID, id)
		}
	case gateway.MessageReactionAddEvent:
		c.ApplyMessageReactionAdd(v.Reaction)
	case gateway.MessageReactionRemoveEvent:
		c.ApplyMessageReactionRemove(v.Reaction)
	case gateway.MessageReactionRemoveAllEvent:
		c.ApplyMessageReactionRemoveAll(v.ChannelID, v.MessageID)
	case gateway.PresenceUpdateEvent:
		c.ApplyPresenceUpdate(v.GuildID, v.Presence)
	case gateway.PresencesReplaceEvent:
		c.ApplyPresencesReplace(v.Presences)
	case gateway.UserUpdateEvent:
		c.ApplyUserUpdate(v.CurrentUser)
	case gateway.VoiceStateUpdateEvent:
		c.ApplyVoiceStateUpdate(v.GuildID, v.VoiceState)
	}
}

// ApplyReady replaces the session-level state: current user, shard count,
// guild routing, private channels, and the global presence set.
func (c *Cache) ApplyReady(r gateway.Ready) {
	c.stateMu.Lock()
	c.user = r.User
	if len(r.Shard) == 2 && r.Shard[1] > 0 {
		c.shardCount = r.Shard[1]
	}
	c.stateMu.Unlock()

	for _, rg := range r.Guilds {
		if rg.Offline {
			c.ApplyGuildUnavailable(rg.Unavailable.ID)
			continue
		}
		c.ApplyGuildCreate(*rg.Guild)
	}

	for _, ch := range r.PrivateChannels {
		c.ApplyChannelCreate(ch)
	}

	for _, p := range r.Presences {
		c.presences.Store(p.UserID, c.projectPresence(p))
	}
}

// ApplyChannelCreate inserts a channel of any variant, returning the
// previously held value of the same id, when any.
func (c *Cache) ApplyChannelCreate(ch model.Channel) (model.Channel, bool) {
	switch v := ch.(type) {
	case model.GuildChannel:
		var prev model.GuildChannel
		var had bool
		c.guildChannels.Store(v.ID, v.GuildID)
		if ref, ok := c.guilds.Load(v.GuildID); ok {
			ref.update(func(g *Guild) {
				prev, had = g.Channels[v.ID]
				g.Channels[v.ID] = v
			})
		}
		if had {
			return prev, true
		}
		return nil, false

	case model.PrivateChannel:
		prev, had := c.privateChannels.LoadAndStore(v.ID, c.projectPrivateChannel(v))
		if had {
			return *prev, true
		}
		return nil, false

	case model.Group:
		prev, had := c.groups.LoadAndStore(v.ID, c.projectGroup(v))
		if had {
			return *prev, true
		}
		return nil, false

	default:
		// Categories are not projected; the channel query never surfaces
		// them.
		c.logger.Debug("ignoring unprojected channel variant",
			zap.Int("type", int(ch.Type())),
		)
		return nil, false
	}
}

// ApplyChannelDelete removes a channel from its owning container and drops
// its cached messages.
func (c *Cache) ApplyChannelDelete(id model.ChannelID) {
	if guildID, ok := c.guildChannels.LoadAndDelete(id); ok {
		if ref, found := c.guilds.Load(guildID); found {
			ref.update(func(g *Guild) {
				delete(g.Channels, id)
			})
		}
	}
	c.privateChannels.Delete(id)
	c.groups.Delete(id)
	c.messages.Delete(id)
}

// ApplyChannelPinsUpdate sets the last-pin timestamp on whichever container
// owns the channel. Guild channels are searched first.
func (c *Cache) ApplyChannelPinsUpdate(ev gateway.ChannelPinsUpdateEvent) {
	if guildID, ok := c.guildChannels.Load(ev.ChannelID); ok {
		if ref, found := c.guilds.Load(guildID); found {
			ref.update(func(g *Guild) {
				if ch, have := g.Channels[ev.ChannelID]; have {
					ch.LastPinTimestamp = ev.LastPinTimestamp
					g.Channels[ev.ChannelID] = ch
				}
			})
			return
		}
	}
	if pc, ok := c.privateChannels.Load(ev.ChannelID); ok {
		next := *pc
		next.LastPinTimestamp = ev.LastPinTimestamp
		c.privateChannels.Store(ev.ChannelID, &next)
		return
	}
	if group, ok := c.groups.Load(ev.ChannelID); ok {
		next := *group
		next.LastPinTimestamp = ev.LastPinTimestamp
		c.groups.Store(ev.ChannelID, &next)
	}
}

// ApplyChannelUpdate overwrites an existing channel entry. For groups an
// empty incoming recipient list preserves the current recipients.
func (c *Cache) ApplyChannelUpdate(ch model.Channel) {
	switch v := ch.(type) {
	case model.GuildChannel:
		c.guildChannels.Store(v.ID, v.GuildID)
		if ref, ok := c.guilds.Load(v.GuildID); ok {
			ref.update(func(g *Guild) {
				g.Channels[v.ID] = v
			})
		}

	case model.PrivateChannel:
		c.privateChannels.Store(v.ID, c.projectPrivateChannel(v))

	case model.Group:
		incoming := c.projectGroup(v)
		c.groups.Compute(v.ID, func(old *Group, loaded bool) (*Group, bool) {
			if loaded && len(incoming.Recipients) == 0 {
				// Patch semantics: keep the known recipients.
				incoming.Recipients = old.Recipients
			}
			return incoming, false
		})
	}
}

// ApplyChannelRecipientAdd adds a user to a group channel.
func (c *Cache) ApplyChannelRecipientAdd(id model.ChannelID, user model.User) {
	shared := c.upsertUser(user)
	c.groups.Compute(id, func(old *Group, loaded bool) (*Group, bool) {
		if !loaded {
			return nil, true
		}
		next := *old
		next.Recipients = copyMap(old.Recipients)
		next.Recipients[user.ID] = shared
		return &next, false
	})
}

// ApplyChannelRecipientRemove removes a user from a group channel. The user
// record itself is retained.
func (c *Cache) ApplyChannelRecipientRemove(id model.ChannelID, userID model.UserID) {
	c.groups.Compute(id, func(old *Group, loaded bool) (*Group, bool) {
		if !loaded {
			return nil, true
		}
		next := *old
		next.Recipients = copyMap(old.Recipients)
		delete(next.Recipients, userID)
		return &next, false
	})
}

// ApplyGuildCreate inserts a full guild, removing it from the unavailable
// set and indexing its channels.
func (c *Cache) ApplyGuildCreate(in model.Guild) {
	c.unavailableGuilds.Delete(in.ID)

	projected := c.projectGuild(in)

	// Channels arrive raw because the union needs the guild id injected
	// before variant decode.
	for _, rawChannel := range in.Channels {
		ch, err := model.DecodeChannel(rawChannel)
		if err != nil {
			c.logger.Warn("dropping undecodable guild channel",
				zap.String("guild_id", in.ID.String()),
				zap.Error(err),
			)
			continue
		}
		switch v := ch.(type) {
		case model.GuildChannel:
			v.GuildID = in.ID
			projected.Channels[v.ID] = v
			c.guildChannels.Store(v.ID, in.ID)
		default:
			// Category or stray variant; not projected.
		}
	}

	c.guilds.Store(in.ID, &GuildRef{g: projected})
}

// ApplyGuildDelete removes a guild entirely: its channel index entries and
// cached messages go with it. Returns the dropped guild snapshot.
func (c *Cache) ApplyGuildDelete(id model.GuildID) (Guild, bool) {
	c.unavailableGuilds.Delete(id)

	ref, ok := c.guilds.LoadAndDelete(id)
	if !ok {
		return Guild{}, false
	}

	dropped := ref.Snapshot()
	for chID := range dropped.Channels {
		c.guildChannels.Delete(chID)
		c.messages.Delete(chID)
	}
	return dropped, true
}

// ApplyGuildEmojisUpdate replaces a guild's emoji map.
func (c *Cache) ApplyGuildEmojisUpdate(id model.GuildID, emojis []model.Emoji) {
	ref, ok := c.guilds.Load(id)
	if !ok {
		return
	}
	ref.update(func(g *Guild) {
		g.Emojis = make(map[model.EmojiID]model.Emoji, len(emojis))
		for _, e := range emojis {
			g.Emojis[e.ID] = e
		}
	})
}

// ApplyGuildMemberAdd canonicalizes the user, bumps the member count, and
// inserts the member.
func (c *Cache) ApplyGuildMemberAdd(in model.Member) {
	member := c.projectMember(in)
	ref, ok := c.guilds.Load(in.GuildID)
	if !ok {
		return
	}
	ref.update(func(g *Guild) {
		g.MemberCount++
		g.Members[in.User.ID] = member
	})
}

// ApplyGuildMemberRemove drops the member entry and decrements the member
// count. The user stays in the user table. Returns the removed member.
func (c *Cache) ApplyGuildMemberRemove(guildID model.GuildID, userID model.UserID) (Member, bool) {
	ref, ok := c.guilds.Load(guildID)
	if !ok {
		return Member{}, false
	}
	var removed Member
	var had bool
	ref.update(func(g *Guild) {
		if g.MemberCount > 0 {
			g.MemberCount--
		}
		removed, had = g.Members[userID]
		delete(g.Members, userID)
	})
	return removed, had
}

// ApplyGuildMemberUpdate patches nick, roles, and user of an existing
// member, or synthesizes one when absent. Returns the prior member when one
// existed.
func (c *Cache) ApplyGuildMemberUpdate(ev gateway.GuildMemberUpdateEvent) (Member, bool) {
	shared := c.upsertUser(ev.User)
	ref, ok := c.guilds.Load(ev.GuildID)
	if !ok {
		return Member{}, false
	}
	var prev Member
	var had bool
	ref.update(func(g *Guild) {
		if m, have := g.Members[ev.User.ID]; have {
			prev, had = m, true
			m.Nick = ev.Nick
			m.Roles = ev.Roles
			m.User = shared
			g.Members[ev.User.ID] = m
			return
		}
		g.Members[ev.User.ID] = Member{
			User:    shared,
			GuildID: ev.GuildID,
			Nick:    ev.Nick,
			Roles:   ev.Roles,
		}
	})
	return prev, had
}

// ApplyGuildMembersChunk canonicalizes and extends the member map.
func (c *Cache) ApplyGuildMembersChunk(guildID model.GuildID, members []model.Member) {
	projected := make([]Member, 0, len(members))
	for _, m := range members {
		projected = append(projected, c.projectMember(m))
	}
	ref, ok := c.guilds.Load(guildID)
	if !ok {
		return
	}
	ref.update(func(g *Guild) {
		for _, m := range projected {
			g.Members[m.User.ID()] = m
		}
	})
}

// ApplyGuildRoleCreate inserts a role.
func (c *Cache) ApplyGuildRoleCreate(guildID model.GuildID, role model.Role) {
	ref, ok := c.guilds.Load(guildID)
	if !ok {
		return
	}
	ref.update(func(g *Guild) {
		g.Roles[role.ID] = role
	})
}

// ApplyGuildRoleUpdate replaces a role, returning the prior value.
func (c *Cache) ApplyGuildRoleUpdate(guildID model.GuildID, role model.Role) (model.Role, bool) {
	ref, ok := c.guilds.Load(guildID)
	if !ok {
		return model.Role{}, false
	}
	var prev model.Role
	var had bool
	ref.update(func(g *Guild) {
		prev, had = g.Roles[role.ID]
		g.Roles[role.ID] = role
	})
	return prev, had
}

// ApplyGuildRoleDelete removes a role, returning it.
func (c *Cache) ApplyGuildRoleDelete(guildID model.GuildID, roleID model.RoleID) (model.Role, bool) {
	ref, ok := c.guilds.Load(guildID)
	if !ok {
		return model.Role{}, false
	}
	var prev model.Role
	var had bool
	ref.update(func(g *Guild) {
		prev, had = g.Roles[roleID]
		delete(g.Roles, roleID)
	})
	return prev, had
}

// ApplyGuildUnavailable moves a guild into the unavailable set. Message
// caches of its channels are left intact so a quick recovery keeps history.
func (c *Cache) ApplyGuildUnavailable(id model.GuildID) {
	c.unavailableGuilds.Store(id, struct{}{})
	if ref, ok := c.guilds.LoadAndDelete(id); ok {
		ref.View(func(g *Guild) {
			for chID := range g.Channels {
				c.guildChannels.Delete(chID)
			}
		})
	}
}

// ApplyGuildUpdate patches the fixed field set carried by GUILD_UPDATE.
func (c *Cache) ApplyGuildUpdate(in model.PartialGuild) {
	ref, ok := c.guilds.Load(in.ID)
	if !ok {
		return
	}
	ref.update(func(g *Guild) {
		g.AFKTimeout = in.AFKTimeout
		g.AFKChannelID = in.AFKChannelID
		g.Icon = in.Icon
		g.Name = in.Name
		g.OwnerID = in.OwnerID
		g.Region = in.Region
		g.VerificationLevel = in.VerificationLevel
		if len(in.Roles) > 0 {
			g.Roles = make(map[model.RoleID]model.Role, len(in.Roles))
			for _, r := range in.Roles {
				g.Roles[r.ID] = r
			}
		}
	})
}

// ApplyMessageCreate inserts a message into the channel's FIFO. When the
// FIFO was full, the evicted oldest id is returned.
func (c *Cache) ApplyMessageCreate(m model.Message) (model.MessageID, bool) {
	if c.settings.MaxMessages == 0 {
		return 0, false
	}
	mc, _ := c.messages.LoadOrCompute(m.ChannelID, func() *messageCache {
		return newMessageCache(c.settings.MaxMessages)
	})
	return mc.insert(m)
}

// ApplyMessageUpdate patches a cached message with the fields present on
// the event.
func (c *Cache) ApplyMessageUpdate(ev gateway.MessageUpdateEvent) bool {
	mc, ok := c.messages.Load(ev.ChannelID)
	if !ok {
		return false
	}
	return mc.patch(ev.ID, func(m *model.Message) {
		if ev.Content != nil {
			m.Content = *ev.Content
		}
		if ev.EditedTimestamp != nil {
			m.EditedTimestamp = ev.EditedTimestamp
		}
		if ev.TTS != nil {
			m.TTS = *ev.TTS
		}
		if ev.MentionEveryone != nil {
			m.MentionEveryone = *ev.MentionEveryone
		}
		if ev.Mentions != nil {
			m.Mentions = ev.Mentions
		}
		if ev.MentionRoles != nil {
			m.MentionRoles = ev.MentionRoles
		}
		if ev.Attachments != nil {
			m.Attachments = ev.Attachments
		}
		if ev.Embeds != nil {
			m.Embeds = ev.Embeds
		}
		if ev.Pinned != nil {
			m.Pinned = *ev.Pinned
		}
	})
}

// ApplyMessageDelete drops one cached message, returning it.
func (c *Cache) ApplyMessageDelete(channelID model.ChannelID, messageID model.MessageID) (model.Message, bool) {
	mc, ok := c.messages.Load(channelID)
	if !ok {
		return model.Message{}, false
	}
	return mc.remove(messageID)
}

// ApplyMessageReactionAdd bumps the matching reaction counter on a cached
// message, appending a new counter when the emoji is first seen.
func (c *Cache) ApplyMessageReactionAdd(r gateway.ReactionPayload) {
	own := c.CurrentUser().ID == r.UserID
	mc, ok := c.messages.Load(r.ChannelID)
	if !ok {
		return
	}
	mc.patch(r.MessageID, func(m *model.Message) {
		for i := range m.Reactions {
			if sameReaction(m.Reactions[i].Emoji, r.Emoji) {
				m.Reactions[i].Count++
				m.Reactions[i].Me = m.Reactions[i].Me || own
				return
			}
		}
		m.Reactions = append(m.Reactions, model.Reaction{Emoji: r.Emoji, Count: 1, Me: own})
	})
}

// ApplyMessageReactionRemove decrements the matching counter, dropping it
// at zero.
func (c *Cache) ApplyMessageReactionRemove(r gateway.ReactionPayload) {
	own := c.CurrentUser().ID == r.UserID
	mc, ok := c.messages.Load(r.ChannelID)
	if !ok {
		return
	}
	mc.patch(r.MessageID, func(m *model.Message) {
		for i := range m.Reactions {
			if !sameReaction(m.Reactions[i].Emoji, r.Emoji) {
				continue
			}
			if own {
				m.Reactions[i].Me = false
			}
			if m.Reactions[i].Count > 1 {
				m.Reactions[i].Count--
				return
			}
			m.Reactions = append(m.Reactions[:i], m.Reactions[i+1:]...)
			return
		}
	})
}

// ApplyMessageReactionRemoveAll clears every reaction on a cached message.
func (c *Cache) ApplyMessageReactionRemoveAll(channelID model.ChannelID, messageID model.MessageID) {
	mc, ok := c.messages.Load(channelID)
	if !ok {
		return
	}
	mc.patch(messageID, func(m *model.Message) {
		m.Reactions = nil
	})
}

func sameReaction(a, b model.ReactionType) bool {
	if a.ID != nil && b.ID != nil {
		return *a.ID == *b.ID
	}
	if a.ID == nil && b.ID == nil {
		return a.Name == b.Name
	}
	return false
}

// ApplyPresenceUpdate upserts a presence. Guild-scoped offline presences
// are removed instead; a member unknown to the guild is synthesized from
// the presence's user.
func (c *Cache) ApplyPresenceUpdate(guildID *model.GuildID, in model.Presence) {
	presence := c.projectPresence(in)

	if guildID == nil {
		if in.Status == model.StatusOffline {
			c.presences.Delete(in.UserID)
			return
		}
		c.presences.Store(in.UserID, presence)
		return
	}

	ref, ok := c.guilds.Load(*guildID)
	if !ok {
		return
	}
	ref.update(func(g *Guild) {
		if in.Status == model.StatusOffline {
			delete(g.Presences, in.UserID)
			return
		}
		g.Presences[in.UserID] = presence
		if _, have := g.Members[in.UserID]; !have && presence.User != nil {
			g.Members[in.UserID] = Member{
				User:    presence.User,
				GuildID: *guildID,
			}
		}
	})
}

// ApplyPresencesReplace bulk-upserts global presences.
func (c *Cache) ApplyPresencesReplace(presences []model.Presence) {
	for _, p := range presences {
		c.presences.Store(p.UserID, c.projectPresence(p))
	}
}

// ApplyUserUpdate swaps in the new current user, returning the prior one.
func (c *Cache) ApplyUserUpdate(u model.CurrentUser) model.CurrentUser {
	c.stateMu.Lock()
	prev := c.user
	c.user = u
	c.stateMu.Unlock()

	c.upsertUser(u.User)
	return prev
}

// ApplyVoiceStateUpdate upserts a guild voice state, removing it when the
// user disconnected from voice.
func (c *Cache) ApplyVoiceStateUpdate(guildID *model.GuildID, vs model.VoiceState) {
	if guildID == nil {
		return
	}
	ref, ok := c.guilds.Load(*guildID)
	if !ok {
		return
	}
	ref.update(func(g *Guild) {
		if vs.ChannelID == nil {
			delete(g.VoiceStates, vs.UserID)
			return
		}
		g.VoiceStates[vs.UserID] = vs
	})
}
