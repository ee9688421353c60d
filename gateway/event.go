// Package gateway decodes Discord gateway frames into typed events and
// provides the websocket connection the cache consumes them from.
package gateway

import (
	"encoding/json"
	"time"

	"github.com/parsascontentcorner/discordlite/model"
)

// Event is a typed dispatch event. Every variant names the wire event it was
// decoded from.
type Event interface {
	// EventName returns the gateway dispatch name, e.g. "MESSAGE_CREATE".
	EventName() string
}

// ReadyGuild is one entry of the READY guild enumeration: either a full
// guild or an unavailable stub.
type ReadyGuild struct {
	Guild       *model.Guild
	Unavailable model.UnavailableGuild
	Offline     bool
}

// Ready is the session bootstrap payload.
type Ready struct {
	Version         int
	User            model.CurrentUser
	SessionID       string
	Guilds          []ReadyGuild
	PrivateChannels []model.Channel
	Presences       []model.Presence
	Shard           []uint16
}

// ReadyEvent carries the READY payload.
type ReadyEvent struct {
	Ready Ready
}

func (ReadyEvent) EventName() string { return "READY" }

// ResumedEvent signals a successful session resume.
type ResumedEvent struct {
	Trace []string
}

func (ResumedEvent) EventName() string { return "RESUMED" }

// ChannelCreateEvent carries a newly observed channel of any variant.
type ChannelCreateEvent struct {
	Channel model.Channel
}

func (ChannelCreateEvent) EventName() string { return "CHANNEL_CREATE" }

// ChannelDeleteEvent carries the deleted channel.
type ChannelDeleteEvent struct {
	Channel model.Channel
}

func (ChannelDeleteEvent) EventName() string { return "CHANNEL_DELETE" }

// ChannelUpdateEvent carries the updated channel.
type ChannelUpdateEvent struct {
	Channel model.Channel
}

func (ChannelUpdateEvent) EventName() string { return "CHANNEL_UPDATE" }

// ChannelPinsUpdateEvent signals the pin list of a channel changed.
type ChannelPinsUpdateEvent struct {
	ChannelID        model.ChannelID `json:"channel_id"`
	LastPinTimestamp *time.Time      `json:"last_pin_timestamp"`
}

func (ChannelPinsUpdateEvent) EventName() string { return "CHANNEL_PINS_UPDATE" }

// ChannelRecipientAddEvent adds a user to a group channel.
type ChannelRecipientAddEvent struct {
	ChannelID model.ChannelID `json:"channel_id"`
	User      model.User      `json:"user"`
}

func (ChannelRecipientAddEvent) EventName() string { return "CHANNEL_RECIPIENT_ADD" }

// ChannelRecipientRemoveEvent removes a user from a group channel.
type ChannelRecipientRemoveEvent struct {
	ChannelID model.ChannelID `json:"channel_id"`
	User      model.User      `json:"user"`
}

func (ChannelRecipientRemoveEvent) EventName() string { return "CHANNEL_RECIPIENT_REMOVE" }

// GuildCreateEvent carries a full guild becoming available.
type GuildCreateEvent struct {
	Guild model.Guild
}

func (GuildCreateEvent) EventName() string { return "GUILD_CREATE" }

// GuildDeleteEvent signals the current user left or was removed from a
// guild.
type GuildDeleteEvent struct {
	GuildID model.GuildID
}

func (GuildDeleteEvent) EventName() string { return "GUILD_DELETE" }

// GuildUnavailableEvent signals an outage for a known guild. It is produced
// from GUILD_CREATE and GUILD_DELETE frames whose payload carries
// unavailable: true.
type GuildUnavailableEvent struct {
	GuildID model.GuildID
}

func (GuildUnavailableEvent) EventName() string { return "GUILD_UNAVAILABLE" }

// GuildUpdateEvent carries the patched field set of a guild.
type GuildUpdateEvent struct {
	Guild model.PartialGuild
}

func (GuildUpdateEvent) EventName() string { return "GUILD_UPDATE" }

// GuildBanAddEvent signals a ban was issued.
type GuildBanAddEvent struct {
	GuildID model.GuildID `json:"guild_id"`
	User    model.User    `json:"user"`
}

func (GuildBanAddEvent) EventName() string { return "GUILD_BAN_ADD" }

// GuildBanRemoveEvent signals a ban was revoked.
type GuildBanRemoveEvent struct {
	GuildID model.GuildID `json:"guild_id"`
	User    model.User    `json:"user"`
}

func (GuildBanRemoveEvent) EventName() string { return "GUILD_BAN_REMOVE" }

// GuildEmojisUpdateEvent replaces a guild's emoji set.
type GuildEmojisUpdateEvent struct {
	GuildID model.GuildID `json:"guild_id"`
	Emojis  []model.Emoji `json:"emojis"`
}

func (GuildEmojisUpdateEvent) EventName() string { return "GUILD_EMOJIS_UPDATE" }

// GuildIntegrationsUpdateEvent signals an integration changed.
type GuildIntegrationsUpdateEvent struct {
	GuildID model.GuildID `json:"guild_id"`
}

func (GuildIntegrationsUpdateEvent) EventName() string { return "GUILD_INTEGRATIONS_UPDATE" }

// GuildMemberAddEvent carries a new member.
type GuildMemberAddEvent struct {
	Member model.Member
}

func (GuildMemberAddEvent) EventName() string { return "GUILD_MEMBER_ADD" }

// GuildMemberRemoveEvent signals a member left or was removed.
type GuildMemberRemoveEvent struct {
	GuildID model.GuildID `json:"guild_id"`
	User    model.User    `json:"user"`
}

func (GuildMemberRemoveEvent) EventName() string { return "GUILD_MEMBER_REMOVE" }

// GuildMemberUpdateEvent patches a member's nick, roles, and user.
type GuildMemberUpdateEvent struct {
	GuildID model.GuildID  `json:"guild_id"`
	Roles   []model.RoleID `json:"roles"`
	User    model.User     `json:"user"`
	Nick    *string        `json:"nick"`
}

func (GuildMemberUpdateEvent) EventName() string { return "GUILD_MEMBER_UPDATE" }

// GuildMembersChunkEvent carries one page of a member request.
type GuildMembersChunkEvent struct {
	GuildID model.GuildID  `json:"guild_id"`
	Members []model.Member `json:"members"`
}

func (GuildMembersChunkEvent) EventName() string { return "GUILD_MEMBERS_CHUNK" }

// GuildRoleCreateEvent carries a new role.
type GuildRoleCreateEvent struct {
	GuildID model.GuildID `json:"guild_id"`
	Role    model.Role    `json:"role"`
}

func (GuildRoleCreateEvent) EventName() string { return "GUILD_ROLE_CREATE" }

// GuildRoleUpdateEvent carries an updated role.
type GuildRoleUpdateEvent struct {
	GuildID model.GuildID `json:"guild_id"`
	Role    model.Role    `json:"role"`
}

func (GuildRoleUpdateEvent) EventName() string { return "GUILD_ROLE_UPDATE" }

// GuildRoleDeleteEvent signals a role was deleted.
type GuildRoleDeleteEvent struct {
	GuildID model.GuildID `json:"guild_id"`
	RoleID  model.RoleID  `json:"role_id"`
}

func (GuildRoleDeleteEvent) EventName() string { return "GUILD_ROLE_DELETE" }

// MessageCreateEvent carries a new message.
type MessageCreateEvent struct {
	Message model.Message
}

func (MessageCreateEvent) EventName() string { return "MESSAGE_CREATE" }

// MessageUpdateEvent patches a cached message; absent fields are nil.
type MessageUpdateEvent struct {
	ID              model.MessageID    `json:"id"`
	ChannelID       model.ChannelID    `json:"channel_id"`
	Content         *string            `json:"content"`
	EditedTimestamp *time.Time         `json:"edited_timestamp"`
	TTS             *bool              `json:"tts"`
	MentionEveryone *bool              `json:"mention_everyone"`
	Mentions        []model.User       `json:"mentions"`
	MentionRoles    []model.RoleID     `json:"mention_roles"`
	Attachments     []model.Attachment `json:"attachments"`
	Embeds          []model.Embed      `json:"embeds"`
	Pinned          *bool              `json:"pinned"`
}

func (MessageUpdateEvent) EventName() string { return "MESSAGE_UPDATE" }

// MessageDeleteEvent signals a single message deletion.
type MessageDeleteEvent struct {
	ChannelID model.ChannelID `json:"channel_id"`
	MessageID model.MessageID `json:"id"`
}

func (MessageDeleteEvent) EventName() string { return "MESSAGE_DELETE" }

// MessageDeleteBulkEvent signals a bulk deletion.
type MessageDeleteBulkEvent struct {
	ChannelID model.ChannelID   `json:"channel_id"`
	IDs       []model.MessageID `json:"ids"`
}

func (MessageDeleteBulkEvent) EventName() string { return "MESSAGE_DELETE_BULK" }

// ReactionPayload is the shared shape of reaction add/remove frames.
type ReactionPayload struct {
	UserID    model.UserID       `json:"user_id"`
	ChannelID model.ChannelID    `json:"channel_id"`
	MessageID model.MessageID    `json:"message_id"`
	Emoji     model.ReactionType `json:"emoji"`
}

// MessageReactionAddEvent signals a reaction was added.
type MessageReactionAddEvent struct {
	Reaction ReactionPayload
}

func (MessageReactionAddEvent) EventName() string { return "MESSAGE_REACTION_ADD" }

// MessageReactionRemoveEvent signals a reaction was removed.
type MessageReactionRemoveEvent struct {
	Reaction ReactionPayload
}

func (MessageReactionRemoveEvent) EventName() string { return "MESSAGE_REACTION_REMOVE" }

// MessageReactionRemoveAllEvent signals all reactions were cleared.
type MessageReactionRemoveAllEvent struct {
	ChannelID model.ChannelID `json:"channel_id"`
	MessageID model.MessageID `json:"message_id"`
}

func (MessageReactionRemoveAllEvent) EventName() string { return "MESSAGE_REACTION_REMOVE_ALL" }

// PresenceUpdateEvent carries a presence change, guild-scoped when GuildID
// is non-nil.
type PresenceUpdateEvent struct {
	GuildID  *model.GuildID `json:"guild_id"`
	Presence model.Presence
}

func (PresenceUpdateEvent) EventName() string { return "PRESENCE_UPDATE" }

// PresencesReplaceEvent bulk-replaces presences.
type PresencesReplaceEvent struct {
	Presences []model.Presence
}

func (PresencesReplaceEvent) EventName() string { return "PRESENCES_REPLACE" }

// TypingStartEvent signals a user started typing.
type TypingStartEvent struct {
	ChannelID model.ChannelID `json:"channel_id"`
	UserID    model.UserID    `json:"user_id"`
	Timestamp uint64          `json:"timestamp"`
}

func (TypingStartEvent) EventName() string { return "TYPING_START" }

// UserUpdateEvent replaces the current user.
type UserUpdateEvent struct {
	CurrentUser model.CurrentUser
}

func (UserUpdateEvent) EventName() string { return "USER_UPDATE" }

// VoiceServerUpdateEvent announces the voice server to connect to.
type VoiceServerUpdateEvent struct {
	GuildID   *model.GuildID   `json:"guild_id"`
	ChannelID *model.ChannelID `json:"channel_id"`
	Endpoint  *string          `json:"endpoint"`
	Token     string           `json:"token"`
}

func (VoiceServerUpdateEvent) EventName() string { return "VOICE_SERVER_UPDATE" }

// VoiceStateUpdateEvent carries a voice state change.
type VoiceStateUpdateEvent struct {
	GuildID    *model.GuildID `json:"guild_id"`
	VoiceState model.VoiceState
}

func (VoiceStateUpdateEvent) EventName() string { return "VOICE_STATE_UPDATE" }

// WebhooksUpdateEvent signals a channel's webhooks changed.
type WebhooksUpdateEvent struct {
	GuildID   model.GuildID   `json:"guild_id"`
	ChannelID model.ChannelID `json:"channel_id"`
}

func (WebhooksUpdateEvent) EventName() string { return "WEBHOOKS_UPDATE" }

// UnknownEvent preserves a dispatch the library does not model. Never a
// decode failure.
type UnknownEvent struct {
	Name string
	Raw  json.RawMessage
}

func (e UnknownEvent) EventName() string { return e.Name }
