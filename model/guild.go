package model

import (
	"encoding/json"
	"time"
)

// LargeThreshold is the member count above which the gateway marks a guild
// large and withholds offline members.
const LargeThreshold = 250

// VerificationLevel is the guild's account verification requirement.
type VerificationLevel int

const (
	VerificationLevelNone VerificationLevel = iota
	VerificationLevelLow
	VerificationLevelMedium
	VerificationLevelHigh
	VerificationLevelHigher
)

// MFALevel is the guild's moderator two-factor requirement.
type MFALevel int

const (
	MFALevelNone MFALevel = iota
	MFALevelElevated
)

// DefaultMessageNotificationLevel is the guild-wide notification default.
type DefaultMessageNotificationLevel int

const (
	NotifyAllMessages DefaultMessageNotificationLevel = iota
	NotifyOnlyMentions
)

// Guild is the wire shape of a full guild as delivered by GUILD_CREATE. The
// cache package projects it into its concurrent representation.
type Guild struct {
	ID                          GuildID                         `json:"id"`
	Name                        string                          `json:"name"`
	OwnerID                     UserID                          `json:"owner_id"`
	Region                      string                          `json:"region"`
	Icon                        *string                         `json:"icon"`
	Splash                      *string                         `json:"splash"`
	AFKChannelID                *ChannelID                      `json:"afk_channel_id"`
	AFKTimeout                  uint64                          `json:"afk_timeout"`
	VerificationLevel           VerificationLevel               `json:"verification_level"`
	MFALevel                    MFALevel                        `json:"mfa_level"`
	DefaultMessageNotifications DefaultMessageNotificationLevel `json:"default_message_notifications"`
	Features                    []string                        `json:"features"`
	JoinedAt                    *time.Time                      `json:"joined_at"`
	Large                       bool                            `json:"large"`
	Unavailable                 bool                            `json:"unavailable"`
	MemberCount                 uint64                          `json:"member_count"`
	Members                     []Member                        `json:"members"`
	Channels                    []json.RawMessage               `json:"channels"`
	Roles                       []Role                          `json:"roles"`
	Emojis                      []Emoji                         `json:"emojis"`
	Presences                   []Presence                      `json:"presences"`
	VoiceStates                 []VoiceState                    `json:"voice_states"`
}

// UnavailableGuild is the stub delivered for guilds the gateway cannot
// currently describe.
type UnavailableGuild struct {
	ID          GuildID `json:"id"`
	Unavailable bool    `json:"unavailable"`
}

// PartialGuild is the reduced shape carried by GUILD_UPDATE.
type PartialGuild struct {
	ID                          GuildID                         `json:"id"`
	Name                        string                          `json:"name"`
	OwnerID                     UserID                          `json:"owner_id"`
	Region                      string                          `json:"region"`
	Icon                        *string                         `json:"icon"`
	AFKChannelID                *ChannelID                      `json:"afk_channel_id"`
	AFKTimeout                  uint64                          `json:"afk_timeout"`
	VerificationLevel           VerificationLevel               `json:"verification_level"`
	MFALevel                    MFALevel                        `json:"mfa_level"`
	DefaultMessageNotifications DefaultMessageNotificationLevel `json:"default_message_notifications"`
	Roles                       []Role                          `json:"roles"`
	Emojis                      []Emoji                         `json:"emojis"`
}

// EveryoneRoleID returns the id of the implicit @everyone role, which by
// platform convention equals the guild id.
func (g Guild) EveryoneRoleID() RoleID {
	return RoleID(g.ID)
}
