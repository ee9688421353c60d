package model

// VoiceState is a user's state in a guild's voice channels. A nil ChannelID
// means the user left voice entirely.
type VoiceState struct {
	UserID    UserID     `json:"user_id"`
	GuildID   *GuildID   `json:"guild_id"`
	ChannelID *ChannelID `json:"channel_id"`
	SessionID string     `json:"session_id"`
	SelfMute  bool       `json:"self_mute"`
	SelfDeaf  bool       `json:"self_deaf"`
	Mute      bool       `json:"mute"`
	Deaf      bool       `json:"deaf"`
	Suppress  bool       `json:"suppress"`
}
