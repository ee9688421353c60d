package model

import "time"

// Member is a user's membership in one guild. Roles never includes the
// implicit @everyone role; permission resolution adds it back.
type Member struct {
	User     User      `json:"user"`
	GuildID  GuildID   `json:"guild_id"`
	Nick     *string   `json:"nick"`
	Roles    []RoleID  `json:"roles"`
	JoinedAt time.Time `json:"joined_at"`
	Mute     bool      `json:"mute"`
	Deaf     bool      `json:"deaf"`
}

// DisplayName returns the nickname when set, otherwise the username.
func (m Member) DisplayName() string {
	if m.Nick != nil && *m.Nick != "" {
		return *m.Nick
	}
	return m.User.Name
}

// Mention returns the nickname-aware mention form.
func (m Member) Mention() string {
	return "<@!" + m.User.ID.String() + ">"
}
