package model

// Role is a guild role. Higher Position outranks lower; the @everyone role
// carries the guild's own id and forms the permission baseline.
type Role struct {
	ID          RoleID      `json:"id"`
	GuildID     GuildID     `json:"guild_id"`
	Name        string      `json:"name"`
	Permissions Permissions `json:"permissions"`
	Position    int64       `json:"position"`
	Hoist       bool        `json:"hoist"`
	Mentionable bool        `json:"mentionable"`
	Colour      Colour      `json:"color"`
	Managed     bool        `json:"managed"`
}

// Mention returns the chat mention form of the role.
func (r Role) Mention() string {
	return "<@&" + r.ID.String() + ">"
}
