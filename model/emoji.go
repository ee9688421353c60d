package model

// Emoji is a custom guild emoji.
type Emoji struct {
	ID            EmojiID  `json:"id"`
	Name          string   `json:"name"`
	Animated      bool     `json:"animated"`
	Managed       bool     `json:"managed"`
	RequireColons bool     `json:"require_colons"`
	Roles         []RoleID `json:"roles"`
}

// Mention returns the chat form of the emoji, animated-aware.
func (e Emoji) Mention() string {
	if e.Animated {
		return "<a:" + e.Name + ":" + e.ID.String() + ">"
	}
	return "<:" + e.Name + ":" + e.ID.String() + ">"
}

// ReactionType identifies either a custom emoji or a unicode one in a
// reaction payload.
type ReactionType struct {
	ID       *EmojiID `json:"id"`
	Name     string   `json:"name"`
	Animated bool     `json:"animated"`
}

// Reaction is the aggregate reaction counter carried on messages.
type Reaction struct {
	Emoji ReactionType `json:"emoji"`
	Count uint64       `json:"count"`
	Me    bool         `json:"me"`
}
