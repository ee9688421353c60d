package model

import "time"

// MessageType is the wire discriminant of system and regular messages.
type MessageType int

const (
	MessageTypeRegular MessageType = iota
	MessageTypeGroupRecipientAddition
	MessageTypeGroupRecipientRemoval
	MessageTypeGroupCallCreation
	MessageTypeGroupNameUpdate
	MessageTypeGroupIconUpdate
	MessageTypePinsAdd
	MessageTypeMemberJoin
)

// Attachment is a file attached to a message.
type Attachment struct {
	ID       string  `json:"id"`
	Filename string  `json:"filename"`
	Size     uint64  `json:"size"`
	URL      string  `json:"url"`
	ProxyURL string  `json:"proxy_url"`
	Height   *uint64 `json:"height"`
	Width    *uint64 `json:"width"`
}

// Embed is a rich content block attached to a message. Only the fields the
// cache observes are modelled; the REST layer passes outbound embeds through
// as raw maps.
type Embed struct {
	Title       *string `json:"title"`
	Kind        string  `json:"type"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Colour      Colour  `json:"color"`
}

// Message is a chat message.
type Message struct {
	ID              MessageID    `json:"id"`
	ChannelID       ChannelID    `json:"channel_id"`
	GuildID         *GuildID     `json:"guild_id"`
	Author          User         `json:"author"`
	Content         string       `json:"content"`
	Timestamp       time.Time    `json:"timestamp"`
	EditedTimestamp *time.Time   `json:"edited_timestamp"`
	TTS             bool         `json:"tts"`
	MentionEveryone bool         `json:"mention_everyone"`
	Mentions        []User       `json:"mentions"`
	MentionRoles    []RoleID     `json:"mention_roles"`
	Attachments     []Attachment `json:"attachments"`
	Embeds          []Embed      `json:"embeds"`
	Pinned          bool         `json:"pinned"`
	Kind            MessageType  `json:"type"`
	WebhookID       *WebhookID   `json:"webhook_id"`
	Reactions       []Reaction   `json:"reactions"`
	Nonce           *string      `json:"nonce"`
}

// IsOwn reports whether the message was authored by the given user.
func (m Message) IsOwn(id UserID) bool {
	return m.Author.ID == id
}
