package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChannelType is the wire discriminant of the channel union.
type ChannelType int

const (
	ChannelTypeText     ChannelType = 0
	ChannelTypePrivate  ChannelType = 1
	ChannelTypeVoice    ChannelType = 2
	ChannelTypeGroup    ChannelType = 3
	ChannelTypeCategory ChannelType = 4
)

// OverwriteType distinguishes role- and member-targeted permission
// overwrites.
type OverwriteType string

const (
	OverwriteRole   OverwriteType = "role"
	OverwriteMember OverwriteType = "member"
)

// UnmarshalJSON accepts the string form and the numeric form (0 role,
// 1 member) some API versions emit.
func (t *OverwriteType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"role"`, "0":
		*t = OverwriteRole
	case `"member"`, "1":
		*t = OverwriteMember
	default:
		return fmt.Errorf("unknown overwrite type %s", data)
	}
	return nil
}

// PermissionOverwrite is a per-channel (allow, deny) pair bound to a role or
// member. ID is a RoleID or UserID depending on Type; the @everyone
// overwrite uses the guild id.
type PermissionOverwrite struct {
	ID    uint64        `json:"-"`
	Type  OverwriteType `json:"type"`
	Allow Permissions   `json:"allow"`
	Deny  Permissions   `json:"deny"`
}

// UnmarshalJSON decodes the overwrite target id, which is a snowflake of
// either kind.
func (o *PermissionOverwrite) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    json.RawMessage `json:"id"`
		Type  OverwriteType   `json:"type"`
		Allow Permissions     `json:"allow"`
		Deny  Permissions     `json:"deny"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := unmarshalSnowflake(raw.ID)
	if err != nil {
		return err
	}
	*o = PermissionOverwrite{ID: id, Type: raw.Type, Allow: raw.Allow, Deny: raw.Deny}
	return nil
}

// MarshalJSON encodes the target id as a string snowflake.
func (o PermissionOverwrite) MarshalJSON() ([]byte, error) {
	idRaw, err := marshalSnowflake(o.ID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ID    json.RawMessage `json:"id"`
		Type  OverwriteType   `json:"type"`
		Allow Permissions     `json:"allow"`
		Deny  Permissions     `json:"deny"`
	}{idRaw, o.Type, o.Allow, o.Deny})
}

// Channel is the tagged union over the four channel variants. Concrete types
// are GuildChannel, PrivateChannel, Group, and ChannelCategory.
type Channel interface {
	// ChannelID returns the channel's snowflake.
	ChannelID() ChannelID
	// Type returns the wire discriminant.
	Type() ChannelType
}

// GuildChannel is a text or voice channel belonging to a guild.
type GuildChannel struct {
	ID                   ChannelID             `json:"id"`
	GuildID              GuildID               `json:"guild_id"`
	Kind                 ChannelType           `json:"type"`
	Name                 string                `json:"name"`
	Position             int64                 `json:"position"`
	Topic                *string               `json:"topic"`
	NSFW                 bool                  `json:"nsfw"`
	Bitrate              *uint64               `json:"bitrate"`
	UserLimit            *uint64               `json:"user_limit"`
	ParentID             *ChannelID            `json:"parent_id"`
	PermissionOverwrites []PermissionOverwrite `json:"permission_overwrites"`
	LastPinTimestamp     *time.Time            `json:"last_pin_timestamp"`
}

// ChannelID implements Channel.
func (c GuildChannel) ChannelID() ChannelID { return c.ID }

// Type implements Channel.
func (c GuildChannel) Type() ChannelType { return c.Kind }

// Mention returns the chat mention form of the channel.
func (c GuildChannel) Mention() string { return "<#" + c.ID.String() + ">" }

// PrivateChannel is a one-to-one direct message channel.
type PrivateChannel struct {
	ID               ChannelID  `json:"id"`
	Recipient        User       `json:"recipient"`
	LastPinTimestamp *time.Time `json:"last_pin_timestamp"`
}

// UnmarshalJSON accepts both the single "recipient" object and the
// "recipients" array newer payloads carry.
func (c *PrivateChannel) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID               ChannelID  `json:"id"`
		Recipient        *User      `json:"recipient"`
		Recipients       []User     `json:"recipients"`
		LastPinTimestamp *time.Time `json:"last_pin_timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = raw.ID
	c.LastPinTimestamp = raw.LastPinTimestamp
	switch {
	case raw.Recipient != nil:
		c.Recipient = *raw.Recipient
	case len(raw.Recipients) > 0:
		c.Recipient = raw.Recipients[0]
	default:
		return fmt.Errorf("private channel %s has no recipient", raw.ID)
	}
	return nil
}

// ChannelID implements Channel.
func (c PrivateChannel) ChannelID() ChannelID { return c.ID }

// Type implements Channel.
func (c PrivateChannel) Type() ChannelType { return ChannelTypePrivate }

// Group is a multi-recipient direct message channel. Legacy on bot accounts.
type Group struct {
	ID               ChannelID  `json:"id"`
	Name             *string    `json:"name"`
	Icon             *string    `json:"icon"`
	OwnerID          UserID     `json:"owner_id"`
	Recipients       []User     `json:"recipients"`
	LastPinTimestamp *time.Time `json:"last_pin_timestamp"`
}

// ChannelID implements Channel.
func (c Group) ChannelID() ChannelID { return c.ID }

// Type implements Channel.
func (c Group) Type() ChannelType { return ChannelTypeGroup }

// ChannelCategory groups guild channels for display.
type ChannelCategory struct {
	ID       ChannelID `json:"id"`
	GuildID  GuildID   `json:"guild_id"`
	Name     string    `json:"name"`
	Position int64     `json:"position"`
	NSFW     bool      `json:"nsfw"`
}

// ChannelID implements Channel.
func (c ChannelCategory) ChannelID() ChannelID { return c.ID }

// Type implements Channel.
func (c ChannelCategory) Type() ChannelType { return ChannelTypeCategory }

// DecodeChannel resolves the union by the numeric "type" field.
func DecodeChannel(data []byte) (Channel, error) {
	var tag struct {
		Type ChannelType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("channel payload missing type: %w", err)
	}

	switch tag.Type {
	case ChannelTypeText, ChannelTypeVoice:
		var c GuildChannel
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ChannelTypePrivate:
		var c PrivateChannel
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ChannelTypeGroup:
		var c Group
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ChannelTypeCategory:
		var c ChannelCategory
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown channel type %d", tag.Type)
	}
}
