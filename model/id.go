package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DiscordEpoch is the first second of 2015, the origin of snowflake
// timestamps, in milliseconds.
const DiscordEpoch int64 = 1420070400000

// GuildID is the snowflake identifier of a guild.
type GuildID uint64

// ChannelID is the snowflake identifier of a channel.
type ChannelID uint64

// UserID is the snowflake identifier of a user.
type UserID uint64

// RoleID is the snowflake identifier of a role.
type RoleID uint64

// EmojiID is the snowflake identifier of a custom emoji.
type EmojiID uint64

// MessageID is the snowflake identifier of a message.
type MessageID uint64

// WebhookID is the snowflake identifier of a webhook.
type WebhookID uint64

// ApplicationID is the snowflake identifier of an application.
type ApplicationID uint64

// IntegrationID is the snowflake identifier of a guild integration.
type IntegrationID uint64

// snowflakeCreatedAt extracts the creation time embedded in the high bits of
// a snowflake.
func snowflakeCreatedAt(id uint64) time.Time {
	ms := int64(id>>22) + DiscordEpoch
	return time.UnixMilli(ms).UTC()
}

func marshalSnowflake(id uint64) ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatUint(id, 10))), nil
}

// unmarshalSnowflake accepts both the documented string form and the bare
// number some payloads still carry.
func unmarshalSnowflake(data []byte) (uint64, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n uint64
		if err := json.Unmarshal(data, &n); err != nil {
			return 0, fmt.Errorf("snowflake is neither string nor number: %s", data)
		}
		return n, nil
	}
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed snowflake %q: %w", s, err)
	}
	return n, nil
}

// CreatedAt returns the creation time embedded in the identifier.
func (id GuildID) CreatedAt() time.Time { return snowflakeCreatedAt(uint64(id)) }

func (id GuildID) String() string { return strconv.FormatUint(uint64(id), 10) }

// MarshalJSON encodes the identifier as a decimal string.
func (id GuildID) MarshalJSON() ([]byte, error) { return marshalSnowflake(uint64(id)) }

// UnmarshalJSON decodes a decimal string or bare number.
func (id *GuildID) UnmarshalJSON(data []byte) error {
	n, err := unmarshalSnowflake(data)
	*id = GuildID(n)
	return err
}

// CreatedAt returns the creation time embedded in the identifier.
func (id ChannelID) CreatedAt() time.Time { return snowflakeCreatedAt(uint64(id)) }

func (id ChannelID) String() string { return strconv.FormatUint(uint64(id), 10) }

// MarshalJSON encodes the identifier as a decimal string.
func (id ChannelID) MarshalJSON() ([]byte, error) { return marshalSnowflake(uint64(id)) }

// UnmarshalJSON decodes a decimal string or bare number.
func (id *ChannelID) UnmarshalJSON(data []byte) error {
	n, err := unmarshalSnowflake(data)
	*id = ChannelID(n)
	return err
}

// CreatedAt returns the creation time embedded in the identifier.
func (id UserID) CreatedAt() time.Time { return snowflakeCreatedAt(uint64(id)) }

func (id UserID) String() string { return strconv.FormatUint(uint64(id), 10) }

// MarshalJSON encodes the identifier as a decimal string.
func (id UserID) MarshalJSON() ([]byte, error) { return marshalSnowflake(uint64(id)) }

// UnmarshalJSON decodes a decimal string or bare number.
func (id *UserID) UnmarshalJSON(data []byte) error {
	n, err := unmarshalSnowflake(data)
	*id = UserID(n)
	return err
}

// CreatedAt returns the creation time embedded in the identifier.
func (id RoleID) CreatedAt() time.Time { return snowflakeCreatedAt(uint64(id)) }

func (id RoleID) String() string { return strconv.FormatUint(uint64(id), 10) }

// MarshalJSON encodes the identifier as a decimal string.
func (id RoleID) MarshalJSON() ([]byte, error) { return marshalSnowflake(uint64(id)) }

// UnmarshalJSON decodes a decimal string or bare number.
func (id *RoleID) UnmarshalJSON(data []byte) error {
	n, err := unmarshalSnowflake(data)
	*id = RoleID(n)
	return err
}

// CreatedAt returns the creation time embedded in the identifier.
func (id EmojiID) CreatedAt() time.Time { return snowflakeCreatedAt(uint64(id)) }

func (id EmojiID) String() string { return strconv.FormatUint(uint64(id), 10) }

// MarshalJSON encodes the identifier as a decimal string.
func (id EmojiID) MarshalJSON() ([]byte, error) { return marshalSnowflake(uint64(id)) }

// UnmarshalJSON decodes a decimal string or bare number.
func (id *EmojiID) UnmarshalJSON(data []byte) error {
	n, err := unmarshalSnowflake(data)
	*id = EmojiID(n)
	return err
}

// CreatedAt returns the creation time embedded in the identifier.
func (id MessageID) CreatedAt() time.Time { return snowflakeCreatedAt(uint64(id)) }

func (id MessageID) String() string { return strconv.FormatUint(uint64(id), 10) }

// MarshalJSON encodes the identifier as a decimal string.
func (id MessageID) MarshalJSON() ([]byte, error) { return marshalSnowflake(uint64(id)) }

// UnmarshalJSON decodes a decimal string or bare number.
func (id *MessageID) UnmarshalJSON(data []byte) error {
	n, err := unmarshalSnowflake(data)
	*id = MessageID(n)
	return err
}

// CreatedAt returns the creation time embedded in the identifier.
func (id WebhookID) CreatedAt() time.Time { return snowflakeCreatedAt(uint64(id)) }

func (id WebhookID) String() string { return strconv.FormatUint(uint64(id), 10) }

// MarshalJSON encodes the identifier as a decimal string.
func (id WebhookID) MarshalJSON() ([]byte, error) { return marshalSnowflake(uint64(id)) }

// UnmarshalJSON decodes a decimal string or bare number.
func (id *WebhookID) UnmarshalJSON(data []byte) error {
	n, err := unmarshalSnowflake(data)
	*id = WebhookID(n)
	return err
}

// CreatedAt returns the creation time embedded in the identifier.
func (id ApplicationID) CreatedAt() time.Time { return snowflakeCreatedAt(uint64(id)) }

func (id ApplicationID) String() string { return strconv.FormatUint(uint64(id), 10) }

// MarshalJSON encodes the identifier as a decimal string.
func (id ApplicationID) MarshalJSON() ([]byte, error) { return marshalSnowflake(uint64(id)) }

// UnmarshalJSON decodes a decimal string or bare number.
func (id *ApplicationID) UnmarshalJSON(data []byte) error {
	n, err := unmarshalSnowflake(data)
	*id = ApplicationID(n)
	return err
}

// CreatedAt returns the creation time embedded in the identifier.
func (id IntegrationID) CreatedAt() time.Time { return snowflakeCreatedAt(uint64(id)) }

func (id IntegrationID) String() string { return strconv.FormatUint(uint64(id), 10) }

// MarshalJSON encodes the identifier as a decimal string.
func (id IntegrationID) MarshalJSON() ([]byte, error) { return marshalSnowflake(uint64(id)) }

// UnmarshalJSON decodes a decimal string or bare number.
func (id *IntegrationID) UnmarshalJSON(data []byte) error {
	n, err := unmarshalSnowflake(data)
	*id = IntegrationID(n)
	return err
}
