package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeWireForms(t *testing.T) {
	var id UserID
	require.NoError(t, json.Unmarshal([]byte(`"81384788765712384"`), &id))
	assert.Equal(t, UserID(81384788765712384), id)

	require.NoError(t, json.Unmarshal([]byte(`81384788765712384`), &id))
	assert.Equal(t, UserID(81384788765712384), id)

	require.NoError(t, json.Unmarshal([]byte(`""`), &id))
	assert.Equal(t, UserID(0), id)

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &id))

	out, err := json.Marshal(UserID(42))
	require.NoError(t, err)
	assert.Equal(t, `"42"`, string(out))
}

func TestSnowflakeCreatedAt(t *testing.T) {
	// Timestamp bits are milliseconds past the 2015 epoch.
	id := GuildID(1 << 22)
	assert.Equal(t, time.UnixMilli(DiscordEpoch+1).UTC(), id.CreatedAt())
}

func TestDiscriminatorWireForms(t *testing.T) {
	var d Discriminator
	require.NoError(t, json.Unmarshal([]byte(`"0001"`), &d))
	assert.Equal(t, Discriminator(1), d)

	require.NoError(t, json.Unmarshal([]byte(`1`), &d))
	assert.Equal(t, Discriminator(1), d)

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.Equal(t, Discriminator(0), d)

	assert.Error(t, json.Unmarshal([]byte(`"abcd"`), &d))

	out, err := json.Marshal(Discriminator(7))
	require.NoError(t, err)
	assert.Equal(t, `"0007"`, string(out))
}

func TestUserTagAndMention(t *testing.T) {
	u := User{ID: 5, Name: "someone", Discriminator: 1}
	assert.Equal(t, "someone#0001", u.Tag())
	assert.Equal(t, "<@5>", u.Mention())
}

func TestMemberDisplayName(t *testing.T) {
	nick := "nickname"
	m := Member{User: User{ID: 5, Name: "someone"}}
	assert.Equal(t, "someone", m.DisplayName())
	m.Nick = &nick
	assert.Equal(t, "nickname", m.DisplayName())
	assert.Equal(t, "<@!5>", m.Mention())
}

func TestPermissionsSetOperations(t *testing.T) {
	perms := PermissionReadMessages | PermissionSendMessages

	assert.True(t, perms.Has(PermissionReadMessages))
	assert.False(t, perms.Has(PermissionBanMembers))
	assert.True(t, perms.IsSupersetOf(PermissionReadMessages))
	assert.False(t, perms.IsSupersetOf(PermissionReadMessages|PermissionBanMembers))
	assert.Equal(t, PermissionSendMessages, perms.Difference(PermissionReadMessages))
	assert.Equal(t, PermissionReadMessages, perms.Intersect(PermissionReadMessages|PermissionBanMembers))
	assert.Equal(t, perms|PermissionBanMembers, perms.Union(PermissionBanMembers))
}

func TestPermissionsWireForms(t *testing.T) {
	var p Permissions
	require.NoError(t, json.Unmarshal([]byte(`3072`), &p))
	assert.Equal(t, PermissionReadMessages|PermissionSendMessages, p)

	require.NoError(t, json.Unmarshal([]byte(`"3072"`), &p))
	assert.Equal(t, PermissionReadMessages|PermissionSendMessages, p)

	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &p))
}

func TestPermissionByName(t *testing.T) {
	p, err := PermissionByName("ADMINISTRATOR")
	require.NoError(t, err)
	assert.Equal(t, PermissionAdministrator, p)

	_, err = PermissionByName("RULE_THE_WORLD")
	var nameErr *InvalidPermissionNameError
	assert.ErrorAs(t, err, &nameErr)
}

func TestDecodeChannelUnion(t *testing.T) {
	ch, err := DecodeChannel([]byte(`{"id":"1","type":0,"guild_id":"2","name":"general"}`))
	require.NoError(t, err)
	guild, ok := ch.(GuildChannel)
	require.True(t, ok)
	assert.Equal(t, ChannelID(1), guild.ID)
	assert.Equal(t, GuildID(2), guild.GuildID)

	ch, err = DecodeChannel([]byte(`{"id":"3","type":1,"recipients":[{"id":"9","username":"u","discriminator":"0001"}]}`))
	require.NoError(t, err)
	private, ok := ch.(PrivateChannel)
	require.True(t, ok)
	assert.Equal(t, UserID(9), private.Recipient.ID)

	ch, err = DecodeChannel([]byte(`{"id":"4","type":4,"name":"category"}`))
	require.NoError(t, err)
	assert.Equal(t, ChannelTypeCategory, ch.Type())

	_, err = DecodeChannel([]byte(`{"id":"5","type":99}`))
	assert.Error(t, err)
}

func TestOverwriteTypeWireForms(t *testing.T) {
	var o OverwriteType
	require.NoError(t, json.Unmarshal([]byte(`"role"`), &o))
	assert.Equal(t, OverwriteRole, o)

	require.NoError(t, json.Unmarshal([]byte(`1`), &o))
	assert.Equal(t, OverwriteMember, o)

	assert.Error(t, json.Unmarshal([]byte(`"group"`), &o))
}

func TestMessageIsOwn(t *testing.T) {
	m := Message{Author: User{ID: 7}}
	assert.True(t, m.IsOwn(7))
	assert.False(t, m.IsOwn(8))
}
