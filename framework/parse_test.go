package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsascontentcorner/discordlite/model"
)

func TestParseUserMention(t *testing.T) {
	id, ok := ParseUserMention("<@123>")
	require.True(t, ok)
	assert.Equal(t, model.UserID(123), id)

	id, ok = ParseUserMention("<@!123>")
	require.True(t, ok)
	assert.Equal(t, model.UserID(123), id)

	for _, bad := range []string{"<@>", "<@abc>", "123", "<@123", "<@&123>"} {
		_, ok := ParseUserMention(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestParseRoleMention(t *testing.T) {
	id, ok := ParseRoleMention("<@&55>")
	require.True(t, ok)
	assert.Equal(t, model.RoleID(55), id)

	_, ok = ParseRoleMention("<@55>")
	assert.False(t, ok)
}

func TestParseChannelMention(t *testing.T) {
	id, ok := ParseChannelMention("<#7>")
	require.True(t, ok)
	assert.Equal(t, model.ChannelID(7), id)

	_, ok = ParseChannelMention("<#>")
	assert.False(t, ok)
}

func TestParseEmoji(t *testing.T) {
	e, ok := ParseEmoji("<:wave:5>")
	require.True(t, ok)
	assert.Equal(t, model.Emoji{ID: 5, Name: "wave"}, e)

	e, ok = ParseEmoji("<a:spin:6>")
	require.True(t, ok)
	assert.True(t, e.Animated)
	assert.Equal(t, "spin", e.Name)

	for _, bad := range []string{"<:wave:>", "<::5>", "<wave:5>", ":wave:5", "<:wave:abc>"} {
		_, ok := ParseEmoji(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestParseInvite(t *testing.T) {
	assert.Equal(t, "abc", ParseInvite("https://discord.gg/abc"))
	assert.Equal(t, "abc", ParseInvite("discord.gg/abc"))
	assert.Equal(t, "abc", ParseInvite("https://discord.com/invite/abc"))
	assert.Equal(t, "abc", ParseInvite("abc"))
}

func TestParseWebhookURL(t *testing.T) {
	id, token, ok := ParseWebhookURL("https://discord.com/api/webhooks/12345/secret-token")
	require.True(t, ok)
	assert.Equal(t, model.WebhookID(12345), id)
	assert.Equal(t, "secret-token", token)

	// Trailing path segments are not part of the token.
	_, token, ok = ParseWebhookURL("https://discord.com/api/webhooks/12345/secret-token/slack")
	require.True(t, ok)
	assert.Equal(t, "secret-token", token)

	for _, bad := range []string{"https://example.com/api/webhooks/1/t", "https://discord.com/api/webhooks/12345", "https://discord.com/api/webhooks/abc/t"} {
		_, _, ok := ParseWebhookURL(bad)
		assert.False(t, ok, "input %q", bad)
	}
}
