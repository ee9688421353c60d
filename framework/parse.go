package framework

import (
	"strconv"
	"strings"

	"github.com/parsascontentcorner/discordlite/model"
)

// ParseUserMention extracts the user id from "<@id>" or "<@!id>".
func ParseUserMention(s string) (model.UserID, bool) {
	inner, ok := mentionBody(s, "<@")
	if !ok {
		return 0, false
	}
	inner = strings.TrimPrefix(inner, "!")
	id, err := strconv.ParseUint(inner, 10, 64)
	if err != nil {
		return 0, false
	}
	return model.UserID(id), true
}

// ParseRoleMention extracts the role id from "<@&id>".
func ParseRoleMention(s string) (model.RoleID, bool) {
	inner, ok := mentionBody(s, "<@&")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(inner, 10, 64)
	if err != nil {
		return 0, false
	}
	return model.RoleID(id), true
}

// ParseChannelMention extracts the channel id from "<#id>".
func ParseChannelMention(s string) (model.ChannelID, bool) {
	inner, ok := mentionBody(s, "<#")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(inner, 10, 64)
	if err != nil {
		return 0, false
	}
	return model.ChannelID(id), true
}

// ParseEmoji extracts a custom emoji from "<:name:id>" or "<a:name:id>".
func ParseEmoji(s string) (model.Emoji, bool) {
	if !strings.HasPrefix(s, "<") || !strings.HasSuffix(s, ">") {
		return model.Emoji{}, false
	}
	inner := s[1 : len(s)-1]

	animated := false
	if strings.HasPrefix(inner, "a:") {
		animated = true
		inner = inner[1:]
	}
	if !strings.HasPrefix(inner, ":") {
		return model.Emoji{}, false
	}
	inner = inner[1:]

	sep := strings.LastIndexByte(inner, ':')
	if sep <= 0 || sep == len(inner)-1 {
		return model.Emoji{}, false
	}
	name := inner[:sep]
	id, err := strconv.ParseUint(inner[sep+1:], 10, 64)
	if err != nil {
		return model.Emoji{}, false
	}
	return model.Emoji{ID: model.EmojiID(id), Name: name, Animated: animated}, true
}

var invitePrefixes = []string{
	"https://discord.gg/",
	"http://discord.gg/",
	"https://discord.com/invite/",
	"https://discordapp.com/invite/",
	"discord.gg/",
}

// ParseInvite extracts the invite code from an invite URL; a bare code
// passes through unchanged.
func ParseInvite(s string) string {
	for _, prefix := range invitePrefixes {
		if strings.HasPrefix(s, prefix) {
			return s[len(prefix):]
		}
	}
	return s
}

var webhookPrefixes = []string{
	"https://discord.com/api/webhooks/",
	"https://discordapp.com/api/webhooks/",
	"https://canary.discord.com/api/webhooks/",
}

// ParseWebhookURL extracts the id and token of a webhook URL.
func ParseWebhookURL(s string) (model.WebhookID, string, bool) {
	var rest string
	for _, prefix := range webhookPrefixes {
		if strings.HasPrefix(s, prefix) {
			rest = s[len(prefix):]
			break
		}
	}
	if rest == "" {
		return 0, "", false
	}

	sep := strings.IndexByte(rest, '/')
	if sep <= 0 || sep == len(rest)-1 {
		return 0, "", false
	}
	id, err := strconv.ParseUint(rest[:sep], 10, 64)
	if err != nil {
		return 0, "", false
	}
	token := rest[sep+1:]
	if i := strings.IndexByte(token, '/'); i >= 0 {
		token = token[:i]
	}
	return model.WebhookID(id), token, true
}

func mentionBody(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ">") {
		return "", false
	}
	inner := s[len(prefix) : len(s)-1]
	if inner == "" {
		return "", false
	}
	return inner, true
}
