package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Permissions is the 64-bit permission bitset used by roles and channel
// overwrites.
type Permissions uint64

const (
	PermissionCreateInstantInvite Permissions = 1 << 0
	PermissionKickMembers         Permissions = 1 << 1
	PermissionBanMembers          Permissions = 1 << 2
	PermissionAdministrator       Permissions = 1 << 3
	PermissionManageChannels      Permissions = 1 << 4
	PermissionManageGuild         Permissions = 1 << 5
	PermissionAddReactions        Permissions = 1 << 6
	PermissionViewAuditLog        Permissions = 1 << 7
	PermissionReadMessages        Permissions = 1 << 10
	PermissionSendMessages        Permissions = 1 << 11
	PermissionSendTTSMessages     Permissions = 1 << 12
	PermissionManageMessages      Permissions = 1 << 13
	PermissionEmbedLinks          Permissions = 1 << 14
	PermissionAttachFiles         Permissions = 1 << 15
	PermissionReadMessageHistory  Permissions = 1 << 16
	PermissionMentionEveryone     Permissions = 1 << 17
	PermissionUseExternalEmojis   Permissions = 1 << 18
	PermissionConnect             Permissions = 1 << 20
	PermissionSpeak               Permissions = 1 << 21
	PermissionMuteMembers         Permissions = 1 << 22
	PermissionDeafenMembers       Permissions = 1 << 23
	PermissionMoveMembers         Permissions = 1 << 24
	PermissionUseVAD              Permissions = 1 << 25
	PermissionChangeNickname      Permissions = 1 << 26
	PermissionManageNicknames     Permissions = 1 << 27
	PermissionManageRoles         Permissions = 1 << 28
	PermissionManageWebhooks      Permissions = 1 << 29
	PermissionManageEmojis        Permissions = 1 << 30
)

// Composite permission sets.
const (
	// PermissionsAllVoice covers the voice-channel permissions stripped from
	// text channels during resolution.
	PermissionsAllVoice = PermissionConnect |
		PermissionSpeak |
		PermissionMuteMembers |
		PermissionDeafenMembers |
		PermissionMoveMembers |
		PermissionUseVAD

	// PermissionsAllText covers text-channel permissions.
	PermissionsAllText = PermissionReadMessages |
		PermissionSendMessages |
		PermissionSendTTSMessages |
		PermissionManageMessages |
		PermissionEmbedLinks |
		PermissionAttachFiles |
		PermissionReadMessageHistory |
		PermissionMentionEveryone |
		PermissionUseExternalEmojis |
		PermissionAddReactions

	// PermissionsAll is every known permission bit set.
	PermissionsAll = PermissionCreateInstantInvite |
		PermissionKickMembers |
		PermissionBanMembers |
		PermissionAdministrator |
		PermissionManageChannels |
		PermissionManageGuild |
		PermissionViewAuditLog |
		PermissionChangeNickname |
		PermissionManageNicknames |
		PermissionManageRoles |
		PermissionManageWebhooks |
		PermissionManageEmojis |
		PermissionsAllText |
		PermissionsAllVoice
)

var permissionNames = map[string]Permissions{
	"CREATE_INSTANT_INVITE": PermissionCreateInstantInvite,
	"KICK_MEMBERS":          PermissionKickMembers,
	"BAN_MEMBERS":           PermissionBanMembers,
	"ADMINISTRATOR":         PermissionAdministrator,
	"MANAGE_CHANNELS":       PermissionManageChannels,
	"MANAGE_GUILD":          PermissionManageGuild,
	"ADD_REACTIONS":         PermissionAddReactions,
	"VIEW_AUDIT_LOG":        PermissionViewAuditLog,
	"READ_MESSAGES":         PermissionReadMessages,
	"SEND_MESSAGES":         PermissionSendMessages,
	"SEND_TTS_MESSAGES":     PermissionSendTTSMessages,
	"MANAGE_MESSAGES":       PermissionManageMessages,
	"EMBED_LINKS":           PermissionEmbedLinks,
	"ATTACH_FILES":          PermissionAttachFiles,
	"READ_MESSAGE_HISTORY":  PermissionReadMessageHistory,
	"MENTION_EVERYONE":      PermissionMentionEveryone,
	"USE_EXTERNAL_EMOJIS":   PermissionUseExternalEmojis,
	"CONNECT":               PermissionConnect,
	"SPEAK":                 PermissionSpeak,
	"MUTE_MEMBERS":          PermissionMuteMembers,
	"DEAFEN_MEMBERS":        PermissionDeafenMembers,
	"MOVE_MEMBERS":          PermissionMoveMembers,
	"USE_VAD":               PermissionUseVAD,
	"CHANGE_NICKNAME":       PermissionChangeNickname,
	"MANAGE_NICKNAMES":      PermissionManageNicknames,
	"MANAGE_ROLES":          PermissionManageRoles,
	"MANAGE_WEBHOOKS":       PermissionManageWebhooks,
	"MANAGE_EMOJIS":         PermissionManageEmojis,
}

// PermissionByName resolves an upper-snake-case permission name.
func PermissionByName(name string) (Permissions, error) {
	p, ok := permissionNames[name]
	if !ok {
		return 0, &InvalidPermissionNameError{Name: name}
	}
	return p, nil
}

// Has reports whether every bit of p is set.
func (perms Permissions) Has(p Permissions) bool {
	return perms&p == p
}

// Union returns the bits set in either operand.
func (perms Permissions) Union(other Permissions) Permissions {
	return perms | other
}

// Intersect returns the bits set in both operands.
func (perms Permissions) Intersect(other Permissions) Permissions {
	return perms & other
}

// Difference returns the bits of perms not set in other.
func (perms Permissions) Difference(other Permissions) Permissions {
	return perms &^ other
}

// IsSupersetOf reports whether perms contains every bit of other.
func (perms Permissions) IsSupersetOf(other Permissions) bool {
	return perms&other == other
}

func (perms Permissions) String() string {
	return fmt.Sprintf("0x%x", uint64(perms))
}

// UnmarshalJSON accepts the numeric form and the stringified form newer API
// versions emit.
func (perms *Permissions) UnmarshalJSON(data []byte) error {
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*perms = Permissions(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("malformed permissions %s", data)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed permissions %q: %w", s, err)
	}
	*perms = Permissions(n)
	return nil
}

// MarshalJSON emits the numeric form.
func (perms Permissions) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(perms), 10)), nil
}
