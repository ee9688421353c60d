package cache

import (
	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/model"
)

// sendRequires are stripped when SEND_MESSAGES is absent: none of them are
// exercisable without the ability to send.
const sendRequires = model.PermissionSendTTSMessages |
	model.PermissionMentionEveryone |
	model.PermissionEmbedLinks |
	model.PermissionAttachFiles

// readlessMask is what survives when READ_MESSAGES is absent: moderation
// bits that act on the guild rather than the channel.
const readlessMask = model.PermissionKickMembers |
	model.PermissionBanMembers |
	model.PermissionAdministrator |
	model.PermissionManageGuild |
	model.PermissionChangeNickname |
	model.PermissionManageNicknames

// PermissionsFor resolves a member's effective permissions in one channel
// of the guild. The resolution is deterministic: base role permissions,
// then channel overwrites (role pass before member pass), then the
// platform's implicit adjustments.
func (c *Cache) PermissionsFor(guildID model.GuildID, channelID model.ChannelID, userID model.UserID) (model.Permissions, bool) {
	ref, ok := c.guilds.Load(guildID)
	if !ok {
		return 0, false
	}
	var perms model.Permissions
	ref.View(func(g *Guild) {
		perms = g.permissionsFor(channelID, userID, c.logger)
	})
	return perms, true
}

func (g *Guild) permissionsFor(channelID model.ChannelID, userID model.UserID, logger *zap.Logger) model.Permissions {
	if userID == g.OwnerID {
		return model.PermissionsAll
	}

	everyone, ok := g.Roles[g.EveryoneRoleID()]
	if !ok {
		logger.Warn("guild is missing its @everyone role",
			zap.String("guild_id", g.ID.String()),
		)
		return 0
	}
	perms := everyone.Permissions

	member, ok := g.Members[userID]
	if ok {
		for _, roleID := range member.Roles {
			role, have := g.Roles[roleID]
			if !have {
				logger.Warn("member references unknown role",
					zap.String("guild_id", g.ID.String()),
					zap.String("role_id", roleID.String()),
				)
				continue
			}
			perms |= role.Permissions
		}
	}

	if perms.Has(model.PermissionAdministrator) {
		return model.PermissionsAll
	}

	channel, haveChannel := g.Channels[channelID]
	if haveChannel {
		// Voice bits never apply per channel: text channels have no voice,
		// and voice channel membership is governed guild-wide.
		perms &^= model.PermissionsAllVoice

		// Role overwrites first, member overwrite second, so a member
		// grant beats a role deny. The @everyone overwrite is keyed by the
		// guild id and lands in the role pass.
		for _, ow := range channel.PermissionOverwrites {
			if ow.Type != model.OverwriteRole {
				continue
			}
			roleID := model.RoleID(ow.ID)
			if roleID != g.EveryoneRoleID() && !hasRole(member.Roles, roleID) {
				continue
			}
			perms = (perms &^ ow.Deny) | ow.Allow
		}
		for _, ow := range channel.PermissionOverwrites {
			if ow.Type != model.OverwriteMember || model.UserID(ow.ID) != userID {
				continue
			}
			perms = (perms &^ ow.Deny) | ow.Allow
		}
	}

	// The guild's default channel shares the guild id and is always
	// readable.
	if uint64(channelID) == uint64(g.ID) {
		perms |= model.PermissionReadMessages
	}

	if !perms.Has(model.PermissionSendMessages) {
		perms &^= sendRequires
	}
	if !perms.Has(model.PermissionReadMessages) {
		perms &= readlessMask
	}
	return perms
}

func hasRole(roles []model.RoleID, id model.RoleID) bool {
	for _, r := range roles {
		if r == id {
			return true
		}
	}
	return false
}
