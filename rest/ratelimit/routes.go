// Package ratelimit tracks per-route rate limit buckets driven by the
// x-ratelimit response headers, plus the process-wide global limit.
package ratelimit

import (
	"github.com/parsascontentcorner/discordlite/model"
)

// RouteKind enumerates the rate limit partitions of the API. Two requests
// share a bucket when their full Route values are equal, so kinds carrying a
// major parameter split per channel or guild.
type RouteKind uint8

const (
	// KindNone opts a request out of route tracking. The global limit
	// still applies.
	KindNone RouteKind = iota

	KindChannelsID
	KindChannelsIDInvites
	KindChannelsIDMessages
	KindChannelsIDMessagesBulkDelete
	KindChannelsIDMessagesID
	KindChannelsIDMessagesIDAck
	KindChannelsIDMessagesIDReactions
	KindChannelsIDMessagesIDReactionsUserIDType
	KindChannelsIDPermissionsOverwriteID
	KindChannelsIDPins
	KindChannelsIDPinsMessageID
	KindChannelsIDTyping
	KindChannelsIDWebhooks
	KindGateway
	KindGatewayBot
	KindGuilds
	KindGuildsID
	KindGuildsIDAuditLogs
	KindGuildsIDBans
	KindGuildsIDBansUserID
	KindGuildsIDChannels
	KindGuildsIDEmbed
	KindGuildsIDEmojis
	KindGuildsIDEmojisID
	KindGuildsIDIntegrations
	KindGuildsIDIntegrationsID
	KindGuildsIDIntegrationsIDSync
	KindGuildsIDInvites
	KindGuildsIDMembers
	KindGuildsIDMembersID
	KindGuildsIDMembersIDRolesID
	KindGuildsIDMembersMeNick
	KindGuildsIDPrune
	KindGuildsIDRegions
	KindGuildsIDRoles
	KindGuildsIDRolesID
	KindGuildsIDWebhooks
	KindInvitesCode
	KindUsersID
	KindUsersMe
	KindUsersMeChannels
	KindUsersMeGuilds
	KindUsersMeGuildsID
	KindVoiceRegions
	KindWebhooksID
)

// Route is a bucket key: the partition kind plus the major parameter, when
// the kind carries one. Message deletion shares a path but not a bucket
// with message editing, so that kind also splits on method.
type Route struct {
	Kind RouteKind
	// Major is the channel, guild, or webhook id the kind partitions on.
	// Zero for kinds without a major parameter.
	Major uint64
	// Method distinguishes the per-method buckets of
	// KindChannelsIDMessagesID. Empty elsewhere.
	Method string
}

// NoRoute opts a request out of per-route tracking.
var NoRoute = Route{Kind: KindNone}

// ChannelRoute keys /channels/:id.
func ChannelRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsID, Major: uint64(id)}
}

// ChannelInvitesRoute keys /channels/:id/invites.
func ChannelInvitesRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDInvites, Major: uint64(id)}
}

// ChannelMessagesRoute keys /channels/:id/messages.
func ChannelMessagesRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDMessages, Major: uint64(id)}
}

// ChannelMessagesBulkDeleteRoute keys /channels/:id/messages/bulk-delete.
func ChannelMessagesBulkDeleteRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDMessagesBulkDelete, Major: uint64(id)}
}

// ChannelMessageRoute keys /channels/:id/messages/:message_id per method:
// the platform rate limits deletions separately from edits and fetches.
func ChannelMessageRoute(method string, id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDMessagesID, Major: uint64(id), Method: method}
}

// ChannelMessageAckRoute keys /channels/:id/messages/:message_id/ack.
func ChannelMessageAckRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDMessagesIDAck, Major: uint64(id)}
}

// ChannelMessageReactionsRoute keys /channels/:id/messages/:message_id/reactions.
func ChannelMessageReactionsRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDMessagesIDReactions, Major: uint64(id)}
}

// ChannelMessageReactionRoute keys the single-reaction paths under
// /channels/:id/messages/:message_id/reactions.
func ChannelMessageReactionRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDMessagesIDReactionsUserIDType, Major: uint64(id)}
}

// ChannelPermissionRoute keys /channels/:id/permissions/:target_id.
func ChannelPermissionRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDPermissionsOverwriteID, Major: uint64(id)}
}

// ChannelPinsRoute keys /channels/:id/pins.
func ChannelPinsRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDPins, Major: uint64(id)}
}

// ChannelPinRoute keys /channels/:id/pins/:message_id.
func ChannelPinRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDPinsMessageID, Major: uint64(id)}
}

// ChannelTypingRoute keys /channels/:id/typing.
func ChannelTypingRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDTyping, Major: uint64(id)}
}

// ChannelWebhooksRoute keys /channels/:id/webhooks.
func ChannelWebhooksRoute(id model.ChannelID) Route {
	return Route{Kind: KindChannelsIDWebhooks, Major: uint64(id)}
}

// GatewayRoute keys /gateway.
func GatewayRoute() Route { return Route{Kind: KindGateway} }

// GatewayBotRoute keys /gateway/bot.
func GatewayBotRoute() Route { return Route{Kind: KindGatewayBot} }

// GuildsRoute keys /guilds.
func GuildsRoute() Route { return Route{Kind: KindGuilds} }

// GuildRoute keys /guilds/:id.
func GuildRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsID, Major: uint64(id)}
}

// GuildAuditLogsRoute keys /guilds/:id/audit-logs.
func GuildAuditLogsRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDAuditLogs, Major: uint64(id)}
}

// GuildBansRoute keys /guilds/:id/bans.
func GuildBansRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDBans, Major: uint64(id)}
}

// GuildBanRoute keys /guilds/:id/bans/:user_id.
func GuildBanRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDBansUserID, Major: uint64(id)}
}

// GuildChannelsRoute keys /guilds/:id/channels.
func GuildChannelsRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDChannels, Major: uint64(id)}
}

// GuildEmbedRoute keys /guilds/:id/embed.
func GuildEmbedRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDEmbed, Major: uint64(id)}
}

// GuildEmojisRoute keys /guilds/:id/emojis.
func GuildEmojisRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDEmojis, Major: uint64(id)}
}

// GuildEmojiRoute keys /guilds/:id/emojis/:emoji_id.
func GuildEmojiRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDEmojisID, Major: uint64(id)}
}

// GuildIntegrationsRoute keys /guilds/:id/integrations.
func GuildIntegrationsRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDIntegrations, Major: uint64(id)}
}

// GuildIntegrationRoute keys /guilds/:id/integrations/:integration_id.
func GuildIntegrationRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDIntegrationsID, Major: uint64(id)}
}

// GuildIntegrationSyncRoute keys /guilds/:id/integrations/:integration_id/sync.
func GuildIntegrationSyncRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDIntegrationsIDSync, Major: uint64(id)}
}

// GuildInvitesRoute keys /guilds/:id/invites.
func GuildInvitesRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDInvites, Major: uint64(id)}
}

// GuildMembersRoute keys /guilds/:id/members.
func GuildMembersRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDMembers, Major: uint64(id)}
}

// GuildMemberRoute keys /guilds/:id/members/:user_id.
func GuildMemberRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDMembersID, Major: uint64(id)}
}

// GuildMemberRoleRoute keys /guilds/:id/members/:user_id/roles/:role_id.
func GuildMemberRoleRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDMembersIDRolesID, Major: uint64(id)}
}

// GuildNicknameRoute keys /guilds/:id/members/@me/nick.
func GuildNicknameRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDMembersMeNick, Major: uint64(id)}
}

// GuildPruneRoute keys /guilds/:id/prune.
func GuildPruneRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDPrune, Major: uint64(id)}
}

// GuildRegionsRoute keys /guilds/:id/regions.
func GuildRegionsRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDRegions, Major: uint64(id)}
}

// GuildRolesRoute keys /guilds/:id/roles.
func GuildRolesRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDRoles, Major: uint64(id)}
}

// GuildRoleRoute keys /guilds/:id/roles/:role_id.
func GuildRoleRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDRolesID, Major: uint64(id)}
}

// GuildWebhooksRoute keys /guilds/:id/webhooks.
func GuildWebhooksRoute(id model.GuildID) Route {
	return Route{Kind: KindGuildsIDWebhooks, Major: uint64(id)}
}

// InviteRoute keys /invites/:code.
func InviteRoute() Route { return Route{Kind: KindInvitesCode} }

// UserRoute keys /users/:id.
func UserRoute() Route { return Route{Kind: KindUsersID} }

// CurrentUserRoute keys /users/@me.
func CurrentUserRoute() Route { return Route{Kind: KindUsersMe} }

// CurrentUserChannelsRoute keys /users/@me/channels.
func CurrentUserChannelsRoute() Route { return Route{Kind: KindUsersMeChannels} }

// CurrentUserGuildsRoute keys /users/@me/guilds.
func CurrentUserGuildsRoute() Route { return Route{Kind: KindUsersMeGuilds} }

// CurrentUserGuildRoute keys /users/@me/guilds/:id.
func CurrentUserGuildRoute() Route { return Route{Kind: KindUsersMeGuildsID} }

// VoiceRegionsRoute keys /voice/regions.
func VoiceRegionsRoute() Route { return Route{Kind: KindVoiceRegions} }

// WebhookRoute keys /webhooks/:id.
func WebhookRoute(id model.WebhookID) Route {
	return Route{Kind: KindWebhooksID, Major: uint64(id)}
}
