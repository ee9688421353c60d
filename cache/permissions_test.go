package cache

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsascontentcorner/discordlite/model"
)

// permissionFixture builds a guild with an @everyone role, one extra role,
// and one text channel carrying the given overwrites.
func permissionFixture(t *testing.T, c *Cache, everyonePerms, rolePerms model.Permissions, overwrites []model.PermissionOverwrite) {
	t.Helper()

	g := testGuild(100, 1)
	g.Roles = []model.Role{
		{ID: 100, GuildID: 100, Name: "@everyone", Permissions: everyonePerms},
		{ID: 50, GuildID: 100, Name: "r1", Permissions: rolePerms, Position: 1},
	}
	g.MemberCount = 2
	g.Members = []model.Member{
		{User: testUser(1, "owner"), GuildID: 100},
		{User: testUser(2, "member"), GuildID: 100, Roles: []model.RoleID{50}},
	}

	raw, err := json.Marshal(overwrites)
	require.NoError(t, err)
	g.Channels = []json.RawMessage{
		json.RawMessage(fmt.Sprintf(`{"id":"300","type":0,"name":"general","position":0,"permission_overwrites":%s}`, raw)),
	}
	c.ApplyGuildCreate(g)
}

func TestPermissionsFor_EveryoneOverwriteDeniesSend(t *testing.T) {
	c := newTestCache(t, DefaultSettings())
	permissionFixture(t, c,
		model.PermissionSendMessages,
		model.PermissionReadMessages,
		[]model.PermissionOverwrite{
			{ID: 100, Type: model.OverwriteRole, Deny: model.PermissionSendMessages},
		},
	)

	perms, ok := c.PermissionsFor(100, 300, 2)
	require.True(t, ok)
	assert.Equal(t, model.PermissionReadMessages, perms)
}

func TestPermissionsFor_OwnerHasAll(t *testing.T) {
	c := newTestCache(t, DefaultSettings())
	permissionFixture(t, c, 0, 0, []model.PermissionOverwrite{
		{ID: 100, Type: model.OverwriteRole, Deny: model.PermissionsAll},
	})

	perms, ok := c.PermissionsFor(100, 300, 1)
	require.True(t, ok)
	assert.Equal(t, model.PermissionsAll, perms, "owner bypasses every overwrite")
}

func TestPermissionsFor_AdministratorBypassesOverwrites(t *testing.T) {
	c := newTestCache(t, DefaultSettings())
	permissionFixture(t, c,
		0,
		model.PermissionAdministrator,
		[]model.PermissionOverwrite{
			{ID: 50, Type: model.OverwriteRole, Deny: model.PermissionsAll},
		},
	)

	perms, ok := c.PermissionsFor(100, 300, 2)
	require.True(t, ok)
	assert.Equal(t, model.PermissionsAll, perms)
}

func TestPermissionsFor_MemberOverwriteBeatsRoleDeny(t *testing.T) {
	c := newTestCache(t, DefaultSettings())
	permissionFixture(t, c,
		model.PermissionReadMessages,
		0,
		[]model.PermissionOverwrite{
			{ID: 50, Type: model.OverwriteRole, Deny: model.PermissionReadMessages},
			{ID: 2, Type: model.OverwriteMember, Allow: model.PermissionReadMessages},
		},
	)

	perms, ok := c.PermissionsFor(100, 300, 2)
	require.True(t, ok)
	assert.True(t, perms.Has(model.PermissionReadMessages))
}

func TestPermissionsFor_VoiceStrippedInChannel(t *testing.T) {
	c := newTestCache(t, DefaultSettings())
	permissionFixture(t, c,
		model.PermissionReadMessages|model.PermissionConnect|model.PermissionSpeak,
		0,
		nil,
	)

	perms, ok := c.PermissionsFor(100, 300, 2)
	require.True(t, ok)
	assert.False(t, perms.Has(model.PermissionConnect))
	assert.False(t, perms.Has(model.PermissionSpeak))
	assert.True(t, perms.Has(model.PermissionReadMessages))
}

func TestPermissionsFor_NoReadMasksToModeration(t *testing.T) {
	c := newTestCache(t, DefaultSettings())
	permissionFixture(t, c,
		model.PermissionKickMembers|model.PermissionManageMessages|model.PermissionAddReactions,
		0,
		nil,
	)

	perms, ok := c.PermissionsFor(100, 300, 2)
	require.True(t, ok)
	assert.Equal(t, model.PermissionKickMembers, perms)
}

func TestPermissionsFor_UnknownRoleSkipped(t *testing.T) {
	c := newTestCache(t, DefaultSettings())

	g := testGuild(100, 1)
	g.Roles = []model.Role{
		{ID: 100, GuildID: 100, Name: "@everyone", Permissions: model.PermissionReadMessages},
	}
	g.MemberCount = 1
	g.Members = []model.Member{
		{User: testUser(2, "member"), GuildID: 100, Roles: []model.RoleID{9999}},
	}
	c.ApplyGuildCreate(g)

	perms, ok := c.PermissionsFor(100, 300, 2)
	require.True(t, ok)
	assert.True(t, perms.Has(model.PermissionReadMessages))
}

func TestPermissionsFor_Deterministic(t *testing.T) {
	c := newTestCache(t, DefaultSettings())
	permissionFixture(t, c,
		model.PermissionSendMessages|model.PermissionReadMessages,
		model.PermissionEmbedLinks,
		[]model.PermissionOverwrite{
			{ID: 100, Type: model.OverwriteRole, Deny: model.PermissionEmbedLinks},
		},
	)

	first, ok := c.PermissionsFor(100, 300, 2)
	require.True(t, ok)
	second, _ := c.PermissionsFor(100, 300, 2)
	assert.Equal(t, first, second)
}

func TestPermissionsFor_DefaultChannelAlwaysReadable(t *testing.T) {
	c := newTestCache(t, DefaultSettings())

	g := testGuild(100, 1)
	g.Roles = []model.Role{{ID: 100, GuildID: 100, Name: "@everyone"}}
	g.MemberCount = 1
	g.Members = []model.Member{{User: testUser(2, "member"), GuildID: 100}}
	c.ApplyGuildCreate(g)

	// The default channel shares the guild's id.
	perms, ok := c.PermissionsFor(100, model.ChannelID(100), 2)
	require.True(t, ok)
	assert.True(t, perms.Has(model.PermissionReadMessages))
}
