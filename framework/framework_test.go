package framework

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/cache"
	"github.com/parsascontentcorner/discordlite/gateway"
	"github.com/parsascontentcorner/discordlite/model"
)

const (
	botUserID   = model.UserID(999)
	testGuildID = model.GuildID(100)
	testChannel = model.ChannelID(300)
)

func newTestFramework(t *testing.T, opts Options) (*Framework, *cache.Cache) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	c := cache.New(cache.DefaultSettings(), logger)
	c.ApplyReady(gateway.Ready{
		User: model.CurrentUser{User: model.User{ID: botUserID, Name: "bot", Bot: true}},
	})
	seedGuild(t, c)
	return New(opts, c, logger), c
}

// seedGuild installs a guild with an owner (1), a member (2) holding the
// "mods" role, and one text channel.
func seedGuild(t *testing.T, c *cache.Cache) {
	t.Helper()
	g := model.Guild{ID: testGuildID, Name: "g", OwnerID: 1, MemberCount: 2}
	g.Roles = []model.Role{
		{ID: 100, GuildID: testGuildID, Name: "@everyone", Permissions: model.PermissionReadMessages | model.PermissionSendMessages},
		{ID: 50, GuildID: testGuildID, Name: "mods", Permissions: model.PermissionKickMembers, Position: 1},
	}
	g.Members = []model.Member{
		{User: model.User{ID: 1, Name: "owner", Discriminator: 1}, GuildID: testGuildID},
		{User: model.User{ID: 2, Name: "member", Discriminator: 2}, GuildID: testGuildID, Roles: []model.RoleID{50}},
	}
	g.Channels = []json.RawMessage{
		json.RawMessage(`{"id":"300","type":0,"name":"general","position":0}`),
	}
	c.ApplyGuildCreate(g)
}

func guildMessage(author model.UserID, content string) model.Message {
	return model.Message{
		ID:        1,
		ChannelID: testChannel,
		Author:    model.User{ID: author, Name: "u", Discriminator: 1},
		Content:   content,
	}
}

func intPtr(n int) *int { return &n }

func TestDispatchRoutesAndTokenizes(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	var got []string
	f.AddGroup(&Group{Name: "General", Commands: []*Command{{
		Run: func(ctx context.Context, inv *Invocation) error {
			got = inv.Args
			return nil
		},
		Options: CommandOptions{Names: []string{"echo"}},
	}}})

	err := f.Dispatch(context.Background(), guildMessage(2, `!echo a "b c"`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b c"}, got)
}

func TestDispatchIgnoresUnprefixedAndUnknown(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	ran := false
	f.AddGroup(&Group{Name: "General", Commands: []*Command{{
		Run: func(ctx context.Context, inv *Invocation) error {
			ran = true
			return nil
		},
		Options: CommandOptions{Names: []string{"echo"}},
	}}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "echo hi")))
	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!nothere")))
	assert.False(t, ran)
}

func TestDispatchIgnoresBotsAndSelf(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!", IgnoreBots: true})

	ran := false
	f.AddGroup(&Group{Name: "General", Commands: []*Command{{
		Run: func(ctx context.Context, inv *Invocation) error {
			ran = true
			return nil
		},
		Options: CommandOptions{Names: []string{"echo"}},
	}}})

	bot := guildMessage(5, "!echo")
	bot.Author.Bot = true
	require.NoError(t, f.Dispatch(context.Background(), bot))
	require.NoError(t, f.Dispatch(context.Background(), guildMessage(botUserID, "!echo")))
	assert.False(t, ran)
}

func TestDispatchAliases(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	ran := 0
	f.AddGroup(&Group{Name: "General", Commands: []*Command{{
		Run: func(ctx context.Context, inv *Invocation) error {
			ran++
			return nil
		},
		Options: CommandOptions{Names: []string{"ping", "p"}},
	}}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!ping")))
	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!p")))
	assert.Equal(t, 2, ran)
}

func TestDispatchSubCommand(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	var ran string
	mk := func(name string) *Command {
		return &Command{
			Run: func(ctx context.Context, inv *Invocation) error {
				ran = name
				return nil
			},
			Options: CommandOptions{Names: []string{name}},
		}
	}
	parent := mk("config")
	parent.Options.SubCommands = []*Command{mk("get"), mk("set")}
	f.AddGroup(&Group{Name: "Admin", Commands: []*Command{parent}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!config set key")))
	assert.Equal(t, "set", ran)

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!config other")))
	assert.Equal(t, "config", ran)
}

func TestDispatchGroupPrefixAndDefault(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	var ran string
	mk := func(name string) *Command {
		return &Command{
			Run: func(ctx context.Context, inv *Invocation) error {
				ran = name
				return nil
			},
			Options: CommandOptions{Names: []string{name}},
		}
	}
	f.AddGroup(&Group{
		Name:     "Mod",
		Prefixes: []string{"mod"},
		Default:  mk("default"),
		Commands: []*Command{mk("kick")},
	})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!mod kick")))
	assert.Equal(t, "kick", ran)

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!mod")))
	assert.Equal(t, "default", ran)

	// Without the group prefix the command is unreachable.
	ran = ""
	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!kick")))
	assert.Empty(t, ran)
}

func TestGateArgCounts(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	f.AddGroup(&Group{Name: "General", Commands: []*Command{{
		Run:     func(ctx context.Context, inv *Invocation) error { return nil },
		Options: CommandOptions{Names: []string{"two"}, MinArgs: intPtr(2), MaxArgs: intPtr(2)},
	}}})

	err := f.Dispatch(context.Background(), guildMessage(2, "!two one"))
	assert.ErrorIs(t, err, ErrNotEnoughArgs)

	err = f.Dispatch(context.Background(), guildMessage(2, "!two a b c"))
	assert.ErrorIs(t, err, ErrTooManyArgs)

	assert.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!two a b")))
}

func TestGateOwnersOnly(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!", Owners: []model.UserID{1}})

	ran := false
	f.AddGroup(&Group{Name: "Admin", Commands: []*Command{{
		Run: func(ctx context.Context, inv *Invocation) error {
			ran = true
			return nil
		},
		Options: CommandOptions{Names: []string{"shutdown"}, OwnersOnly: true},
	}}})

	err := f.Dispatch(context.Background(), guildMessage(2, "!shutdown"))
	assert.ErrorIs(t, err, ErrOwnersOnly)
	assert.False(t, ran)

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(1, "!shutdown")))
	assert.True(t, ran)
}

func TestGateOwnerPrivilegeSkipsRemainingGates(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!", Owners: []model.UserID{1}})

	ran := false
	f.AddGroup(&Group{Name: "Admin", Commands: []*Command{{
		Run: func(ctx context.Context, inv *Invocation) error {
			ran = true
			return nil
		},
		Options: CommandOptions{
			Names:               []string{"purge"},
			MinArgs:             intPtr(3),
			RequiredPermissions: model.PermissionAdministrator,
			OwnerPrivilege:      true,
			Checks:              []Check{func(ctx context.Context, inv *Invocation) bool { return false }},
		},
	}}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(1, "!purge")))
	assert.True(t, ran)

	// Non-owners still face every gate.
	err := f.Dispatch(context.Background(), guildMessage(2, "!purge"))
	assert.ErrorIs(t, err, ErrNotEnoughArgs)
}

func TestGateChannelKind(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	f.AddGroup(&Group{Name: "General", Commands: []*Command{
		{
			Run:     func(ctx context.Context, inv *Invocation) error { return nil },
			Options: CommandOptions{Names: []string{"dm"}, OnlyIn: DMOnly},
		},
		{
			Run:     func(ctx context.Context, inv *Invocation) error { return nil },
			Options: CommandOptions{Names: []string{"server"}, OnlyIn: GuildOnly},
		},
	}})

	err := f.Dispatch(context.Background(), guildMessage(2, "!dm"))
	assert.ErrorIs(t, err, ErrWrongChannel)

	// A channel the cache does not know counts as private.
	private := guildMessage(2, "!server")
	private.ChannelID = 12345
	err = f.Dispatch(context.Background(), private)
	assert.ErrorIs(t, err, ErrWrongChannel)

	assert.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!server")))
}

func TestGateRequiredPermissions(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	f.AddGroup(&Group{Name: "Admin", Commands: []*Command{{
		Run:     func(ctx context.Context, inv *Invocation) error { return nil },
		Options: CommandOptions{Names: []string{"ban"}, RequiredPermissions: model.PermissionBanMembers},
	}}})

	err := f.Dispatch(context.Background(), guildMessage(2, "!ban"))
	var denied *model.PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, model.PermissionBanMembers, denied.Missing)

	// The guild owner holds every permission.
	assert.NoError(t, f.Dispatch(context.Background(), guildMessage(1, "!ban")))
}

func TestGateAllowedRoles(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	f.AddGroup(&Group{Name: "Mod", Commands: []*Command{{
		Run:     func(ctx context.Context, inv *Invocation) error { return nil },
		Options: CommandOptions{Names: []string{"warn"}, AllowedRoles: []string{"mods"}},
	}}})

	assert.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!warn")))

	err := f.Dispatch(context.Background(), guildMessage(1, "!warn"))
	assert.ErrorIs(t, err, ErrLackingRole)
}

func TestGateChecks(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	f.AddGroup(&Group{Name: "General", Commands: []*Command{{
		Run: func(ctx context.Context, inv *Invocation) error { return nil },
		Options: CommandOptions{
			Names:  []string{"maybe"},
			Checks: []Check{func(ctx context.Context, inv *Invocation) bool { return inv.Message.Author.ID == 2 }},
		},
	}}})

	assert.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!maybe")))
	assert.ErrorIs(t, f.Dispatch(context.Background(), guildMessage(1, "!maybe")), ErrCheckFailed)
}

func TestDispatchBucketCooldown(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})
	f.AddBucket("slow", time.Hour)

	f.AddGroup(&Group{Name: "General", Commands: []*Command{{
		Run:     func(ctx context.Context, inv *Invocation) error { return nil },
		Options: CommandOptions{Names: []string{"roll"}, Bucket: "slow"},
	}}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!roll")))
	assert.ErrorIs(t, f.Dispatch(context.Background(), guildMessage(2, "!roll")), ErrOnCooldown)

	// Separate users draw from separate cooldowns.
	assert.NoError(t, f.Dispatch(context.Background(), guildMessage(1, "!roll")))
}

func TestDispatchSurfacesCommandError(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	f.AddGroup(&Group{Name: "General", Commands: []*Command{{
		Run: func(ctx context.Context, inv *Invocation) error {
			return NewCommandError("bad input %q", inv.RawArgs)
		},
		Options: CommandOptions{Names: []string{"fail"}},
	}}})

	err := f.Dispatch(context.Background(), guildMessage(2, "!fail x"))
	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, `bad input "x"`, cmdErr.Message)
}

func TestInvocationCarriesGuildAndRawArgs(t *testing.T) {
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	var got Invocation
	f.AddGroup(&Group{Name: "General", Commands: []*Command{{
		Run: func(ctx context.Context, inv *Invocation) error {
			got = *inv
			return nil
		},
		Options: CommandOptions{Names: []string{"where"}},
	}}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, `!where  a   b`)))
	require.NotNil(t, got.GuildID)
	assert.Equal(t, testGuildID, *got.GuildID)
	assert.Equal(t, "a   b", got.RawArgs)
}
