package framework

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpCommand(name string, aliases ...string) *Command {
	return &Command{
		Run: func(ctx context.Context, inv *Invocation) error { return nil },
		Options: CommandOptions{
			Names:         append([]string{name}, aliases...),
			Desc:          "does " + name,
			Usage:         name + " <arg>",
			HelpAvailable: true,
		},
	}
}

func newHelpFramework(t *testing.T, helpOpts HelpOptions) (*Framework, *[]string) {
	t.Helper()
	f, _ := newTestFramework(t, Options{Prefix: "!"})

	var sent []string
	helpOpts.Send = func(ctx context.Context, inv *Invocation, text string) error {
		sent = append(sent, text)
		return nil
	}
	f.WithHelp("help", helpOpts)
	return f, &sent
}

func TestHelpSuggestsSimilarNames(t *testing.T) {
	opts := DefaultHelpOptions()
	opts.MaxLevenshteinDistance = 2
	f, _ := newHelpFramework(t, opts)
	f.AddGroup(&Group{Name: "General", Commands: []*Command{
		helpCommand("ping"),
	}})

	cmd, suggestions := f.help.Search(&Invocation{Message: guildMessage(2, "")}, "pign")
	require.Nil(t, cmd)
	require.Len(t, suggestions, 1)
	assert.Equal(t, SuggestedCommand{Name: "ping", Distance: 2}, suggestions[0])
}

func TestHelpSuggestionsSortedByDistance(t *testing.T) {
	opts := DefaultHelpOptions()
	opts.MaxLevenshteinDistance = 2
	f, _ := newHelpFramework(t, opts)
	f.AddGroup(&Group{Name: "General", Commands: []*Command{
		helpCommand("point"),
		helpCommand("pings"),
	}})

	cmd, suggestions := f.help.Search(&Invocation{Message: guildMessage(2, "")}, "ping")
	require.Nil(t, cmd)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "pings", suggestions[0].Name)
	assert.Equal(t, 1, suggestions[0].Distance)
	assert.Equal(t, "point", suggestions[1].Name)
	assert.Equal(t, 2, suggestions[1].Distance)
}

func TestHelpSearchExactAndAlias(t *testing.T) {
	f, _ := newHelpFramework(t, DefaultHelpOptions())
	f.AddGroup(&Group{Name: "General", Commands: []*Command{
		helpCommand("ping", "p"),
	}})

	inv := &Invocation{Message: guildMessage(2, "")}
	cmd, _ := f.help.Search(inv, "ping")
	require.NotNil(t, cmd)
	assert.Equal(t, "ping", cmd.Name())

	cmd, _ = f.help.Search(inv, "p")
	require.NotNil(t, cmd)
	assert.Equal(t, "ping", cmd.Name())
}

func TestHelpSearchDescendsSubCommands(t *testing.T) {
	f, _ := newHelpFramework(t, DefaultHelpOptions())
	parent := helpCommand("config")
	parent.Options.SubCommands = []*Command{helpCommand("get")}
	f.AddGroup(&Group{Name: "Admin", Commands: []*Command{parent}})

	cmd, _ := f.help.Search(&Invocation{Message: guildMessage(2, "")}, "config get")
	require.NotNil(t, cmd)
	assert.Equal(t, "get", cmd.Name())
}

func TestHelpSearchSkipsHiddenCommands(t *testing.T) {
	f, _ := newHelpFramework(t, DefaultHelpOptions())
	hidden := helpCommand("secret")
	hidden.Options.HelpAvailable = false
	f.AddGroup(&Group{Name: "General", Commands: []*Command{hidden}})

	cmd, suggestions := f.help.Search(&Invocation{Message: guildMessage(2, "")}, "secret")
	assert.Nil(t, cmd)
	assert.Empty(t, suggestions)
}

func TestHelpRunRendersListing(t *testing.T) {
	f, sent := newHelpFramework(t, DefaultHelpOptions())
	f.AddGroup(&Group{Name: "General", Commands: []*Command{
		helpCommand("ping"),
		helpCommand("echo"),
	}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!help")))
	require.Len(t, *sent, 1)
	out := (*sent)[0]
	assert.Contains(t, out, "**General**")
	assert.Contains(t, out, "`ping`")
	assert.Contains(t, out, "`echo`")
}

func TestHelpListingStrikesWrongChannelCommands(t *testing.T) {
	opts := DefaultHelpOptions()
	opts.WrongChannel = Strike
	f, sent := newHelpFramework(t, opts)
	dmOnly := helpCommand("whoami")
	dmOnly.Options.OnlyIn = DMOnly
	f.AddGroup(&Group{Name: "General", Commands: []*Command{dmOnly}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!help")))
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0], "~~`whoami`~~")
}

func TestHelpListingHidesOwnerCommands(t *testing.T) {
	opts := DefaultHelpOptions()
	opts.LackingOwnership = Hide
	f, sent := newHelpFramework(t, opts)
	owner := helpCommand("shutdown")
	owner.Options.OwnersOnly = true
	f.AddGroup(&Group{Name: "Admin", Commands: []*Command{owner}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!help")))
	require.Len(t, *sent, 1)
	assert.NotContains(t, (*sent)[0], "shutdown")
}

func TestHelpGroupBehaviourPropagates(t *testing.T) {
	opts := DefaultHelpOptions()
	opts.LackingOwnership = Hide
	f, sent := newHelpFramework(t, opts)
	f.AddGroup(&Group{
		Name:       "Admin",
		OwnersOnly: true,
		Commands:   []*Command{helpCommand("visible")},
		SubGroups: []*Group{{
			Name:     "Deeper",
			Commands: []*Command{helpCommand("nested")},
		}},
	})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!help")))
	require.Len(t, *sent, 1)
	assert.NotContains(t, (*sent)[0], "visible")
	assert.NotContains(t, (*sent)[0], "nested")
}

func TestHelpRunRendersCommandDetail(t *testing.T) {
	f, sent := newHelpFramework(t, DefaultHelpOptions())
	f.AddGroup(&Group{Name: "General", Commands: []*Command{
		helpCommand("ping", "p"),
	}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!help ping")))
	require.Len(t, *sent, 1)
	out := (*sent)[0]
	assert.Contains(t, out, "**ping**")
	assert.Contains(t, out, "does ping")
	assert.Contains(t, out, "`ping <arg>`")
	assert.Contains(t, out, "`p`")
	assert.Contains(t, out, "General")
}

func TestHelpRunNotFound(t *testing.T) {
	f, sent := newHelpFramework(t, DefaultHelpOptions())
	f.AddGroup(&Group{Name: "General", Commands: []*Command{helpCommand("ping")}})

	require.NoError(t, f.Dispatch(context.Background(), guildMessage(2, "!help zzzzzz")))
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0], "`zzzzzz`")
}
