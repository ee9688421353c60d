// Package framework dispatches chat commands declared as static
// descriptors: name matching, argument tokenizing, permission and role
// gating, cooldown buckets, and a help engine with suggestions.
package framework

import (
	"context"
	"errors"
	"fmt"

	"github.com/parsascontentcorner/discordlite/model"
)

// OnlyIn restricts where a command may be invoked.
type OnlyIn int

const (
	// Everywhere places no restriction on the channel kind.
	Everywhere OnlyIn = iota
	// DMOnly restricts the command to private and group channels.
	DMOnly
	// GuildOnly restricts the command to guild channels.
	GuildOnly
)

// CommandError aborts a command with a message surfaced to the invoker.
type CommandError struct {
	Message string
}

func (e *CommandError) Error() string { return e.Message }

// NewCommandError builds a CommandError from a format string.
func NewCommandError(format string, args ...any) *CommandError {
	return &CommandError{Message: fmt.Sprintf(format, args...)}
}

// ErrCheckFailed is returned by dispatch when a command's check predicate
// rejected the invocation.
var ErrCheckFailed = errors.New("command check failed")

// Check is a predicate gating a command invocation. Returning false aborts
// dispatch silently.
type Check func(ctx context.Context, inv *Invocation) bool

// Handler is the body of a command.
type Handler func(ctx context.Context, inv *Invocation) error

// CommandOptions is the static configuration of a command. Descriptors are
// built once at startup and never mutated afterwards.
type CommandOptions struct {
	// Names holds the primary name first, aliases after.
	Names []string
	// Desc and Usage feed the help engine; empty strings render as absent.
	Desc     string
	Usage    string
	Examples []string
	// MinArgs and MaxArgs bound the tokenized argument count; nil means
	// unbounded on that side.
	MinArgs *int
	MaxArgs *int
	// AllowedRoles names roles of which the member must hold at least one.
	// Empty means no role gate.
	AllowedRoles []string
	// RequiredPermissions must all hold in the invoking channel.
	RequiredPermissions model.Permissions
	// HelpAvailable hides the command from the help engine when false.
	HelpAvailable bool
	OnlyIn        OnlyIn
	OwnersOnly    bool
	// OwnerPrivilege lets owners bypass the permission, role, and channel
	// gates.
	OwnerPrivilege bool
	Checks         []Check
	SubCommands    []*Command
	// Bucket names the cooldown class the command draws from.
	Bucket string
	// Delimiters override the framework's argument delimiters.
	Delimiters []string
}

// Command pairs a handler with its static options.
type Command struct {
	Run     Handler
	Options CommandOptions
}

// Name returns the command's primary name.
func (c *Command) Name() string {
	if len(c.Options.Names) == 0 {
		return ""
	}
	return c.Options.Names[0]
}

// Matches reports whether name equals any of the command's names.
func (c *Command) Matches(name string) bool {
	for _, n := range c.Options.Names {
		if n == name {
			return true
		}
	}
	return false
}

// SubCommand resolves a direct sub-command by name.
func (c *Command) SubCommand(name string) *Command {
	for _, sub := range c.Options.SubCommands {
		if sub.Matches(name) {
			return sub
		}
	}
	return nil
}

// Group is a named set of commands, optionally behind its own prefixes and
// nesting sub-groups.
type Group struct {
	Name string
	// Prefixes, when non-empty, must precede the command name.
	Prefixes []string
	// Default runs when a prefix matched but no command name followed.
	Default  *Command
	Commands []*Command
	// Gates applied to every command of the group.
	AllowedRoles        []string
	RequiredPermissions model.Permissions
	OnlyIn              OnlyIn
	OwnersOnly          bool
	SubGroups           []*Group
}

// Find resolves a command in this group by name, not descending into
// sub-groups.
func (g *Group) Find(name string) *Command {
	for _, cmd := range g.Commands {
		if cmd.Matches(name) {
			return cmd
		}
	}
	return nil
}
