package framework

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/cache"
	"github.com/parsascontentcorner/discordlite/model"
)

// Dispatch errors. Silent conditions (no prefix, unknown command) return
// nil so callers only see actionable failures.
var (
	ErrNotEnoughArgs = errors.New("not enough arguments")
	ErrTooManyArgs   = errors.New("too many arguments")
	ErrOwnersOnly    = errors.New("command restricted to owners")
	ErrWrongChannel  = errors.New("command not available in this channel kind")
	ErrLackingRole   = errors.New("member lacks an allowed role")
	ErrOnCooldown    = errors.New("command on cooldown")
)

// Invocation carries one command invocation through gating and into the
// handler.
type Invocation struct {
	Message model.Message
	// GuildID is nil for private and group channels.
	GuildID *model.GuildID
	Command *Command
	// Args holds the tokenized arguments after the command name.
	Args []string
	// RawArgs is the argument string before tokenizing.
	RawArgs string
}

// Options configures a Framework.
type Options struct {
	// Prefix precedes every command invocation.
	Prefix string
	// Owners are exempt from ownership gates and, where commands allow it,
	// permission gates.
	Owners []model.UserID
	// IgnoreBots drops messages authored by bots.
	IgnoreBots bool
	// Delimiters used to split arguments; empty means quote-aware
	// whitespace splitting.
	Delimiters []string
}

// Framework routes messages to commands.
type Framework struct {
	opts    Options
	cache   *cache.Cache
	logger  *zap.Logger
	groups  []*Group
	owners  map[model.UserID]struct{}
	buckets map[string]*Bucket
	help    *Help
}

// New creates a framework dispatching against the given cache.
func New(opts Options, c *cache.Cache, logger *zap.Logger) *Framework {
	if logger == nil {
		logger = zap.NewNop()
	}
	owners := make(map[model.UserID]struct{}, len(opts.Owners))
	for _, id := range opts.Owners {
		owners[id] = struct{}{}
	}
	return &Framework{
		opts:    opts,
		cache:   c,
		logger:  logger,
		owners:  owners,
		buckets: make(map[string]*Bucket),
	}
}

// AddGroup registers a command group.
func (f *Framework) AddGroup(g *Group) *Framework {
	f.groups = append(f.groups, g)
	return f
}

// AddBucket registers a named cooldown class.
func (f *Framework) AddBucket(name string, delay time.Duration) *Framework {
	f.buckets[name] = NewBucket(delay)
	return f
}

// WithHelp wires the help engine under the given command name.
func (f *Framework) WithHelp(name string, opts HelpOptions) *Framework {
	f.help = NewHelp(name, opts, f)
	return f
}

// Groups returns the registered groups, for the help engine.
func (f *Framework) Groups() []*Group { return f.groups }

// IsOwner reports whether the user is in the owners set.
func (f *Framework) IsOwner(id model.UserID) bool {
	_, ok := f.owners[id]
	return ok
}

// Dispatch routes a message to a command. Messages without the prefix, from
// bots, or naming no known command are ignored without error.
func (f *Framework) Dispatch(ctx context.Context, msg model.Message) error {
	if f.opts.IgnoreBots && msg.Author.Bot {
		return nil
	}
	if msg.IsOwn(f.cache.CurrentUser().ID) {
		return nil
	}
	body, ok := strings.CutPrefix(msg.Content, f.opts.Prefix)
	if !ok || body == "" {
		return nil
	}

	guildID := f.guildOf(msg.ChannelID)

	if f.help != nil && f.consumeName(&body, f.help.Name()) {
		return f.help.Run(ctx, &Invocation{
			Message: msg,
			GuildID: guildID,
			RawArgs: strings.TrimSpace(body),
			Args:    ParseQuotes(body),
		})
	}

	cmd, rest := f.resolve(body)
	if cmd == nil {
		return nil
	}

	inv := &Invocation{
		Message: msg,
		GuildID: guildID,
		Command: cmd,
		RawArgs: strings.TrimSpace(rest),
	}
	delims := cmd.Options.Delimiters
	if len(delims) == 0 {
		delims = f.opts.Delimiters
	}
	inv.Args = SplitArgs(inv.RawArgs, delims)

	if err := f.gate(ctx, cmd, inv); err != nil {
		return err
	}

	if cmd.Options.Bucket != "" {
		if bucket, ok := f.buckets[cmd.Options.Bucket]; ok {
			if wait, allowed := bucket.Take(msg.Author.ID); !allowed {
				return fmt.Errorf("%w: retry in %s", ErrOnCooldown, wait)
			}
		}
	}

	if err := cmd.Run(ctx, inv); err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			f.logger.Info("command reported error",
				zap.String("command", cmd.Name()),
				zap.String("message", cmdErr.Message),
			)
		}
		return err
	}
	return nil
}

// resolve walks groups to find the named command, honouring group prefixes
// and descending into sub-commands. Returns the command and the remaining
// argument text.
func (f *Framework) resolve(body string) (*Command, string) {
	for _, g := range f.groups {
		if cmd, rest, ok := f.resolveInGroup(g, body); ok {
			return cmd, rest
		}
	}
	return nil, ""
}

func (f *Framework) resolveInGroup(g *Group, body string) (*Command, string, bool) {
	scoped := body
	if len(g.Prefixes) > 0 {
		matched := false
		for _, p := range g.Prefixes {
			if f.consumeName(&scoped, p) {
				matched = true
				break
			}
		}
		if !matched {
			return nil, "", false
		}
		if scoped == "" && g.Default != nil {
			return g.Default, "", true
		}
	}

	name, rest := splitFirstToken(scoped)
	if cmd := g.Find(name); cmd != nil {
		return descend(cmd, rest)
	}
	for _, sub := range g.SubGroups {
		if cmd, subRest, ok := f.resolveInGroup(sub, scoped); ok {
			return cmd, subRest, ok
		}
	}
	return nil, "", false
}

// descend follows sub-commands while the next token names one.
func descend(cmd *Command, rest string) (*Command, string, bool) {
	for {
		name, after := splitFirstToken(rest)
		sub := cmd.SubCommand(name)
		if sub == nil {
			return cmd, rest, true
		}
		cmd, rest = sub, after
	}
}

// gate runs the invocation gates in order, aborting on the first failure.
func (f *Framework) gate(ctx context.Context, cmd *Command, inv *Invocation) error {
	opts := cmd.Options

	if err := f.checkChannelKind(opts.OnlyIn, inv.GuildID); err != nil {
		return err
	}

	if opts.OwnersOnly && !f.IsOwner(inv.Message.Author.ID) {
		return ErrOwnersOnly
	}

	// Owners with owner privilege skip the remaining gates.
	if opts.OwnerPrivilege && f.IsOwner(inv.Message.Author.ID) {
		return nil
	}

	if opts.MinArgs != nil && len(inv.Args) < *opts.MinArgs {
		return fmt.Errorf("%w: need %d, got %d", ErrNotEnoughArgs, *opts.MinArgs, len(inv.Args))
	}
	if opts.MaxArgs != nil && len(inv.Args) > *opts.MaxArgs {
		return fmt.Errorf("%w: allow %d, got %d", ErrTooManyArgs, *opts.MaxArgs, len(inv.Args))
	}

	if opts.RequiredPermissions != 0 {
		if err := f.checkPermissions(opts.RequiredPermissions, inv); err != nil {
			return err
		}
	}

	if len(opts.AllowedRoles) > 0 {
		if !f.hasAllowedRole(opts.AllowedRoles, inv) {
			return ErrLackingRole
		}
	}

	return f.runChecks(ctx, opts.Checks, inv)
}

func (f *Framework) runChecks(ctx context.Context, checks []Check, inv *Invocation) error {
	for _, check := range checks {
		if !check(ctx, inv) {
			return ErrCheckFailed
		}
	}
	return nil
}

func (f *Framework) checkChannelKind(only OnlyIn, guildID *model.GuildID) error {
	switch only {
	case DMOnly:
		if guildID != nil {
			return ErrWrongChannel
		}
	case GuildOnly:
		if guildID == nil {
			return ErrWrongChannel
		}
	}
	return nil
}

func (f *Framework) checkPermissions(required model.Permissions, inv *Invocation) error {
	if inv.GuildID == nil {
		// Private channels have no permission structure to check against.
		return nil
	}
	perms, ok := f.cache.PermissionsFor(*inv.GuildID, inv.Message.ChannelID, inv.Message.Author.ID)
	if !ok || !perms.IsSupersetOf(required) {
		return &model.PermissionDeniedError{Missing: required.Difference(perms)}
	}
	return nil
}

func (f *Framework) hasAllowedRole(allowed []string, inv *Invocation) bool {
	if inv.GuildID == nil {
		return false
	}
	member, ok := f.cache.Member(*inv.GuildID, inv.Message.Author.ID)
	if !ok {
		return false
	}
	for _, roleID := range member.Roles {
		role, have := f.cache.Role(*inv.GuildID, roleID)
		if !have {
			continue
		}
		for _, name := range allowed {
			if role.Name == name {
				return true
			}
		}
	}
	return false
}

// guildOf resolves the owning guild of a channel through the cache, nil for
// private channels.
func (f *Framework) guildOf(channelID model.ChannelID) *model.GuildID {
	ch, ok := f.cache.Channel(channelID)
	if !ok {
		return nil
	}
	if gc, ok := ch.(model.GuildChannel); ok {
		id := gc.GuildID
		return &id
	}
	return nil
}

// consumeName strips name plus trailing whitespace from the front of body,
// requiring a token boundary.
func (f *Framework) consumeName(body *string, name string) bool {
	rest, ok := strings.CutPrefix(*body, name)
	if !ok {
		return false
	}
	if rest != "" && rest[0] != ' ' {
		return false
	}
	*body = strings.TrimLeft(rest, " ")
	return true
}

func splitFirstToken(s string) (string, string) {
	s = strings.TrimLeft(s, " ")
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i], strings.TrimLeft(s[i:], " ")
	}
	return s, ""
}
