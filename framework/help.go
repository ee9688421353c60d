package framework

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/content"
)

// HelpBehaviour says how the help engine renders a command the invoker
// cannot use. Values are ordered by restrictiveness so the strictest one
// encountered along a group chain wins.
type HelpBehaviour int

const (
	// Nothing renders the command like any other.
	Nothing HelpBehaviour = iota
	// Strike renders the command name struck through.
	Strike
	// Hide omits the command entirely.
	Hide
)

// HelpOptions configures the help engine's texts and how unusable
// commands render.
type HelpOptions struct {
	// SuggestionText formats the similar-commands line; %s receives the
	// joined suggestions.
	SuggestionText string
	// NoHelpAvailableText renders when a command carries no description.
	NoHelpAvailableText string
	// CommandNotFoundText formats the miss line; %s receives the query.
	CommandNotFoundText string
	// IndividualCommandTip heads the grouped listing.
	IndividualCommandTip string
	// StrikedCommandsTip explains struck-through entries; empty omits it.
	StrikedCommandsTip string

	UsageLabel       string
	UsageSampleLabel string
	AliasesLabel     string
	DescriptionLabel string
	GroupedLabel     string
	UngroupedLabel   string
	AvailableText    string
	GuildOnlyText    string
	DmOnlyText       string
	DmAndGuildText   string
	// GroupPrefix labels a group's prefixes in the listing.
	GroupPrefix string

	// Behaviours for commands the invoker cannot use, by reason.
	LackingPermissions HelpBehaviour
	LackingRole        HelpBehaviour
	LackingOwnership   HelpBehaviour
	WrongChannel       HelpBehaviour

	// MaxLevenshteinDistance bounds name suggestions; zero disables them.
	MaxLevenshteinDistance int

	// Send delivers rendered help text. Nil logs the text instead, which
	// keeps the engine usable in tests without a transport.
	Send func(ctx context.Context, inv *Invocation, text string) error
}

// DefaultHelpOptions returns the stock texts and behaviours.
func DefaultHelpOptions() HelpOptions {
	return HelpOptions{
		SuggestionText:         "Did you mean %s?",
		NoHelpAvailableText:    "**Error**: No help available.",
		CommandNotFoundText:    "**Error**: Command `%s` not found.",
		IndividualCommandTip:   "To get help with an individual command, pass its name as an argument to this command.",
		StrikedCommandsTip:     "Commands with a strikethrough require elevated permissions.",
		UsageLabel:             "Usage",
		UsageSampleLabel:       "Sample usage",
		AliasesLabel:           "Aliases",
		DescriptionLabel:       "Description",
		GroupedLabel:           "Group",
		UngroupedLabel:         "Ungrouped",
		AvailableText:          "Available",
		GuildOnlyText:          "Only in servers",
		DmOnlyText:             "Only in DM",
		DmAndGuildText:         "In DM and servers",
		GroupPrefix:            "Prefix",
		LackingPermissions:     Hide,
		LackingRole:            Nothing,
		LackingOwnership:       Hide,
		WrongChannel:           Strike,
		MaxLevenshteinDistance: 0,
	}
}

// SuggestedCommand is a near-miss candidate for a misspelled command name.
type SuggestedCommand struct {
	Name     string
	Distance int
}

// Help renders command listings, per-command detail, and name suggestions.
type Help struct {
	name string
	opts HelpOptions
	f    *Framework
}

// NewHelp builds a help engine over the framework's groups.
func NewHelp(name string, opts HelpOptions, f *Framework) *Help {
	return &Help{name: name, opts: opts, f: f}
}

// Name returns the command name the engine answers to.
func (h *Help) Name() string { return h.name }

// Run renders help for the invocation: the grouped listing when no
// argument was given, otherwise detail for the named command or
// suggestions when nothing matches.
func (h *Help) Run(ctx context.Context, inv *Invocation) error {
	var text string
	if inv.RawArgs == "" {
		text = h.Listing(inv)
	} else {
		cmd, suggestions := h.Search(inv, inv.RawArgs)
		switch {
		case cmd != nil:
			text = h.renderCommand(inv, cmd)
		case len(suggestions) > 0:
			text = h.renderSuggestions(suggestions)
		default:
			text = fmt.Sprintf(h.opts.CommandNotFoundText, inv.RawArgs)
		}
	}
	if h.opts.Send == nil {
		h.f.logger.Debug("help rendered without a sender", zap.String("text", text))
		return nil
	}
	return h.opts.Send(ctx, inv, text)
}

// Listing renders the grouped command overview for the invoker.
func (h *Help) Listing(inv *Invocation) string {
	b := content.NewBuilder()
	b.PushLine(h.opts.IndividualCommandTip)
	if h.opts.StrikedCommandsTip != "" {
		b.PushLine(h.opts.StrikedCommandsTip)
	}
	for _, g := range h.f.Groups() {
		h.listGroup(b, g, inv, Nothing)
	}
	return b.String()
}

// listGroup appends one group's section, carrying down the strictest
// behaviour seen so far. Hide stops the descent.
func (h *Help) listGroup(b *content.Builder, g *Group, inv *Invocation, inherited HelpBehaviour) {
	behaviour := maxBehaviour(inherited, h.groupBehaviour(g, inv))
	if behaviour == Hide {
		return
	}

	var names []string
	for _, cmd := range g.Commands {
		name := h.displayName(cmd, inv, behaviour)
		if name != "" {
			names = append(names, name)
		}
	}

	if len(names) > 0 {
		b.Push("\n").PushBold(g.Name)
		if len(g.Prefixes) > 0 {
			b.Push(" (").Push(h.opts.GroupPrefix).Push(": ").PushMono(strings.Join(g.Prefixes, "`, `")).Push(")")
		}
		b.PushLine(":")
		b.PushLine(strings.Join(names, " "))
	}

	for _, sub := range g.SubGroups {
		h.listGroup(b, sub, inv, behaviour)
	}
}

// displayName renders a command's listing entry under the effective
// behaviour, empty when it should not appear.
func (h *Help) displayName(cmd *Command, inv *Invocation, inherited HelpBehaviour) string {
	switch maxBehaviour(inherited, h.commandBehaviour(cmd, inv)) {
	case Hide:
		return ""
	case Strike:
		return "~~`" + cmd.Name() + "`~~"
	default:
		return "`" + cmd.Name() + "`"
	}
}

// Search resolves name against all groups: exact alias match first, then
// alias-prefixed sub-commands, then edit-distance suggestions, then
// sub-groups. Suggestions come back sorted by ascending distance.
func (h *Help) Search(inv *Invocation, name string) (*Command, []SuggestedCommand) {
	name = strings.TrimSpace(name)
	var suggestions []SuggestedCommand
	for _, g := range h.f.Groups() {
		if cmd := h.searchGroup(g, inv, name, &suggestions); cmd != nil {
			return cmd, nil
		}
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Distance < suggestions[j].Distance
	})
	return nil, suggestions
}

func (h *Help) searchGroup(g *Group, inv *Invocation, name string, suggestions *[]SuggestedCommand) *Command {
	scoped := name
	if len(g.Prefixes) > 0 {
		matched := false
		for _, p := range g.Prefixes {
			if h.f.consumeName(&scoped, p) {
				matched = true
				break
			}
		}
		if !matched {
			return nil
		}
	}

	for _, cmd := range g.Commands {
		if found := h.searchCommand(cmd, inv, scoped, suggestions); found != nil {
			return found
		}
	}
	for _, sub := range g.SubGroups {
		if found := h.searchGroup(sub, inv, scoped, suggestions); found != nil {
			return found
		}
	}
	return nil
}

func (h *Help) searchCommand(cmd *Command, inv *Invocation, name string, suggestions *[]SuggestedCommand) *Command {
	if h.commandBehaviour(cmd, inv) == Hide {
		return nil
	}
	for _, alias := range cmd.Options.Names {
		if alias == name {
			return cmd
		}
		rest := name
		if h.f.consumeName(&rest, alias) && rest != "" {
			for _, sub := range cmd.Options.SubCommands {
				if found := h.searchCommand(sub, inv, rest, suggestions); found != nil {
					return found
				}
			}
		}
		if h.opts.MaxLevenshteinDistance > 0 {
			if d := levenshtein.ComputeDistance(alias, name); d <= h.opts.MaxLevenshteinDistance {
				*suggestions = append(*suggestions, SuggestedCommand{Name: alias, Distance: d})
			}
		}
	}
	return nil
}

// renderCommand renders the detail view for a single command.
func (h *Help) renderCommand(inv *Invocation, cmd *Command) string {
	opts := cmd.Options
	b := content.NewBuilder()
	b.PushBoldLine(cmd.Name())
	b.Push("\n")

	if len(opts.Names) > 1 {
		b.PushBold(h.opts.AliasesLabel).Push(": ").PushMonoLine(strings.Join(opts.Names[1:], "`, `"))
	}
	if opts.Desc != "" {
		b.PushBold(h.opts.DescriptionLabel).Push(": ").PushLine(opts.Desc)
	} else {
		b.PushLine(h.opts.NoHelpAvailableText)
	}
	if opts.Usage != "" {
		b.PushBold(h.opts.UsageLabel).Push(": ").PushMonoLine(opts.Usage)
	}
	for _, example := range opts.Examples {
		b.PushBold(h.opts.UsageSampleLabel).Push(": ").PushMonoLine(example)
	}
	if group := h.groupOf(cmd); group != "" {
		b.PushBold(h.opts.GroupedLabel).Push(": ").PushLine(group)
	} else {
		b.PushBold(h.opts.GroupedLabel).Push(": ").PushLine(h.opts.UngroupedLabel)
	}
	b.PushBold(h.opts.AvailableText).Push(": ").PushLine(h.availability(opts.OnlyIn))
	return b.String()
}

func (h *Help) renderSuggestions(suggestions []SuggestedCommand) string {
	names := make([]string, len(suggestions))
	for i, s := range suggestions {
		names[i] = "`" + s.Name + "`"
	}
	return fmt.Sprintf(h.opts.SuggestionText, strings.Join(names, ", "))
}

func (h *Help) availability(only OnlyIn) string {
	switch only {
	case DMOnly:
		return h.opts.DmOnlyText
	case GuildOnly:
		return h.opts.GuildOnlyText
	default:
		return h.opts.DmAndGuildText
	}
}

// groupOf finds the name of the group containing cmd, empty when none
// claims it.
func (h *Help) groupOf(cmd *Command) string {
	var walk func(g *Group) string
	walk = func(g *Group) string {
		for _, c := range g.Commands {
			if c == cmd {
				return g.Name
			}
		}
		for _, sub := range g.SubGroups {
			if name := walk(sub); name != "" {
				return name
			}
		}
		return ""
	}
	for _, g := range h.f.Groups() {
		if name := walk(g); name != "" {
			return name
		}
	}
	return ""
}

// commandBehaviour maps a command's gates, evaluated against the invoker,
// to how the help engine should render it.
func (h *Help) commandBehaviour(cmd *Command, inv *Invocation) HelpBehaviour {
	opts := cmd.Options
	if !opts.HelpAvailable {
		return Hide
	}
	if h.f.checkChannelKind(opts.OnlyIn, inv.GuildID) != nil {
		return h.opts.WrongChannel
	}
	isOwner := h.f.IsOwner(inv.Message.Author.ID)
	if opts.OwnersOnly && !isOwner {
		return h.opts.LackingOwnership
	}
	if opts.OwnerPrivilege && isOwner {
		return Nothing
	}
	if opts.RequiredPermissions != 0 && h.f.checkPermissions(opts.RequiredPermissions, inv) != nil {
		return h.opts.LackingPermissions
	}
	if len(opts.AllowedRoles) > 0 && !h.f.hasAllowedRole(opts.AllowedRoles, inv) {
		return h.opts.LackingRole
	}
	return Nothing
}

// groupBehaviour evaluates a group's own gates the same way.
func (h *Help) groupBehaviour(g *Group, inv *Invocation) HelpBehaviour {
	if h.f.checkChannelKind(g.OnlyIn, inv.GuildID) != nil {
		return h.opts.WrongChannel
	}
	if g.OwnersOnly && !h.f.IsOwner(inv.Message.Author.ID) {
		return h.opts.LackingOwnership
	}
	if g.RequiredPermissions != 0 && h.f.checkPermissions(g.RequiredPermissions, inv) != nil {
		return h.opts.LackingPermissions
	}
	if len(g.AllowedRoles) > 0 && !h.f.hasAllowedRole(g.AllowedRoles, inv) {
		return h.opts.LackingRole
	}
	return Nothing
}

func maxBehaviour(a, b HelpBehaviour) HelpBehaviour {
	if b > a {
		return b
	}
	return a
}
