package content

import (
	"strings"

	"github.com/parsascontentcorner/discordlite/model"
)

// Builder accumulates markdown-formatted message text. All methods return
// the builder for chaining; the result is read with String.
type Builder struct {
	buf strings.Builder
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// String returns the accumulated text.
func (b *Builder) String() string {
	return b.buf.String()
}

// Len returns the accumulated length in bytes.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Push appends content verbatim.
func (b *Builder) Push(content string) *Builder {
	b.buf.WriteString(content)
	return b
}

// PushLine appends content followed by a newline.
func (b *Builder) PushLine(content string) *Builder {
	return b.Push(content).Push("\n")
}

// PushSafe appends normalized content.
func (b *Builder) PushSafe(content string) *Builder {
	return b.Push(Normalize(content))
}

// PushLineSafe appends normalized content followed by a newline.
func (b *Builder) PushLineSafe(content string) *Builder {
	return b.PushSafe(content).Push("\n")
}

func (b *Builder) wrap(delim, content string) *Builder {
	return b.Push(delim).Push(content).Push(delim)
}

// PushBold appends content wrapped in "**".
func (b *Builder) PushBold(content string) *Builder {
	return b.wrap("**", content)
}

// PushBoldLine appends bold content followed by a newline.
func (b *Builder) PushBoldLine(content string) *Builder {
	return b.PushBold(content).Push("\n")
}

// PushBoldSafe appends normalized content with the bold delimiter
// neutralized, wrapped in "**".
func (b *Builder) PushBoldSafe(content string) *Builder {
	return b.wrap("**", strings.ReplaceAll(Normalize(content), "*", " "))
}

// PushBoldLineSafe is PushBoldSafe followed by a newline.
func (b *Builder) PushBoldLineSafe(content string) *Builder {
	return b.PushBoldSafe(content).Push("\n")
}

// PushItalic appends content wrapped in "_".
func (b *Builder) PushItalic(content string) *Builder {
	return b.wrap("_", content)
}

// PushItalicLine appends italic content followed by a newline.
func (b *Builder) PushItalicLine(content string) *Builder {
	return b.PushItalic(content).Push("\n")
}

// PushItalicSafe appends normalized content with the italic delimiter
// neutralized.
func (b *Builder) PushItalicSafe(content string) *Builder {
	return b.wrap("_", strings.ReplaceAll(Normalize(content), "_", " "))
}

// PushItalicLineSafe is PushItalicSafe followed by a newline.
func (b *Builder) PushItalicLineSafe(content string) *Builder {
	return b.PushItalicSafe(content).Push("\n")
}

// PushUnderline appends content wrapped in "__".
func (b *Builder) PushUnderline(content string) *Builder {
	return b.wrap("__", content)
}

// PushUnderlineLine appends underlined content followed by a newline.
func (b *Builder) PushUnderlineLine(content string) *Builder {
	return b.PushUnderline(content).Push("\n")
}

// PushUnderlineSafe appends normalized content with the underline
// delimiter neutralized.
func (b *Builder) PushUnderlineSafe(content string) *Builder {
	return b.wrap("__", strings.ReplaceAll(Normalize(content), "__", " "))
}

// PushUnderlineLineSafe is PushUnderlineSafe followed by a newline.
func (b *Builder) PushUnderlineLineSafe(content string) *Builder {
	return b.PushUnderlineSafe(content).Push("\n")
}

// PushStrike appends content wrapped in "~~".
func (b *Builder) PushStrike(content string) *Builder {
	return b.wrap("~~", content)
}

// PushStrikeLine appends struck content followed by a newline.
func (b *Builder) PushStrikeLine(content string) *Builder {
	return b.PushStrike(content).Push("\n")
}

// PushStrikeSafe appends normalized content with the strikethrough
// delimiter neutralized.
func (b *Builder) PushStrikeSafe(content string) *Builder {
	return b.wrap("~~", strings.ReplaceAll(Normalize(content), "~~", " "))
}

// PushStrikeLineSafe is PushStrikeSafe followed by a newline.
func (b *Builder) PushStrikeLineSafe(content string) *Builder {
	return b.PushStrikeSafe(content).Push("\n")
}

// PushSpoiler appends content wrapped in "||".
func (b *Builder) PushSpoiler(content string) *Builder {
	return b.wrap("||", content)
}

// PushSpoilerLine appends spoilered content followed by a newline.
func (b *Builder) PushSpoilerLine(content string) *Builder {
	return b.PushSpoiler(content).Push("\n")
}

// PushSpoilerSafe appends normalized content with the spoiler delimiter
// neutralized.
func (b *Builder) PushSpoilerSafe(content string) *Builder {
	return b.wrap("||", strings.ReplaceAll(Normalize(content), "||", " "))
}

// PushSpoilerLineSafe is PushSpoilerSafe followed by a newline.
func (b *Builder) PushSpoilerLineSafe(content string) *Builder {
	return b.PushSpoilerSafe(content).Push("\n")
}

// PushMono appends content wrapped in backticks.
func (b *Builder) PushMono(content string) *Builder {
	return b.wrap("`", content)
}

// PushMonoLine appends monospaced content followed by a newline.
func (b *Builder) PushMonoLine(content string) *Builder {
	return b.PushMono(content).Push("\n")
}

// PushMonoSafe appends normalized content with backticks downgraded to
// single quotes so the span cannot be broken out of.
func (b *Builder) PushMonoSafe(content string) *Builder {
	return b.wrap("`", strings.ReplaceAll(Normalize(content), "`", "'"))
}

// PushMonoLineSafe is PushMonoSafe followed by a newline.
func (b *Builder) PushMonoLineSafe(content string) *Builder {
	return b.PushMonoSafe(content).Push("\n")
}

// PushCodeBlock appends a fenced code block, optionally tagged with a
// language.
func (b *Builder) PushCodeBlock(content, language string) *Builder {
	return b.Push("```").Push(language).Push("\n").Push(content).Push("\n```")
}

// PushCodeBlockSafe is PushCodeBlock with the fence neutralized inside the
// content.
func (b *Builder) PushCodeBlockSafe(content, language string) *Builder {
	return b.PushCodeBlock(strings.ReplaceAll(Normalize(content), "```", " "), language)
}

// PushQuote appends content as a block quote.
func (b *Builder) PushQuote(content string) *Builder {
	return b.Push("> ").Push(content)
}

// PushQuoteLine appends a quoted line.
func (b *Builder) PushQuoteLine(content string) *Builder {
	return b.PushQuote(content).Push("\n")
}

// PushNamedLink appends a "[label](url)" link.
func (b *Builder) PushNamedLink(label, url string) *Builder {
	return b.Push("[").Push(label).Push("](").Push(url).Push(")")
}

// PushNamedLinkSafe is PushNamedLink with the closing characters of each
// part neutralized so the link cannot be escaped.
func (b *Builder) PushNamedLinkSafe(label, url string) *Builder {
	label = strings.ReplaceAll(Normalize(label), "]", " ")
	url = strings.ReplaceAll(Normalize(url), ")", " ")
	return b.PushNamedLink(label, url)
}

// Channel appends a channel mention.
func (b *Builder) Channel(id model.ChannelID) *Builder {
	return b.Push("<#" + id.String() + ">")
}

// Role appends a role mention.
func (b *Builder) Role(id model.RoleID) *Builder {
	return b.Push("<@&" + id.String() + ">")
}

// User appends a user mention.
func (b *Builder) User(id model.UserID) *Builder {
	return b.Push("<@" + id.String() + ">")
}

// Emoji appends a custom emoji, animated-aware.
func (b *Builder) Emoji(e model.Emoji) *Builder {
	return b.Push(e.Mention())
}
