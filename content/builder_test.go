package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parsascontentcorner/discordlite/model"
)

func TestBuilderChaining(t *testing.T) {
	got := NewBuilder().
		Push("a").
		PushLine("b").
		PushBold("c").
		PushItalic("d").
		String()
	assert.Equal(t, "ab\n**c**_d_", got)
}

func TestBuilderStyles(t *testing.T) {
	assert.Equal(t, "**x**", NewBuilder().PushBold("x").String())
	assert.Equal(t, "_x_", NewBuilder().PushItalic("x").String())
	assert.Equal(t, "__x__", NewBuilder().PushUnderline("x").String())
	assert.Equal(t, "~~x~~", NewBuilder().PushStrike("x").String())
	assert.Equal(t, "||x||", NewBuilder().PushSpoiler("x").String())
	assert.Equal(t, "`x`", NewBuilder().PushMono("x").String())
	assert.Equal(t, "**x**\n", NewBuilder().PushBoldLine("x").String())
}

func TestBuilderBoldSafeNeutralizesDelimiter(t *testing.T) {
	got := NewBuilder().PushBoldSafe("a**b").String()
	assert.Equal(t, "**a  b**", got)
}

func TestBuilderSafeVariants(t *testing.T) {
	assert.Equal(t, "_a b_", NewBuilder().PushItalicSafe("a_b").String())
	assert.Equal(t, "__a b__", NewBuilder().PushUnderlineSafe("a__b").String())
	assert.Equal(t, "~~a b~~", NewBuilder().PushStrikeSafe("a~~b").String())
	assert.Equal(t, "||a b||", NewBuilder().PushSpoilerSafe("a||b").String())
	assert.Equal(t, "`a'b`", NewBuilder().PushMonoSafe("a`b").String())
}

func TestBuilderSafeNormalizes(t *testing.T) {
	got := NewBuilder().PushSafe("@everyone").String()
	assert.Equal(t, "@​everyone", got)
}

func TestBuilderCodeBlock(t *testing.T) {
	assert.Equal(t, "```go\nx := 1\n```", NewBuilder().PushCodeBlock("x := 1", "go").String())
	assert.Equal(t, "```\nx\n```", NewBuilder().PushCodeBlock("x", "").String())
}

func TestBuilderCodeBlockSafeNeutralizesFence(t *testing.T) {
	got := NewBuilder().PushCodeBlockSafe("a```b", "").String()
	assert.Equal(t, "```\na b\n```", got)
}

func TestBuilderQuote(t *testing.T) {
	assert.Equal(t, "> words\n", NewBuilder().PushQuoteLine("words").String())
}

func TestBuilderNamedLink(t *testing.T) {
	assert.Equal(t, "[docs](https://example.com)",
		NewBuilder().PushNamedLink("docs", "https://example.com").String())
}

func TestBuilderNamedLinkSafe(t *testing.T) {
	got := NewBuilder().PushNamedLinkSafe("a]b", "https://example.com/x)y").String()
	assert.Equal(t, "[a b](https://example.com/x y)", got)
}

func TestBuilderMentions(t *testing.T) {
	got := NewBuilder().
		Channel(model.ChannelID(7)).
		Role(model.RoleID(8)).
		User(model.UserID(9)).
		String()
	assert.Equal(t, "<#7><@&8><@9>", got)
}

func TestBuilderEmoji(t *testing.T) {
	plain := model.Emoji{ID: model.EmojiID(5), Name: "wave"}
	animated := model.Emoji{ID: model.EmojiID(6), Name: "spin", Animated: true}
	assert.Equal(t, "<:wave:5>", NewBuilder().Emoji(plain).String())
	assert.Equal(t, "<a:spin:6>", NewBuilder().Emoji(animated).String())
}
