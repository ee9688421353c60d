// Package content builds markdown-formatted message text and sanitizes
// user-supplied content against mention and invite injection.
package content

import "strings"

// oneDotLeader replaces the dot of invite hosts so chat clients neither
// linkify nor embed them.
const oneDotLeader = "․"

var inviteHosts = []string{
	"discord.gg",
	"discord.me",
	"discordapp.com/invite",
	"discord.com/invite",
	"discordlist.net",
	"discordservers.com",
}

var hostReplacer = buildHostReplacer()

func buildHostReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(inviteHosts)*2)
	for _, host := range inviteHosts {
		last := strings.LastIndexByte(host, '.')
		pairs = append(pairs, host, host[:last]+oneDotLeader+host[last+1:])
	}
	return strings.NewReplacer(pairs...)
}

// directionMarks covers the zero-width and bidi control characters used to
// disguise text.
var directionMarks = strings.NewReplacer(
	"‮", " ", // right-to-left override
	"‏", " ", // right-to-left mark
	"‫", " ", // right-to-left embedding
	"​", " ", // zero-width space
	"‍", " ", // zero-width joiner
	"‌", " ", // zero-width non-joiner
)

var mentionGuard = strings.NewReplacer(
	"@everyone", "@​everyone",
	"@here", "@​here",
)

var mentionUnguard = strings.NewReplacer(
	"@​everyone", "@everyone",
	"@​here", "@here",
)

// Normalize defuses invite links, direction-control characters, and mass
// mentions. It is idempotent: already-guarded mentions are collapsed before
// the zero-width sweep and re-guarded after, so a second pass changes
// nothing.
func Normalize(s string) string {
	s = mentionUnguard.Replace(s)
	s = hostReplacer.Replace(s)
	s = directionMarks.Replace(s)
	return mentionGuard.Replace(s)
}
