package gateway

import (
	"errors"

	"github.com/parsascontentcorner/discordlite/model"
)

// ErrNoShards is returned when a shard count below one is supplied.
var ErrNoShards = errors.New("shard total must be at least 1")

// ShardID returns the shard owning a guild: the guild's timestamp bits
// modulo the shard total.
func ShardID(guildID model.GuildID, shardTotal uint16) (uint16, error) {
	if shardTotal < 1 {
		return 0, ErrNoShards
	}
	return uint16((uint64(guildID) >> 22) % uint64(shardTotal)), nil
}
