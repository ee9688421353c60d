package cache

import (
	"time"

	"github.com/parsascontentcorner/discordlite/model"
)

// PrivateChannel is the cached projection of a direct message channel; the
// recipient is the canonical shared record.
type PrivateChannel struct {
	ID               model.ChannelID
	Recipient        *SharedUser
	LastPinTimestamp *time.Time
}

// ChannelID implements model.Channel.
func (c PrivateChannel) ChannelID() model.ChannelID { return c.ID }

// Type implements model.Channel.
func (c PrivateChannel) Type() model.ChannelType { return model.ChannelTypePrivate }

// Group is the cached projection of a group direct message channel.
type Group struct {
	ID               model.ChannelID
	Name             *string
	Icon             *string
	OwnerID          model.UserID
	Recipients       map[model.UserID]*SharedUser
	LastPinTimestamp *time.Time
}

// ChannelID implements model.Channel.
func (c Group) ChannelID() model.ChannelID { return c.ID }

// Type implements model.Channel.
func (c Group) Type() model.ChannelType { return model.ChannelTypeGroup }

func (c *Cache) projectPrivateChannel(in model.PrivateChannel) *PrivateChannel {
	return &PrivateChannel{
		ID:               in.ID,
		Recipient:        c.upsertUser(in.Recipient),
		LastPinTimestamp: in.LastPinTimestamp,
	}
}

func (c *Cache) projectGroup(in model.Group) *Group {
	g := &Group{
		ID:               in.ID,
		Name:             in.Name,
		Icon:             in.Icon,
		OwnerID:          in.OwnerID,
		Recipients:       make(map[model.UserID]*SharedUser, len(in.Recipients)),
		LastPinTimestamp: in.LastPinTimestamp,
	}
	for _, u := range in.Recipients {
		g.Recipients[u.ID] = c.upsertUser(u)
	}
	return g
}
