package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/parsascontentcorner/discordlite/model"
)

// DecodeEvent resolves a dispatch frame by event name. Unknown names
// produce UnknownEvent rather than an error; malformed payloads of known
// names produce a DecodeError.
func DecodeEvent(name string, raw json.RawMessage) (Event, error) {
	ev, err := decodeEvent(name, raw)
	if err != nil {
		return nil, &DecodeError{Name: name, Raw: raw, Err: err}
	}
	return ev, nil
}

func decodeEvent(name string, raw json.RawMessage) (Event, error) {
	switch name {
	case "READY":
		return decodeReady(raw)

	case "RESUMED":
		var d struct {
			Trace []string `json:"_trace"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return ResumedEvent{Trace: d.Trace}, nil

	case "CHANNEL_CREATE":
		ch, err := model.DecodeChannel(raw)
		if err != nil {
			return nil, err
		}
		return ChannelCreateEvent{Channel: ch}, nil

	case "CHANNEL_DELETE":
		ch, err := model.DecodeChannel(raw)
		if err != nil {
			return nil, err
		}
		return ChannelDeleteEvent{Channel: ch}, nil

	case "CHANNEL_UPDATE":
		ch, err := model.DecodeChannel(raw)
		if err != nil {
			return nil, err
		}
		return ChannelUpdateEvent{Channel: ch}, nil

	case "CHANNEL_PINS_UPDATE":
		var ev ChannelPinsUpdateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "CHANNEL_RECIPIENT_ADD":
		var ev ChannelRecipientAddEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "CHANNEL_RECIPIENT_REMOVE":
		var ev ChannelRecipientRemoveEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "GUILD_CREATE":
		if unavailable, id, err := unavailableStub(raw); err != nil {
			return nil, err
		} else if unavailable {
			return GuildUnavailableEvent{GuildID: id}, nil
		}
		var g model.Guild
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, err
		}
		injectGuildID(&g)
		return GuildCreateEvent{Guild: g}, nil

	case "GUILD_DELETE":
		unavailable, id, err := unavailableStub(raw)
		if err != nil {
			return nil, err
		}
		if unavailable {
			return GuildUnavailableEvent{GuildID: id}, nil
		}
		return GuildDeleteEvent{GuildID: id}, nil

	case "GUILD_UPDATE":
		var g model.PartialGuild
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, err
		}
		for i := range g.Roles {
			g.Roles[i].GuildID = g.ID
		}
		return GuildUpdateEvent{Guild: g}, nil

	case "GUILD_BAN_ADD":
		var ev GuildBanAddEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "GUILD_BAN_REMOVE":
		var ev GuildBanRemoveEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "GUILD_EMOJIS_UPDATE":
		var ev GuildEmojisUpdateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "GUILD_INTEGRATIONS_UPDATE":
		var ev GuildIntegrationsUpdateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "GUILD_MEMBER_ADD":
		var m model.Member
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		if m.GuildID == 0 {
			return nil, fmt.Errorf("member add missing guild_id")
		}
		return GuildMemberAddEvent{Member: m}, nil

	case "GUILD_MEMBER_REMOVE":
		var ev GuildMemberRemoveEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "GUILD_MEMBER_UPDATE":
		var ev GuildMemberUpdateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "GUILD_MEMBERS_CHUNK":
		var ev GuildMembersChunkEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		for i := range ev.Members {
			ev.Members[i].GuildID = ev.GuildID
		}
		return ev, nil

	case "GUILD_ROLE_CREATE":
		var ev GuildRoleCreateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		ev.Role.GuildID = ev.GuildID
		return ev, nil

	case "GUILD_ROLE_UPDATE":
		var ev GuildRoleUpdateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		ev.Role.GuildID = ev.GuildID
		return ev, nil

	case "GUILD_ROLE_DELETE":
		var ev GuildRoleDeleteEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "MESSAGE_CREATE":
		var m model.Message
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return MessageCreateEvent{Message: m}, nil

	case "MESSAGE_UPDATE":
		var ev MessageUpdateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "MESSAGE_DELETE":
		var ev MessageDeleteEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "MESSAGE_DELETE_BULK":
		var ev MessageDeleteBulkEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "MESSAGE_REACTION_ADD":
		var r ReactionPayload
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		return MessageReactionAddEvent{Reaction: r}, nil

	case "MESSAGE_REACTION_REMOVE":
		var r ReactionPayload
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		return MessageReactionRemoveEvent{Reaction: r}, nil

	case "MESSAGE_REACTION_REMOVE_ALL":
		var ev MessageReactionRemoveAllEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "PRESENCE_UPDATE":
		var scope struct {
			GuildID *model.GuildID `json:"guild_id"`
		}
		if err := json.Unmarshal(raw, &scope); err != nil {
			return nil, err
		}
		var p model.Presence
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return PresenceUpdateEvent{GuildID: scope.GuildID, Presence: p}, nil

	case "PRESENCES_REPLACE":
		var ps []model.Presence
		if err := json.Unmarshal(raw, &ps); err != nil {
			return nil, err
		}
		return PresencesReplaceEvent{Presences: ps}, nil

	case "TYPING_START":
		var ev TypingStartEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "USER_UPDATE":
		var u model.CurrentUser
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return UserUpdateEvent{CurrentUser: u}, nil

	case "VOICE_SERVER_UPDATE":
		var ev VoiceServerUpdateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "VOICE_STATE_UPDATE":
		var scope struct {
			GuildID *model.GuildID `json:"guild_id"`
		}
		if err := json.Unmarshal(raw, &scope); err != nil {
			return nil, err
		}
		var vs model.VoiceState
		if err := json.Unmarshal(raw, &vs); err != nil {
			return nil, err
		}
		return VoiceStateUpdateEvent{GuildID: scope.GuildID, VoiceState: vs}, nil

	case "WEBHOOKS_UPDATE":
		var ev WebhooksUpdateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	default:
		return UnknownEvent{Name: name, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

// unavailableStub inspects a GUILD_CREATE / GUILD_DELETE payload for the
// overloaded unavailable form.
func unavailableStub(raw json.RawMessage) (bool, model.GuildID, error) {
	var stub model.UnavailableGuild
	if err := json.Unmarshal(raw, &stub); err != nil {
		return false, 0, err
	}
	return stub.Unavailable, stub.ID, nil
}

// injectGuildID copies the envelope guild id into nested objects whose wire
// forms omit it.
func injectGuildID(g *model.Guild) {
	for i := range g.Members {
		g.Members[i].GuildID = g.ID
	}
	for i := range g.Roles {
		g.Roles[i].GuildID = g.ID
	}
	for i := range g.VoiceStates {
		gid := g.ID
		g.VoiceStates[i].GuildID = &gid
	}
}

func decodeReady(raw json.RawMessage) (Event, error) {
	var d struct {
		Version         int               `json:"v"`
		User            model.CurrentUser `json:"user"`
		SessionID       string            `json:"session_id"`
		Guilds          []json.RawMessage `json:"guilds"`
		PrivateChannels []json.RawMessage `json:"private_channels"`
		Presences       []model.Presence  `json:"presences"`
		Shard           []uint16          `json:"shard"`
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}

	ready := Ready{
		Version:   d.Version,
		User:      d.User,
		SessionID: d.SessionID,
		Presences: d.Presences,
		Shard:     d.Shard,
	}

	for _, rawGuild := range d.Guilds {
		unavailable, id, err := unavailableStub(rawGuild)
		if err != nil {
			return nil, err
		}
		if unavailable {
			ready.Guilds = append(ready.Guilds, ReadyGuild{
				Unavailable: model.UnavailableGuild{ID: id, Unavailable: true},
				Offline:     true,
			})
			continue
		}
		var g model.Guild
		if err := json.Unmarshal(rawGuild, &g); err != nil {
			return nil, err
		}
		injectGuildID(&g)
		ready.Guilds = append(ready.Guilds, ReadyGuild{Guild: &g})
	}

	for _, rawChannel := range d.PrivateChannels {
		ch, err := model.DecodeChannel(rawChannel)
		if err != nil {
			return nil, err
		}
		ready.PrivateChannels = append(ready.PrivateChannels, ch)
	}

	return ReadyEvent{Ready: ready}, nil
}
