package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/parsascontentcorner/discordlite/model"
	"github.com/parsascontentcorner/discordlite/rest/ratelimit"
)

// maxBanDeleteDays is the platform ceiling on message history purged with a
// ban.
const maxBanDeleteDays = 7

// Guild fetches a guild.
func (c *Client) Guild(ctx context.Context, id model.GuildID) (model.Guild, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/guilds/%s", id), ratelimit.GuildRoute(id), nil)
	if err != nil {
		return model.Guild{}, err
	}
	var g model.Guild
	err = decode(http.StatusOK, resp, &g)
	return g, err
}

// GuildMembers pages the member list: up to limit members with ids above
// after.
func (c *Client) GuildMembers(ctx context.Context, id model.GuildID, limit int, after model.UserID) ([]model.Member, error) {
	path := fmt.Sprintf("/guilds/%s/members?limit=%d", id, limit)
	if after != 0 {
		path += fmt.Sprintf("&after=%s", after)
	}
	resp, err := c.do(ctx, http.MethodGet, path, ratelimit.GuildMembersRoute(id), nil)
	if err != nil {
		return nil, err
	}
	var members []model.Member
	if err := decode(http.StatusOK, resp, &members); err != nil {
		return nil, err
	}
	for i := range members {
		members[i].GuildID = id
	}
	return members, nil
}

// KickMember removes a member from a guild.
func (c *Client) KickMember(ctx context.Context, guildID model.GuildID, userID model.UserID) error {
	path := fmt.Sprintf("/guilds/%s/members/%s", guildID, userID)
	resp, err := c.do(ctx, http.MethodDelete, path, ratelimit.GuildMemberRoute(guildID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// BanMember bans a user, purging up to deleteMessageDays of their history.
// Days over the platform ceiling are rejected before any request is made.
func (c *Client) BanMember(ctx context.Context, guildID model.GuildID, userID model.UserID, deleteMessageDays uint8) error {
	if deleteMessageDays > maxBanDeleteDays {
		return &model.DeleteMessageDaysError{Days: int(deleteMessageDays)}
	}
	path := fmt.Sprintf("/guilds/%s/bans/%s?delete-message-days=%d", guildID, userID, deleteMessageDays)
	resp, err := c.do(ctx, http.MethodPut, path, ratelimit.GuildBanRoute(guildID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// UnbanMember lifts a ban.
func (c *Client) UnbanMember(ctx context.Context, guildID model.GuildID, userID model.UserID) error {
	path := fmt.Sprintf("/guilds/%s/bans/%s", guildID, userID)
	resp, err := c.do(ctx, http.MethodDelete, path, ratelimit.GuildBanRoute(guildID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// CreateRole creates a role from the given fields.
func (c *Client) CreateRole(ctx context.Context, guildID model.GuildID, fields map[string]any) (model.Role, error) {
	path := fmt.Sprintf("/guilds/%s/roles", guildID)
	resp, err := c.do(ctx, http.MethodPost, path, ratelimit.GuildRolesRoute(guildID), fields)
	if err != nil {
		return model.Role{}, err
	}
	var r model.Role
	if err := decode(http.StatusOK, resp, &r); err != nil {
		return model.Role{}, err
	}
	r.GuildID = guildID
	return r, nil
}

// EditRole patches a role.
func (c *Client) EditRole(ctx context.Context, guildID model.GuildID, roleID model.RoleID, fields map[string]any) (model.Role, error) {
	path := fmt.Sprintf("/guilds/%s/roles/%s", guildID, roleID)
	resp, err := c.do(ctx, http.MethodPatch, path, ratelimit.GuildRoleRoute(guildID), fields)
	if err != nil {
		return model.Role{}, err
	}
	var r model.Role
	if err := decode(http.StatusOK, resp, &r); err != nil {
		return model.Role{}, err
	}
	r.GuildID = guildID
	return r, nil
}

// DeleteRole removes a role.
func (c *Client) DeleteRole(ctx context.Context, guildID model.GuildID, roleID model.RoleID) error {
	path := fmt.Sprintf("/guilds/%s/roles/%s", guildID, roleID)
	resp, err := c.do(ctx, http.MethodDelete, path, ratelimit.GuildRoleRoute(guildID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// AddMemberRole assigns a role to a member.
func (c *Client) AddMemberRole(ctx context.Context, guildID model.GuildID, userID model.UserID, roleID model.RoleID) error {
	path := fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
	resp, err := c.do(ctx, http.MethodPut, path, ratelimit.GuildMemberRoleRoute(guildID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// RemoveMemberRole removes a role from a member.
func (c *Client) RemoveMemberRole(ctx context.Context, guildID model.GuildID, userID model.UserID, roleID model.RoleID) error {
	path := fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
	resp, err := c.do(ctx, http.MethodDelete, path, ratelimit.GuildMemberRoleRoute(guildID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// GuildEmojis lists a guild's custom emoji.
func (c *Client) GuildEmojis(ctx context.Context, guildID model.GuildID) ([]model.Emoji, error) {
	path := fmt.Sprintf("/guilds/%s/emojis", guildID)
	resp, err := c.do(ctx, http.MethodGet, path, ratelimit.GuildEmojisRoute(guildID), nil)
	if err != nil {
		return nil, err
	}
	var emojis []model.Emoji
	err = decode(http.StatusOK, resp, &emojis)
	return emojis, err
}

// PruneCount reports how many members a prune with the given inactivity
// window would remove.
func (c *Client) PruneCount(ctx context.Context, guildID model.GuildID, days int) (uint64, error) {
	path := fmt.Sprintf("/guilds/%s/prune?days=%d", guildID, days)
	resp, err := c.do(ctx, http.MethodGet, path, ratelimit.GuildPruneRoute(guildID), nil)
	if err != nil {
		return 0, err
	}
	var out struct {
		Pruned uint64 `json:"pruned"`
	}
	err = decode(http.StatusOK, resp, &out)
	return out.Pruned, err
}

// StartPrune kicks members inactive for the given number of days.
func (c *Client) StartPrune(ctx context.Context, guildID model.GuildID, days int) (uint64, error) {
	path := fmt.Sprintf("/guilds/%s/prune?days=%d", guildID, days)
	resp, err := c.do(ctx, http.MethodPost, path, ratelimit.GuildPruneRoute(guildID), nil)
	if err != nil {
		return 0, err
	}
	var out struct {
		Pruned uint64 `json:"pruned"`
	}
	err = decode(http.StatusOK, resp, &out)
	return out.Pruned, err
}

// EditNickname changes the current user's nickname in a guild.
func (c *Client) EditNickname(ctx context.Context, guildID model.GuildID, nick string) error {
	path := fmt.Sprintf("/guilds/%s/members/@me/nick", guildID)
	resp, err := c.do(ctx, http.MethodPatch, path, ratelimit.GuildNicknameRoute(guildID), map[string]any{
		"nick": nick,
	})
	if err != nil {
		return err
	}
	return Verify(http.StatusOK, resp)
}
