package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/parsascontentcorner/discordlite/model"
	"github.com/parsascontentcorner/discordlite/rest/ratelimit"
)

// Gateway returns the websocket URL to connect the gateway to.
func (c *Client) Gateway(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/gateway", ratelimit.GatewayRoute(), nil)
	if err != nil {
		return "", err
	}
	var out struct {
		URL string `json:"url"`
	}
	err = decode(http.StatusOK, resp, &out)
	return out.URL, err
}

// GatewayBot returns the websocket URL plus the recommended shard count for
// the authenticated bot.
func (c *Client) GatewayBot(ctx context.Context) (url string, shards uint16, err error) {
	resp, err := c.do(ctx, http.MethodGet, "/gateway/bot", ratelimit.GatewayBotRoute(), nil)
	if err != nil {
		return "", 0, err
	}
	var out struct {
		URL    string `json:"url"`
		Shards uint16 `json:"shards"`
	}
	err = decode(http.StatusOK, resp, &out)
	return out.URL, out.Shards, err
}

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (model.CurrentUser, error) {
	resp, err := c.do(ctx, http.MethodGet, "/users/@me", ratelimit.CurrentUserRoute(), nil)
	if err != nil {
		return model.CurrentUser{}, err
	}
	var u model.CurrentUser
	err = decode(http.StatusOK, resp, &u)
	return u, err
}

// User fetches a user by id.
func (c *Client) User(ctx context.Context, id model.UserID) (model.User, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%s", id), ratelimit.UserRoute(), nil)
	if err != nil {
		return model.User{}, err
	}
	var u model.User
	err = decode(http.StatusOK, resp, &u)
	return u, err
}

// CreatePrivateChannel opens, or returns the existing, direct message
// channel with a user.
func (c *Client) CreatePrivateChannel(ctx context.Context, recipientID model.UserID) (model.PrivateChannel, error) {
	resp, err := c.do(ctx, http.MethodPost, "/users/@me/channels", ratelimit.CurrentUserChannelsRoute(), map[string]any{
		"recipient_id": recipientID,
	})
	if err != nil {
		return model.PrivateChannel{}, err
	}
	var ch model.PrivateChannel
	err = decode(http.StatusOK, resp, &ch)
	return ch, err
}

// LeaveGuild removes the current user from a guild.
func (c *Client) LeaveGuild(ctx context.Context, id model.GuildID) error {
	path := fmt.Sprintf("/users/@me/guilds/%s", id)
	resp, err := c.do(ctx, http.MethodDelete, path, ratelimit.CurrentUserGuildRoute(), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}
