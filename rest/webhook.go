package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/parsascontentcorner/discordlite/model"
	"github.com/parsascontentcorner/discordlite/rest/ratelimit"
)

// Webhook is a channel webhook as returned by the API.
type Webhook struct {
	ID        model.WebhookID `json:"id"`
	GuildID   *model.GuildID  `json:"guild_id"`
	ChannelID model.ChannelID `json:"channel_id"`
	User      *model.User     `json:"user"`
	Name      *string         `json:"name"`
	Avatar    *string         `json:"avatar"`
	Token     string          `json:"token"`
}

// GetWebhook fetches a webhook by id.
func (c *Client) GetWebhook(ctx context.Context, id model.WebhookID) (Webhook, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/webhooks/%s", id), ratelimit.WebhookRoute(id), nil)
	if err != nil {
		return Webhook{}, err
	}
	var w Webhook
	err = decode(http.StatusOK, resp, &w)
	return w, err
}

// ExecuteWebhook posts a payload through a webhook. With wait set the
// created message is returned; otherwise the response is empty.
func (c *Client) ExecuteWebhook(ctx context.Context, id model.WebhookID, token string, wait bool, payload map[string]any) (*model.Message, error) {
	if content, ok := payload["content"].(string); ok {
		if over := len([]rune(content)) - model.MaxMessageLength; over > 0 {
			return nil, &model.MessageTooLongError{Over: over}
		}
	}
	path := fmt.Sprintf("/webhooks/%s/%s?wait=%t", id, token, wait)
	resp, err := c.do(ctx, http.MethodPost, path, ratelimit.WebhookRoute(id), payload)
	if err != nil {
		return nil, err
	}
	if !wait {
		return nil, Verify(http.StatusNoContent, resp)
	}
	var m model.Message
	if err := decode(http.StatusOK, resp, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteWebhook removes a webhook.
func (c *Client) DeleteWebhook(ctx context.Context, id model.WebhookID) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/webhooks/%s", id), ratelimit.WebhookRoute(id), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// Invite is a guild invite as returned by the API.
type Invite struct {
	Code  string `json:"code"`
	Guild *struct {
		ID   model.GuildID `json:"id"`
		Name string        `json:"name"`
	} `json:"guild"`
	Channel *struct {
		ID   model.ChannelID `json:"id"`
		Name string          `json:"name"`
	} `json:"channel"`
}

// GetInvite fetches an invite by code.
func (c *Client) GetInvite(ctx context.Context, code string) (Invite, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/invites/%s", code), ratelimit.InviteRoute(), nil)
	if err != nil {
		return Invite{}, err
	}
	var inv Invite
	err = decode(http.StatusOK, resp, &inv)
	return inv, err
}

// DeleteInvite revokes an invite.
func (c *Client) DeleteInvite(ctx context.Context, code string) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/invites/%s", code), ratelimit.InviteRoute(), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusOK, resp)
}
