package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/parsascontentcorner/discordlite/model"
	"github.com/parsascontentcorner/discordlite/rest/ratelimit"
)

// Channel fetches a channel of any variant.
func (c *Client) Channel(ctx context.Context, id model.ChannelID) (model.Channel, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/channels/%s", id), ratelimit.ChannelRoute(id), nil)
	if err != nil {
		return nil, err
	}
	var raw []byte
	if err := decode(http.StatusOK, resp, (*rawJSON)(&raw)); err != nil {
		return nil, err
	}
	return model.DecodeChannel(raw)
}

// EditChannel patches a guild channel with the given fields.
func (c *Client) EditChannel(ctx context.Context, id model.ChannelID, fields map[string]any) (model.GuildChannel, error) {
	resp, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/channels/%s", id), ratelimit.ChannelRoute(id), fields)
	if err != nil {
		return model.GuildChannel{}, err
	}
	var ch model.GuildChannel
	err = decode(http.StatusOK, resp, &ch)
	return ch, err
}

// DeleteChannel deletes a channel, or closes it for private channels.
func (c *Client) DeleteChannel(ctx context.Context, id model.ChannelID) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/channels/%s", id), ratelimit.ChannelRoute(id), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusOK, resp)
}

// Message fetches a single message.
func (c *Client) Message(ctx context.Context, channelID model.ChannelID, messageID model.MessageID) (model.Message, error) {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	resp, err := c.do(ctx, http.MethodGet, path, ratelimit.ChannelMessageRoute(http.MethodGet, channelID), nil)
	if err != nil {
		return model.Message{}, err
	}
	var m model.Message
	err = decode(http.StatusOK, resp, &m)
	return m, err
}

// Messages lists up to limit messages of a channel, newest first.
func (c *Client) Messages(ctx context.Context, channelID model.ChannelID, limit int) ([]model.Message, error) {
	path := fmt.Sprintf("/channels/%s/messages?limit=%d", channelID, limit)
	resp, err := c.do(ctx, http.MethodGet, path, ratelimit.ChannelMessagesRoute(channelID), nil)
	if err != nil {
		return nil, err
	}
	var ms []model.Message
	err = decode(http.StatusOK, resp, &ms)
	return ms, err
}

// SendMessage posts plain content to a channel. Content over the platform
// maximum is rejected before any request is made.
func (c *Client) SendMessage(ctx context.Context, channelID model.ChannelID, content string) (model.Message, error) {
	if over := len([]rune(content)) - model.MaxMessageLength; over > 0 {
		return model.Message{}, &model.MessageTooLongError{Over: over}
	}
	return c.SendMessagePayload(ctx, channelID, map[string]any{
		"content": content,
		"nonce":   uuid.NewString(),
		"tts":     false,
	})
}

// SendMessagePayload posts a raw message payload, for callers composing
// embeds or flags themselves.
func (c *Client) SendMessagePayload(ctx context.Context, channelID model.ChannelID, payload map[string]any) (model.Message, error) {
	if content, ok := payload["content"].(string); ok {
		if over := len([]rune(content)) - model.MaxMessageLength; over > 0 {
			return model.Message{}, &model.MessageTooLongError{Over: over}
		}
	}
	path := fmt.Sprintf("/channels/%s/messages", channelID)
	resp, err := c.do(ctx, http.MethodPost, path, ratelimit.ChannelMessagesRoute(channelID), payload)
	if err != nil {
		return model.Message{}, err
	}
	var m model.Message
	err = decode(http.StatusOK, resp, &m)
	return m, err
}

// EditMessage replaces the content of an own message.
func (c *Client) EditMessage(ctx context.Context, channelID model.ChannelID, messageID model.MessageID, content string) (model.Message, error) {
	if over := len([]rune(content)) - model.MaxMessageLength; over > 0 {
		return model.Message{}, &model.MessageTooLongError{Over: over}
	}
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	resp, err := c.do(ctx, http.MethodPatch, path, ratelimit.ChannelMessageRoute(http.MethodPatch, channelID), map[string]any{
		"content": content,
	})
	if err != nil {
		return model.Message{}, err
	}
	var m model.Message
	err = decode(http.StatusOK, resp, &m)
	return m, err
}

// DeleteMessage removes one message.
func (c *Client) DeleteMessage(ctx context.Context, channelID model.ChannelID, messageID model.MessageID) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	resp, err := c.do(ctx, http.MethodDelete, path, ratelimit.ChannelMessageRoute(http.MethodDelete, channelID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// DeleteMessages bulk-deletes 2 to 100 messages in one call.
func (c *Client) DeleteMessages(ctx context.Context, channelID model.ChannelID, ids []model.MessageID) error {
	if len(ids) < 2 || len(ids) > 100 {
		return fmt.Errorf("bulk delete takes 2 to 100 messages, got %d", len(ids))
	}
	path := fmt.Sprintf("/channels/%s/messages/bulk-delete", channelID)
	resp, err := c.do(ctx, http.MethodPost, path, ratelimit.ChannelMessagesBulkDeleteRoute(channelID), map[string]any{
		"messages": ids,
	})
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// Pins lists the pinned messages of a channel.
func (c *Client) Pins(ctx context.Context, channelID model.ChannelID) ([]model.Message, error) {
	path := fmt.Sprintf("/channels/%s/pins", channelID)
	resp, err := c.do(ctx, http.MethodGet, path, ratelimit.ChannelPinsRoute(channelID), nil)
	if err != nil {
		return nil, err
	}
	var ms []model.Message
	err = decode(http.StatusOK, resp, &ms)
	return ms, err
}

// PinMessage pins a message.
func (c *Client) PinMessage(ctx context.Context, channelID model.ChannelID, messageID model.MessageID) error {
	path := fmt.Sprintf("/channels/%s/pins/%s", channelID, messageID)
	resp, err := c.do(ctx, http.MethodPut, path, ratelimit.ChannelPinRoute(channelID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// UnpinMessage unpins a message.
func (c *Client) UnpinMessage(ctx context.Context, channelID model.ChannelID, messageID model.MessageID) error {
	path := fmt.Sprintf("/channels/%s/pins/%s", channelID, messageID)
	resp, err := c.do(ctx, http.MethodDelete, path, ratelimit.ChannelPinRoute(channelID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// BroadcastTyping starts the typing indicator in a channel.
func (c *Client) BroadcastTyping(ctx context.Context, channelID model.ChannelID) error {
	path := fmt.Sprintf("/channels/%s/typing", channelID)
	resp, err := c.do(ctx, http.MethodPost, path, ratelimit.ChannelTypingRoute(channelID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// CreateReaction adds the current user's reaction to a message.
func (c *Client) CreateReaction(ctx context.Context, channelID model.ChannelID, messageID model.MessageID, emoji model.ReactionType) error {
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me", channelID, messageID, reactionPath(emoji))
	resp, err := c.do(ctx, http.MethodPut, path, ratelimit.ChannelMessageReactionRoute(channelID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// DeleteReaction removes a user's reaction; a zero user id targets the
// current user.
func (c *Client) DeleteReaction(ctx context.Context, channelID model.ChannelID, messageID model.MessageID, userID model.UserID, emoji model.ReactionType) error {
	target := "@me"
	if userID != 0 {
		target = userID.String()
	}
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/%s", channelID, messageID, reactionPath(emoji), target)
	resp, err := c.do(ctx, http.MethodDelete, path, ratelimit.ChannelMessageReactionRoute(channelID), nil)
	if err != nil {
		return err
	}
	return Verify(http.StatusNoContent, resp)
}

// reactionPath renders the reaction path segment: "name:id" for custom
// emoji, the escaped glyph for unicode.
func reactionPath(emoji model.ReactionType) string {
	if emoji.ID != nil {
		return emoji.Name + ":" + emoji.ID.String()
	}
	return url.PathEscape(emoji.Name)
}

// rawJSON captures a response body verbatim for union decoding.
type rawJSON []byte

func (r *rawJSON) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}
