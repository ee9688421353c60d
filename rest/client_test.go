package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, _ := zap.NewDevelopment()
	c := NewClient("Bot test-token", logger)
	c.baseURL = srv.URL
	return c, srv
}

func TestSendMessage_PostsContentWithAuth(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"900","channel_id":"300","content":"hi","author":{"id":"1","username":"bot"}}`)
	}))

	m, err := c.SendMessage(context.Background(), 300, "hi")
	require.NoError(t, err)

	assert.Equal(t, "Bot test-token", gotAuth)
	assert.Equal(t, "/channels/300/messages", gotPath)
	assert.Equal(t, "hi", gotBody["content"])
	assert.NotEmpty(t, gotBody["nonce"], "messages carry a nonce")
	assert.Equal(t, model.MessageID(900), m.ID)
}

func TestSendMessage_RejectsOverlongContent(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent for overlong content")
	}))

	long := strings.Repeat("a", model.MaxMessageLength+3)
	_, err := c.SendMessage(context.Background(), 300, long)

	var tooLong *model.MessageTooLongError
	require.True(t, errors.As(err, &tooLong))
	assert.Equal(t, 3, tooLong.Over)
}

func TestBanMember_RejectsExcessiveDeleteDays(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent for invalid delete days")
	}))

	err := c.BanMember(context.Background(), 100, 2, 8)

	var days *model.DeleteMessageDaysError
	require.True(t, errors.As(err, &days))
	assert.Equal(t, 8, days.Days)
}

func TestPerform_RetriesRateLimitedRequest(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("retry-after", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, `{"id":"900","channel_id":"300","author":{"id":"1","username":"bot"}}`)
	}))

	m, err := c.SendMessage(context.Background(), 300, "hi")
	require.NoError(t, err, "429 is handled transparently")
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, model.MessageID(900), m.ID)
}

func TestVerify_MismatchCarriesBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"message":"Missing Permissions"}`)
	}))

	err := c.DeleteMessage(context.Background(), 300, 900)
	require.Error(t, err)

	var unexpected *UnexpectedStatusError
	require.True(t, errors.As(err, &unexpected))
	assert.Equal(t, http.StatusForbidden, unexpected.Status)
	assert.Contains(t, string(unexpected.Body), "Missing Permissions")
}

func TestChannel_DecodesUnionByType(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"300","type":1,"recipient":{"id":"2","username":"pal"}}`)
	}))

	ch, err := c.Channel(context.Background(), 300)
	require.NoError(t, err)

	pc, ok := ch.(model.PrivateChannel)
	require.True(t, ok)
	assert.Equal(t, model.UserID(2), pc.Recipient.ID)
}

func TestGatewayBot_ReturnsShardCount(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gateway/bot", r.URL.Path)
		io.WriteString(w, `{"url":"wss://gateway.example","shards":3}`)
	}))

	url, shards, err := c.GatewayBot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "wss://gateway.example", url)
	assert.Equal(t, uint16(3), shards)
}

func TestDeleteMessages_BoundsChecked(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent for out-of-bounds bulk delete")
	}))

	err := c.DeleteMessages(context.Background(), 300, []model.MessageID{1})
	assert.Error(t, err)
	err = c.DeleteMessages(context.Background(), 300, make([]model.MessageID, 101))
	assert.Error(t, err)
}
