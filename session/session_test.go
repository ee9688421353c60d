package session

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/framework"
	"github.com/parsascontentcorner/discordlite/gateway"
	"github.com/parsascontentcorner/discordlite/model"
)

func testToken(t *testing.T) string {
	t.Helper()
	return base64.RawURLEncoding.EncodeToString([]byte("999")) +
		"." + base64.RawURLEncoding.EncodeToString([]byte{0, 0, 0x4B, 0x4F, 0x29, 0x40}) +
		".hmac-part"
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	s, err := New(Config{Token: testToken(t), Logger: logger})
	require.NoError(t, err)
	return s
}

func TestNewRejectsMalformedToken(t *testing.T) {
	_, err := New(Config{Token: "not-a-token"})
	assert.Error(t, err)
}

func TestHandleAppliesToCacheBeforeHandlers(t *testing.T) {
	s := newTestSession(t)

	var seenID model.UserID
	s.OnEvent(func(ctx context.Context, s *Session, ev gateway.Event) {
		// The cache must already reflect the event when handlers run.
		seenID = s.Cache().CurrentUser().ID
	})

	s.handle(context.Background(), gateway.ReadyEvent{Ready: gateway.Ready{
		User: model.CurrentUser{User: model.User{ID: 999, Name: "bot"}},
	}})
	assert.Equal(t, model.UserID(999), seenID)
}

func TestNamedHandlersFilterByEvent(t *testing.T) {
	s := newTestSession(t)

	var created, all int
	s.On("MESSAGE_CREATE", func(ctx context.Context, s *Session, ev gateway.Event) { created++ })
	s.OnEvent(func(ctx context.Context, s *Session, ev gateway.Event) { all++ })

	s.handle(context.Background(), gateway.MessageCreateEvent{Message: model.Message{ID: 1, ChannelID: 2}})
	s.handle(context.Background(), gateway.TypingStartEvent{})

	assert.Equal(t, 1, created)
	assert.Equal(t, 2, all)
}

func TestOnMessageCreateTyped(t *testing.T) {
	s := newTestSession(t)

	var got model.Message
	s.OnMessageCreate(func(ctx context.Context, s *Session, msg model.Message) {
		got = msg
	})

	want := model.Message{ID: 42, ChannelID: 7, Content: "hi"}
	s.handle(context.Background(), gateway.MessageCreateEvent{Message: want})
	assert.Equal(t, want, got)
}

func TestAttachFrameworkDispatchesCommands(t *testing.T) {
	s := newTestSession(t)
	s.handle(context.Background(), gateway.ReadyEvent{Ready: gateway.Ready{
		User: model.CurrentUser{User: model.User{ID: 999, Name: "bot"}},
	}})

	logger, _ := zap.NewDevelopment()
	f := framework.New(framework.Options{Prefix: "!"}, s.Cache(), logger)

	ran := false
	f.AddGroup(&framework.Group{Name: "General", Commands: []*framework.Command{{
		Run: func(ctx context.Context, inv *framework.Invocation) error {
			ran = true
			return nil
		},
		Options: framework.CommandOptions{Names: []string{"ping"}},
	}}})
	s.AttachFramework(f)

	s.handle(context.Background(), gateway.MessageCreateEvent{Message: model.Message{
		ID:        1,
		ChannelID: 2,
		Author:    model.User{ID: 5, Name: "u", Discriminator: 1},
		Content:   "!ping",
	}})
	assert.True(t, ran)
}
