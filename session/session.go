// Package session orchestrates the gateway connection, the event cache, and
// the REST client into a runnable client.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/auth"
	"github.com/parsascontentcorner/discordlite/cache"
	"github.com/parsascontentcorner/discordlite/framework"
	"github.com/parsascontentcorner/discordlite/gateway"
	"github.com/parsascontentcorner/discordlite/model"
	"github.com/parsascontentcorner/discordlite/rest"
)

// Handler receives a decoded gateway event after the cache has applied it.
type Handler func(ctx context.Context, s *Session, ev gateway.Event)

// Config configures a Session.
type Config struct {
	// Token is the bot token, with or without the "Bot " prefix.
	Token string
	// GatewayURL overrides the endpoint reported by the gateway probe.
	GatewayURL string
	// ShardCount is the number of shards to run. Zero uses the gateway's
	// recommendation.
	ShardCount uint16
	// MaxMessages bounds the per-channel message cache. Zero disables
	// message caching.
	MaxMessages int
	Logger      *zap.Logger
}

// Session ties one bot identity's gateway shards, cache, and REST client
// together. Events flow from each shard through the cache and then to the
// registered handlers; a single reader per shard preserves per-guild event
// order.
type Session struct {
	cfg    Config
	cache  *cache.Cache
	rest   *rest.Client
	logger *zap.Logger

	mu    sync.RWMutex
	all   []Handler
	named map[string][]Handler
}

// New validates the token and builds an unstarted session.
func New(cfg Config) (*Session, error) {
	if _, _, err := auth.ValidateToken(cfg.Token); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	token := cfg.Token
	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}

	return &Session{
		cfg:    cfg,
		cache:  cache.New(cache.Settings{MaxMessages: cfg.MaxMessages}, logger.Named("cache")),
		rest:   rest.NewClient(token, logger.Named("rest")),
		logger: logger,
		named:  make(map[string][]Handler),
	}, nil
}

// Cache returns the session's event cache.
func (s *Session) Cache() *cache.Cache { return s.cache }

// Rest returns the session's REST client.
func (s *Session) Rest() *rest.Client { return s.rest }

// OnEvent registers a handler for every event.
func (s *Session) OnEvent(h Handler) {
	s.mu.Lock()
	s.all = append(s.all, h)
	s.mu.Unlock()
}

// On registers a handler for events with the given wire name, e.g.
// "MESSAGE_CREATE".
func (s *Session) On(name string, h Handler) {
	s.mu.Lock()
	s.named[name] = append(s.named[name], h)
	s.mu.Unlock()
}

// OnMessageCreate registers a typed handler for new messages.
func (s *Session) OnMessageCreate(h func(ctx context.Context, s *Session, msg model.Message)) {
	s.On("MESSAGE_CREATE", func(ctx context.Context, s *Session, ev gateway.Event) {
		if mc, ok := ev.(gateway.MessageCreateEvent); ok {
			h(ctx, s, mc.Message)
		}
	})
}

// OnReady registers a typed handler for the READY event.
func (s *Session) OnReady(h func(ctx context.Context, s *Session, ready gateway.Ready)) {
	s.On("READY", func(ctx context.Context, s *Session, ev gateway.Event) {
		if r, ok := ev.(gateway.ReadyEvent); ok {
			h(ctx, s, r.Ready)
		}
	})
}

// AttachFramework routes new messages through the command framework.
func (s *Session) AttachFramework(f *framework.Framework) {
	s.OnMessageCreate(func(ctx context.Context, s *Session, msg model.Message) {
		if err := f.Dispatch(ctx, msg); err != nil {
			s.logger.Warn("command dispatch failed",
				zap.Uint64("channel_id", uint64(msg.ChannelID)),
				zap.Error(err),
			)
		}
	})
}

// ReplySender returns a help-engine sender that replies in the invoking
// channel.
func (s *Session) ReplySender() func(ctx context.Context, inv *framework.Invocation, text string) error {
	return func(ctx context.Context, inv *framework.Invocation, text string) error {
		_, err := s.rest.SendMessage(ctx, inv.Message.ChannelID, text)
		return err
	}
}

// Run connects every shard and blocks until the context is cancelled or a
// shard fails. The shard layout comes from the configuration, falling back
// to the gateway's recommendation.
func (s *Session) Run(ctx context.Context) error {
	url := s.cfg.GatewayURL
	shards := s.cfg.ShardCount
	if url == "" || shards == 0 {
		probeURL, recommended, err := s.rest.GatewayBot(ctx)
		if err != nil {
			return fmt.Errorf("gateway probe failed: %w", err)
		}
		if url == "" {
			url = probeURL + "/?v=6&encoding=json"
		}
		if shards == 0 {
			shards = recommended
		}
	}
	if shards == 0 {
		shards = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg     sync.WaitGroup
		once   sync.Once
		runErr error
	)
	fail := func(err error) {
		once.Do(func() {
			runErr = err
			cancel()
		})
	}
	for id := uint16(0); id < shards; id++ {
		conn := gateway.NewConn(gateway.ConnConfig{
			URL:        url,
			Token:      s.cfg.Token,
			ShardID:    id,
			ShardTotal: shards,
			Logger:     s.logger.Named("gateway"),
		})

		wg.Add(2)
		go func() {
			defer wg.Done()
			s.consume(ctx, conn)
		}()
		go func() {
			defer wg.Done()
			if err := conn.Connect(ctx); err != nil {
				fail(err)
			}
		}()
	}

	wg.Wait()
	if runErr != nil {
		return runErr
	}
	return ctx.Err()
}

// consume applies one shard's frames in receive order.
func (s *Session) consume(ctx context.Context, conn *gateway.Conn) {
	for fr := range conn.Events() {
		switch fr := fr.(type) {
		case gateway.Dispatch:
			s.handle(ctx, fr.Event)
		case gateway.Reconnect:
			s.logger.Warn("gateway requested reconnect")
		case gateway.InvalidateSession:
			s.logger.Warn("gateway invalidated session",
				zap.Bool("resumable", fr.Resumable),
			)
		}
	}
}

// handle applies the event to the cache and then fans it out to handlers.
// Handlers run on the shard's reader goroutine, so a shard's events are
// observed in gateway order.
func (s *Session) handle(ctx context.Context, ev gateway.Event) {
	s.cache.Apply(ev)

	s.mu.RLock()
	all := s.all
	named := s.named[ev.EventName()]
	s.mu.RUnlock()

	for _, h := range all {
		h(ctx, s, ev)
	}
	for _, h := range named {
		h(ctx, s, ev)
	}
}
