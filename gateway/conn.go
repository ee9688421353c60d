package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// DefaultURL is the gateway endpoint the connection dials unless the
	// REST gateway probe supplied another.
	DefaultURL = "wss://gateway.discord.gg/?v=6&encoding=json"
)

// ConnConfig configures a gateway connection.
type ConnConfig struct {
	URL        string
	Token      string
	ShardID    uint16
	ShardTotal uint16
	Logger     *zap.Logger
}

// Conn is a single shard's connection to the gateway. It reads frames,
// decodes them, answers heartbeats, and delivers every decoded frame on
// Events. Reconnect policy is left to the caller; the connection reports
// Reconnect and InvalidateSession frames like any other.
type Conn struct {
	cfg    ConnConfig
	logger *zap.Logger

	conn   *websocket.Conn
	connMu sync.RWMutex

	seq   int64
	seqMu sync.RWMutex

	sessionID   string
	sessionMu   sync.RWMutex
	heartbeatMu sync.RWMutex
	lastAck     time.Time

	events chan GatewayEvent

	closeChan chan struct{}
	closeOnce sync.Once
}

// NewConn creates an unconnected gateway connection.
func NewConn(cfg ConnConfig) *Conn {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.ShardTotal == 0 {
		cfg.ShardTotal = 1
	}
	return &Conn{
		cfg:       cfg,
		logger:    cfg.Logger,
		events:    make(chan GatewayEvent),
		closeChan: make(chan struct{}),
	}
}

// Events returns the stream of decoded frames. The channel is closed when
// the connection shuts down. Frames are delivered in receive order, which
// preserves per-guild event ordering.
func (c *Conn) Events() <-chan GatewayEvent {
	return c.events
}

// Connect dials the gateway and runs the read loop until the context is
// cancelled or the connection fails.
func (c *Conn) Connect(ctx context.Context) error {
	c.logger.Info("connecting to gateway",
		zap.String("url", c.cfg.URL),
		zap.Uint16("shard", c.cfg.ShardID),
		zap.Uint16("shard_total", c.cfg.ShardTotal),
	)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial gateway: %w", err)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()

	go c.readLoop(ctx)

	select {
	case <-ctx.Done():
		c.Close()
		return ctx.Err()
	case <-c.closeChan:
		return nil
	}
}

func (c *Conn) readLoop(ctx context.Context) {
	defer close(c.events)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closeChan:
			return
		default:
		}

		c.connMu.RLock()
		conn := c.conn
		c.connMu.RUnlock()
		if conn == nil {
			return
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.logger.Error("failed to read gateway frame", zap.Error(err))
			c.Close()
			return
		}

		ev, err := DecodeFrame(raw)
		if err != nil {
			c.logger.Warn("dropping undecodable frame", zap.Error(err))
			continue
		}

		switch v := ev.(type) {
		case Hello:
			c.logger.Info("received hello",
				zap.Duration("heartbeat_interval", v.HeartbeatInterval),
			)
			go c.heartbeatLoop(ctx, v.HeartbeatInterval)
			if err := c.identify(); err != nil {
				c.logger.Error("failed to identify", zap.Error(err))
				c.Close()
				return
			}

		case Heartbeat:
			if err := c.sendHeartbeat(); err != nil {
				c.logger.Error("failed to answer heartbeat request", zap.Error(err))
			}

		case HeartbeatAck:
			c.heartbeatMu.Lock()
			c.lastAck = time.Now()
			c.heartbeatMu.Unlock()

		case Dispatch:
			c.setSeq(v.Seq)
			if ready, ok := v.Event.(ReadyEvent); ok {
				c.sessionMu.Lock()
				c.sessionID = ready.Ready.SessionID
				c.sessionMu.Unlock()
			}
		}

		select {
		case c.events <- ev:
		case <-ctx.Done():
			return
		case <-c.closeChan:
			return
		}
	}
}

func (c *Conn) heartbeatLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closeChan:
			return
		case <-ticker.C:
			if err := c.sendHeartbeat(); err != nil {
				c.logger.Error("failed to send heartbeat", zap.Error(err))
				c.Close()
				return
			}
		}
	}
}

func (c *Conn) sendHeartbeat() error {
	c.seqMu.RLock()
	seq := c.seq
	c.seqMu.RUnlock()

	return c.sendJSON(map[string]any{
		"op": OpHeartbeat,
		"d":  seq,
	})
}

func (c *Conn) identify() error {
	c.sessionMu.RLock()
	sessionID := c.sessionID
	c.sessionMu.RUnlock()

	if sessionID != "" {
		c.seqMu.RLock()
		seq := c.seq
		c.seqMu.RUnlock()
		return c.sendJSON(map[string]any{
			"op": OpResume,
			"d": map[string]any{
				"token":      c.cfg.Token,
				"session_id": sessionID,
				"seq":        seq,
			},
		})
	}

	return c.sendJSON(map[string]any{
		"op": OpIdentify,
		"d": map[string]any{
			"token": c.cfg.Token,
			"properties": map[string]string{
				"$os":      "linux",
				"$browser": "discordlite",
				"$device":  "discordlite",
			},
			"compress":        false,
			"large_threshold": 250,
			"shard":           []uint16{c.cfg.ShardID, c.cfg.ShardTotal},
		},
	})
}

func (c *Conn) sendJSON(v any) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("connection is closed")
	}
	return c.conn.WriteJSON(v)
}

func (c *Conn) setSeq(seq int64) {
	c.seqMu.Lock()
	if seq > c.seq {
		c.seq = seq
	}
	c.seqMu.Unlock()
}

// LastAck returns the time of the most recent heartbeat acknowledgement.
func (c *Conn) LastAck() time.Time {
	c.heartbeatMu.RLock()
	defer c.heartbeatMu.RUnlock()
	return c.lastAck
}

// Close tears the connection down. Safe to call more than once.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.closeChan)

		c.connMu.Lock()
		if c.conn != nil {
			c.conn.Close()
			c.conn = nil
		}
		c.connMu.Unlock()

		c.logger.Info("gateway connection closed",
			zap.Uint16("shard", c.cfg.ShardID),
		)
	})
}
