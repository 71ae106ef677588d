package realtime

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Handler consumes one inbound event. Handlers must be idempotent
// reconciliations: re-fetch or replace whole snapshots, never apply a
// partial diff a later snapshot fetch could contradict.
type Handler func(Event)

// ChannelConfig holds configuration for the auction socket connection.
type ChannelConfig struct {
	URL   string
	Token func() string // bearer credential for the handshake, may return ""

	DialTimeout  time.Duration
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	PingInterval time.Duration

	// Reconnect backoff bounds. Delay doubles from Min up to Max with
	// jitter; there is no attempt cap, only context cancellation ends
	// the retry loop.
	BackoffMin time.Duration
	BackoffMax time.Duration
}

// DefaultChannelConfig returns the default socket configuration.
func DefaultChannelConfig(url string) ChannelConfig {
	return ChannelConfig{
		URL:          url,
		DialTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  60 * time.Second,
		PingInterval: 30 * time.Second,
		BackoffMin:   time.Second,
		BackoffMax:   30 * time.Second,
	}
}

// Channel is the single realtime connection for a client session. It
// dials the auction socket, dispatches typed events to the handler
// table, and reconnects after every close for as long as its context
// lives.
type Channel struct {
	config ChannelConfig
	clock  clockwork.Clock
	dialer *websocket.Dialer

	mu       sync.RWMutex
	handlers map[EventType]Handler

	connected      atomic.Bool
	onStatusChange func(bool)
}

// NewChannel creates a channel with the given configuration.
func NewChannel(config ChannelConfig, clock clockwork.Clock) *Channel {
	return &Channel{
		config: config,
		clock:  clock,
		dialer: &websocket.Dialer{
			HandshakeTimeout: config.DialTimeout,
		},
		handlers: make(map[EventType]Handler),
	}
}

// Handle registers the handler for an event type. Events whose type has
// no handler are ignored.
func (c *Channel) Handle(eventType EventType, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = handler
}

// OnStatusChange registers the live-indicator callback.
func (c *Channel) OnStatusChange(fn func(connected bool)) {
	c.onStatusChange = fn
}

// Connected reports whether the socket is currently open.
func (c *Channel) Connected() bool {
	return c.connected.Load()
}

// Run drives the connect/read/reconnect loop until ctx is cancelled.
// Every close schedules a reconnect; nothing inside the loop can end it
// early.
func (c *Channel) Run(ctx context.Context) {
	backoff := c.config.BackoffMin

	for {
		if ctx.Err() != nil {
			return
		}

		if err := c.connectAndRead(ctx); err != nil {
			log.Warn().Err(err).Str("url", c.config.URL).Msg("auction socket closed")
		}
		if c.Connected() {
			// The dial succeeded this round; the next failure starts a
			// fresh backoff cycle.
			backoff = c.config.BackoffMin
		}
		c.setConnected(false)

		if ctx.Err() != nil {
			return
		}

		delay := jitter(backoff)
		log.Info().Dur("delay", delay).Msg("scheduling socket reconnect")
		select {
		case <-ctx.Done():
			return
		case <-c.clock.After(delay):
		}

		backoff *= 2
		if backoff > c.config.BackoffMax {
			backoff = c.config.BackoffMax
		}
	}
}

// jitter spreads reconnect attempts over [d/2, d).
func jitter(d time.Duration) time.Duration {
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}

func (c *Channel) connectAndRead(ctx context.Context) error {
	header := http.Header{}
	if c.config.Token != nil {
		if token := c.config.Token(); token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, _, err := c.dialer.DialContext(ctx, c.config.URL, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info().Str("url", c.config.URL).Msg("auction socket connected")
	c.setConnected(true)

	// Close the socket when the context dies so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	go c.pingLoop(ctx, conn, done)

	conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("unexpected socket close")
			}
			return err
		}
		conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		c.dispatch(message)
	}
}

// pingLoop keeps the connection alive; a failed ping lets the read
// deadline tear the connection down.
func (c *Channel) pingLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := c.clock.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.Chan():
			conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Msg("failed to send ping")
				return
			}
		}
	}
}

// dispatch parses one inbound message and invokes its handler. Unknown
// types and malformed payloads are dropped; a panicking handler is
// contained so it can never end the reconnect loop.
func (c *Channel) dispatch(message []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("event handler panicked")
		}
	}()

	var event Event
	if err := json.Unmarshal(message, &event); err != nil {
		log.Warn().Err(err).Msg("failed to parse socket message")
		return
	}

	c.mu.RLock()
	handler, ok := c.handlers[event.Type]
	c.mu.RUnlock()
	if !ok {
		log.Debug().Str("type", string(event.Type)).Msg("ignoring event with no handler")
		return
	}

	handler(event)
}

func (c *Channel) setConnected(connected bool) {
	if c.connected.Swap(connected) != connected && c.onStatusChange != nil {
		c.onStatusChange(connected)
	}
}
