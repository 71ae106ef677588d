package controller

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/pitchside/auctionsync/clients/auction_api_client"
	"github.com/pitchside/auctionsync/internal/localstore"
	"github.com/pitchside/auctionsync/internal/notify"
	"github.com/pitchside/auctionsync/internal/optimistic"
	"github.com/pitchside/auctionsync/internal/poller"
	"github.com/pitchside/auctionsync/internal/realtime"
	"github.com/pitchside/auctionsync/internal/session"
	"github.com/pitchside/auctionsync/internal/view"
)

// Config holds controller configuration.
type Config struct {
	BaseURL       string
	PollInterval  time.Duration
	OptimisticTTL time.Duration
	ChatRoom      string

	BackoffMin time.Duration
	BackoffMax time.Duration
}

// DefaultConfig returns controller defaults.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		PollInterval:  4 * time.Second,
		OptimisticTTL: 10 * time.Second,
		ChatRoom:      "auction",
		BackoffMin:    time.Second,
		BackoffMax:    30 * time.Second,
	}
}

// Controller is the per-session context object: it owns the gate, the
// fetchers, the view store, the realtime channel, the poller, the
// notifier and the optimistic ledger. Created on page entry, torn down
// on exit; nothing here is ambient global state.
type Controller struct {
	config Config
	clock  clockwork.Clock

	api      *auction_api_client.AuctionApiClient
	local    *localstore.Store
	sess     *session.Store
	views    *view.Store
	channel  *realtime.Channel
	poller   *poller.Poller
	notifier *notify.Notifier
	ledger   *optimistic.Ledger

	teamID string
	timer  atomic.Int64

	hiddenMu sync.Mutex
	hidden   map[view.Kind]bool

	expireOnce     sync.Once
	sessionExpired chan struct{}

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a controller over the given local store and sinks.
func New(config Config, local *localstore.Store, sinks notify.Sinks, clock clockwork.Clock) *Controller {
	c := &Controller{
		config:         config,
		clock:          clock,
		local:          local,
		views:          view.NewStore(),
		hidden:         make(map[view.Kind]bool),
		sessionExpired: make(chan struct{}),
	}

	c.sess = session.NewStore(local)
	c.api = auction_api_client.NewAuctionApiClient(config.BaseURL, c.sess, c.expireSession)
	c.teamID = local.Get().TeamID

	channelConfig := realtime.DefaultChannelConfig(c.api.WebSocketURL(auction_api_client.AuctionSocketEndpoint))
	channelConfig.BackoffMin = config.BackoffMin
	channelConfig.BackoffMax = config.BackoffMax
	channelConfig.Token = func() string { return c.sess.Get().AccessToken }
	c.channel = realtime.NewChannel(channelConfig, clock)

	c.poller = poller.New(poller.Config{Interval: config.PollInterval}, clock)
	c.ledger = optimistic.NewLedger(clock, config.OptimisticTTL)

	c.notifier = notify.NewNotifier(sinks, notify.Prefs{
		SoundEnabled: func() bool { return local.Get().SoundEnabled },
		CategoryEnabled: func(category notify.Category) bool {
			prefs := local.Get().NotifyPrefs
			enabled, ok := prefs[string(category)]
			return !ok || enabled // default on
		},
	})

	c.registerHandlers()
	c.registerPolls()

	return c
}

// API exposes the typed client for direct user actions (login, admin
// operations) that do not need controller mediation.
func (c *Controller) API() *auction_api_client.AuctionApiClient {
	return c.api
}

// Views exposes the snapshot store (render layer input).
func (c *Controller) Views() *view.Store {
	return c.views
}

// Notifier exposes the feedback layer.
func (c *Controller) Notifier() *notify.Notifier {
	return c.notifier
}

// TeamID returns the local team identity, from persisted state or the
// access token claims.
func (c *Controller) TeamID() string {
	return c.teamID
}

// SetTeamID pins the local team identity and persists it.
func (c *Controller) SetTeamID(teamID string) {
	c.teamID = teamID
	if err := c.local.Update(func(st *localstore.State) { st.TeamID = teamID }); err != nil {
		log.Warn().Err(err).Msg("failed to persist team id")
	}
}

// Connected reports the live-status indicator.
func (c *Controller) Connected() bool {
	return c.channel.Connected()
}

// Timer returns the latest pushed countdown value in seconds.
func (c *Controller) Timer() int {
	return int(c.timer.Load())
}

// SessionExpired is closed once when a terminal auth failure ends the
// session; the owner should route back to the entry screen.
func (c *Controller) SessionExpired() <-chan struct{} {
	return c.sessionExpired
}

// Hidden reports whether a section's backing endpoint is forbidden for
// this user and the section should not be rendered.
func (c *Controller) Hidden(kind view.Kind) bool {
	c.hiddenMu.Lock()
	defer c.hiddenMu.Unlock()
	return c.hidden[kind]
}

func (c *Controller) setHidden(kind view.Kind) {
	c.hiddenMu.Lock()
	c.hidden[kind] = true
	c.hiddenMu.Unlock()
}

func (c *Controller) expireSession() {
	c.expireOnce.Do(func() {
		close(c.sessionExpired)
	})
}

// Start loads the initial snapshots, then runs the realtime channel,
// the polling fallback and the optimistic sweep until Stop.
func (c *Controller) Start(ctx context.Context) error {
	if claims, err := c.sess.Claims(); err == nil && c.teamID == "" && claims.TeamID != "" {
		c.SetTeamID(claims.TeamID)
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.initialLoad(ctx)

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		c.channel.Run(ctx)
	}()
	go func() {
		defer c.wg.Done()
		c.ledger.Run(ctx)
	}()

	if err := c.poller.Start(ctx); err != nil {
		return fmt.Errorf("failed to start poller: %w", err)
	}

	log.Info().Str("base_url", c.api.BaseURL()).Msg("auction session started")
	return nil
}

// Stop tears the session down: socket closed, timers cleared.
func (c *Controller) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.poller.Stop(); err != nil {
		log.Debug().Err(err).Msg("poller stop")
	}
	c.wg.Wait()
	log.Info().Msg("auction session stopped")
}
