package controller

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pitchside/auctionsync/clients"
	"github.com/pitchside/auctionsync/internal/view"
)

// initialLoad fetches every snapshot concurrently. Each fetch fails
// independently: one failing section never blocks the rest of the page.
func (c *Controller) initialLoad(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)

	for _, fetch := range c.snapshotFetches() {
		fetch := fetch
		g.Go(func() error {
			if err := fetch.run(ctx); err != nil {
				log.Warn().Err(err).Str("fetch", fetch.name).Msg("initial load fetch failed")
			}
			return nil
		})
	}

	_ = g.Wait()
}

// registerPolls wires the polling fallback over the same snapshot
// fetches the channel handlers use, so either source alone keeps the
// view consistent.
func (c *Controller) registerPolls() {
	for _, fetch := range c.snapshotFetches() {
		c.poller.Register(fetch.name, fetch.run)
	}
}

type snapshotFetch struct {
	name string
	run  func(ctx context.Context) error
}

func (c *Controller) snapshotFetches() []snapshotFetch {
	fetches := []snapshotFetch{
		{"players", c.refetchPlayers},
		{"teams", c.refetchTeams},
		{"auction_status", c.refetchStatus},
		{"live_player", c.refetchLivePlayer},
		{"viewer_analytics", c.refetchAnalytics},
		{"chat", c.refetchChat},
	}
	if c.teamID != "" {
		fetches = append(fetches,
			snapshotFetch{"roster", c.refetchRoster},
			snapshotFetch{"wishlist", c.refetchWishlist},
		)
	}
	return fetches
}

// refetchPlayers replaces the players snapshot wholesale. The
// generation is claimed before the request goes out, so a response
// overtaken by a newer fetch is discarded instead of applied.
func (c *Controller) refetchPlayers(ctx context.Context) error {
	gen := c.views.NextGeneration()
	players, err := c.api.ListPlayers(ctx)
	if err != nil {
		return err
	}
	c.views.Apply(view.KindPlayers, gen, players)
	return nil
}

func (c *Controller) refetchTeams(ctx context.Context) error {
	gen := c.views.NextGeneration()
	teams, err := c.api.ListTeams(ctx)
	if err != nil {
		return err
	}
	c.views.Apply(view.KindTeams, gen, teams)
	return nil
}

func (c *Controller) refetchRoster(ctx context.Context) error {
	if c.teamID == "" {
		return nil
	}
	gen := c.views.NextGeneration()
	detail, err := c.api.GetTeam(ctx, c.teamID)
	if err != nil {
		return err
	}
	c.views.Apply(view.KindRoster, gen, detail)
	return nil
}

func (c *Controller) refetchStatus(ctx context.Context) error {
	gen := c.views.NextGeneration()
	status, err := c.api.GetAuctionStatus(ctx)
	if err != nil {
		return err
	}
	c.views.Apply(view.KindStatus, gen, status)
	return nil
}

func (c *Controller) refetchLivePlayer(ctx context.Context) error {
	gen := c.views.NextGeneration()
	player, err := c.api.GetCurrentPlayer(ctx)
	if err != nil {
		return err
	}
	c.views.Apply(view.KindLivePlayer, gen, player)
	return nil
}

// refetchAnalytics tolerates 403: the analytics panel is hidden for
// users the server does not allow, never surfaced as an error.
func (c *Controller) refetchAnalytics(ctx context.Context) error {
	gen := c.views.NextGeneration()
	analytics, err := c.api.GetViewerAnalytics(ctx)
	if errors.Is(err, clients.ErrForbidden) {
		c.setHidden(view.KindAnalytics)
		return nil
	}
	if err != nil {
		return err
	}
	c.views.Apply(view.KindAnalytics, gen, analytics)
	return nil
}

func (c *Controller) refetchChat(ctx context.Context) error {
	gen := c.views.NextGeneration()
	messages, err := c.api.ListChatMessages(ctx, c.config.ChatRoom)
	if err != nil {
		return err
	}
	c.views.Apply(view.KindChat, gen, messages)
	return nil
}

func (c *Controller) refetchWishlist(ctx context.Context) error {
	gen := c.views.NextGeneration()
	items, err := c.api.MyWishlist(ctx)
	if err != nil {
		return err
	}
	c.views.Apply(view.KindWishlist, gen, items)
	return nil
}

// RefreshBidHistory loads the admin bid trail on demand (soft-fail).
func (c *Controller) RefreshBidHistory(ctx context.Context) error {
	gen := c.views.NextGeneration()
	bids, err := c.api.GetAllBidHistory(ctx)
	if errors.Is(err, clients.ErrForbidden) {
		c.setHidden(view.KindBidHistory)
		return nil
	}
	if err != nil {
		return err
	}
	c.views.Apply(view.KindBidHistory, gen, bids)
	return nil
}

// RefreshDashboardStats loads the admin dashboard snapshot (soft-fail).
func (c *Controller) RefreshDashboardStats(ctx context.Context) error {
	gen := c.views.NextGeneration()
	stats, err := c.api.GetDashboardStats(ctx)
	if errors.Is(err, clients.ErrForbidden) {
		c.setHidden(view.KindStats)
		return nil
	}
	if err != nil {
		return err
	}
	c.views.Apply(view.KindStats, gen, stats)
	return nil
}
