package controller

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pitchside/auctionsync/internal/export"
	"github.com/pitchside/auctionsync/internal/models"
	"github.com/pitchside/auctionsync/internal/view"
)

// PlaceBid submits a bid for the local team. The live-player banner is
// updated speculatively; if the server rejects the bid (or never
// confirms before the ledger deadline) the banner is re-fetched back to
// server truth.
func (c *Controller) PlaceBid(ctx context.Context, amount float64) error {
	livePlayer, _ := view.Get[*models.Player](c.views, view.KindLivePlayer)
	if livePlayer == nil {
		return fmt.Errorf("no player is on the block")
	}
	if c.teamID == "" {
		return fmt.Errorf("no team identity held")
	}

	id := c.ledger.Record("bid "+livePlayer.Name, func() {
		ctx, cancel := c.handlerContext()
		defer cancel()
		if err := c.refetchLivePlayer(ctx); err != nil {
			log.Warn().Err(err).Msg("bid rollback refetch failed")
		}
	})

	if err := c.api.PlaceBid(ctx, livePlayer.ID, c.teamID, amount); err != nil {
		c.ledger.Rollback(id)
		return err
	}

	c.ledger.Confirm(id)
	c.reconcile(c.refetchLivePlayer, c.refetchStatus)
	return nil
}

// SendChat posts a message to the configured room and reconciles the
// chat snapshot.
func (c *Controller) SendChat(ctx context.Context, message string) error {
	if err := c.api.SendChatMessage(ctx, c.config.ChatRoom, message); err != nil {
		return err
	}
	c.reconcile(c.refetchChat)
	return nil
}

// AddToWishlist shortlists a player with an optimistic local insert.
func (c *Controller) AddToWishlist(ctx context.Context, player models.Player, priority int, maxBid float64) error {
	gen := c.views.NextGeneration()
	current, _ := view.Get[[]models.WishlistItem](c.views, view.KindWishlist)

	speculative := append(append([]models.WishlistItem{}, current...), models.WishlistItem{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Priority:   priority,
		MaxBid:     maxBid,
	})
	c.views.Apply(view.KindWishlist, gen, speculative)

	id := c.ledger.Record("wishlist add "+player.Name, func() {
		ctx, cancel := c.handlerContext()
		defer cancel()
		if err := c.refetchWishlist(ctx); err != nil {
			log.Warn().Err(err).Msg("wishlist rollback refetch failed")
		}
	})

	if err := c.api.AddToWishlist(ctx, player.ID, priority, maxBid); err != nil {
		c.ledger.Rollback(id)
		return err
	}

	c.ledger.Confirm(id)
	c.reconcile(c.refetchWishlist)
	return nil
}

// RemoveFromWishlist drops a player with an optimistic local removal.
func (c *Controller) RemoveFromWishlist(ctx context.Context, playerID string) error {
	gen := c.views.NextGeneration()
	current, _ := view.Get[[]models.WishlistItem](c.views, view.KindWishlist)

	speculative := make([]models.WishlistItem, 0, len(current))
	for _, item := range current {
		if item.PlayerID != playerID {
			speculative = append(speculative, item)
		}
	}
	c.views.Apply(view.KindWishlist, gen, speculative)

	id := c.ledger.Record("wishlist remove "+playerID, func() {
		ctx, cancel := c.handlerContext()
		defer cancel()
		if err := c.refetchWishlist(ctx); err != nil {
			log.Warn().Err(err).Msg("wishlist rollback refetch failed")
		}
	})

	if err := c.api.RemoveFromWishlist(ctx, playerID); err != nil {
		c.ledger.Rollback(id)
		return err
	}

	c.ledger.Confirm(id)
	c.reconcile(c.refetchWishlist)
	return nil
}

// ExportSoldPlayersCSV re-exports the in-memory players snapshot as a
// sold-players CSV report. Pure client-side transformation.
func (c *Controller) ExportSoldPlayersCSV() string {
	players, _ := view.Get[[]models.Player](c.views, view.KindPlayers)
	return export.SoldPlayersCSV(players)
}

// ExportTeamSummaryCSV re-exports the teams snapshot as a CSV report.
func (c *Controller) ExportTeamSummaryCSV() string {
	teams, _ := view.Get[[]models.Team](c.views, view.KindTeams)
	return export.TeamSummaryCSV(teams)
}
