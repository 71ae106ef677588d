package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pitchside/auctionsync/internal/notify"
	"github.com/pitchside/auctionsync/internal/realtime"
)

// handlerTimeout bounds the re-fetches a single event dispatch issues.
const handlerTimeout = 15 * time.Second

// registerHandlers wires the event handler table. Every handler is an
// idempotent reconciliation: it re-fetches the affected snapshots
// instead of applying the event as a diff, so a snapshot fetched by the
// poller a moment later can never contradict what a handler wrote.
func (c *Controller) registerHandlers() {
	c.channel.Handle(realtime.EventTypeBidPlaced, c.onBidPlaced)
	c.channel.Handle(realtime.EventTypePlayerSold, c.onPlayerSold)
	c.channel.Handle(realtime.EventTypePlayerUnsold, c.onPlayerUnsold)
	c.channel.Handle(realtime.EventTypePlayerLive, c.onPlayerLive)
	c.channel.Handle(realtime.EventTypePlayerUndo, c.onPlayerUndo)
	c.channel.Handle(realtime.EventTypeAuctionStatus, c.onAuctionStatus)
	c.channel.Handle(realtime.EventTypeTeamUpdate, c.onTeamUpdate)
	c.channel.Handle(realtime.EventTypeTimerUpdate, c.onTimerUpdate)
	c.channel.Handle(realtime.EventTypeChatMessage, c.onChatMessage)
	c.channel.Handle(realtime.EventTypeAuctionReset, c.onAuctionReset)
}

func (c *Controller) handlerContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), handlerTimeout)
}

func (c *Controller) reconcile(fetches ...func(ctx context.Context) error) {
	ctx, cancel := c.handlerContext()
	defer cancel()

	for _, fetch := range fetches {
		if err := fetch(ctx); err != nil {
			log.Warn().Err(err).Msg("event reconciliation fetch failed")
		}
	}
}

func (c *Controller) onBidPlaced(event realtime.Event) {
	payload, err := parseAs[realtime.BidPlacedPayload](event)
	if err != nil {
		return
	}

	c.notifier.Notify(notify.CategoryBid, "info",
		fmt.Sprintf("%s bids %.0f on %s", payload.TeamName, payload.BidAmount, payload.PlayerName))

	c.reconcile(c.refetchLivePlayer, c.refetchStatus)
}

func (c *Controller) onPlayerSold(event realtime.Event) {
	payload, err := parseAs[realtime.PlayerSoldPayload](event)
	if err != nil {
		return
	}

	if c.teamID != "" && payload.TeamID == c.teamID {
		c.notifier.Notify(notify.CategorySold, "success",
			fmt.Sprintf("You won %s for %.0f!", payload.PlayerName, payload.FinalBid))
		c.reconcile(c.refetchPlayers, c.refetchTeams, c.refetchLivePlayer, c.refetchRoster)
		return
	}

	c.notifier.Notify(notify.CategorySold, "info",
		fmt.Sprintf("%s sold to %s for %.0f", payload.PlayerName, payload.TeamName, payload.FinalBid))
	c.reconcile(c.refetchPlayers, c.refetchTeams, c.refetchLivePlayer)
}

func (c *Controller) onPlayerUnsold(event realtime.Event) {
	payload, err := parseAs[realtime.PlayerUnsoldPayload](event)
	if err != nil {
		return
	}

	c.notifier.Notify(notify.CategoryUnsold, "info",
		fmt.Sprintf("%s goes unsold", payload.PlayerName))

	c.reconcile(c.refetchPlayers, c.refetchLivePlayer)
}

func (c *Controller) onPlayerLive(event realtime.Event) {
	payload, err := parseAs[realtime.PlayerLivePayload](event)
	if err != nil {
		return
	}

	c.notifier.Notify(notify.CategoryStatus, "info",
		fmt.Sprintf("%s is on the block (base %.0f)", payload.PlayerName, payload.BasePrice))

	c.reconcile(c.refetchLivePlayer, c.refetchStatus)
}

func (c *Controller) onPlayerUndo(event realtime.Event) {
	payload, err := parseAs[realtime.PlayerUndoPayload](event)
	if err != nil {
		return
	}

	c.notifier.ShowToast("warning", fmt.Sprintf("Sale of %s was undone", payload.PlayerName))

	fetches := []func(ctx context.Context) error{c.refetchPlayers, c.refetchTeams, c.refetchLivePlayer}
	if c.teamID != "" && payload.TeamID == c.teamID {
		fetches = append(fetches, c.refetchRoster)
	}
	c.reconcile(fetches...)
}

func (c *Controller) onAuctionStatus(event realtime.Event) {
	payload, err := parseAs[realtime.AuctionStatusPayload](event)
	if err != nil {
		return
	}

	if payload.Active {
		c.notifier.Notify(notify.CategoryStatus, "success", "Auction is live!")
	} else {
		c.notifier.Notify(notify.CategoryStatus, "info", "Auction stopped")
	}

	c.reconcile(c.refetchStatus, c.refetchLivePlayer)
}

func (c *Controller) onTeamUpdate(event realtime.Event) {
	payload, err := parseAs[realtime.TeamUpdatePayload](event)
	if err != nil {
		return
	}

	fetches := []func(ctx context.Context) error{c.refetchTeams}
	if c.teamID != "" && payload.TeamID == c.teamID {
		fetches = append(fetches, c.refetchRoster)
	}
	c.reconcile(fetches...)
}

// onTimerUpdate keeps only the latest tick; the countdown itself is
// server-authoritative and is also present in the status snapshot.
func (c *Controller) onTimerUpdate(event realtime.Event) {
	payload, err := parseAs[realtime.TimerUpdatePayload](event)
	if err != nil {
		return
	}
	c.timer.Store(int64(payload.Seconds))
}

func (c *Controller) onChatMessage(event realtime.Event) {
	payload, err := parseAs[realtime.ChatMessagePayload](event)
	if err != nil {
		return
	}

	c.notifier.Notify(notify.CategoryChat, "info",
		fmt.Sprintf("%s: %s", payload.SenderName, payload.Message))

	c.reconcile(c.refetchChat)
}

func (c *Controller) onAuctionReset(event realtime.Event) {
	c.notifier.Notify(notify.CategoryStatus, "warning", "Auction was reset")

	ctx, cancel := c.handlerContext()
	defer cancel()
	c.initialLoad(ctx)
}

// parseAs decodes an event payload, logging and dropping malformed data
// so a bad message can never break the dispatch flow.
func parseAs[T any](event realtime.Event) (T, error) {
	var payload T
	raw, err := realtime.ParseEventPayload(event)
	if err != nil {
		log.Warn().Err(err).Str("type", string(event.Type)).Msg("malformed event payload")
		return payload, err
	}
	typed, ok := raw.(T)
	if !ok {
		log.Warn().Str("type", string(event.Type)).Msg("unexpected event payload shape")
		return payload, fmt.Errorf("unexpected payload type for %s", event.Type)
	}
	return typed, nil
}
