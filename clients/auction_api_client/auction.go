package auction_api_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pitchside/auctionsync/clients"
	"github.com/pitchside/auctionsync/internal/models"
)

// GetAuctionStatus fetches the current auction status snapshot.
func (c *AuctionApiClient) GetAuctionStatus(ctx context.Context) (*models.AuctionStatus, error) {
	body, err := c.Get(ctx, AuctionStatusEndpoint)
	if err != nil {
		return nil, err
	}

	var status models.AuctionStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse auction status: %w", err)
	}
	return &status, nil
}

// GetCurrentPlayer fetches the player currently on the block. A nil
// player with nil error means no player is live.
func (c *AuctionApiClient) GetCurrentPlayer(ctx context.Context) (*models.Player, error) {
	body, err := c.Get(ctx, CurrentPlayerEndpoint)
	if err != nil {
		return nil, err
	}

	// The server answers {"message": "No current player"} when idle.
	var probe struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.ID == "" && probe.Message != "" {
		return nil, nil
	}

	var player models.Player
	if err := json.Unmarshal(body, &player); err != nil {
		return nil, fmt.Errorf("failed to parse current player: %w", err)
	}
	if player.ID == "" {
		return nil, nil
	}
	return &player, nil
}

// PlaceBid submits a bid for a team on a player. Validation failures
// are rejected before any network call is issued.
func (c *AuctionApiClient) PlaceBid(ctx context.Context, playerID, teamID string, amount float64) error {
	if playerID == "" || teamID == "" {
		return fmt.Errorf("%w: player and team are required", clients.ErrValidation)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: bid amount must be positive", clients.ErrValidation)
	}

	payload, err := json.Marshal(map[string]any{
		"player_id":  playerID,
		"team_id":    teamID,
		"bid_amount": amount,
	})
	if err != nil {
		return fmt.Errorf("failed to encode bid: %w", err)
	}

	body, err := c.Post(ctx, PlaceBidEndpoint, payload)
	if err != nil {
		return err
	}
	return checkOK(body, "bid")
}

// GetBidHistory fetches the bid trail for one player. This endpoint is
// soft-fail: clients.ErrForbidden means the section should be hidden.
func (c *AuctionApiClient) GetBidHistory(ctx context.Context, playerID string) (*models.BidHistory, error) {
	body, err := c.Get(ctx, BidHistoryEndpoint+"/"+playerID)
	if err != nil {
		return nil, err
	}

	var history models.BidHistory
	if err := json.Unmarshal(body, &history); err != nil {
		return nil, fmt.Errorf("failed to parse bid history: %w", err)
	}
	return &history, nil
}

// GetAllBidHistory fetches the most recent bids across all players
// (admin view, soft-fail).
func (c *AuctionApiClient) GetAllBidHistory(ctx context.Context) ([]models.Bid, error) {
	body, err := c.Get(ctx, BidHistoryEndpoint)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Bids []models.Bid `json:"bids"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse bid history: %w", err)
	}
	return envelope.Bids, nil
}

// MarkSold marks the given player sold to the highest bidder.
func (c *AuctionApiClient) MarkSold(ctx context.Context, playerID string) error {
	return c.simplePost(ctx, MarkSoldEndpoint+playerID, "mark sold")
}

// MarkUnsold marks the given player unsold for this round.
func (c *AuctionApiClient) MarkUnsold(ctx context.Context, playerID string) error {
	return c.simplePost(ctx, MarkUnsoldEndpoint+playerID, "mark unsold")
}

// SetLivePlayer puts a player on the auction block.
func (c *AuctionApiClient) SetLivePlayer(ctx context.Context, playerID string) error {
	return c.simplePost(ctx, SetLivePlayerEndpoint+playerID, "set live player")
}

// NextPlayer advances the auction to the next available player.
func (c *AuctionApiClient) NextPlayer(ctx context.Context) error {
	return c.simplePost(ctx, NextPlayerEndpoint, "next player")
}

// StartAuction starts the auction.
func (c *AuctionApiClient) StartAuction(ctx context.Context) error {
	return c.simplePost(ctx, StartAuctionEndpoint, "start auction")
}

// StopAuction stops the auction.
func (c *AuctionApiClient) StopAuction(ctx context.Context) error {
	return c.simplePost(ctx, StopAuctionEndpoint, "stop auction")
}

// StartReauction opens a new round for all unsold players.
func (c *AuctionApiClient) StartReauction(ctx context.Context) error {
	return c.simplePost(ctx, StartReauctionEndpoint, "start reauction")
}

// UndoSale reverts the most recent sale of the given player.
func (c *AuctionApiClient) UndoSale(ctx context.Context, playerID string) error {
	return c.simplePost(ctx, UndoSaleEndpoint+playerID, "undo sale")
}

// ListUnsoldPlayers fetches players left unsold, across all rounds.
func (c *AuctionApiClient) ListUnsoldPlayers(ctx context.Context) ([]models.Player, error) {
	body, err := c.Get(ctx, UnsoldPlayersEndpoint)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		UnsoldPlayers []models.Player `json:"unsold_players"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse unsold players: %w", err)
	}
	return envelope.UnsoldPlayers, nil
}

// ListAuctionRounds fetches per-round sold/unsold statistics.
func (c *AuctionApiClient) ListAuctionRounds(ctx context.Context) ([]models.AuctionRound, error) {
	body, err := c.Get(ctx, AuctionRoundsEndpoint)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Rounds []models.AuctionRound `json:"rounds"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse auction rounds: %w", err)
	}
	return envelope.Rounds, nil
}

func (c *AuctionApiClient) simplePost(ctx context.Context, endpoint, action string) error {
	body, err := c.Post(ctx, endpoint, nil)
	if err != nil {
		return err
	}
	return checkOK(body, action)
}

// checkOK verifies the {ok: bool} envelope on mutation responses.
func checkOK(body []byte, action string) error {
	var envelope struct {
		OK      *bool  `json:"ok"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", action, err)
	}
	if envelope.OK != nil && !*envelope.OK {
		reason := envelope.Detail
		if reason == "" {
			reason = envelope.Message
		}
		return fmt.Errorf("%s rejected: %s", action, reason)
	}
	return nil
}
