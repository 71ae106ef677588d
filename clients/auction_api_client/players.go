package auction_api_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pitchside/auctionsync/internal/models"
)

// decodePlayerList accepts both the wrapped {players: [...]} envelope
// and a bare array; the server has used both shapes.
func decodePlayerList(body []byte) ([]models.Player, error) {
	var envelope struct {
		Players []models.Player `json:"players"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Players != nil {
		return envelope.Players, nil
	}

	var bare []models.Player
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse players response: %w", err)
	}
	return bare, nil
}

// ListPlayers fetches the full player list.
func (c *AuctionApiClient) ListPlayers(ctx context.Context) ([]models.Player, error) {
	body, err := c.Get(ctx, PlayersEndpoint)
	if err != nil {
		return nil, err
	}
	return decodePlayerList(body)
}

// GetPlayer fetches a single player by id.
func (c *AuctionApiClient) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	body, err := c.Get(ctx, PlayersEndpoint+playerID)
	if err != nil {
		return nil, err
	}

	var player models.Player
	if err := json.Unmarshal(body, &player); err != nil {
		return nil, fmt.Errorf("failed to parse player response: %w", err)
	}
	return &player, nil
}
