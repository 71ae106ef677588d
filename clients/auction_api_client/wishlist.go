package auction_api_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pitchside/auctionsync/clients"
	"github.com/pitchside/auctionsync/internal/models"
)

// AddToWishlist shortlists a player for the logged-in team.
func (c *AuctionApiClient) AddToWishlist(ctx context.Context, playerID string, priority int, maxBid float64) error {
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", clients.ErrValidation)
	}

	payload, err := json.Marshal(map[string]any{
		"priority": priority,
		"max_bid":  maxBid,
	})
	if err != nil {
		return fmt.Errorf("failed to encode wishlist entry: %w", err)
	}

	body, err := c.Post(ctx, WishlistAddEndpoint+playerID, payload)
	if err != nil {
		return err
	}
	return checkOK(body, "wishlist add")
}

// RemoveFromWishlist drops a player from the shortlist.
func (c *AuctionApiClient) RemoveFromWishlist(ctx context.Context, playerID string) error {
	body, err := c.Delete(ctx, WishlistRemoveEndpoint+playerID)
	if err != nil {
		return err
	}
	return checkOK(body, "wishlist remove")
}

// UpdateWishlistItem changes priority or max bid for an entry.
func (c *AuctionApiClient) UpdateWishlistItem(ctx context.Context, playerID string, priority int, maxBid float64) error {
	payload, err := json.Marshal(map[string]any{
		"priority": priority,
		"max_bid":  maxBid,
	})
	if err != nil {
		return fmt.Errorf("failed to encode wishlist update: %w", err)
	}

	body, err := c.Patch(ctx, WishlistUpdateEndpoint+playerID, payload)
	if err != nil {
		return err
	}
	return checkOK(body, "wishlist update")
}

// MyWishlist fetches the logged-in team's shortlist.
func (c *AuctionApiClient) MyWishlist(ctx context.Context) ([]models.WishlistItem, error) {
	body, err := c.Get(ctx, MyWishlistEndpoint)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Wishlist []models.WishlistItem `json:"wishlist"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Wishlist != nil {
		return envelope.Wishlist, nil
	}

	var bare []models.WishlistItem
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse wishlist: %w", err)
	}
	return bare, nil
}
