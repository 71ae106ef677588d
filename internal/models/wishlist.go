package models

import "time"

// WishlistItem is a player a team has shortlisted before the auction.
type WishlistItem struct {
	PlayerID   string     `json:"player_id"`
	PlayerName string     `json:"player_name,omitempty"`
	Priority   int        `json:"priority"`
	MaxBid     float64    `json:"max_bid,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	AddedAt    *time.Time `json:"added_at,omitempty"`
}
