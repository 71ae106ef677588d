package models

import "time"

// Bid is a single recorded bid on a player.
type Bid struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name,omitempty"`
	TeamID     string    `json:"team_id"`
	TeamName   string    `json:"team_name,omitempty"`
	BidAmount  float64   `json:"bid_amount"`
	BidderID   string    `json:"bidder_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IsWinning  bool      `json:"is_winning,omitempty"`
}

// BidHistory is the full bid trail for one player.
type BidHistory struct {
	PlayerID    string  `json:"player_id"`
	PlayerName  string  `json:"player_name"`
	Bids        []Bid   `json:"bids"`
	FinalBid    float64 `json:"final_bid,omitempty"`
	WinningTeam string  `json:"winning_team,omitempty"`
}
