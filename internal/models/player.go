package models

import "time"

// Player status values as reported by the auction server.
const (
	PlayerStatusAvailable = "available"
	PlayerStatusLive      = "live"
	PlayerStatusSold      = "sold"
	PlayerStatusUnsold    = "unsold"
	PlayerStatusPending   = "pending"
)

// Player represents a cricket player registered for the auction.
type Player struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`     // Batsman, Bowler, All-Rounder, Wicketkeeper
	Category     string     `json:"category"` // Faculty, Student, Alumni
	Age          int        `json:"age,omitempty"`
	BattingStyle string     `json:"batting_style,omitempty"`
	BowlingStyle string     `json:"bowling_style,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	ImagePath    string     `json:"image_path,omitempty"`
	BasePrice    float64    `json:"base_price"`
	Status       string     `json:"status"`
	FinalBid     float64    `json:"final_bid,omitempty"`
	FinalTeam    string     `json:"final_team,omitempty"`
	TeamName     string     `json:"team_name,omitempty"`
	AuctionRound int        `json:"auction_round"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
