package models

import "time"

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalPlayers     int     `json:"total_players"`
	SoldPlayers      int     `json:"sold_players"`
	UnsoldPlayers    int     `json:"unsold_players"`
	AvailablePlayers int     `json:"available_players"`
	TotalTeams       int     `json:"total_teams"`
	TotalRevenue     float64 `json:"total_revenue"`
	HighestBid       float64 `json:"highest_bid"`
	AuctionActive    bool    `json:"auction_active"`
}

// TeamSpending is one team's spend summary for dashboard charts.
type TeamSpending struct {
	TeamID     string  `json:"team_id"`
	TeamName   string  `json:"team_name"`
	TotalSpent float64 `json:"total_spent"`
	Remaining  float64 `json:"remaining_budget"`
}

// ViewerAnalytics is the live-viewer analytics snapshot.
type ViewerAnalytics struct {
	TotalSold     int            `json:"total_sold"`
	TotalUnsold   int            `json:"total_unsold"`
	TotalRevenue  float64        `json:"total_revenue"`
	AverageBid    float64        `json:"average_bid"`
	RoleBreakdown map[string]int `json:"role_breakdown,omitempty"`
}

// ActivityLog is one admin activity log entry.
type ActivityLog struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
