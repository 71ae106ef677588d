package models

// Team represents a franchise participating in the auction.
type Team struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Owner           string  `json:"owner,omitempty"`
	Budget          float64 `json:"budget"`
	PlayersCount    int     `json:"players_count"`
	TotalSpent      float64 `json:"total_spent"`
	RemainingBudget float64 `json:"remaining_budget"`
}

// TeamDetail is a team together with its purchased roster.
type TeamDetail struct {
	Team
	Players []Player `json:"players"`
}
