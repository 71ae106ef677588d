package models

// AuctionStatus mirrors the server's auction status snapshot.
type AuctionStatus struct {
	Active            bool   `json:"active"`
	CurrentPlayerID   string `json:"current_player_id,omitempty"`
	CurrentPlayerName string `json:"current_player_name,omitempty"`
	AuctionRound      int    `json:"auction_round,omitempty"`
	TimerRemaining    *int   `json:"timer_remaining,omitempty"`
}

// AuctionRound is per-round sold/unsold statistics.
type AuctionRound struct {
	Round        int `json:"round"`
	TotalPlayers int `json:"total_players"`
	Sold         int `json:"sold"`
	Unsold       int `json:"unsold"`
	Available    int `json:"available"`
}
