package realtime

import (
	"encoding/json"
	"time"
)

// Event is the envelope for all messages pushed over the auction
// socket. Data stays raw until a handler parses it; consumers must not
// assume exactly-once or gap-free delivery.
type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// EventType identifies the kind of auction event.
type EventType string

const (
	EventTypeBidPlaced     EventType = "bid_placed"
	EventTypePlayerSold    EventType = "player_sold"
	EventTypePlayerUnsold  EventType = "player_unsold"
	EventTypePlayerLive    EventType = "player_live"
	EventTypePlayerUndo    EventType = "player_undo"
	EventTypeAuctionStatus EventType = "auction_status"
	EventTypeTeamUpdate    EventType = "team_update"
	EventTypeTimerUpdate   EventType = "timer_update"
	EventTypeChatMessage   EventType = "chat_message"
	EventTypeAuctionReset  EventType = "auction_reset"
)

// BidPlacedPayload announces a new highest bid on the live player.
type BidPlacedPayload struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	TeamID     string  `json:"team_id"`
	TeamName   string  `json:"team_name"`
	BidAmount  float64 `json:"bid_amount"`
}

// PlayerSoldPayload announces the hammer falling on a player.
type PlayerSoldPayload struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	TeamID     string  `json:"team_id"`
	TeamName   string  `json:"team_name"`
	FinalBid   float64 `json:"final_bid"`
}

// PlayerUnsoldPayload announces a player passing unsold.
type PlayerUnsoldPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerLivePayload announces the player now on the block.
type PlayerLivePayload struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Role       string  `json:"role"`
	BasePrice  float64 `json:"base_price"`
}

// PlayerUndoPayload announces an admin reverting a sale.
type PlayerUndoPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamID     string `json:"team_id"`
}

// AuctionStatusPayload announces the auction starting or stopping.
type AuctionStatusPayload struct {
	Active bool `json:"active"`
}

// TeamUpdatePayload announces a team budget/roster change.
type TeamUpdatePayload struct {
	TeamID          string  `json:"team_id"`
	TeamName        string  `json:"team_name"`
	RemainingBudget float64 `json:"remaining_budget"`
	PlayersCount    int     `json:"players_count"`
}

// TimerUpdatePayload carries the server countdown tick.
type TimerUpdatePayload struct {
	Seconds int `json:"seconds"`
}

// ChatMessagePayload carries a chat message pushed to the room.
type ChatMessagePayload struct {
	ID         string    `json:"id"`
	Room       string    `json:"room"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// AuctionResetPayload announces the whole auction being reset.
type AuctionResetPayload struct {
	Round  int    `json:"round,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ParseEventPayload parses an event's data into its typed payload.
// Unknown types yield (nil, nil); the dispatcher ignores them.
func ParseEventPayload(event Event) (interface{}, error) {
	switch event.Type {
	case EventTypeBidPlaced:
		var payload BidPlacedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypePlayerSold:
		var payload PlayerSoldPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypePlayerUnsold:
		var payload PlayerUnsoldPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypePlayerLive:
		var payload PlayerLivePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypePlayerUndo:
		var payload PlayerUndoPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeAuctionStatus:
		var payload AuctionStatusPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeTeamUpdate:
		var payload TeamUpdatePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeTimerUpdate:
		var payload TimerUpdatePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeChatMessage:
		var payload ChatMessagePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeAuctionReset:
		var payload AuctionResetPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, nil // Unknown event type
	}
}
