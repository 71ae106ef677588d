package models

import "time"

// ChatMessage is one message in an auction chat room.
type ChatMessage struct {
	ID         string    `json:"id"`
	Room       string    `json:"room"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
