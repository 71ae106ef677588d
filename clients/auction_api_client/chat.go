package auction_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pitchside/auctionsync/clients"
	"github.com/pitchside/auctionsync/internal/models"
)

// SendChatMessage posts a message to the auction chat room.
func (c *AuctionApiClient) SendChatMessage(ctx context.Context, room, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("%w: message must not be empty", clients.ErrValidation)
	}

	payload, err := json.Marshal(map[string]string{
		"room":    room,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode chat message: %w", err)
	}

	body, err := c.Post(ctx, ChatSendEndpoint, payload)
	if err != nil {
		return err
	}
	return checkOK(body, "chat send")
}

// ListChatMessages fetches recent messages for a room.
func (c *AuctionApiClient) ListChatMessages(ctx context.Context, room string) ([]models.ChatMessage, error) {
	endpoint := ChatMessagesEndpoint
	if room != "" {
		endpoint += "?room=" + room
	}

	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Messages []models.ChatMessage `json:"messages"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Messages != nil {
		return envelope.Messages, nil
	}

	var bare []models.ChatMessage
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse chat messages: %w", err)
	}
	return bare, nil
}
