package auction_api_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pitchside/auctionsync/internal/models"
)

// ListTeams fetches all teams with budget summaries.
func (c *AuctionApiClient) ListTeams(ctx context.Context) ([]models.Team, error) {
	body, err := c.Get(ctx, TeamsEndpoint)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Teams []models.Team `json:"teams"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Teams != nil {
		return envelope.Teams, nil
	}

	var bare []models.Team
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse teams response: %w", err)
	}
	return bare, nil
}

// GetTeam fetches one team with its purchased roster.
func (c *AuctionApiClient) GetTeam(ctx context.Context, teamID string) (*models.TeamDetail, error) {
	body, err := c.Get(ctx, TeamsEndpoint+teamID)
	if err != nil {
		return nil, err
	}

	var detail models.TeamDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to parse team response: %w", err)
	}
	return &detail, nil
}
