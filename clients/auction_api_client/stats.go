package auction_api_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pitchside/auctionsync/internal/models"
)

// The endpoints in this file are soft-fail: a 403 surfaces as
// clients.ErrForbidden so the caller hides the panel instead of
// treating it as an application error.

// GetDashboardStats fetches the admin dashboard summary.
func (c *AuctionApiClient) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	body, err := c.Get(ctx, DashboardStatsEndpoint)
	if err != nil {
		return nil, err
	}

	var stats models.DashboardStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard stats: %w", err)
	}
	return &stats, nil
}

// GetTeamSpending fetches per-team spend summaries for charts.
func (c *AuctionApiClient) GetTeamSpending(ctx context.Context) ([]models.TeamSpending, error) {
	body, err := c.Get(ctx, TeamSpendingEndpoint)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Teams []models.TeamSpending `json:"teams"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Teams != nil {
		return envelope.Teams, nil
	}

	var bare []models.TeamSpending
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse team spending: %w", err)
	}
	return bare, nil
}

// GetViewerAnalytics fetches the live-viewer analytics snapshot.
func (c *AuctionApiClient) GetViewerAnalytics(ctx context.Context) (*models.ViewerAnalytics, error) {
	body, err := c.Get(ctx, ViewerAnalyticsEndpoint)
	if err != nil {
		return nil, err
	}

	var analytics models.ViewerAnalytics
	if err := json.Unmarshal(body, &analytics); err != nil {
		return nil, fmt.Errorf("failed to parse viewer analytics: %w", err)
	}
	return &analytics, nil
}

// GetActivityLogs fetches recent admin activity log entries.
func (c *AuctionApiClient) GetActivityLogs(ctx context.Context) ([]models.ActivityLog, error) {
	body, err := c.Get(ctx, ActivityLogsEndpoint)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Logs []models.ActivityLog `json:"logs"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse activity logs: %w", err)
	}
	return envelope.Logs, nil
}

// ListEligiblePlayers fetches players eligible to go on the block.
func (c *AuctionApiClient) ListEligiblePlayers(ctx context.Context) ([]models.Player, error) {
	body, err := c.Get(ctx, EligiblePlayersEndpoint)
	if err != nil {
		return nil, err
	}
	return decodePlayerList(body)
}
