package auction_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pitchside/auctionsync/clients"
	"github.com/pitchside/auctionsync/internal/session"
)

// LoginResult is the token pair plus identity returned by a login.
type LoginResult struct {
	OK           bool   `json:"ok"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	TeamID       string `json:"team_id,omitempty"`
	TeamName     string `json:"team_name,omitempty"`
	User         *struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		IsAdmin bool   `json:"is_admin"`
		Role    string `json:"role"`
	} `json:"user,omitempty"`
}

// Login performs the user login flow and stores the credentials.
func (c *AuctionApiClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", clients.ErrValidation)
	}

	return c.login(ctx, LoginEndpoint, map[string]string{
		"email":    email,
		"password": password,
	})
}

// TeamLogin performs the team bidding-console login flow.
func (c *AuctionApiClient) TeamLogin(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", clients.ErrValidation)
	}

	return c.login(ctx, TeamLoginEndpoint, map[string]string{
		"username": username,
		"password": password,
	})
}

func (c *AuctionApiClient) login(ctx context.Context, endpoint string, form map[string]string) (*LoginResult, error) {
	body, err := c.PostForm(ctx, endpoint, form)
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}
	if !result.OK || result.AccessToken == "" {
		return nil, fmt.Errorf("login rejected by server")
	}

	if err := c.Credentials().Set(session.Credentials{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist credentials: %w", err)
	}

	return &result, nil
}

// Logout invalidates the session server-side and clears credentials
// locally regardless of the server outcome.
func (c *AuctionApiClient) Logout(ctx context.Context) error {
	_, err := c.Post(ctx, LogoutEndpoint, nil)
	if clearErr := c.Credentials().Clear(); clearErr != nil {
		return clearErr
	}
	return err
}
