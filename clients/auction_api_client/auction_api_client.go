package auction_api_client

import (
	"github.com/pitchside/auctionsync/clients"
	"github.com/pitchside/auctionsync/internal/session"
)

// AuctionApiClient is the typed client for the auction backend. Every
// call goes through the embedded AuthClient gate, so credential
// attachment, 401 refresh and soft-fail 403 handling are uniform.
type AuctionApiClient struct {
	*clients.AuthClient
}

// NewAuctionApiClient creates a client for the given base URL.
func NewAuctionApiClient(baseURL string, creds *session.Store, onSessionExpired func()) *AuctionApiClient {
	return &AuctionApiClient{
		AuthClient: clients.NewAuthClient(baseURL, creds, onSessionExpired),
	}
}
