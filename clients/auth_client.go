package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pitchside/auctionsync/internal/session"
)

// Sentinel errors callers branch on. Errors are handled at the call
// site that receives them; they are never re-thrown across layers.
var (
	// ErrForbidden marks a 403 on a soft-fail endpoint: the feature is
	// unavailable to this user, not an application error.
	ErrForbidden = errors.New("forbidden")

	// ErrSessionExpired marks a 401 that survived the single refresh
	// attempt on a critical path. The session has been terminated.
	ErrSessionExpired = errors.New("session expired")

	// ErrValidation marks a request rejected client-side before any
	// network call was issued.
	ErrValidation = errors.New("validation failed")
)

const refreshEndpoint = "/auth/refresh"

// softFailEndpoints are the paths whose 401/403 responses are treated
// as "feature unavailable" rather than a session-terminating failure.
var softFailEndpoints = []string{
	"/viewer/analytics",
	"/admin/activity-logs",
	"/auction/bid_history",
	"/admin/auction/eligible-players",
}

// AuthClient is the session gate every outbound call goes through. It
// normalizes URLs to the secure scheme, attaches the bearer credential,
// and on a 401 performs exactly one token refresh followed by one retry
// of the original call.
type AuthClient struct {
	baseURL string
	client  *http.Client
	headers map[string]string
	creds   *session.Store

	// onSessionExpired runs after a terminal 401 on a critical path has
	// cleared the stored credentials (the forced-logout redirect).
	onSessionExpired func()

	refreshMu sync.Mutex
}

// NewAuthClient creates a gate for the given API base URL. Insecure
// schemes are rewritten to https; a bare host gets https prepended.
func NewAuthClient(baseURL string, creds *session.Store, onSessionExpired func()) *AuthClient {
	return &AuthClient{
		baseURL: NormalizeBaseURL(baseURL),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers:          make(map[string]string),
		creds:            creds,
		onSessionExpired: onSessionExpired,
	}
}

// NormalizeBaseURL rewrites insecure schemes to their secure
// counterparts and prepends https to scheme-less hosts.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	switch {
	case strings.HasPrefix(raw, "http://"):
		return "https://" + strings.TrimPrefix(raw, "http://")
	case strings.HasPrefix(raw, "ws://"):
		return "wss://" + strings.TrimPrefix(raw, "ws://")
	case strings.HasPrefix(raw, "https://"), strings.HasPrefix(raw, "wss://"):
		return raw
	default:
		return "https://" + raw
	}
}

// SetHeader sets a header attached to every outbound request.
func (c *AuthClient) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetTimeout overrides the default request timeout.
func (c *AuthClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetHTTPClient swaps the underlying http.Client (tests).
func (c *AuthClient) SetHTTPClient(hc *http.Client) {
	c.client = hc
}

// BaseURL returns the normalized API base URL.
func (c *AuthClient) BaseURL() string {
	return c.baseURL
}

// WebSocketURL derives the wss endpoint URL for the given path.
func (c *AuthClient) WebSocketURL(path string) string {
	base := strings.Replace(c.baseURL, "https://", "wss://", 1)
	return base + path
}

// Credentials exposes the session store (realtime channel auth).
func (c *AuthClient) Credentials() *session.Store {
	return c.creds
}

// IsSoftFail reports whether the endpoint tolerates auth failures.
func IsSoftFail(endpoint string) bool {
	for _, prefix := range softFailEndpoints {
		if strings.HasPrefix(endpoint, prefix) {
			return true
		}
	}
	return false
}

// MakeRequest issues one authorized call. The body is a byte slice, not
// a reader, so the single 401-triggered retry can re-send it.
func (c *AuthClient) MakeRequest(ctx context.Context, method, endpoint, contentType string, body []byte) ([]byte, error) {
	respBody, status, err := c.doOnce(ctx, method, endpoint, contentType, body)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && endpoint != refreshEndpoint {
		return c.handleUnauthorized(ctx, method, endpoint, contentType, body, respBody)
	}

	return c.finish(endpoint, status, respBody)
}

func (c *AuthClient) doOnce(ctx context.Context, method, endpoint, contentType string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.creds.Get().AccessToken; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

// handleUnauthorized performs the single refresh-then-retry cycle.
func (c *AuthClient) handleUnauthorized(ctx context.Context, method, endpoint, contentType string, body, staleBody []byte) ([]byte, error) {
	if err := c.refreshAccessToken(ctx); err != nil {
		return c.expireSession(endpoint, staleBody, err)
	}

	respBody, status, err := c.doOnce(ctx, method, endpoint, contentType, body)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return c.expireSession(endpoint, respBody, errors.New("retry after refresh still unauthorized"))
	}

	return c.finish(endpoint, status, respBody)
}

// expireSession terminates the session for critical paths; soft-fail
// paths log and hand back the stale response instead of forcing logout.
func (c *AuthClient) expireSession(endpoint string, staleBody []byte, cause error) ([]byte, error) {
	if IsSoftFail(endpoint) {
		log.Warn().
			Err(cause).
			Str("endpoint", endpoint).
			Msg("auth failure on non-critical endpoint, returning stale response")
		return staleBody, nil
	}

	log.Warn().Err(cause).Str("endpoint", endpoint).Msg("session expired, clearing credentials")
	if err := c.creds.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear credentials")
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	return nil, ErrSessionExpired
}

func (c *AuthClient) finish(endpoint string, status int, respBody []byte) ([]byte, error) {
	switch {
	case status >= 200 && status < 300:
		return respBody, nil
	case status == http.StatusForbidden && IsSoftFail(endpoint):
		log.Debug().Str("endpoint", endpoint).Msg("endpoint forbidden for this user")
		return nil, ErrForbidden
	default:
		return nil, fmt.Errorf("API returned status code: %d, response: %s", status, string(respBody))
	}
}

// refreshAccessToken exchanges the refresh credential for a new access
// credential. The server accepts the refresh token as multipart form
// data. Concurrent 401s share one refresh via the mutex.
func (c *AuthClient) refreshAccessToken(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	refresh := c.creds.Get().RefreshToken
	if refresh == "" {
		return errors.New("no refresh token held")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("refresh_token", refresh); err != nil {
		return fmt.Errorf("failed to build refresh form: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("failed to finalize refresh form: %w", err)
	}

	respBody, status, err := c.doOnce(ctx, http.MethodPost, refreshEndpoint, form.FormDataContentType(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("refresh rejected with status %d", status)
	}

	token, err := parseRefreshResponse(respBody)
	if err != nil {
		return err
	}

	if err := c.creds.SetAccessToken(token); err != nil {
		return fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	log.Info().Msg("access token refreshed")
	return nil
}

// Get issues an authorized GET.
func (c *AuthClient) Get(ctx context.Context, endpoint string) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodGet, endpoint, "", nil)
}

// Post issues an authorized POST with a JSON body.
func (c *AuthClient) Post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodPost, endpoint, "application/json", body)
}

// Put issues an authorized PUT with a JSON body.
func (c *AuthClient) Put(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodPut, endpoint, "application/json", body)
}

// Patch issues an authorized PATCH with a JSON body.
func (c *AuthClient) Patch(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodPatch, endpoint, "application/json", body)
}

// Delete issues an authorized DELETE.
func (c *AuthClient) Delete(ctx context.Context, endpoint string) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodDelete, endpoint, "", nil)
}

// PostForm issues an authorized POST with url-encoded form values.
func (c *AuthClient) PostForm(ctx context.Context, endpoint string, values map[string]string) ([]byte, error) {
	form := url.Values{}
	for key, value := range values {
		form.Set(key, value)
	}
	return c.MakeRequest(ctx, http.MethodPost, endpoint, "application/x-www-form-urlencoded", []byte(form.Encode()))
}

// parseRefreshResponse extracts the new access token from the refresh
// endpoint's {ok, access_token, token_type} envelope.
func parseRefreshResponse(body []byte) (string, error) {
	var resp struct {
		OK          bool   `json:"ok"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if !resp.OK || resp.AccessToken == "" {
		return "", errors.New("refresh response missing access token")
	}
	return resp.AccessToken, nil
}
