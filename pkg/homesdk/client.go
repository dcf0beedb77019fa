package homesdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client performs unauthenticated calls against a hearth server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// RetryDelay is the pause between relay reconnects in ConsumeWithRetry.
	RetryDelay time.Duration
}

const DefaultRetryDelay = 2 * time.Second

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		RetryDelay: DefaultRetryDelay,
	}
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/register", "", req)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for an authenticated Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/login", "", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, &tok), nil
}

// AcceptInvitation joins the account registered under the invited email to
// the building. A 404 APIError means that account does not exist yet; use
// RegisterRequest.InvitationToken instead.
func (c *Client) AcceptInvitation(ctx context.Context, invitationToken string) (*AcceptInvitationResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/invitations/accept", "", AcceptInvitationRequest{
		InvitationToken: invitationToken,
	})
	if err != nil {
		return nil, err
	}

	var out AcceptInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
