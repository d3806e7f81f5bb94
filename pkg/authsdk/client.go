package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client is a cookie-aware client for the Relic authentication service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with an in-memory cookie jar, so the
// access and refresh cookies set by verify and refresh are carried on
// subsequent calls automatically.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// CheckAvailability reports whether an email and username are free.
func (c *Client) CheckAvailability(ctx context.Context, email, username string) (*AvailabilityResponse, error) {
	var out AvailabilityResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/attempt", nil,
		AvailabilityRequest{Email: email, Username: username}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp creates an account and starts a verification attempt. The
// 6-digit code is mailed; the returned token must be relayed to Verify.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*AttemptResponse, error) {
	var out AttemptResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn starts a verification attempt for an existing account.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AttemptResponse, error) {
	var out AttemptResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/signin", nil,
		SignInRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify exchanges a verification token and mailed code for a session.
// On success the server sets the accessToken and refreshToken cookies
// on this client's jar.
func (c *Client) Verify(ctx context.Context, verificationToken, code string) error {
	query := url.Values{"token": {verificationToken}}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/verify", query, VerifyRequest{OTP: code}, nil)
}

// Refresh rotates the session using the refreshToken cookie. The old
// refresh token is dead afterwards whether or not the call succeeded.
func (c *Client) Refresh(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/refresh", nil, nil, nil)
}

// SignOut revokes the session and clears both credential cookies.
func (c *Client) SignOut(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/signout", nil, nil, nil)
}

// Me fetches the signed-in user's profile using the accessToken cookie.
func (c *Client) Me(ctx context.Context) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez hits the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz hits the readiness probe. A degraded service comes back as a
// typed *APIError wrapping the 503.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("authsdk: encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("authsdk: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("authsdk: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("authsdk: read response: %w", err)
	}

	if err := parseErrorResponse(resp, respBody); err != nil {
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("authsdk: decode response: %w", err)
		}
	}
	return nil
}
