package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Platform is the parent platform's token API.
type Platform interface {
	// Validate checks that token is live and returns its user.
	Validate(ctx context.Context, token string) (User, error)
	// Profile returns the user a token belongs to.
	Profile(ctx context.Context, token string) (User, error)
}

// PlatformClient implements Platform over HTTP with bearer tokens.
type PlatformClient struct {
	validateURL string
	profileURL  string
	client      *http.Client
}

// NewPlatformClient creates a client for the API at apiURL.
func NewPlatformClient(apiURL, validatePath, profilePath string, timeout time.Duration) *PlatformClient {
	base := strings.TrimRight(apiURL, "/")
	return &PlatformClient{
		validateURL: base + validatePath,
		profileURL:  base + profilePath,
		client:      &http.Client{Timeout: timeout},
	}
}

func (p *PlatformClient) Validate(ctx context.Context, token string) (User, error) {
	return p.do(ctx, http.MethodPost, p.validateURL, token)
}

func (p *PlatformClient) Profile(ctx context.Context, token string) (User, error) {
	return p.do(ctx, http.MethodGet, p.profileURL, token)
}

func (p *PlatformClient) do(ctx context.Context, method, url, token string) (User, error) {
	if token == "" {
		return User{}, ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return User{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return User{}, fmt.Errorf("%w: reading response: %v", ErrPlatformUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return User{}, fmt.Errorf("%w: status %d", ErrTokenRejected, resp.StatusCode)
	}

	return decodeUser(body)
}

// decodeUser accepts both a bare user object and one wrapped as {"user": ...}.
func decodeUser(body []byte) (User, error) {
	var wrapped struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.User != nil {
		return *wrapped.User, nil
	}

	var u User
	if len(strings.TrimSpace(string(body))) == 0 {
		return u, nil
	}
	if err := json.Unmarshal(body, &u); err != nil {
		return User{}, fmt.Errorf("%w: decoding user: %v", ErrPlatformUnavailable, err)
	}
	return u, nil
}
