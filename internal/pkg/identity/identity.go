package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/minsu/dormisphere/internal/app/models"
)

// Provider errors
var (
	ErrInvalidProviderToken = errors.New("identity provider rejected the token")
	ErrDomainNotAllowed     = errors.New("email domain not allowed")
)

// Profile is the subset of provider userinfo the server cares about
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Client fetches profile information from the external identity provider
type Client struct {
	httpClient    *http.Client
	userinfoURL   string
	allowedDomain string
}

// NewClient creates a provider client for the configured userinfo endpoint
func NewClient(userinfoURL, allowedDomain string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		userinfoURL:   userinfoURL,
		allowedDomain: allowedDomain,
	}
}

// FetchProfile performs the single outbound userinfo call with the bearer
// token supplied by the client at login/join.
func (c *Client) FetchProfile(ctx context.Context, token string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidProviderToken
	}

	profile := &Profile{}
	if err := json.NewDecoder(resp.Body).Decode(profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	if profile.Email == "" {
		return nil, ErrInvalidProviderToken
	}

	return profile, nil
}

// CheckDomain gates access on the school email domain
func (c *Client) CheckDomain(email string) error {
	if !strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(c.allowedDomain)) {
		return ErrDomainNotAllowed
	}
	return nil
}

// InferRole derives the role from the email local part: school-issued
// student addresses start with the student number digits, staff addresses
// do not.
func InferRole(email string) models.RoleType {
	if StudentNumber(email) == "" {
		return models.RoleTeacher
	}
	return models.RoleStudent
}

// StudentNumber extracts the leading digit run of the email local part,
// the student-number fragment carried in session claims.
func StudentNumber(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}

	end := 0
	for end < len(local) && local[end] >= '0' && local[end] <= '9' {
		end++
	}
	return local[:end]
}
