package storehub

import (
	"context"
	"fmt"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

type loginResponse struct {
	Access  string       `json:"access_token"`
	Refresh string       `json:"refresh_token"`
	User    *domain.User `json:"user"`
}

// Login exchanges credentials for a token pair and stores the pair plus the
// user blob in the injected session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var out loginResponse
	resp, err := c.auth.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/api/auth/login/")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		if resp.StatusCode() == 401 {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, c.apiError(resp, domain.ErrNotFound)
	}
	if out.Access == "" || out.Refresh == "" {
		return nil, domain.ErrBadEnvelope
	}
	if err := c.session.SetSession(out.Access, out.Refresh, out.User); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout drops the local session. Token revocation is the backend's concern.
func (c *Client) Logout(_ context.Context) error {
	return c.session.ClearSession()
}
