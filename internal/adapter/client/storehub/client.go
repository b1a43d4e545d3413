package storehub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/adapter/config"
	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
	"github.com/mokhtarjo21/storehub-client/internal/core/port"
)

const refreshLeeway = 30 * time.Second

// Client talks to the StoreHub REST backend. The injected session provides
// the token pair; an expiring access token is refreshed ahead of the request.
type Client struct {
	http    *resty.Client
	auth    *resty.Client
	session port.Session
	logger  *zap.Logger
}

func NewClient(cfg *config.API, session port.Session, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("storehub client: empty base URL")
	}

	c := &Client{
		session: session,
		logger:  logger,
	}

	c.http = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	c.http.OnBeforeRequest(c.injectAuth)

	// Bare client for login/refresh so the auth middleware never recurses.
	c.auth = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return c, nil
}

func (c *Client) injectAuth(_ *resty.Client, req *resty.Request) error {
	token := c.session.AccessToken()
	if token == "" {
		return nil
	}
	if c.session.AccessExpired(refreshLeeway) && c.session.RefreshToken() != "" {
		if err := c.refreshSession(req); err != nil {
			c.logger.Warn("token refresh failed", zap.Error(err))
		} else {
			token = c.session.AccessToken()
		}
	}
	req.SetAuthToken(token)
	return nil
}

func (c *Client) refreshSession(req *resty.Request) error {
	var out struct {
		Access string `json:"access"`
	}
	resp, err := c.auth.R().
		SetContext(req.Context()).
		SetBody(map[string]string{"refresh": c.session.RefreshToken()}).
		SetResult(&out).
		Post("/api/auth/refresh/")
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return c.apiError(resp, domain.ErrNotFound)
	}
	if out.Access == "" {
		return domain.ErrBadEnvelope
	}
	return c.session.SetAccessToken(out.Access)
}

// apiError maps a non-2xx response onto a domain sentinel, pulling the
// detail message out of the body when it has one. 404 means different
// things per endpoint, so the caller names the missing resource.
func (c *Client) apiError(resp *resty.Response, notFound error) error {
	var base error
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		base = domain.ErrUnauthorized
	case http.StatusForbidden:
		base = domain.ErrForbidden
	case http.StatusNotFound:
		base = notFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		base = domain.ErrBadRequest
	default:
		base = domain.ErrServerReject
	}

	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if msg := firstNonEmpty(body.Detail, body.Error); msg != "" {
			return fmt.Errorf("%w: %s", base, msg)
		}
	}
	return fmt.Errorf("%w: status %d", base, resp.StatusCode())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// listEnvelope is the backend's one and only paginated layout. Missing keys
// are a shape mismatch, not a fallback case.
type listEnvelope[T any] struct {
	Results []T  `json:"results"`
	Count   *int `json:"count"`
}

func (e *listEnvelope[T]) validate() error {
	if e.Results == nil || e.Count == nil {
		return domain.ErrBadEnvelope
	}
	return nil
}

// wireDecimal decodes an amount the backend serializes either as a JSON
// number or as a quoted string.
type wireDecimal struct{ decimal.Decimal }

func (w *wireDecimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		w.Decimal = decimal.Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	d, err := decimal.Parse(s)
	if err != nil {
		return fmt.Errorf("parsing %q as decimal: %w", s, err)
	}
	w.Decimal = d
	return nil
}

func (w wireDecimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(w.Decimal.String())), nil
}
