package storehub

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

type notificationDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var env listEnvelope[notificationDTO]
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&env).
		Get("/api/notifications/")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, domain.ErrNotificationNotFound)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}

	items := make([]domain.Notification, 0, len(env.Results))
	for _, d := range env.Results {
		items = append(items, domain.Notification{
			ID:        d.ID,
			Title:     d.Title,
			Message:   d.Message,
			Read:      d.Read,
			CreatedAt: d.CreatedAt,
		})
	}
	return items, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count *int `json:"count"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/notifications/unread-count/")
	if err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return 0, c.apiError(resp, domain.ErrNotificationNotFound)
	}
	if out.Count == nil {
		return 0, domain.ErrBadEnvelope
	}
	return *out.Count, nil
}

func (c *Client) MarkRead(ctx context.Context, id string) error {
	return c.mutateNotification(ctx, "POST", fmt.Sprintf("/api/notifications/%s/read/", id))
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.mutateNotification(ctx, "POST", "/api/notifications/read-all/")
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.mutateNotification(ctx, "DELETE", fmt.Sprintf("/api/notifications/%s/", id))
}

func (c *Client) DeleteAllNotifications(ctx context.Context) error {
	return c.mutateNotification(ctx, "DELETE", "/api/notifications/all/")
}

func (c *Client) mutateNotification(ctx context.Context, method, path string) error {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return c.apiError(resp, domain.ErrNotificationNotFound)
	}
	return nil
}
