package port

import (
	"context"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

//go:generate mockgen -source=api.go -destination=mock/api.go -package=mock
type OrderAPI interface {
	ListOrders(ctx context.Context, filter domain.OrderFilter) (*domain.Page[domain.OrderSummary], error)
	GetOrder(ctx context.Context, number string) (*domain.OrderSnapshot, error)
	// UpdateOrder sends only the fields present in the patch. Cancellation is
	// the same partial update carrying a cancelled status and a reason.
	UpdateOrder(ctx context.Context, number string, patch domain.OrderPatch) error
}

type NotificationAPI interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
	DeleteAllNotifications(ctx context.Context) error
}
