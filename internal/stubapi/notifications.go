package stubapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

type NotificationHandler struct {
	store  *Store
	logger *zap.Logger
}

func NewNotificationHandler(store *Store, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{store: store, logger: logger}
}

type notificationResp struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *NotificationHandler) List(ctx *gin.Context) {
	items := h.store.Notifications()
	results := make([]notificationResp, 0, len(items))
	for _, n := range items {
		results = append(results, notificationResp{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	handleSuccess(ctx, gin.H{"results": results, "count": len(results)})
}

func (h *NotificationHandler) UnreadCount(ctx *gin.Context) {
	handleSuccess(ctx, gin.H{"count": h.store.UnreadCount()})
}

func (h *NotificationHandler) MarkRead(ctx *gin.Context) {
	if !h.store.MarkRead(ctx.Param("id")) {
		handleError(ctx, domain.ErrNotificationNotFound)
		return
	}
	handleSuccess(ctx, nil)
}

func (h *NotificationHandler) MarkAllRead(ctx *gin.Context) {
	h.store.MarkAllRead()
	handleSuccess(ctx, nil)
}

func (h *NotificationHandler) Delete(ctx *gin.Context) {
	if !h.store.DeleteNotification(ctx.Param("id")) {
		handleError(ctx, domain.ErrNotificationNotFound)
		return
	}
	handleSuccess(ctx, nil)
}

func (h *NotificationHandler) DeleteAll(ctx *gin.Context) {
	h.store.DeleteAllNotifications()
	handleSuccess(ctx, nil)
}
