package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
	"github.com/mokhtarjo21/storehub-client/internal/core/port"
)

// Notifier keeps the unread counter and notification list fresh by polling
// on a fixed interval, independent of the order reconciliation flow.
type Notifier struct {
	api      port.NotificationAPI
	logger   *zap.Logger
	interval time.Duration

	mu     sync.RWMutex
	unread int
	items  []domain.Notification
}

func NewNotifier(api port.NotificationAPI, interval time.Duration, logger *zap.Logger) (*Notifier, error) {
	return &Notifier{
		api:      api,
		logger:   logger,
		interval: interval,
	}, nil
}

// Run polls until the context is cancelled. Call in its own goroutine.
func (n *Notifier) Run(ctx context.Context) {
	t := time.NewTicker(n.interval)
	defer t.Stop()

	n.poll(ctx)
	for {
		select {
		case <-t.C:
			n.poll(ctx)
		case <-ctx.Done():
			n.logger.Debug("notification poller stopped")
			return
		}
	}
}

func (n *Notifier) poll(ctx context.Context) {
	count, err := n.api.UnreadCount(ctx)
	if err != nil {
		n.logger.Debug("unread count poll failed", zap.Error(err))
		return
	}
	n.mu.Lock()
	n.unread = count
	n.mu.Unlock()
}

func (n *Notifier) Unread() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.unread
}

func (n *Notifier) Items() []domain.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.items
}

func (n *Notifier) Refresh(ctx context.Context) ([]domain.Notification, error) {
	items, err := n.api.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}
	n.mu.Lock()
	n.items = items
	n.mu.Unlock()
	return items, nil
}

func (n *Notifier) MarkRead(ctx context.Context, id string) error {
	if err := n.api.MarkRead(ctx, id); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	next := make([]domain.Notification, len(n.items))
	copy(next, n.items)
	for i := range next {
		if next[i].ID == id && !next[i].Read {
			next[i].Read = true
			if n.unread > 0 {
				n.unread--
			}
		}
	}
	n.items = next
	return nil
}

func (n *Notifier) MarkAllRead(ctx context.Context) error {
	if err := n.api.MarkAllRead(ctx); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	next := make([]domain.Notification, len(n.items))
	copy(next, n.items)
	for i := range next {
		next[i].Read = true
	}
	n.items = next
	n.unread = 0
	return nil
}

func (n *Notifier) Delete(ctx context.Context, id string) error {
	if err := n.api.DeleteNotification(ctx, id); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	next := make([]domain.Notification, 0, len(n.items))
	for _, item := range n.items {
		if item.ID == id {
			if !item.Read && n.unread > 0 {
				n.unread--
			}
			continue
		}
		next = append(next, item)
	}
	n.items = next
	return nil
}

func (n *Notifier) DeleteAll(ctx context.Context) error {
	if err := n.api.DeleteAllNotifications(ctx); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = nil
	n.unread = 0
	return nil
}
