package service

import (
	"sync"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

// SnapshotCache holds the single focused order snapshot plus the order list
// page currently on screen. There is no TTL; staleness is resolved only by
// an explicit re-fetch after a mutating action. All updates replace whole
// values, never individual fields in place.
type SnapshotCache struct {
	mu      sync.RWMutex
	focused *domain.OrderSnapshot
	list    []domain.OrderSummary
	total   int
}

func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{}
}

// Get returns the focused snapshot when it matches the requested number.
func (c *SnapshotCache) Get(number string) (*domain.OrderSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.focused == nil || c.focused.Number != number {
		return nil, false
	}
	return c.focused, true
}

func (c *SnapshotCache) Focused() *domain.OrderSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.focused
}

// SetFocused replaces the focused snapshot and patches the matching list row
// so the list and detail views never visibly disagree after a save.
func (c *SnapshotCache) SetFocused(s *domain.OrderSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focused = s
	if s == nil {
		return
	}
	c.patchRow(s)
}

func (c *SnapshotCache) Invalidate(number string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.focused != nil && c.focused.Number == number {
		c.focused = nil
	}
}

func (c *SnapshotCache) SetList(page *domain.Page[domain.OrderSummary]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = page.Items
	c.total = page.Total
}

func (c *SnapshotCache) List() ([]domain.OrderSummary, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.list, c.total
}

func (c *SnapshotCache) patchRow(s *domain.OrderSnapshot) {
	for i, row := range c.list {
		if row.Number != s.Number {
			continue
		}
		next := make([]domain.OrderSummary, len(c.list))
		copy(next, c.list)
		row.Status = s.Status
		row.PaymentStatus = s.PaymentStatus
		row.TotalPrice = s.TotalPrice
		row.Currency = s.Currency
		next[i] = row
		c.list = next
		return
	}
}
