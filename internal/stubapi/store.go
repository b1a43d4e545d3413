package stubapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

const pageSize = 10

var statusOrder = []domain.OrderStatus{
	domain.OrderStatusPending,
	domain.OrderStatusConfirmed,
	domain.OrderStatusPreparing,
	domain.OrderStatusShipped,
	domain.OrderStatusDelivered,
}

func statusRank(s domain.OrderStatus) int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Store is the in-memory state behind the stub backend. It emulates just
// enough server behavior to exercise the client: filtering, pagination,
// partial updates, timeline progression and cancellation rules.
type Store struct {
	mu            sync.RWMutex
	orders        map[string]*domain.OrderSnapshot
	reasons       map[string]string
	notifications []domain.Notification
	users         map[string]stubUser
}

type stubUser struct {
	password string
	user     domain.User
}

func NewStore() *Store {
	return &Store{
		orders:  make(map[string]*domain.OrderSnapshot),
		reasons: make(map[string]string),
		users:   make(map[string]stubUser),
	}
}

func (s *Store) AddUser(email, password string, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = stubUser{password: password, user: user}
}

func (s *Store) Authenticate(email, password string) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok || u.password != password {
		return nil, false
	}
	user := u.user
	return &user, true
}

func (s *Store) PutOrder(o *domain.OrderSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.Number] = o
}

func (s *Store) GetOrder(number string) (*domain.OrderSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[number]
	if !ok {
		return nil, false
	}
	cp := *o
	return &cp, true
}

func (s *Store) ListOrders(filter domain.OrderFilter) ([]domain.OrderSummary, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.OrderSnapshot, 0, len(s.orders))
	for _, o := range s.orders {
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(o.Number), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(o.Customer), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if !filter.StartDate.IsZero() && o.CreatedAt.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && o.CreatedAt.After(filter.EndDate.Add(24*time.Hour)) {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	rows := make([]domain.OrderSummary, 0, end-start)
	for _, o := range matched[start:end] {
		rows = append(rows, domain.OrderSummary{
			Number:        o.Number,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			TotalPrice:    o.TotalPrice,
			Currency:      o.Currency,
			Customer:      o.Customer,
			CreatedAt:     o.CreatedAt,
		})
	}
	return rows, total
}

// UpdateOrder applies a partial update the way the real backend does: only
// fields present in the patch change, a status change advances the timeline,
// and cancellation needs a reason and closes the order for further edits.
func (s *Store) UpdateOrder(number string, patch domain.OrderPatch, reason string) (*domain.OrderSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[number]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}

	// Cancellation is gated on CanBeCancelled alone; an order closed for
	// edits can still be cancelled.
	if patch.Status != nil && *patch.Status == domain.OrderStatusCancelled {
		if !o.CanBeCancelled {
			return nil, domain.ErrOrderNotCancellable
		}
		if strings.TrimSpace(reason) == "" {
			return nil, domain.ErrEmptyCancelReason
		}
		next := *o
		next.Status = domain.OrderStatusCancelled
		next.CanBeEdited = false
		next.CanBeCancelled = false
		s.orders[number] = &next
		s.reasons[number] = reason
		cp := next
		return &cp, nil
	}

	if !o.CanBeEdited {
		return nil, domain.ErrOrderNotEditable
	}

	next := patch.Apply(*o)
	if patch.Status != nil {
		advanceTimeline(&next, *patch.Status)
		if next.Status == domain.OrderStatusDelivered {
			next.CanBeCancelled = false
		}
	}
	s.orders[number] = &next
	cp := next
	return &cp, nil
}

func advanceTimeline(o *domain.OrderSnapshot, to domain.OrderStatus) {
	rank := statusRank(to)
	if rank < 0 {
		return
	}
	now := time.Now().UTC()
	timeline := make([]domain.TimelineEntry, len(o.Timeline))
	copy(timeline, o.Timeline)
	for i := range timeline {
		r := statusRank(timeline[i].Status)
		if r < 0 {
			continue
		}
		if r < rank {
			done := true
			timeline[i].Completed = &done
			if timeline[i].Timestamp == nil {
				ts := now
				timeline[i].Timestamp = &ts
			}
		}
		if r == rank {
			notDone := false
			timeline[i].Completed = &notDone
			ts := now
			timeline[i].Timestamp = &ts
		}
	}
	o.Timeline = timeline
}

func (s *Store) CancelReason(number string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reasons[number]
}

func (s *Store) AddNotification(title, message string) domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := domain.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	s.notifications = append([]domain.Notification{n}, s.notifications...)
	return n
}

func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true
		}
	}
	return false
}

func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
}

func (s *Store) DeleteNotification(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) DeleteAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
}

// Seed loads a demo dataset covering the three payment shapes.
func (s *Store) Seed() {
	now := time.Now().UTC()
	hour := time.Hour

	s.AddUser("admin@storehub.dev", "admin", domain.User{
		ID: "u-1", Email: "admin@storehub.dev", Name: "Store Admin", Role: "admin",
	})

	placed := now.Add(-48 * hour)
	confirmed := now.Add(-40 * hour)
	done := true

	s.PutOrder(&domain.OrderSnapshot{
		Number:        "ORD-1001",
		Status:        domain.OrderStatusConfirmed,
		PaymentStatus: domain.PaymentStatusPartial,
		TotalPrice:    decimal.MustParse("250.00"),
		Currency:      "USD",
		Customer:      "Lina Haddad",
		Vendor:        "Vendor A",
		Items: []domain.OrderItem{
			{Name: "Custom cabinet", Quantity: 1, UnitPrice: decimal.MustParse("250.00"), TotalPrice: decimal.MustParse("250.00")},
		},
		Timeline: []domain.TimelineEntry{
			{Status: domain.OrderStatusPending, Timestamp: &placed, Completed: &done},
			{Status: domain.OrderStatusConfirmed, Timestamp: &confirmed},
			{Status: domain.OrderStatusPreparing},
			{Status: domain.OrderStatusShipped},
			{Status: domain.OrderStatusDelivered},
		},
		Transactions: []domain.PaymentTransaction{
			{ID: "tx-1", Type: domain.TransactionTypeDeposit, Status: domain.TransactionCompleted, Amount: decimal.MustParse("100.00"), Method: "card", CompletedAt: &confirmed},
			{ID: "tx-2", Type: domain.TransactionTypeFinal, Status: domain.TransactionPending, Amount: decimal.MustParse("150.00"), Method: "card"},
		},
		CanBeEdited:    true,
		CanBeCancelled: true,
		CreatedAt:      placed,
	})

	s.PutOrder(&domain.OrderSnapshot{
		Number:        "ORD-1002",
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPaid,
		TotalPrice:    decimal.MustParse("80.50"),
		Currency:      "USD",
		Customer:      "Omar Said",
		Vendor:        "Vendor B",
		Items: []domain.OrderItem{
			{Name: "Desk lamp", Quantity: 2, UnitPrice: decimal.MustParse("40.25"), TotalPrice: decimal.MustParse("80.50")},
		},
		Timeline: []domain.TimelineEntry{
			{Status: domain.OrderStatusPending},
			{Status: domain.OrderStatusConfirmed},
			{Status: domain.OrderStatusPreparing},
			{Status: domain.OrderStatusShipped},
			{Status: domain.OrderStatusDelivered},
		},
		Transactions: []domain.PaymentTransaction{
			{ID: "tx-3", Type: domain.TransactionTypeFull, Status: domain.TransactionCompleted, Amount: decimal.MustParse("80.50"), Method: "card", CompletedAt: &placed},
		},
		CanBeEdited:    true,
		CanBeCancelled: true,
		CreatedAt:      now.Add(-20 * hour),
	})

	s.PutOrder(&domain.OrderSnapshot{
		Number:        "ORD-1003",
		Status:        domain.OrderStatusCancelled,
		PaymentStatus: domain.PaymentStatusRefunded,
		TotalPrice:    decimal.MustParse("120.00"),
		Currency:      "EUR",
		Customer:      "Sara Odeh",
		Vendor:        "Vendor A",
		Timeline: []domain.TimelineEntry{
			{Status: domain.OrderStatusPending, Timestamp: &placed, Completed: &done},
		},
		Transactions: []domain.PaymentTransaction{
			{ID: "tx-4", Type: domain.TransactionTypeRefund, Status: domain.TransactionRefunded, Amount: decimal.MustParse("120.00"), Method: "card", CompletedAt: &confirmed},
		},
		CreatedAt: now.Add(-72 * hour),
	})

	// COD order: no transactions yet, still a displayable split shape.
	s.PutOrder(&domain.OrderSnapshot{
		Number:        "ORD-1004",
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		TotalPrice:    decimal.MustParse("45.00"),
		Currency:      "USD",
		Customer:      "Nadia Khoury",
		Vendor:        "Vendor C",
		Timeline: []domain.TimelineEntry{
			{Status: domain.OrderStatusPending},
			{Status: domain.OrderStatusConfirmed},
			{Status: domain.OrderStatusPreparing},
			{Status: domain.OrderStatusShipped},
			{Status: domain.OrderStatusDelivered},
		},
		CanBeEdited:    true,
		CanBeCancelled: true,
		CreatedAt:      now.Add(-2 * hour),
	})

	s.AddNotification("New order", "Order ORD-1004 was placed")
	s.AddNotification("Payment received", "Deposit for ORD-1001 completed")
}
