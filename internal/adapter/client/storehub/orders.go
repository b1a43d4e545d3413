package storehub

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

const dateLayout = "2006-01-02"

type orderRowDTO struct {
	OrderNumber   string      `json:"order_number"`
	Status        string      `json:"order_status"`
	PaymentStatus string      `json:"payment_status"`
	TotalPrice    wireDecimal `json:"total_price"`
	Currency      string      `json:"currency"`
	Customer      string      `json:"customer"`
	CreatedAt     time.Time   `json:"created_at"`
}

func (d orderRowDTO) toDomain() domain.OrderSummary {
	return domain.OrderSummary{
		Number:        d.OrderNumber,
		Status:        domain.OrderStatus(d.Status),
		PaymentStatus: domain.PaymentStatus(d.PaymentStatus),
		TotalPrice:    d.TotalPrice.Decimal,
		Currency:      d.Currency,
		Customer:      d.Customer,
		CreatedAt:     d.CreatedAt,
	}
}

type orderItemDTO struct {
	Name       string      `json:"name"`
	Quantity   int         `json:"quantity"`
	UnitPrice  wireDecimal `json:"unit_price"`
	TotalPrice wireDecimal `json:"total_price"`
	ToBeQuoted bool        `json:"to_be_quoted"`
}

type timelineEntryDTO struct {
	Status    string     `json:"status"`
	Timestamp *time.Time `json:"timestamp"`
	Completed *bool      `json:"completed"`
}

type transactionDTO struct {
	ID          string      `json:"id"`
	Type        string      `json:"transaction_type"`
	Status      string      `json:"status"`
	Amount      wireDecimal `json:"amount"`
	Method      string      `json:"method"`
	CompletedAt *time.Time  `json:"completed_at"`
}

type orderDTO struct {
	orderRowDTO
	Notes               string             `json:"notes"`
	HintNote            string             `json:"hint_note"`
	Vendor              string             `json:"vendor"`
	Items               []orderItemDTO     `json:"items"`
	Timeline            []timelineEntryDTO `json:"timeline"`
	PaymentTransactions []transactionDTO   `json:"payment_transactions"`
	CanBeEdited         bool               `json:"can_be_edited"`
	CanBeCancelled      bool               `json:"can_be_cancelled"`
}

func (d orderDTO) toDomain() *domain.OrderSnapshot {
	snap := &domain.OrderSnapshot{
		Number:         d.OrderNumber,
		Status:         domain.OrderStatus(d.Status),
		PaymentStatus:  domain.PaymentStatus(d.PaymentStatus),
		TotalPrice:     d.TotalPrice.Decimal,
		Currency:       d.Currency,
		Notes:          d.Notes,
		HintNote:       d.HintNote,
		Vendor:         d.Vendor,
		Customer:       d.Customer,
		CanBeEdited:    d.CanBeEdited,
		CanBeCancelled: d.CanBeCancelled,
		CreatedAt:      d.CreatedAt,
	}
	for _, it := range d.Items {
		snap.Items = append(snap.Items, domain.OrderItem{
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.Decimal,
			TotalPrice: it.TotalPrice.Decimal,
			ToBeQuoted: it.ToBeQuoted,
		})
	}
	for _, te := range d.Timeline {
		snap.Timeline = append(snap.Timeline, domain.TimelineEntry{
			Status:    domain.OrderStatus(te.Status),
			Timestamp: te.Timestamp,
			Completed: te.Completed,
		})
	}
	for _, tx := range d.PaymentTransactions {
		snap.Transactions = append(snap.Transactions, domain.PaymentTransaction{
			ID:          tx.ID,
			Type:        domain.TransactionType(tx.Type),
			Status:      domain.TransactionStatus(tx.Status),
			Amount:      tx.Amount.Decimal,
			Method:      tx.Method,
			CompletedAt: tx.CompletedAt,
		})
	}
	return snap
}

type orderPatchDTO struct {
	TotalPrice    *wireDecimal `json:"total_price,omitempty"`
	Status        *string      `json:"order_status,omitempty"`
	PaymentStatus *string      `json:"payment_status,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
	Vendor        *string      `json:"vendor,omitempty"`
	Currency      *string      `json:"currency,omitempty"`
	HintNote      *string      `json:"hint_note,omitempty"`
	Reason        *string      `json:"reason,omitempty"`
}

func patchToDTO(p domain.OrderPatch) orderPatchDTO {
	var dto orderPatchDTO
	if p.TotalPrice != nil {
		dto.TotalPrice = &wireDecimal{*p.TotalPrice}
	}
	if p.Status != nil {
		s := string(*p.Status)
		dto.Status = &s
	}
	if p.PaymentStatus != nil {
		s := string(*p.PaymentStatus)
		dto.PaymentStatus = &s
	}
	dto.Notes = p.Notes
	dto.Vendor = p.Vendor
	dto.Currency = p.Currency
	dto.HintNote = p.HintNote
	dto.Reason = p.CancelReason
	return dto
}

func (c *Client) ListOrders(ctx context.Context, filter domain.OrderFilter) (*domain.Page[domain.OrderSummary], error) {
	var env listEnvelope[orderRowDTO]
	req := c.http.R().SetContext(ctx).SetResult(&env)
	if filter.Search != "" {
		req.SetQueryParam("search", filter.Search)
	}
	if filter.Status != "" {
		req.SetQueryParam("status", string(filter.Status))
	}
	if filter.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(filter.Page))
	}
	if !filter.StartDate.IsZero() {
		req.SetQueryParam("start_date", filter.StartDate.Format(dateLayout))
	}
	if !filter.EndDate.IsZero() {
		req.SetQueryParam("end_date", filter.EndDate.Format(dateLayout))
	}

	resp, err := req.Get("/api/orders/")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, domain.ErrOrderNotFound)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}

	items := make([]domain.OrderSummary, 0, len(env.Results))
	for _, d := range env.Results {
		items = append(items, d.toDomain())
	}
	return &domain.Page[domain.OrderSummary]{Items: items, Total: *env.Count}, nil
}

func (c *Client) GetOrder(ctx context.Context, number string) (*domain.OrderSnapshot, error) {
	var dto orderDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&dto).
		Get(fmt.Sprintf("/api/orders/%s/", number))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, domain.ErrOrderNotFound)
	}
	if dto.OrderNumber == "" {
		return nil, domain.ErrBadEnvelope
	}
	return dto.toDomain(), nil
}

func (c *Client) UpdateOrder(ctx context.Context, number string, patch domain.OrderPatch) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetBody(patchToDTO(patch)).
		Patch(fmt.Sprintf("/api/orders/%s/", number))
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return c.apiError(resp, domain.ErrOrderNotFound)
	}
	return nil
}
