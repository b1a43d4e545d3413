package stubapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

type OrderHandler struct {
	store  *Store
	logger *zap.Logger
}

func NewOrderHandler(store *Store, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{store: store, logger: logger}
}

// Amounts go over the wire as strings; the client accepts both string and
// numeric forms.
type orderRowResp struct {
	OrderNumber   string    `json:"order_number"`
	Status        string    `json:"order_status"`
	PaymentStatus string    `json:"payment_status"`
	TotalPrice    string    `json:"total_price"`
	Currency      string    `json:"currency"`
	Customer      string    `json:"customer"`
	CreatedAt     time.Time `json:"created_at"`
}

type orderItemResp struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	TotalPrice string `json:"total_price"`
	ToBeQuoted bool   `json:"to_be_quoted"`
}

type timelineResp struct {
	Status    string     `json:"status"`
	Timestamp *time.Time `json:"timestamp"`
	Completed *bool      `json:"completed"`
}

type transactionResp struct {
	ID          string     `json:"id"`
	Type        string     `json:"transaction_type"`
	Status      string     `json:"status"`
	Amount      string     `json:"amount"`
	Method      string     `json:"method"`
	CompletedAt *time.Time `json:"completed_at"`
}

type orderResp struct {
	orderRowResp
	Notes               string            `json:"notes"`
	HintNote            string            `json:"hint_note"`
	Vendor              string            `json:"vendor"`
	Items               []orderItemResp   `json:"items"`
	Timeline            []timelineResp    `json:"timeline"`
	PaymentTransactions []transactionResp `json:"payment_transactions"`
	CanBeEdited         bool              `json:"can_be_edited"`
	CanBeCancelled      bool              `json:"can_be_cancelled"`
}

func rowResp(o domain.OrderSummary) orderRowResp {
	return orderRowResp{
		OrderNumber:   o.Number,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		TotalPrice:    o.TotalPrice.String(),
		Currency:      o.Currency,
		Customer:      o.Customer,
		CreatedAt:     o.CreatedAt,
	}
}

func fullResp(o *domain.OrderSnapshot) orderResp {
	resp := orderResp{
		orderRowResp: orderRowResp{
			OrderNumber:   o.Number,
			Status:        string(o.Status),
			PaymentStatus: string(o.PaymentStatus),
			TotalPrice:    o.TotalPrice.String(),
			Currency:      o.Currency,
			Customer:      o.Customer,
			CreatedAt:     o.CreatedAt,
		},
		Notes:          o.Notes,
		HintNote:       o.HintNote,
		Vendor:         o.Vendor,
		CanBeEdited:    o.CanBeEdited,
		CanBeCancelled: o.CanBeCancelled,
		Items:          []orderItemResp{},
		Timeline:       []timelineResp{},
	}
	resp.PaymentTransactions = []transactionResp{}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderItemResp{
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.String(),
			TotalPrice: it.TotalPrice.String(),
			ToBeQuoted: it.ToBeQuoted,
		})
	}
	for _, te := range o.Timeline {
		resp.Timeline = append(resp.Timeline, timelineResp{
			Status:    string(te.Status),
			Timestamp: te.Timestamp,
			Completed: te.Completed,
		})
	}
	for _, tx := range o.Transactions {
		resp.PaymentTransactions = append(resp.PaymentTransactions, transactionResp{
			ID:          tx.ID,
			Type:        string(tx.Type),
			Status:      string(tx.Status),
			Amount:      tx.Amount.String(),
			Method:      tx.Method,
			CompletedAt: tx.CompletedAt,
		})
	}
	return resp
}

func (h *OrderHandler) List(ctx *gin.Context) {
	filter := domain.OrderFilter{
		Search: ctx.Query("search"),
		Status: domain.OrderStatus(ctx.Query("status")),
	}
	if p := ctx.Query("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			handleError(ctx, domain.ErrBadRequest)
			return
		}
		filter.Page = page
	}
	if d := ctx.Query("start_date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			handleError(ctx, domain.ErrBadRequest)
			return
		}
		filter.StartDate = t
	}
	if d := ctx.Query("end_date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			handleError(ctx, domain.ErrBadRequest)
			return
		}
		filter.EndDate = t
	}

	rows, total := h.store.ListOrders(filter)
	results := make([]orderRowResp, 0, len(rows))
	for _, r := range rows {
		results = append(results, rowResp(r))
	}
	handleSuccess(ctx, gin.H{"results": results, "count": total})
}

func (h *OrderHandler) Get(ctx *gin.Context) {
	o, ok := h.store.GetOrder(ctx.Param("number"))
	if !ok {
		handleError(ctx, domain.ErrOrderNotFound)
		return
	}
	handleSuccess(ctx, fullResp(o))
}

type orderPatchReq struct {
	TotalPrice    *string `json:"total_price"`
	Status        *string `json:"order_status"`
	PaymentStatus *string `json:"payment_status"`
	Notes         *string `json:"notes"`
	Vendor        *string `json:"vendor"`
	Currency      *string `json:"currency"`
	HintNote      *string `json:"hint_note"`
	Reason        *string `json:"reason"`
}

func (h *OrderHandler) Update(ctx *gin.Context) {
	var req orderPatchReq
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleError(ctx, domain.ErrBadRequest)
		return
	}

	var patch domain.OrderPatch
	if req.TotalPrice != nil {
		d, err := decimal.Parse(*req.TotalPrice)
		if err != nil {
			handleError(ctx, domain.ErrBadRequest)
			return
		}
		patch.TotalPrice = &d
	}
	if req.Status != nil {
		s := domain.OrderStatus(*req.Status)
		patch.Status = &s
	}
	if req.PaymentStatus != nil {
		s := domain.PaymentStatus(*req.PaymentStatus)
		patch.PaymentStatus = &s
	}
	patch.Notes = req.Notes
	patch.Vendor = req.Vendor
	patch.Currency = req.Currency
	patch.HintNote = req.HintNote

	reason := ""
	if req.Reason != nil {
		reason = *req.Reason
	}

	updated, err := h.store.UpdateOrder(ctx.Param("number"), patch, reason)
	if err != nil {
		handleError(ctx, err)
		return
	}

	h.logger.Debug("order updated",
		zap.String("order", updated.Number),
		zap.String("request_id", ctx.GetHeader("X-Request-ID")))
	handleSuccess(ctx, fullResp(updated))
}
