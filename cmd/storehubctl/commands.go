package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/adapter/client/storehub"
	"github.com/mokhtarjo21/storehub-client/internal/adapter/session"
	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
	"github.com/mokhtarjo21/storehub-client/internal/core/service"
)

const usage = `usage: storehubctl [flags] <command>

commands:
  login <email> <password>        authenticate and store the session
  logout                          drop the stored session
  orders [search]                 list orders, optionally filtered
  order <number>                  show one order with timeline and payments
  update <number> field=value...  edit and save order fields
  cancel <number> <reason>        cancel an order
  notifications                   list notifications
  unread                          show the unread notification count
  watch                           poll the unread count until interrupted
  products [search]               browse the product catalog
`

type app struct {
	client     *storehub.Client
	session    *session.FileSession
	reconciler *service.Reconciler
	notifier   *service.Notifier
	logger     *zap.Logger
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("login needs an email and a password")
		}
		return a.login(ctx, args[1], args[2])
	case "logout":
		return a.client.Logout(ctx)
	case "orders":
		search := ""
		if len(args) > 1 {
			search = args[1]
		}
		return a.listOrders(ctx, search)
	case "order":
		if len(args) != 2 {
			return fmt.Errorf("order needs an order number")
		}
		return a.showOrder(ctx, args[1])
	case "update":
		if len(args) < 3 {
			return fmt.Errorf("update needs an order number and at least one field=value")
		}
		return a.updateOrder(ctx, args[1], args[2:])
	case "cancel":
		if len(args) < 3 {
			return fmt.Errorf("cancel needs an order number and a reason")
		}
		return a.cancelOrder(ctx, args[1], strings.Join(args[2:], " "))
	case "notifications":
		return a.listNotifications(ctx)
	case "unread":
		count, err := a.client.UnreadCount(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d unread\n", count)
		return nil
	case "watch":
		return a.watch(ctx)
	case "products":
		search := ""
		if len(args) > 1 {
			search = args[1]
		}
		return a.listProducts(ctx, search)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) login(ctx context.Context, email, password string) error {
	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	name := email
	if user != nil && user.Name != "" {
		name = user.Name
	}
	fmt.Printf("logged in as %s\n", name)
	return nil
}

func (a *app) listOrders(ctx context.Context, search string) error {
	page, err := a.reconciler.List(ctx, domain.OrderFilter{Search: search, Page: 1})
	if err != nil {
		return err
	}
	for _, row := range page.Items {
		fmt.Printf("%-12s %-10s %-9s %10s %s  %s\n",
			row.Number, row.Status, row.PaymentStatus,
			row.TotalPrice, row.Currency, row.Customer)
	}
	fmt.Printf("%d of %d orders\n", len(page.Items), page.Total)
	return nil
}

func (a *app) showOrder(ctx context.Context, number string) error {
	snap, err := a.reconciler.Open(ctx, number)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s / %s  %s %s\n",
		snap.Number, snap.Status, snap.PaymentStatus, snap.TotalPrice, snap.Currency)
	if snap.Vendor != "" {
		fmt.Printf("vendor: %s\n", snap.Vendor)
	}
	if snap.Notes != "" {
		fmt.Printf("notes: %s\n", snap.Notes)
	}

	view := domain.ProjectTimeline(snap.Timeline, snap.Status)
	if view.Cancelled {
		fmt.Println("timeline: CANCELLED")
	} else {
		for _, step := range view.Steps {
			mark := " "
			if step.Completed {
				mark = "x"
			}
			if step.Active {
				mark = ">"
			}
			fmt.Printf("  [%s] %s\n", mark, step.Label)
		}
	}

	summary := domain.ClassifyPayments(snap.Transactions, snap.TotalPrice)
	switch summary.Shape {
	case domain.PaymentShapeRefunded:
		fmt.Printf("payment: refunded %s\n", summary.Refund.Amount)
	case domain.PaymentShapeFull:
		fmt.Printf("payment: full %s (%s)\n", summary.Full.Amount, summary.Full.Status)
	default:
		fmt.Printf("payment: split %s / %s (%s%%)\n",
			summary.Paid, summary.Total, summary.ProgressPercent())
	}
	return nil
}

func (a *app) updateOrder(ctx context.Context, number string, fields []string) error {
	if _, err := a.reconciler.Open(ctx, number); err != nil {
		return err
	}

	for _, f := range fields {
		key, value, found := strings.Cut(f, "=")
		if !found {
			return fmt.Errorf("expected field=value, got %q", f)
		}
		if err := a.setField(key, value); err != nil {
			return err
		}
	}

	result, err := a.reconciler.Save(ctx)
	if err != nil {
		return err
	}
	switch result.Outcome {
	case service.OutcomeNoChange:
		fmt.Println("nothing to save")
	case service.OutcomeConfirmed:
		fmt.Printf("saved, order is now %s\n", result.Snapshot.Status)
	case service.OutcomePartialFailure:
		fmt.Printf("save failed, server state reloaded: %s\n", result.PatchErr)
	case service.OutcomeUnconfirmed:
		fmt.Println("updated locally, server could not confirm")
	}
	return nil
}

func (a *app) setField(key, value string) error {
	switch key {
	case "status":
		return a.reconciler.SetStatus(domain.OrderStatus(value))
	case "payment_status":
		return a.reconciler.SetPaymentStatus(domain.PaymentStatus(value))
	case "total_price":
		d, err := decimal.Parse(value)
		if err != nil {
			return fmt.Errorf("bad price %q: %w", value, err)
		}
		return a.reconciler.SetTotalPrice(d)
	case "notes":
		return a.reconciler.SetNotes(value)
	case "vendor":
		return a.reconciler.SetVendor(value)
	case "currency":
		return a.reconciler.SetCurrency(value)
	case "hint_note":
		return a.reconciler.SetHintNote(value)
	default:
		return fmt.Errorf("unknown field %q", key)
	}
}

func (a *app) cancelOrder(ctx context.Context, number, reason string) error {
	if _, err := a.reconciler.Open(ctx, number); err != nil {
		return err
	}
	result, err := a.reconciler.Cancel(ctx, reason)
	if err != nil {
		return err
	}
	if result.Outcome == service.OutcomeConfirmed {
		fmt.Println("order cancelled")
	} else {
		fmt.Println("cancellation not confirmed by server")
	}
	return nil
}

func (a *app) listNotifications(ctx context.Context) error {
	items, err := a.notifier.Refresh(ctx)
	if err != nil {
		return err
	}
	for _, n := range items {
		mark := "*"
		if n.Read {
			mark = " "
		}
		fmt.Printf("[%s] %s: %s\n", mark, n.Title, n.Message)
	}
	return nil
}

// watch runs the notification poller in the foreground and reports unread
// count changes until the process is interrupted.
func (a *app) watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	go a.notifier.Run(ctx)

	last := -1
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if count := a.notifier.Unread(); count != last {
				fmt.Printf("%d unread\n", count)
				last = count
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *app) listProducts(ctx context.Context, search string) error {
	page, err := a.client.ListProducts(ctx, domain.CatalogFilter{Search: search, Page: 1})
	if err != nil {
		return err
	}
	for _, p := range page.Items {
		fmt.Printf("%-10s %-24s %8s %s\n", p.ID, p.Name, p.Price, p.Currency)
	}
	return nil
}
