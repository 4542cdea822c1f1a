package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"storefront/internal/model"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// ChannelResult records the outcome of one delivery attempt. A nil Err means
// the channel accepted the message (or skipped it as unconfigured).
type ChannelResult struct {
	Channel   Channel
	Recipient string
	Err       error
}

type OrderGetter interface {
	GetByID(ctx context.Context, id string) (*model.Order, error)
}

type CustomerGetter interface {
	GetByID(ctx context.Context, id string) (*model.Customer, error)
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Dispatcher fans one notification out to every channel the customer can
// receive. Notification delivery is best-effort and off the critical path of
// payment correctness, so Notify never returns an error.
type Dispatcher struct {
	orders    OrderGetter
	customers CustomerGetter
	email     EmailSender
	sms       SMSSender
}

func NewDispatcher(orders OrderGetter, customers CustomerGetter, email EmailSender, sms SMSSender) *Dispatcher {
	return &Dispatcher{orders: orders, customers: customers, email: email, sms: sms}
}

// Notify resolves the order and its customer and attempts delivery on each
// available channel, email before SMS. A resolution miss is a silent no-op.
// Channel attempts are independent: a failure on one never blocks the other,
// and every outcome is reported in the returned slice for the caller to log.
func (d *Dispatcher) Notify(ctx context.Context, orderID string, t model.NotificationType) []ChannelResult {
	order, err := d.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			slog.Debug("notification skipped: order not found", "order_id", orderID)
		} else {
			slog.Error("notification skipped: order lookup failed", "order_id", orderID, "error", err)
		}
		return nil
	}

	customer, err := d.customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			slog.Debug("notification skipped: customer not found", "customer_id", order.CustomerID)
		} else {
			slog.Error("notification skipped: customer lookup failed", "customer_id", order.CustomerID, "error", err)
		}
		return nil
	}

	subject, text, ok := Compose(t, order)
	if !ok {
		slog.Warn("unknown notification type", "type", string(t))
		return nil
	}

	var results []ChannelResult
	if customer.Email != "" && d.email != nil {
		err := d.email.Send(ctx, customer.Email, subject, htmlBody(customer, text))
		results = append(results, ChannelResult{Channel: ChannelEmail, Recipient: customer.Email, Err: err})
	}
	if customer.Phone != "" && d.sms != nil {
		err := d.sms.Send(ctx, customer.Phone, text)
		results = append(results, ChannelResult{Channel: ChannelSMS, Recipient: customer.Phone, Err: err})
	}

	return results
}

func htmlBody(c *model.Customer, text string) string {
	return fmt.Sprintf("<p>Hi %s,</p><p>%s</p>", firstName(c.FullName), text)
}

func firstName(full string) string {
	if fields := strings.Fields(full); len(fields) > 0 {
		return fields[0]
	}
	return "there"
}
