package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"storefront/internal/model"
	"storefront/internal/service"
)

const listenChannel = "order_events"

type Notifier interface {
	Notify(ctx context.Context, orderID string, t model.NotificationType) []service.ChannelResult
}

// OrderListener consumes the change feed the database publishes via pg_notify
// and turns each order change into a notification dispatch. The feed is
// at-least-once around reconnects; duplicate dispatches are tolerated
// downstream, so no deduplication happens here.
type OrderListener struct {
	dsn          string
	notifier     Notifier
	reconnectGap time.Duration
}

func NewOrderListener(dsn string, notifier Notifier) *OrderListener {
	return &OrderListener{
		dsn:          dsn,
		notifier:     notifier,
		reconnectGap: 5 * time.Second,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	slog.Info("starting order change listener", "channel", listenChannel)
	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			slog.Error("order change listener disconnected", "error", err)
		}
		select {
		case <-ctx.Done():
			slog.Info("order change listener stopped")
			return
		case <-time.After(l.reconnectGap):
		}
	}
}

func (l *OrderListener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+listenChannel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		l.handle(ctx, notification.Payload)
	}
}

type orderChange struct {
	OrderID string `json:"order_id"`
	Kind    string `json:"kind"`
	Status  string `json:"status"`
}

func (l *OrderListener) handle(ctx context.Context, payload string) {
	var change orderChange
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		slog.Error("invalid order change payload", "payload", payload, "error", err)
		return
	}

	t, ok := notificationFor(change)
	if !ok {
		return
	}

	for _, res := range l.notifier.Notify(ctx, change.OrderID, t) {
		if res.Err != nil {
			slog.Error("notification delivery failed",
				"channel", string(res.Channel), "recipient", res.Recipient, "error", res.Err)
		} else {
			slog.Info("notification delivered",
				"channel", string(res.Channel), "order_id", change.OrderID)
		}
	}
}

// notificationFor maps a change-feed event to the notification it produces.
// Changes outside the table trigger nothing.
func notificationFor(c orderChange) (model.NotificationType, bool) {
	switch c.Kind {
	case "created":
		return model.NotificationOrderPlaced, true
	case "status":
		switch model.OrderStatus(c.Status) {
		case model.OrderStatusConfirmed:
			return model.NotificationOrderConfirmed, true
		case model.OrderStatusOutForDelivery, model.OrderStatusReadyForPickup:
			return model.NotificationOrderShipped, true
		case model.OrderStatusDelivered, model.OrderStatusPickedUp:
			return model.NotificationOrderDelivered, true
		}
	}
	return "", false
}
