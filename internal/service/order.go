package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront/internal/model"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderService struct {
	db *sql.DB
}

func NewOrderService(db *sql.DB) *OrderService {
	return &OrderService{db: db}
}

func (s *OrderService) Create(ctx context.Context, o *model.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = model.OrderStatusPlaced
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = model.PaymentStatusUnpaid
	}
	o.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO orders (id, customer_id, total, delivery_method, payment_status, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.CustomerID, o.Total, o.DeliveryMethod, o.PaymentStatus, o.Status, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	var reference sql.NullString
	var paidAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer_id, total, delivery_method, payment_status, payment_reference, status, created_at, paid_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.CustomerID, &o.Total, &o.DeliveryMethod, &o.PaymentStatus, &reference, &o.Status, &o.CreatedAt, &paidAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order: %w", err)
	}
	if reference.Valid {
		o.PaymentReference = reference.String
	}
	if paidAt.Valid {
		t := paidAt.Time
		o.PaidAt = &t
	}

	return &o, nil
}

// UpdateStatus is the entry point for the fulfilment process. The change-feed
// trigger on the orders table turns the update into a notification dispatch.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// ConfirmPayment marks the order paid in a single statement so the patch is
// atomic; notification delivery happens after and never rolls it back.
func (s *OrderService) ConfirmPayment(ctx context.Context, id, reference string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders SET payment_status = $1, payment_reference = $2, paid_at = $3
		WHERE id = $4
	`, model.PaymentStatusPaid, reference, time.Now(), id)
	if err != nil {
		return fmt.Errorf("confirm payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}

	return nil
}
