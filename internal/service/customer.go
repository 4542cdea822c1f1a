package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storefront/internal/model"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerService struct {
	db *sql.DB
}

func NewCustomerService(db *sql.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	var email, phone sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, full_name, email, phone, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.FullName, &email, &phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("query customer: %w", err)
	}
	if email.Valid {
		c.Email = email.String
	}
	if phone.Valid {
		c.Phone = phone.String
	}

	return &c, nil
}

func (s *CustomerService) Upsert(ctx context.Context, c *model.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, full_name, email, phone)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (id) DO UPDATE
		SET full_name = EXCLUDED.full_name, email = EXCLUDED.email, phone = EXCLUDED.phone
	`, c.ID, c.FullName, c.Email, c.Phone)
	if err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}

	return nil
}
