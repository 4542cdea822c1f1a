package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"storefront/internal/model"
	"storefront/internal/service"
)

var validate = validator.New()

type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}

type CustomerStore interface {
	Upsert(ctx context.Context, c *model.Customer) error
}

type checkoutCustomer struct {
	ID       string `json:"id"`
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
}

type checkoutRequest struct {
	Customer       checkoutCustomer `json:"customer" validate:"required"`
	Total          float64          `json:"total" validate:"gte=0"`
	DeliveryMethod string           `json:"deliveryMethod" validate:"required,oneof=delivery pickup"`
}

// CreateOrderHandler is the checkout endpoint. It upserts the customer record
// and inserts the order as placed/unpaid; the order_placed notification is
// driven by the change feed, not by this handler.
func CreateOrderHandler(orders OrderStore, customers CustomerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		customer := &model.Customer{
			ID:       req.Customer.ID,
			FullName: req.Customer.FullName,
			Email:    req.Customer.Email,
			Phone:    req.Customer.Phone,
		}
		if err := customers.Upsert(r.Context(), customer); err != nil {
			slog.Error("customer upsert failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		order := &model.Order{
			CustomerID:     customer.ID,
			Total:          req.Total,
			DeliveryMethod: model.DeliveryMethod(req.DeliveryMethod),
		}
		if err := orders.Create(r.Context(), order); err != nil {
			slog.Error("order create failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(order); err != nil {
			slog.Error("encode order failed", "error", err)
		}
	}
}

func GetOrderHandler(orders OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := orders.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				http.Error(w, "order not found", http.StatusNotFound)
				return
			}
			slog.Error("order lookup failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(order); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=placed confirmed out-for-delivery ready-for-pickup delivered picked-up"`
}

// UpdateOrderStatusHandler is called by the fulfilment process. The resulting
// row update fires the change-feed trigger, which drives the matching
// customer notification.
func UpdateOrderStatusHandler(orders OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "id")

		var req statusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := orders.UpdateStatus(r.Context(), orderID, model.OrderStatus(req.Status)); err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				http.Error(w, "order not found", http.StatusNotFound)
				return
			}
			slog.Error("status update failed", "order_id", orderID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
