package model

import (
	"time"
)

type DeliveryMethod string

const (
	DeliveryMethodDelivery DeliveryMethod = "delivery"
	DeliveryMethodPickup   DeliveryMethod = "pickup"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusOutForDelivery OrderStatus = "out-for-delivery"
	OrderStatusReadyForPickup OrderStatus = "ready-for-pickup"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusPickedUp       OrderStatus = "picked-up"
)

type Order struct {
	ID               string         `json:"id"`
	CustomerID       string         `json:"customer_id"`
	Total            float64        `json:"total"`
	DeliveryMethod   DeliveryMethod `json:"delivery_method"`
	PaymentStatus    PaymentStatus  `json:"payment_status"`
	PaymentReference string         `json:"payment_reference,omitempty"`
	Status           OrderStatus    `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	PaidAt           *time.Time     `json:"paid_at,omitempty"`
}
