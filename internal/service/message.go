package service

import (
	"fmt"

	"storefront/internal/model"
)

// Compose returns the user-facing subject and message text for a notification.
// Order ids are shortened to their first 8 characters in customer-facing text,
// and amounts carry the naira prefix. Shipping and delivery wording follows the
// order's delivery method.
func Compose(t model.NotificationType, o *model.Order) (subject, text string, ok bool) {
	ref := shortOrderID(o.ID)
	amount := formatAmount(o.Total)

	switch t {
	case model.NotificationOrderPlaced:
		return "Order placed",
			fmt.Sprintf("Your order %s totalling %s has been placed. We will confirm it as soon as payment is received.", ref, amount),
			true
	case model.NotificationPaymentConfirmed:
		return "Payment confirmed",
			fmt.Sprintf("We have received your payment of %s for order %s. Thank you for shopping with us.", amount, ref),
			true
	case model.NotificationOrderConfirmed:
		return "Order confirmed",
			fmt.Sprintf("Your order %s has been confirmed and is being prepared.", ref),
			true
	case model.NotificationOrderShipped:
		if o.DeliveryMethod == model.DeliveryMethodPickup {
			return "Order update", fmt.Sprintf("Your order %s is ready for pickup.", ref), true
		}
		return "Order update", fmt.Sprintf("Your order %s is out for delivery.", ref), true
	case model.NotificationOrderDelivered:
		if o.DeliveryMethod == model.DeliveryMethodPickup {
			return "Order complete", fmt.Sprintf("Your order %s has been picked up. Thank you for shopping with us.", ref), true
		}
		return "Order complete", fmt.Sprintf("Your order %s has been delivered. Thank you for shopping with us.", ref), true
	}

	return "", "", false
}

func shortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatAmount(v float64) string {
	return fmt.Sprintf("₦%.2f", v)
}
