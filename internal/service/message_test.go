package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
)

func TestComposeShippedWordingByDeliveryMethod(t *testing.T) {
	order := testOrder()

	order.DeliveryMethod = model.DeliveryMethodDelivery
	_, text, ok := Compose(model.NotificationOrderShipped, order)
	require.True(t, ok)
	assert.Contains(t, text, "out for delivery")

	order.DeliveryMethod = model.DeliveryMethodPickup
	_, text, ok = Compose(model.NotificationOrderShipped, order)
	require.True(t, ok)
	assert.Contains(t, text, "ready for pickup")
}

func TestComposeDeliveredWordingByDeliveryMethod(t *testing.T) {
	order := testOrder()

	order.DeliveryMethod = model.DeliveryMethodDelivery
	_, text, ok := Compose(model.NotificationOrderDelivered, order)
	require.True(t, ok)
	assert.Contains(t, text, "delivered")

	order.DeliveryMethod = model.DeliveryMethodPickup
	_, text, ok = Compose(model.NotificationOrderDelivered, order)
	require.True(t, ok)
	assert.Contains(t, text, "picked up")
}

func TestComposeTruncatesOrderID(t *testing.T) {
	order := testOrder()

	for _, nt := range []model.NotificationType{
		model.NotificationOrderPlaced,
		model.NotificationPaymentConfirmed,
		model.NotificationOrderConfirmed,
		model.NotificationOrderShipped,
		model.NotificationOrderDelivered,
	} {
		_, text, ok := Compose(nt, order)
		require.True(t, ok, string(nt))
		assert.Contains(t, text, order.ID[:8], string(nt))
		// The short id must not be followed by any remainder of the full id.
		assert.NotContains(t, text, order.ID[:9], string(nt))
	}
}

func TestComposeFormatsAmount(t *testing.T) {
	order := testOrder()
	order.Total = 1250.5

	_, text, ok := Compose(model.NotificationPaymentConfirmed, order)
	require.True(t, ok)
	assert.Contains(t, text, "₦1250.50")
}

func TestComposeUnknownType(t *testing.T) {
	_, _, ok := Compose(model.NotificationType("nonsense"), testOrder())
	assert.False(t, ok)
}

func TestComposeSubjects(t *testing.T) {
	order := testOrder()
	subjects := map[model.NotificationType]string{
		model.NotificationOrderPlaced:      "Order placed",
		model.NotificationPaymentConfirmed: "Payment confirmed",
		model.NotificationOrderConfirmed:   "Order confirmed",
	}
	for nt, want := range subjects {
		subject, _, ok := Compose(nt, order)
		require.True(t, ok)
		assert.Equal(t, want, subject)
	}
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Ada", firstName("Ada Obi"))
	assert.Equal(t, "Ada", firstName("Ada"))
	assert.Equal(t, "there", firstName("  "))
}

func TestShortOrderID(t *testing.T) {
	assert.Equal(t, "short", shortOrderID("short"))
	assert.True(t, strings.HasPrefix("550e8400-e29b", shortOrderID("550e8400-e29b-41d4")))
	assert.Len(t, shortOrderID("550e8400-e29b-41d4"), 8)
}
