package model

// NotificationType is the closed set of customer-facing order notifications.
// Each value maps to one subject/message pair in the dispatcher.
type NotificationType string

const (
	NotificationOrderPlaced      NotificationType = "order_placed"
	NotificationPaymentConfirmed NotificationType = "payment_confirmed"
	NotificationOrderConfirmed   NotificationType = "order_confirmed"
	NotificationOrderShipped     NotificationType = "order_shipped"
	NotificationOrderDelivered   NotificationType = "order_delivered"
)
