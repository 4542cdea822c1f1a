package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"
)

const signatureHeader = "x-paystack-signature"

type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, orderID, reference string) error
}

type Notifier interface {
	Notify(ctx context.Context, orderID string, t model.NotificationType) []service.ChannelResult
}

type paystackEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Metadata  struct {
			OrderID string `json:"orderId"`
		} `json:"metadata"`
	} `json:"data"`
}

// PaystackWebhookHandler authenticates provider callbacks with an HMAC-SHA512
// digest over the raw request body and marks the referenced order paid on
// charge.success. Once the signature verifies, the response is always 200:
// downstream failures are logged but never surfaced, so the provider does not
// re-deliver an already-verified event.
func PaystackWebhookHandler(secret string, orders PaymentConfirmer, notifier Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Without a shared secret every signature is forgeable (an empty-key
		// HMAC is computable by anyone), so the webhook stays closed until the
		// secret is configured.
		if secret == "" {
			slog.Warn("webhook rejected: payment secret not configured")
			http.Error(w, "webhook not configured", http.StatusServiceUnavailable)
			return
		}

		signature := r.Header.Get(signatureHeader)
		if signature == "" {
			http.Error(w, "missing signature", http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
		if err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		// The digest must cover the exact bytes the provider signed; the body
		// is never re-serialized before hashing.
		mac := hmac.New(sha512.New, []byte(secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))
		if !hmac.Equal([]byte(signature), []byte(expected)) {
			http.Error(w, "invalid signature", http.StatusBadRequest)
			return
		}

		var event paystackEvent
		if err := json.Unmarshal(body, &event); err != nil {
			slog.Error("webhook body is not valid JSON", "error", err)
			w.WriteHeader(http.StatusOK)
			return
		}

		if event.Event != "charge.success" {
			w.WriteHeader(http.StatusOK)
			return
		}

		orderID := event.Data.Metadata.OrderID
		if orderID == "" {
			slog.Error("charge.success event carries no order id", "reference", event.Data.Reference)
			w.WriteHeader(http.StatusOK)
			return
		}

		if err := orders.ConfirmPayment(r.Context(), orderID, event.Data.Reference); err != nil {
			slog.Error("payment confirmation failed", "order_id", orderID, "error", err)
			w.WriteHeader(http.StatusOK)
			return
		}
		slog.Info("payment confirmed", "order_id", orderID, "reference", event.Data.Reference)

		logResults(notifier.Notify(r.Context(), orderID, model.NotificationPaymentConfirmed))
		w.WriteHeader(http.StatusOK)
	}
}

func logResults(results []service.ChannelResult) {
	for _, res := range results {
		if res.Err != nil {
			slog.Error("notification delivery failed",
				"channel", string(res.Channel), "recipient", res.Recipient, "error", res.Err)
		} else {
			slog.Info("notification delivered",
				"channel", string(res.Channel), "recipient", res.Recipient)
		}
	}
}
