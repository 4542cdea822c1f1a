package channel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailSendUnconfiguredIsNoOp(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewEmailClient("", "orders@storefront.example")
	c.baseURL = srv.URL

	err := c.Send(context.Background(), "ada@example.com", "Subject", "<p>hi</p>")

	assert.NoError(t, err)
	assert.Zero(t, calls)
}

func TestEmailSend(t *testing.T) {
	var got emailPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewEmailClient("sg-key", "orders@storefront.example")
	c.baseURL = srv.URL

	err := c.Send(context.Background(), "ada@example.com", "Payment confirmed", "<p>hi Ada</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer sg-key", auth)
	require.Len(t, got.Personalizations, 1)
	require.Len(t, got.Personalizations[0].To, 1)
	assert.Equal(t, "ada@example.com", got.Personalizations[0].To[0].Email)
	assert.Equal(t, "orders@storefront.example", got.From.Email)
	assert.Equal(t, "Payment confirmed", got.Subject)
	require.Len(t, got.Content, 1)
	assert.Equal(t, "text/html", got.Content[0].Type)
	assert.Equal(t, "<p>hi Ada</p>", got.Content[0].Value)
}

func TestEmailSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"bad key"}]}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewEmailClient("bad-key", "orders@storefront.example")
	c.baseURL = srv.URL

	err := c.Send(context.Background(), "ada@example.com", "Subject", "<p>hi</p>")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
