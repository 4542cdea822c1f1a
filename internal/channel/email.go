package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultEmailBaseURL = "https://api.sendgrid.com"

// EmailClient delivers HTML mail through the SendGrid v3 API. A client with an
// empty API key is valid: every send becomes a logged no-op.
type EmailClient struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

func NewEmailClient(apiKey, from string) *EmailClient {
	return &EmailClient{
		apiKey:  apiKey,
		from:    from,
		baseURL: defaultEmailBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type emailAddress struct {
	Email string `json:"email"`
}

type emailPersonalization struct {
	To []emailAddress `json:"to"`
}

type emailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type emailPayload struct {
	Personalizations []emailPersonalization `json:"personalizations"`
	From             emailAddress           `json:"from"`
	Subject          string                 `json:"subject"`
	Content          []emailContent         `json:"content"`
}

func (c *EmailClient) Send(ctx context.Context, to, subject, html string) error {
	if c.apiKey == "" {
		slog.Info("email channel not configured, skipping send", "to", to)
		return nil
	}

	payload := emailPayload{
		Personalizations: []emailPersonalization{{To: []emailAddress{{Email: to}}}},
		From:             emailAddress{Email: c.from},
		Subject:          subject,
		Content:          []emailContent{{Type: "text/html", Value: html}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status: %d, body: %s", resp.StatusCode, string(b))
	}

	return nil
}
