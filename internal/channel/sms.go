package channel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultSMSBaseURL = "https://api.twilio.com"

// SMSClient delivers plain-text messages through the Twilio Messages API.
// Missing credentials turn every send into a logged no-op.
type SMSClient struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
}

func NewSMSClient(accountSID, authToken, from string) *SMSClient {
	return &SMSClient{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    defaultSMSBaseURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *SMSClient) Send(ctx context.Context, to, body string) error {
	if c.accountSID == "" || c.authToken == "" || c.from == "" {
		slog.Info("sms channel not configured, skipping send", "to", to)
		return nil
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

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
