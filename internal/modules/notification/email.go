package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"camperrent/internal/config"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// EmailClient delivers transactional mail through the Brevo HTTP API.
type EmailClient struct {
	apiKey      string
	senderEmail string
	senderName  string
	httpClient  *http.Client
	endpoint    string
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// NewEmailClient returns nil when the credentials are absent; callers treat
// a nil client as "email disabled" and only log.
func NewEmailClient(cfg config.EmailConfig) *EmailClient {
	if cfg.APIKey == "" || cfg.SenderEmail == "" {
		return nil
	}
	return &EmailClient{
		apiKey:      cfg.APIKey,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		endpoint:    brevoEndpoint,
	}
}

func (c *EmailClient) Send(ctx context.Context, toEmail, toName, subject, htmlContent string) error {
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %q", toEmail)
	}
	if toName == "" {
		toName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": c.senderName, "email": c.senderEmail},
		To:          []map[string]string{{"email": toEmail, "name": toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}
