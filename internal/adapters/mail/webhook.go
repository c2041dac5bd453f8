package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rental_site/internal/adapters/observability"
	"rental_site/internal/domain"
)

// WebhookSender posts the composed message as JSON to a form-handling service.
type WebhookSender struct {
	url string
	hc  *http.Client
}

func NewWebhook(url string) *WebhookSender {
	return &WebhookSender{url: url, hc: &http.Client{Timeout: 15 * time.Second}}
}

type webhookPayload struct {
	ID      string   `json:"id"`
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"replyTo,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

func (s *WebhookSender) Send(ctx context.Context, e domain.Email) error {
	b, err := json.Marshal(webhookPayload{
		ID: e.ID, From: e.From, To: e.To, ReplyTo: e.ReplyTo,
		Subject: e.Subject, Text: e.Text, HTML: e.HTML,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "rental-site/1.0")

	began := time.Now()
	resp, err := s.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("webhook", "post", 0, time.Since(began))
		return fmt.Errorf("webhook: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("webhook", "post", resp.StatusCode, time.Since(began))

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("webhook: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
