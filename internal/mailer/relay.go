package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"zurnaWorkshop/internal/config"
)

// Relay forwards templated contact messages to the workshop's inbox.
type Relay interface {
	Send(ctx context.Context, serviceID, templateID string, params map[string]string, publicKey string) error
}

func NewRelay(cfg config.Relay, sender Sender) (Relay, error) {
	switch cfg.Driver {
	case "emailjs":
		return NewEmailJSRelay(cfg.Endpoint, &http.Client{Timeout: 15 * time.Second}), nil
	case "smtp":
		if cfg.Inbox == "" {
			return nil, fmt.Errorf("RELAY_INBOX is required for the smtp relay")
		}
		return &SMTPRelay{sender: sender, inbox: cfg.Inbox}, nil
	default:
		return nil, fmt.Errorf("unknown relay driver %q", cfg.Driver)
	}
}

type EmailJSRelay struct {
	endpoint string
	client   *http.Client
}

func NewEmailJSRelay(endpoint string, client *http.Client) *EmailJSRelay {
	return &EmailJSRelay{endpoint: endpoint, client: client}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJSRelay) Send(ctx context.Context, serviceID, templateID string, params map[string]string, publicKey string) error {
	payload, err := json.Marshal(emailJSRequest{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("relay returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

// SMTPRelay mails the template parameters to a fixed inbox.
type SMTPRelay struct {
	sender Sender
	inbox  string
}

func (s *SMTPRelay) Send(ctx context.Context, _, _ string, params map[string]string, _ string) error {
	subject := "İletişim formu"
	if params["subject"] != "" {
		subject = "İletişim formu: " + params["subject"]
	}

	return s.sender.Send(ctx, s.inbox, subject, formatParams(params))
}

func formatParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, params[k])
	}
	return b.String()
}
