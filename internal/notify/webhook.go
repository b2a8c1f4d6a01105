// Package notify sends lead-capture notifications to an outbound webhook.
// Delivery is best-effort: a failed notification is logged and never blocks
// the form submission that triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/clearlane-advisory/clearlane-web/internal/config"
)

const defaultTimeout = 10 * time.Second

// ErrDisabled is returned when notifications are disabled or unconfigured.
var ErrDisabled = errors.New("notifications disabled")

// Lead is one notification payload about a captured lead.
type Lead struct {
	Kind    string `json:"kind"` // "contact" or "assessment"
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Notifier posts lead notifications as JSON to the configured webhook.
type Notifier struct {
	url        string
	enabled    bool
	httpClient *http.Client
}

// New builds a notifier from configuration.
func New(cfg config.Notify) *Notifier {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Notifier{
		url:     cfg.WebhookURL,
		enabled: cfg.Enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send posts the lead to the webhook.
func (n *Notifier) Send(ctx context.Context, lead Lead) error {
	if n == nil || !n.enabled || n.url == "" {
		return ErrDisabled
	}

	body, err := json.Marshal(lead)
	if err != nil {
		return pkgerrors.Wrap(err, "marshal lead notification")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(err, "new notification request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(err, "send lead notification")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return pkgerrors.Errorf("notification webhook %s: %s",
			resp.Status, strings.TrimSpace(string(payload)))
	}

	return nil
}
