package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tabletap/internal/model"

	"github.com/rs/zerolog"
)

// WebhookConfig holds configuration for the webhook notifier.
type WebhookConfig struct {
	// URL is the externally configured endpoint receiving order payloads.
	URL string

	// Timeout bounds each delivery attempt so a slow channel cannot hold
	// resources. Default: 5s.
	Timeout time.Duration

	// MaxAttempts is the total number of delivery attempts. Default: 3.
	MaxAttempts int

	// RetryDelay is the flat pause between attempts. Default: 1s.
	RetryDelay time.Duration
}

// DefaultWebhookConfig returns the default webhook notifier configuration.
func DefaultWebhookConfig(url string) *WebhookConfig {
	return &WebhookConfig{
		URL:         url,
		Timeout:     5 * time.Second,
		MaxAttempts: 3,
		RetryDelay:  1 * time.Second,
	}
}

// webhook delivers order notifications via HTTP POST with a bounded
// per-attempt timeout and a small flat retry policy.
type webhook struct {
	config *WebhookConfig
	client *http.Client
	logger zerolog.Logger
}

// NewWebhook creates a webhook notifier for the configured endpoint.
func NewWebhook(config *WebhookConfig, logger zerolog.Logger) Notifier {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 1 * time.Second
	}
	return &webhook{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger.With().Str("component", "webhook-notifier").Logger(),
	}
}

// NotifyOrderCreated POSTs the full order payload to the configured
// endpoint, retrying a bounded number of times. The returned error is
// informational: callers log it and move on.
func (w *webhook) NotifyOrderCreated(ctx context.Context, n *model.OrderNotification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode order notification: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= w.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.config.RetryDelay):
			}
		}

		lastErr = w.post(ctx, body)
		if lastErr == nil {
			w.logger.Debug().
				Str("order_number", n.OrderNumber).
				Int("attempt", attempt).
				Msg("order notification delivered")
			return nil
		}

		w.logger.Warn().
			Err(lastErr).
			Str("order_number", n.OrderNumber).
			Int("attempt", attempt).
			Int("max_attempts", w.config.MaxAttempts).
			Msg("order notification attempt failed")
	}

	return fmt.Errorf("order notification failed after %d attempts: %w", w.config.MaxAttempts, lastErr)
}

func (w *webhook) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
