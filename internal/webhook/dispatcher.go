// Package webhook delivers catalog events to subscribed endpoints. Delivery
// is best effort: one attempt per subscriber per event, no persistence.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	domain "github.com/mohammadpnp/product-importer/internal/domain/catalog"
)

const userAgent = "ProductImporter/1.0"

// SecretHeader carries the subscription secret so subscribers can verify
// the sender.
const SecretHeader = "X-Webhook-Secret"

type subscriptionSource interface {
	ListEnabled(ctx context.Context, eventType string) ([]domain.WebhookSubscription, error)
}

// DeliveryResult is the outcome of one delivery attempt. Outcomes are
// independent per target and never retried here.
type DeliveryResult struct {
	URL        string
	StatusCode int
	Latency    time.Duration
	Success    bool
	Err        error
}

// Dispatcher fans one event out to every enabled subscription of its type.
type Dispatcher struct {
	subs    subscriptionSource
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewDispatcher(subs subscriptionSource, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		subs:    subs,
		client:  &http.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

// Notify delivers the payload to all enabled subscriptions for eventType,
// concurrently, each with its own timeout. It returns once every delivery
// has settled; one subscriber failing or stalling does not block the rest
// beyond that subscriber's own timeout. With no subscriptions it returns
// immediately without any I/O.
func (d *Dispatcher) Notify(ctx context.Context, eventType string, payload any) ([]DeliveryResult, error) {
	subs, err := d.subs.ListEnabled(ctx, eventType)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}

	results := make([]DeliveryResult, len(subs))
	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub domain.WebhookSubscription) {
			defer wg.Done()
			results[i] = d.deliver(ctx, sub, body)
		}(i, sub)
	}
	wg.Wait()

	return results, nil
}

// Publish is the fire-and-report form used by catalog mutations: it runs the
// fan-out and logs each outcome instead of returning them.
func (d *Dispatcher) Publish(ctx context.Context, eventType string, payload any) {
	results, err := d.Notify(ctx, eventType, payload)
	if err != nil {
		d.logger.Error("webhook fan-out failed", "event", eventType, "error", err)
		return
	}
	for _, r := range results {
		if r.Success {
			d.logger.Info("webhook delivered",
				"event", eventType, "url", r.URL, "status", r.StatusCode, "latency", r.Latency)
		} else {
			d.logger.Warn("webhook delivery failed",
				"event", eventType, "url", r.URL, "status", r.StatusCode, "error", r.Err)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, sub domain.WebhookSubscription, body []byte) DeliveryResult {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	result := DeliveryResult{URL: sub.URL}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(body))
	if err != nil {
		result.Err = err
		return result
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if sub.SecretKey != "" {
		req.Header.Set(SecretHeader, sub.SecretKey)
	}

	start := time.Now()
	resp, err := d.client.Do(req)
	result.Latency = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode < 400
	return result
}
