package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	domain "github.com/mohammadpnp/product-importer/internal/domain/catalog"
)

type webhookStore interface {
	List(ctx context.Context) ([]domain.WebhookSubscription, error)
	Create(ctx context.Context, sub *domain.WebhookSubscription) error
	Delete(ctx context.Context, id int64) error
}

type WebhookOutput struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	EventType string    `json:"event_type"`
	SecretKey string    `json:"secret_key"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

type WebhookInput struct {
	URL       string `json:"url"`
	EventType string `json:"event_type"`
	Enabled   *bool  `json:"enabled"`
}

// WebhookService is the subscription CRUD surface. Dispatch itself lives in
// the webhook package; this only manages registrations.
type WebhookService struct {
	repo webhookStore
}

func NewWebhookService(repo webhookStore) *WebhookService {
	return &WebhookService{repo: repo}
}

func (s *WebhookService) List(ctx context.Context) ([]WebhookOutput, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}

	out := make([]WebhookOutput, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toWebhookOutput(sub))
	}
	return out, nil
}

func (s *WebhookService) Create(ctx context.Context, in WebhookInput) (WebhookOutput, error) {
	target := strings.TrimSpace(in.URL)
	eventType := strings.TrimSpace(in.EventType)
	if target == "" || eventType == "" {
		return WebhookOutput{}, ErrInvalidWebhook
	}
	if u, err := url.Parse(target); err != nil || u.Scheme == "" || u.Host == "" {
		return WebhookOutput{}, ErrInvalidWebhook
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}

	sub := &domain.WebhookSubscription{
		URL:       target,
		EventType: eventType,
		Enabled:   enabled,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return WebhookOutput{}, fmt.Errorf("create webhook: %w", err)
	}

	return toWebhookOutput(*sub), nil
}

func (s *WebhookService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrWebhookNotFound) {
			return ErrWebhookNotFound
		}
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

func toWebhookOutput(sub domain.WebhookSubscription) WebhookOutput {
	return WebhookOutput{
		ID:        sub.ID,
		URL:       sub.URL,
		EventType: sub.EventType,
		SecretKey: sub.SecretKey,
		Enabled:   sub.Enabled,
		CreatedAt: sub.CreatedAt,
	}
}
