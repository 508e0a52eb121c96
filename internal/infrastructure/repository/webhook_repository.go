package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/product-importer/internal/domain/catalog"
	"github.com/mohammadpnp/product-importer/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// WebhookRepository stores outbound subscriptions. The dispatcher only reads
// enabled ones by event type; the rest is boundary CRUD.
type WebhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) *WebhookRepository {
	return &WebhookRepository{db: db}
}

// ListEnabled returns every enabled subscription for the event type.
func (r *WebhookRepository) ListEnabled(ctx context.Context, eventType string) ([]domain.WebhookSubscription, error) {
	var rows []models.Webhook

	err := r.db.WithContext(ctx).
		Where("event_type = ? AND enabled = ?", eventType, true).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list enabled webhooks: %w", err)
	}

	return toDomainWebhooks(rows), nil
}

func (r *WebhookRepository) List(ctx context.Context) ([]domain.WebhookSubscription, error) {
	var rows []models.Webhook

	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}

	return toDomainWebhooks(rows), nil
}

// Create stores a subscription. The delivery secret is generated here and is
// immutable afterwards.
func (r *WebhookRepository) Create(ctx context.Context, sub *domain.WebhookSubscription) error {
	row := models.Webhook{
		URL:       sub.URL,
		EventType: sub.EventType,
		SecretKey: uuid.NewString(),
		Enabled:   sub.Enabled,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create webhook: %w", err)
	}

	sub.ID = row.ID
	sub.SecretKey = row.SecretKey
	sub.CreatedAt = row.CreatedAt
	return nil
}

func (r *WebhookRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Webhook{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete webhook: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrWebhookNotFound
	}
	return nil
}

func toDomainWebhooks(rows []models.Webhook) []domain.WebhookSubscription {
	subs := make([]domain.WebhookSubscription, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, domain.WebhookSubscription{
			ID:        row.ID,
			URL:       row.URL,
			EventType: row.EventType,
			SecretKey: row.SecretKey,
			Enabled:   row.Enabled,
			CreatedAt: row.CreatedAt,
		})
	}
	return subs
}
