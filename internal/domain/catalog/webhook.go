package catalog

import "time"

// Event types emitted by catalog mutations.
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventImportCompleted = "import.completed"
)

// WebhookSubscription is an outbound callback registration. The secret is
// generated when the subscription is created and never changes afterwards.
type WebhookSubscription struct {
	ID        int64
	URL       string
	EventType string
	SecretKey string
	Enabled   bool
	CreatedAt time.Time
}
