package catalog

import "errors"

var (
	ErrInvalidFileType = errors.New("only CSV files are allowed")
	ErrCreateJob       = errors.New("failed to create import job")
	ErrEnqueueTask     = errors.New("failed to enqueue task")
	ErrNothingToDelete = errors.New("no products to delete")
	ErrJobNotFound     = errors.New("import job not found")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("sku is required")
	ErrDuplicateSKU    = errors.New("sku already exists")
	ErrInvalidWebhook  = errors.New("invalid webhook subscription")
	ErrWebhookNotFound = errors.New("webhook not found")
)
