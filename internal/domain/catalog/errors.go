package catalog

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrDuplicateSKU      = errors.New("sku already exists")
	ErrJobNotFound       = errors.New("import job not found")
	ErrDuplicateJob      = errors.New("import job already exists")
	ErrInvalidTransition = errors.New("invalid job status transition")
	ErrWebhookNotFound   = errors.New("webhook not found")
)
