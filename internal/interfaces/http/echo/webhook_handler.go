package echo

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/product-importer/internal/application/catalog"
)

type webhookService interface {
	List(ctx context.Context) ([]app.WebhookOutput, error)
	Create(ctx context.Context, in app.WebhookInput) (app.WebhookOutput, error)
	Delete(ctx context.Context, id int64) error
}

type WebhookHandler struct {
	webhooks webhookService
}

func NewWebhookHandler(webhooks webhookService) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

func (h *WebhookHandler) ListWebhooks(c echo.Context) error {
	out, err := h.webhooks.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to list webhooks",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *WebhookHandler) CreateWebhook(c echo.Context) error {
	var req app.WebhookInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	out, err := h.webhooks.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, app.ErrInvalidWebhook) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_webhook",
				Message: "url must be absolute and event_type is required",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to create webhook",
		}})
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *WebhookHandler) DeleteWebhook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "invalid_webhook_id",
			Message: "id must be a positive integer",
		}})
	}

	if err := h.webhooks.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, app.ErrWebhookNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "webhook not found",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to delete webhook",
		}})
	}
	return c.NoContent(http.StatusNoContent)
}
