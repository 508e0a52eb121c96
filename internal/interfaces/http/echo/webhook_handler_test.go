package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/product-importer/internal/application/catalog"
	httpecho "github.com/mohammadpnp/product-importer/internal/interfaces/http/echo"
)

type fakeWebhookService struct {
	listOut   []app.WebhookOutput
	createOut app.WebhookOutput
	err       error
}

func (f *fakeWebhookService) List(ctx context.Context) ([]app.WebhookOutput, error) {
	return f.listOut, f.err
}

func (f *fakeWebhookService) Create(ctx context.Context, in app.WebhookInput) (app.WebhookOutput, error) {
	if f.err != nil {
		return app.WebhookOutput{}, f.err
	}
	return f.createOut, nil
}

func (f *fakeWebhookService) Delete(ctx context.Context, id int64) error {
	return f.err
}

func newWebhookServer(svc *fakeWebhookService) *echo.Echo {
	e := echo.New()
	httpecho.RegisterRoutes(e, nil, nil, nil, nil, httpecho.NewWebhookHandler(svc))
	return e
}

func TestCreateWebhookSuccess(t *testing.T) {
	t.Parallel()

	svc := &fakeWebhookService{createOut: app.WebhookOutput{
		ID:        1,
		URL:       "https://hooks.example.com/catalog",
		EventType: "product.created",
		SecretKey: "3e3c6a5e-3e63-4a0a-a8f7-0b3a7a1d7a11",
		Enabled:   true,
	}}
	e := newWebhookServer(svc)

	body := []byte(`{"url":"https://hooks.example.com/catalog","event_type":"product.created"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	data := got["data"].(map[string]any)
	if data["secret_key"] == "" {
		t.Fatalf("expected secret key in response: %#v", data)
	}
}

func TestCreateWebhookInvalid(t *testing.T) {
	t.Parallel()

	e := newWebhookServer(&fakeWebhookService{err: app.ErrInvalidWebhook})

	body := []byte(`{"url":"not-a-url","event_type":"product.created"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListWebhooks(t *testing.T) {
	t.Parallel()

	svc := &fakeWebhookService{listOut: []app.WebhookOutput{
		{ID: 1, URL: "https://hooks.example.com/catalog", EventType: "import.completed", Enabled: true},
	}}
	e := newWebhookServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/webhooks", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestDeleteWebhookNotFound(t *testing.T) {
	t.Parallel()

	e := newWebhookServer(&fakeWebhookService{err: app.ErrWebhookNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/webhooks/9", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteWebhookInvalidID(t *testing.T) {
	t.Parallel()

	e := newWebhookServer(&fakeWebhookService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/webhooks/nine", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
