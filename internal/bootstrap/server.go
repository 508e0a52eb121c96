package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/product-importer/internal/application/catalog"
	"github.com/mohammadpnp/product-importer/internal/config"
	"github.com/mohammadpnp/product-importer/internal/infrastructure/queue"
	"github.com/mohammadpnp/product-importer/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/product-importer/internal/interfaces/http/echo"
	"github.com/mohammadpnp/product-importer/internal/webhook"
)

func NewHTTPServer(cfg *config.Config, db *gorm.DB, pool *pgxpool.Pool, taskQueue *queue.RedisQueue, events *webhook.Dispatcher) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("50M"))

	jobRepo := repository.NewImportJobRepository(db)
	productRepo := repository.NewProductRepository(db)
	bulkRepo := repository.NewProductBulkRepository(pool)
	webhookRepo := repository.NewWebhookRepository(db)

	uploadHandler := httpecho.NewUploadHandler(app.NewUploadProductsCSV(jobRepo, taskQueue))
	productHandler := httpecho.NewProductHandler(
		app.NewProductService(productRepo, events),
		app.NewBulkDeleteProducts(bulkRepo, taskQueue, cfg.SyncDeleteThreshold),
	)
	taskHandler := httpecho.NewTaskHandler(app.NewGetTaskStatus(taskQueue))
	importJobHandler := httpecho.NewImportJobHandler(app.NewGetImportJob(jobRepo))
	webhookHandler := httpecho.NewWebhookHandler(app.NewWebhookService(webhookRepo))

	httpecho.RegisterRoutes(server, uploadHandler, productHandler, taskHandler, importJobHandler, webhookHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
