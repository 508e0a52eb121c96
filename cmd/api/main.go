package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/product-importer/internal/application/catalog"
	"github.com/mohammadpnp/product-importer/internal/bootstrap"
	"github.com/mohammadpnp/product-importer/internal/config"
	"github.com/mohammadpnp/product-importer/internal/infrastructure/queue"
	"github.com/mohammadpnp/product-importer/internal/infrastructure/repository"
	"github.com/mohammadpnp/product-importer/internal/logger"
	"github.com/mohammadpnp/product-importer/internal/webhook"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Error("connect database", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Error("create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	taskQueue := queue.NewRedisQueue(redisClient)

	webhookRepo := repository.NewWebhookRepository(db)
	events := webhook.NewDispatcher(webhookRepo, cfg.WebhookTimeout, log)

	server := bootstrap.NewHTTPServer(cfg, db, pool, taskQueue, events)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	jobRepo := repository.NewImportJobRepository(db)
	productRepo := repository.NewProductRepository(db)
	bulkRepo := repository.NewProductBulkRepository(pool)

	imports := app.NewImportProducts(productRepo, jobRepo, taskQueue, events, cfg.ProgressInterval, log)
	deletes := app.NewBulkDeleteExecutor(bulkRepo, taskQueue, log)
	worker := app.NewTaskWorker(taskQueue, imports, deletes, taskQueue, app.TaskWorkerConfig{
		Workers: cfg.Workers,
	}, log)
	worker.Start(workerCtx)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
