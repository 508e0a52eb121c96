package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domain "github.com/mohammadpnp/product-importer/internal/domain/catalog"
	"github.com/mohammadpnp/product-importer/internal/parser"
)

// maxStoredErrors bounds the error log retained on a job; further record
// errors are counted but not stored.
const maxStoredErrors = 10

type productUpserter interface {
	FindByNormalizedSKU(ctx context.Context, sku string) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
	UpdateFields(ctx context.Context, id int64, name, description string) error
}

type jobTracker interface {
	Start(ctx context.Context, jobID string) error
	SetTotal(ctx context.Context, jobID string, total int64) error
	Advance(ctx context.Context, jobID string, processed int64) error
	Finalize(ctx context.Context, jobID string, status domain.JobStatus, errs []string) error
}

type taskReporter interface {
	SetProgress(ctx context.Context, taskID string, current, total int64, status string) error
	Succeed(ctx context.Context, taskID string, current, total int64, status string, result any) error
	Fail(ctx context.Context, taskID, reason string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any)
}

// ImportTask is one claimed import: the queue task handle plus its payload.
type ImportTask struct {
	TaskID   string
	JobID    string
	Filename string
	Content  string
}

// ImportResult is the terminal task result exposed to polling clients.
type ImportResult struct {
	Processed int64 `json:"processed"`
	Total     int64 `json:"total"`
	Errors    int64 `json:"errors"`
}

// ImportProducts reconciles one uploaded file against the catalog. Records
// are processed strictly in file order, so a later row sharing a SKU with an
// earlier one wins. Jobs run to completion or failure; there is no
// cancellation.
type ImportProducts struct {
	products productUpserter
	jobs     jobTracker
	tasks    taskReporter
	events   eventPublisher
	interval int64
	logger   *slog.Logger
}

func NewImportProducts(products productUpserter, jobs jobTracker, tasks taskReporter, events eventPublisher, progressInterval int, logger *slog.Logger) *ImportProducts {
	if progressInterval <= 0 {
		progressInterval = 100
	}
	return &ImportProducts{
		products: products,
		jobs:     jobs,
		tasks:    tasks,
		events:   events,
		interval: int64(progressInterval),
		logger:   logger,
	}
}

// Execute runs one import job to a terminal state. Whatever goes wrong, the
// job tracker ends up with a terminal status before this returns; polling
// clients never see a job stuck in processing because the worker crashed.
func (uc *ImportProducts) Execute(ctx context.Context, task ImportTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("import panicked: %v", r)
			uc.abort(ctx, task, err)
		}
	}()

	if err := uc.jobs.Start(ctx, task.JobID); err != nil {
		return uc.abort(ctx, task, fmt.Errorf("start job: %w", err))
	}

	reader, err := parser.New([]byte(task.Content))
	if err != nil {
		return uc.abort(ctx, task, err)
	}
	records, err := reader.ReadAll()
	if err != nil {
		return uc.abort(ctx, task, err)
	}

	total := int64(len(records))
	if err := uc.jobs.SetTotal(ctx, task.JobID, total); err != nil {
		return uc.abort(ctx, task, fmt.Errorf("set total: %w", err))
	}

	var processed int64
	var errorCount int64
	var stored []string
	recordError := func(line int, msg string) {
		errorCount++
		if len(stored) < maxStoredErrors {
			stored = append(stored, fmt.Sprintf("record %d: %s", line, msg))
		}
	}

	for _, rec := range records {
		sku := strings.TrimSpace(rec.Get("sku"))
		name := strings.TrimSpace(rec.Get("name"))
		description := strings.TrimSpace(rec.Get("description"))

		if sku == "" {
			recordError(rec.Line, "missing SKU")
			continue
		}

		if err := uc.upsert(ctx, sku, name, description); err != nil {
			if errors.Is(err, domain.ErrDuplicateSKU) {
				// Lost a race on the SKU uniqueness constraint; this row
				// is the loser, not the whole batch.
				recordError(rec.Line, err.Error())
				continue
			}
			return uc.abort(ctx, task, fmt.Errorf("record %d: %w", rec.Line, err))
		}

		processed++
		if processed%uc.interval == 0 {
			if err := uc.reportProgress(ctx, task, processed, total); err != nil {
				return uc.abort(ctx, task, err)
			}
		}
	}

	if err := uc.jobs.Advance(ctx, task.JobID, processed); err != nil {
		return uc.abort(ctx, task, fmt.Errorf("advance: %w", err))
	}

	status := domain.StatusCompleted
	if errorCount > 0 {
		status = domain.StatusCompletedWithErrors
	}
	if err := uc.jobs.Finalize(ctx, task.JobID, status, stored); err != nil {
		return uc.abort(ctx, task, fmt.Errorf("finalize: %w", err))
	}

	summary := fmt.Sprintf("Import completed. Processed %d records.", processed)
	result := ImportResult{Processed: processed, Total: total, Errors: errorCount}
	if err := uc.tasks.Succeed(ctx, task.TaskID, total, total, summary, result); err != nil {
		uc.logger.Error("record task success failed", "task_id", task.TaskID, "error", err)
	}

	uc.events.Publish(ctx, domain.EventImportCompleted, map[string]any{
		"job_id":    task.JobID,
		"filename":  task.Filename,
		"status":    string(status),
		"processed": processed,
		"total":     total,
		"errors":    errorCount,
	})

	uc.logger.Info("import finished",
		"job_id", task.JobID, "status", string(status), "processed", processed, "total", total, "errors", errorCount)
	return nil
}

func (uc *ImportProducts) upsert(ctx context.Context, sku, name, description string) error {
	existing, err := uc.products.FindByNormalizedSKU(ctx, sku)
	if errors.Is(err, domain.ErrProductNotFound) {
		return uc.products.Insert(ctx, &domain.Product{
			SKU:         sku,
			Name:        name,
			Description: description,
			Active:      true,
		})
	}
	if err != nil {
		return err
	}
	return uc.products.UpdateFields(ctx, existing.ID, name, description)
}

func (uc *ImportProducts) reportProgress(ctx context.Context, task ImportTask, processed, total int64) error {
	if err := uc.jobs.Advance(ctx, task.JobID, processed); err != nil {
		return fmt.Errorf("advance: %w", err)
	}
	status := fmt.Sprintf("Processed %d/%d records", processed, total)
	if err := uc.tasks.SetProgress(ctx, task.TaskID, processed, total, status); err != nil {
		return fmt.Errorf("report task progress: %w", err)
	}
	return nil
}

// abort drives the job and task to failed so nothing is left in processing,
// then hands the cause back to the caller. The terminal writes run on a
// detached context: when the cause is the worker context being cancelled,
// they must still land.
func (uc *ImportProducts) abort(ctx context.Context, task ImportTask, cause error) error {
	ctx = context.WithoutCancel(ctx)
	reason := truncateReason(cause.Error())
	if err := uc.jobs.Finalize(ctx, task.JobID, domain.StatusFailed, []string{reason}); err != nil {
		uc.logger.Error("finalize failed job", "job_id", task.JobID, "error", err)
	}
	if err := uc.tasks.Fail(ctx, task.TaskID, reason); err != nil {
		uc.logger.Error("record task failure", "task_id", task.TaskID, "error", err)
	}
	uc.logger.Error("import failed", "job_id", task.JobID, "error", cause)
	return cause
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}
