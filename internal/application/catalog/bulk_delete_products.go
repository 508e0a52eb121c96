package catalog

import (
	"context"
	"fmt"
	"log/slog"
)

type bulkProductStore interface {
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type BulkDeleteOutput struct {
	DeletedCount int64  `json:"deleted_count"`
	Message      string `json:"message"`
	TaskID       string `json:"task_id,omitempty"`
}

type BulkDeleteProducts interface {
	Execute(ctx context.Context) (BulkDeleteOutput, error)
}

type bulkDeleteProducts struct {
	store     bulkProductStore
	queue     taskEnqueuer
	threshold int64
}

// NewBulkDeleteProducts builds the scheduler for catalog-wide deletes. The
// threshold is a policy knob: catalogs at or below it are deleted inside the
// request, larger ones are deferred to a worker.
func NewBulkDeleteProducts(store bulkProductStore, queue taskEnqueuer, threshold int64) BulkDeleteProducts {
	if threshold <= 0 {
		threshold = 1000
	}
	return &bulkDeleteProducts{store: store, queue: queue, threshold: threshold}
}

func (uc *bulkDeleteProducts) Execute(ctx context.Context) (BulkDeleteOutput, error) {
	count, err := uc.store.Count(ctx)
	if err != nil {
		return BulkDeleteOutput{}, fmt.Errorf("count products: %w", err)
	}
	if count == 0 {
		return BulkDeleteOutput{}, ErrNothingToDelete
	}

	if count <= uc.threshold {
		deleted, err := uc.store.DeleteAll(ctx)
		if err != nil {
			return BulkDeleteOutput{}, fmt.Errorf("delete products: %w", err)
		}
		return BulkDeleteOutput{
			DeletedCount: deleted,
			Message:      fmt.Sprintf("Successfully deleted %d products", deleted),
		}, nil
	}

	taskID, err := uc.queue.Enqueue(ctx, TaskBulkDeleteProducts, nil)
	if err != nil {
		return BulkDeleteOutput{}, fmt.Errorf("%w: %v", ErrEnqueueTask, err)
	}

	// The count is an estimate: rows written between now and the worker run
	// are the worker's to report.
	return BulkDeleteOutput{
		DeletedCount: count,
		Message:      fmt.Sprintf("Bulk deletion started for %d products", count),
		TaskID:       taskID,
	}, nil
}

// BulkDeleteExecutor runs the deferred whole-catalog delete on a worker and
// reports the exact deleted count through the task state.
type BulkDeleteExecutor struct {
	store  bulkProductStore
	tasks  taskReporter
	logger *slog.Logger
}

func NewBulkDeleteExecutor(store bulkProductStore, tasks taskReporter, logger *slog.Logger) *BulkDeleteExecutor {
	return &BulkDeleteExecutor{store: store, tasks: tasks, logger: logger}
}

func (e *BulkDeleteExecutor) Execute(ctx context.Context, taskID string) error {
	deleted, err := e.store.DeleteAll(ctx)
	if err != nil {
		reason := truncateReason(err.Error())
		// Detached so the failure still gets recorded when the worker
		// context itself was cancelled.
		failCtx := context.WithoutCancel(ctx)
		if failErr := e.tasks.Fail(failCtx, taskID, reason); failErr != nil {
			e.logger.Error("record task failure", "task_id", taskID, "error", failErr)
		}
		e.logger.Error("bulk delete failed", "task_id", taskID, "error", err)
		return err
	}

	status := fmt.Sprintf("Bulk delete completed: %d products deleted", deleted)
	if err := e.tasks.Succeed(ctx, taskID, deleted, deleted, status, map[string]int64{"deleted_count": deleted}); err != nil {
		e.logger.Error("record task success failed", "task_id", taskID, "error", err)
	}

	e.logger.Info("bulk delete completed", "task_id", taskID, "deleted", deleted)
	return nil
}
