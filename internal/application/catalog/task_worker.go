package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mohammadpnp/product-importer/internal/infrastructure/queue"
)

type taskSource interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*queue.Task, error)
}

type TaskWorkerConfig struct {
	Workers      int
	PollInterval time.Duration
}

// TaskWorker is the pool of independent executions draining the queue. Each
// task runs to completion on one worker goroutine; the only shared state is
// the catalog store and the job tracker.
type TaskWorker struct {
	source  taskSource
	imports *ImportProducts
	deletes *BulkDeleteExecutor
	tasks   taskReporter
	cfg     TaskWorkerConfig
	logger  *slog.Logger

	once sync.Once
}

func NewTaskWorker(source taskSource, imports *ImportProducts, deletes *BulkDeleteExecutor, tasks taskReporter, cfg TaskWorkerConfig, logger *slog.Logger) *TaskWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &TaskWorker{
		source:  source,
		imports: imports,
		deletes: deletes,
		tasks:   tasks,
		cfg:     cfg,
		logger:  logger,
	}
}

func (w *TaskWorker) Start(ctx context.Context) {
	w.once.Do(func() {
		for i := 0; i < w.cfg.Workers; i++ {
			go w.workerLoop(ctx)
		}
	})
}

func (w *TaskWorker) workerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		task, err := w.source.Dequeue(ctx, w.cfg.PollInterval)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("dequeue task failed", "error", err)
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}
		if task == nil {
			continue
		}

		if err := w.Dispatch(ctx, task); err != nil {
			w.logger.Error("task failed", "task_id", task.ID, "name", task.Name, "error", err)
		}
	}
}

// Dispatch routes one task by name to its executor.
func (w *TaskWorker) Dispatch(ctx context.Context, task *queue.Task) error {
	switch task.Name {
	case TaskImportProducts:
		var payload ImportTaskPayload
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			reason := fmt.Sprintf("decode import payload: %v", err)
			if failErr := w.tasks.Fail(ctx, task.ID, reason); failErr != nil {
				w.logger.Error("record task failure", "task_id", task.ID, "error", failErr)
			}
			return fmt.Errorf("%s", reason)
		}
		return w.imports.Execute(ctx, ImportTask{
			TaskID:   task.ID,
			JobID:    payload.JobID,
			Filename: payload.Filename,
			Content:  payload.Content,
		})
	case TaskBulkDeleteProducts:
		return w.deletes.Execute(ctx, task.ID)
	default:
		reason := fmt.Sprintf("unknown task %q", task.Name)
		if err := w.tasks.Fail(ctx, task.ID, reason); err != nil {
			w.logger.Error("record task failure", "task_id", task.ID, "error", err)
		}
		return fmt.Errorf("%s", reason)
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
