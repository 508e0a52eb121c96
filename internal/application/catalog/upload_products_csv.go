package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Task names on the queue.
const (
	TaskImportProducts     = "import_products"
	TaskBulkDeleteProducts = "bulk_delete_products"
)

// ImportTaskPayload travels over the queue to the worker. Uploads are read
// in full at the boundary, so the payload carries the file content.
type ImportTaskPayload struct {
	JobID    string `json:"job_id"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type UploadProductsCSVInput struct {
	Filename string
	Content  []byte
}

type UploadProductsCSVOutput struct {
	JobID    string `json:"job_id"`
	TaskID   string `json:"task_id"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

type UploadProductsCSV interface {
	Execute(ctx context.Context, in UploadProductsCSVInput) (UploadProductsCSVOutput, error)
}

type jobCreator interface {
	Create(ctx context.Context, jobID, filename string) error
}

type taskEnqueuer interface {
	Enqueue(ctx context.Context, name string, payload any) (string, error)
}

type uploadProductsCSV struct {
	jobs  jobCreator
	queue taskEnqueuer
}

func NewUploadProductsCSV(jobs jobCreator, queue taskEnqueuer) UploadProductsCSV {
	return &uploadProductsCSV{jobs: jobs, queue: queue}
}

// Execute registers a pending job and defers the import to the queue.
// Imports are always asynchronous; the caller gets a job ID and task handle
// back without waiting on any record processing.
func (uc *uploadProductsCSV) Execute(ctx context.Context, in UploadProductsCSVInput) (UploadProductsCSVOutput, error) {
	filename := strings.TrimSpace(in.Filename)
	if filename == "" || strings.ToLower(filepath.Ext(filename)) != ".csv" {
		return UploadProductsCSVOutput{}, ErrInvalidFileType
	}

	jobID := uuid.NewString()
	if err := uc.jobs.Create(ctx, jobID, filename); err != nil {
		return UploadProductsCSVOutput{}, fmt.Errorf("%w: %v", ErrCreateJob, err)
	}

	taskID, err := uc.queue.Enqueue(ctx, TaskImportProducts, ImportTaskPayload{
		JobID:    jobID,
		Filename: filename,
		Content:  string(in.Content),
	})
	if err != nil {
		return UploadProductsCSVOutput{}, fmt.Errorf("%w: %v", ErrEnqueueTask, err)
	}

	return UploadProductsCSVOutput{
		JobID:    jobID,
		TaskID:   taskID,
		Filename: filename,
		Message:  "File upload started",
	}, nil
}
