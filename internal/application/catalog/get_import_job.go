package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/product-importer/internal/domain/catalog"
)

type GetImportJobInput struct {
	JobID string
}

type GetImportJobOutput struct {
	JobID            string    `json:"job_id"`
	Filename         string    `json:"filename"`
	TotalRecords     int64     `json:"total_records"`
	ProcessedRecords int64     `json:"processed_records"`
	Status           string    `json:"status"`
	Errors           []string  `json:"errors,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type GetImportJob interface {
	Execute(ctx context.Context, in GetImportJobInput) (GetImportJobOutput, error)
}

type jobGetter interface {
	Get(ctx context.Context, jobID string) (*domain.ImportJob, error)
}

type getImportJob struct {
	jobs jobGetter
}

func NewGetImportJob(jobs jobGetter) GetImportJob {
	return &getImportJob{jobs: jobs}
}

func (uc *getImportJob) Execute(ctx context.Context, in GetImportJobInput) (GetImportJobOutput, error) {
	job, err := uc.jobs.Get(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return GetImportJobOutput{}, ErrJobNotFound
		}
		return GetImportJobOutput{}, fmt.Errorf("get import job: %w", err)
	}

	return GetImportJobOutput{
		JobID:            job.JobID,
		Filename:         job.Filename,
		TotalRecords:     job.TotalRecords,
		ProcessedRecords: job.ProcessedRecords,
		Status:           string(job.Status),
		Errors:           job.Errors,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}, nil
}
