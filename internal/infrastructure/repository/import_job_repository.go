package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/product-importer/internal/domain/catalog"
	"github.com/mohammadpnp/product-importer/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// terminalStatuses guard every mutation: a row that has reached one of these
// never changes again.
var terminalStatuses = []string{
	string(domain.StatusCompleted),
	string(domain.StatusCompletedWithErrors),
	string(domain.StatusFailed),
}

// ImportJobRepository is the job tracker: the single source of truth for
// import job state and progress. Each mutation is one atomic UPDATE; the
// worker owning a job is the only writer, so counters never race.
type ImportJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

// Create inserts a pending job row for an externally generated job ID.
func (r *ImportJobRepository) Create(ctx context.Context, jobID, filename string) error {
	job := models.ImportJob{
		JobID:    jobID,
		Filename: filename,
		Status:   string(domain.StatusPending),
	}

	if err := r.db.WithContext(ctx).Create(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateJob
		}
		return fmt.Errorf("create import job: %w", err)
	}
	return nil
}

// Start moves a pending job to processing.
func (r *ImportJobRepository) Start(ctx context.Context, jobID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("job_id = ? AND status = ?", jobID, string(domain.StatusPending)).
		Update("status", string(domain.StatusProcessing))
	if res.Error != nil {
		return fmt.Errorf("start import job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.transitionError(ctx, jobID)
	}
	return nil
}

// SetTotal records the total record count once parsing has finished.
func (r *ImportJobRepository) SetTotal(ctx context.Context, jobID string, total int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("job_id = ? AND status NOT IN ?", jobID, terminalStatuses).
		Update("total_records", total)
	if res.Error != nil {
		return fmt.Errorf("set import job total: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.transitionError(ctx, jobID)
	}
	return nil
}

// Advance writes the processed counter. The guard keeps it monotonic even if
// a stale update is replayed.
func (r *ImportJobRepository) Advance(ctx context.Context, jobID string, processed int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("job_id = ? AND status NOT IN ? AND processed_records <= ?", jobID, terminalStatuses, processed).
		Update("processed_records", processed)
	if res.Error != nil {
		return fmt.Errorf("advance import job: %w", res.Error)
	}
	return nil
}

// Finalize writes the terminal status and retained error messages. Finalizing
// an already-terminal job is rejected with ErrInvalidTransition.
func (r *ImportJobRepository) Finalize(ctx context.Context, jobID string, status domain.JobStatus, errs []string) error {
	if !status.IsTerminal() {
		return fmt.Errorf("%w: %s is not terminal", domain.ErrInvalidTransition, status)
	}

	res := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("job_id = ? AND status NOT IN ?", jobID, terminalStatuses).
		Updates(map[string]any{
			"status": string(status),
			"errors": strings.Join(errs, "\n"),
		})
	if res.Error != nil {
		return fmt.Errorf("finalize import job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.transitionError(ctx, jobID)
	}
	return nil
}

// Get returns the current job snapshot.
func (r *ImportJobRepository) Get(ctx context.Context, jobID string) (*domain.ImportJob, error) {
	var row models.ImportJob

	err := r.db.WithContext(ctx).First(&row, "job_id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("get import job: %w", err)
	}

	var messages []string
	if row.Errors != "" {
		messages = strings.Split(row.Errors, "\n")
	}

	return &domain.ImportJob{
		JobID:            row.JobID,
		Filename:         row.Filename,
		TotalRecords:     row.TotalRecords,
		ProcessedRecords: row.ProcessedRecords,
		Status:           domain.JobStatus(row.Status),
		Errors:           messages,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}

// transitionError tells a missing job apart from an illegal mutation of a
// terminal one.
func (r *ImportJobRepository) transitionError(ctx context.Context, jobID string) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("job_id = ?", jobID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check import job: %w", err)
	}
	if count == 0 {
		return domain.ErrJobNotFound
	}
	return domain.ErrInvalidTransition
}
