package repositories

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"gorm.io/gorm"
)

const (
	budgetLowerBound = "CASE WHEN budget_type = 'fixed' THEN budget_min ELSE budget_rate END"
	budgetUpperBound = "CASE WHEN budget_type = 'fixed' THEN budget_max ELSE budget_rate END"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) Add(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	return repo.db.WithContext(ctx).Create(job).Error
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	return findJob(repo.db.WithContext(ctx), id)
}

func (repo *Jobs) GetByOwner(ctx context.Context, ownerID string) ([]models.Job, error) {
	jobs := make([]models.Job, 0)
	if err := repo.db.WithContext(ctx).Where("posted_by = ?", ownerID).Order("rowid").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Find returns one window of the jobs matching filters in insertion order, with the total number of matches.
func (repo *Jobs) Find(ctx context.Context, filters models.JobFilters, limit, offset int) ([]models.Job, int64, error) {
	var total int64
	if err := repo.filtered(ctx, filters).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	jobs := make([]models.Job, 0, limit)
	if err := repo.filtered(ctx, filters).Order("rowid").Limit(limit).Offset(offset).
		Find(&jobs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find jobs: %w", err)
	}
	return jobs, total, nil
}

func (repo *Jobs) filtered(ctx context.Context, filters models.JobFilters) *gorm.DB {
	query := repo.db.WithContext(ctx).Model(&models.Job{})

	if filters.Category != "" {
		query = query.Where("LOWER(category) LIKE ? ESCAPE '\\'", containsPattern(filters.Category))
	}
	if filters.Location != "" {
		query = query.Where("LOWER(location) LIKE ? ESCAPE '\\'", containsPattern(filters.Location))
	}
	if filters.BudgetType != "" {
		query = query.Where("budget_type = ?", filters.BudgetType)
	}
	if filters.BudgetMin != nil {
		query = query.Where(budgetLowerBound+" >= ?", *filters.BudgetMin)
	}
	if filters.BudgetMax != nil {
		query = query.Where(budgetUpperBound+" <= ?", *filters.BudgetMax)
	}
	if filters.Urgent {
		query = query.Where("urgent = ?", true)
	}
	if filters.ExcludePostedBy != "" {
		query = query.Where("posted_by <> ?", filters.ExcludePostedBy)
	}
	return query
}

// UpdateStatus moves the job to status. Setting the current status again changes nothing. Cancelling
// rejects every pending bid on the job; those bids are returned.
func (repo *Jobs) UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, []models.Bid, error) {
	var job *models.Job
	rejected := make([]models.Bid, 0)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if job, err = findJob(tx, id); err != nil {
			return err
		}
		if job.Status == status {
			return nil
		}
		if job.Status == models.JobOpen && status == models.JobInProgress {
			return apperrors.NewConflictError("job %s starts only when one of its bids is accepted", id)
		}
		if !job.Status.CanTransitionTo(status) {
			return apperrors.NewConflictError("job status cannot change from %s to %s", job.Status, status)
		}

		result := tx.Model(&models.Job{}).Where("id = ? AND status = ?", id, job.Status).Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return apperrors.NewConflictError("job %s was modified concurrently", id)
		}
		job.Status = status

		if status == models.JobCancelled {
			rejected, err = rejectPendingBids(tx, id, "")
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return job, rejected, nil
}

// ReconcileBidsCounts rewrites bids_count for every job whose counter disagrees with the bids table and
// returns how many jobs were corrected.
func (repo *Jobs) ReconcileBidsCounts(ctx context.Context) (int64, error) {
	const actual = "(SELECT COUNT(*) FROM bids WHERE bids.job_id = jobs.id)"
	result := repo.db.WithContext(ctx).Exec("UPDATE jobs SET bids_count = " + actual +
		" WHERE bids_count <> " + actual)
	return result.RowsAffected, result.Error
}

func (repo *Jobs) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.Job{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// rejectPendingBids rejects the pending bids of a job, except the one with id keepID, and returns them reloaded.
func rejectPendingBids(tx *gorm.DB, jobID, keepID string) ([]models.Bid, error) {
	var ids []string
	query := tx.Model(&models.Bid{}).Where("job_id = ? AND status = ?", jobID, models.BidPending)
	if keepID != "" {
		query = query.Where("id <> ?", keepID)
	}
	if err := query.Order("rowid").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	rejected := make([]models.Bid, 0, len(ids))
	if len(ids) == 0 {
		return rejected, nil
	}

	if err := tx.Model(&models.Bid{}).Where("id IN ?", ids).Update("status", models.BidRejected).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("id IN ?", ids).Order("rowid").Find(&rejected).Error; err != nil {
		return nil, err
	}
	return rejected, nil
}
