package repositories

import (
	"context"
	"github.com/google/uuid"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"gorm.io/gorm"
)

type Bids struct {
	db *gorm.DB
}

func NewBidsRepository(db *gorm.DB) *Bids {
	return &Bids{db: db}
}

// Place stores a new pending bid and bumps the job's bids counter in the same transaction. The job must
// be open, must not belong to the bidder and its budget must admit the amount. Returns the updated job.
func (repo *Bids) Place(ctx context.Context, bid *models.Bid) (*models.Job, error) {
	var job *models.Job

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if job, err = findJob(tx, bid.JobID); err != nil {
			return err
		}
		if err = job.CheckBid(bid.BidderID, bid.Amount); err != nil {
			return err
		}

		bid.ID = uuid.NewString()
		bid.Status = models.BidPending
		if err = tx.Create(bid).Error; err != nil {
			return err
		}

		if err = tx.Model(&models.Job{}).Where("id = ?", job.ID).
			UpdateColumn("bids_count", gorm.Expr("bids_count + 1")).Error; err != nil {
			return err
		}
		job.BidsCount++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (repo *Bids) GetByID(ctx context.Context, id string) (*models.Bid, error) {
	return findBid(repo.db.WithContext(ctx), id)
}

func (repo *Bids) GetByJob(ctx context.Context, jobID string) ([]models.Bid, error) {
	bids := make([]models.Bid, 0)
	if err := repo.db.WithContext(ctx).Where("job_id = ?", jobID).Order("rowid").Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

func (repo *Bids) GetByBidder(ctx context.Context, bidderID string) ([]models.Bid, error) {
	bids := make([]models.Bid, 0)
	if err := repo.db.WithContext(ctx).Where("bidder_id = ?", bidderID).Order("rowid").Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

// Accept marks a pending bid accepted, rejects all its pending siblings and moves the open job to
// in_progress with the bid recorded as accepted, all in one transaction.
func (repo *Bids) Accept(ctx context.Context, id string) (*models.BidDecision, error) {
	decision := &models.BidDecision{Changed: true}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bid, err := findBid(tx, id)
		if err != nil {
			return err
		}
		if !bid.Status.CanTransitionTo(models.BidAccepted) {
			return apperrors.NewConflictError("bid %s is already %s", id, bid.Status)
		}

		job, err := findJob(tx, bid.JobID)
		if err != nil {
			return err
		}
		if job.AcceptedBidID != nil {
			return apperrors.NewConflictError("job %s already has an accepted bid", job.ID)
		}
		if job.Status != models.JobOpen {
			return apperrors.NewConflictError("job %s is %s and cannot accept bids", job.ID, job.Status)
		}

		result := tx.Model(&models.Bid{}).Where("id = ? AND status = ?", id, models.BidPending).
			Update("status", models.BidAccepted)
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return apperrors.NewConflictError("job %s already has an accepted bid", job.ID)
			}
			return result.Error
		}
		if result.RowsAffected != 1 {
			return apperrors.NewConflictError("bid %s was modified concurrently", id)
		}

		if decision.Rejected, err = rejectPendingBids(tx, job.ID, id); err != nil {
			return err
		}

		result = tx.Model(&models.Job{}).Where("id = ? AND status = ?", job.ID, models.JobOpen).
			Updates(map[string]any{"status": models.JobInProgress, "accepted_bid_id": id})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return apperrors.NewConflictError("job %s was modified concurrently", job.ID)
		}
		job.Status = models.JobInProgress
		job.AcceptedBidID = &id

		if bid, err = findBid(tx, id); err != nil {
			return err
		}
		decision.Bid, decision.Job = *bid, *job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decision, nil
}

// Reject marks a pending bid rejected. Rejecting a rejected bid changes nothing; an accepted bid is final.
func (repo *Bids) Reject(ctx context.Context, id string) (*models.BidDecision, error) {
	decision := &models.BidDecision{Rejected: []models.Bid{}}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bid, err := findBid(tx, id)
		if err != nil {
			return err
		}
		job, err := findJob(tx, bid.JobID)
		if err != nil {
			return err
		}

		switch bid.Status {
		case models.BidRejected:
			decision.Bid, decision.Job = *bid, *job
			return nil
		case models.BidAccepted:
			return apperrors.NewConflictError("bid %s is already accepted", id)
		}

		result := tx.Model(&models.Bid{}).Where("id = ? AND status = ?", id, models.BidPending).
			Update("status", models.BidRejected)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return apperrors.NewConflictError("bid %s was modified concurrently", id)
		}

		if bid, err = findBid(tx, id); err != nil {
			return err
		}
		decision.Bid, decision.Job, decision.Changed = *bid, *job, true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decision, nil
}
