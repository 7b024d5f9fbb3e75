package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/events"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/maxaizer/hirenearby/internal/logger"
	"github.com/maxaizer/hirenearby/internal/metrics"
	log "github.com/sirupsen/logrus"
	"math"
	"strings"
)

// maxJobsPage is the last page whose row offset still fits in an int.
const maxJobsPage = math.MaxInt / models.JobsPageSize

type jobsRepository interface {
	Add(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetByOwner(ctx context.Context, ownerID string) ([]models.Job, error)
	Find(ctx context.Context, filters models.JobFilters, limit, offset int) ([]models.Job, int64, error)
	UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, []models.Bid, error)
}

type BudgetInput struct {
	Type string  `json:"type" validate:"required,oneof=fixed hourly monthly"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Rate float64 `json:"rate"`
}

func (in BudgetInput) toBudget() models.Budget {
	switch models.BudgetType(in.Type) {
	case models.BudgetHourly:
		return models.HourlyBudget(in.Rate)
	case models.BudgetMonthly:
		return models.MonthlyBudget(in.Rate)
	default:
		return models.FixedBudget(in.Min, in.Max)
	}
}

type CreateJobInput struct {
	Title       string       `json:"title" validate:"required,max=200"`
	Description string       `json:"description" validate:"max=5000"`
	Category    string       `json:"category" validate:"max=100"`
	Location    string       `json:"location" validate:"max=200"`
	Budget      *BudgetInput `json:"budget" validate:"required"`
	Urgent      bool         `json:"urgent"`
}

type JobsService struct {
	jobs  jobsRepository
	bus   EventBus.Bus
	locks *JobLocks
}

func NewJobsService(jobs jobsRepository, bus EventBus.Bus, locks *JobLocks) *JobsService {
	return &JobsService{jobs: jobs, bus: bus, locks: locks}
}

// ListJobs returns one page of jobs matching filters. A non-empty viewerID hides the viewer's own jobs.
func (s *JobsService) ListJobs(ctx context.Context, viewerID string, page int, filters models.JobFilters) (*models.JobsPage, error) {
	if page < 1 {
		page = 1
	}
	if page > maxJobsPage {
		return nil, apperrors.NewValidationError("page must be at most %d", maxJobsPage)
	}
	filters.ExcludePostedBy = viewerID

	jobs, total, err := s.jobs.Find(ctx, filters, models.JobsPageSize, (page-1)*models.JobsPageSize)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to list jobs: %v", err)
		return nil, err
	}

	return &models.JobsPage{Jobs: jobs, Pagination: models.NewPagination(page, models.JobsPageSize, total)}, nil
}

func (s *JobsService) ListMyJobs(ctx context.Context, userID string) ([]models.Job, error) {
	return s.jobs.GetByOwner(ctx, userID)
}

func (s *JobsService) CreateJob(ctx context.Context, ownerID string, input CreateJobInput) (*models.Job, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	budget := input.Budget.toBudget()
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	job := models.NewJob(ownerID, input.Title, strings.TrimSpace(input.Description), strings.TrimSpace(input.Category),
		strings.TrimSpace(input.Location), budget, input.Urgent)
	if err := s.jobs.Add(ctx, job); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to add job: %v", err)
		return nil, err
	}

	metrics.JobsCreatedCounter.Inc()
	log.Infof("job %s posted by %s", job.ID, ownerID)
	return job, nil
}

func (s *JobsService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// UpdateJobStatus lets the owner move the job forward. Bids rejected by a cancellation are announced
// as BidRejected events.
func (s *JobsService) UpdateJobStatus(ctx context.Context, actorID, jobID string, status models.JobStatus) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(actorID) {
		return nil, apperrors.NewForbiddenError("only the job owner can change its status")
	}

	unlock := s.locks.Lock(jobID)
	updated, rejected, err := s.jobs.UpdateStatus(ctx, jobID, status)
	unlock()
	if err != nil {
		return nil, err
	}

	for _, bid := range rejected {
		metrics.BidDecisionsCounter.WithLabelValues(string(models.BidRejected)).Inc()
		s.bus.Publish(events.BidRejectedTopic, events.BidRejected{Bid: bid, Job: *updated})
	}
	return updated, nil
}
