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
	"strings"
)

type bidsRepository interface {
	Place(ctx context.Context, bid *models.Bid) (*models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Bid, error)
	GetByJob(ctx context.Context, jobID string) ([]models.Bid, error)
	GetByBidder(ctx context.Context, bidderID string) ([]models.Bid, error)
	Accept(ctx context.Context, id string) (*models.BidDecision, error)
	Reject(ctx context.Context, id string) (*models.BidDecision, error)
}

type userLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type PlaceBidInput struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message" validate:"max=2000"`
}

type BidsService struct {
	bids  bidsRepository
	jobs  jobsRepository
	users userLookup
	bus   EventBus.Bus
	locks *JobLocks
}

func NewBidsService(bids bidsRepository, jobs jobsRepository, users userLookup, bus EventBus.Bus,
	locks *JobLocks) *BidsService {
	return &BidsService{bids: bids, jobs: jobs, users: users, bus: bus, locks: locks}
}

func (s *BidsService) ListBidsForJob(ctx context.Context, jobID string) ([]models.Bid, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.bids.GetByJob(ctx, jobID)
}

func (s *BidsService) ListMyBids(ctx context.Context, userID string) ([]models.Bid, error) {
	return s.bids.GetByBidder(ctx, userID)
}

func (s *BidsService) PlaceBid(ctx context.Context, bidderID, jobID string, input PlaceBidInput) (*models.Bid, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	bidder, err := s.users.GetByID(ctx, bidderID)
	if err != nil {
		return nil, err
	}

	bid := models.NewBid(jobID, bidder.ID, bidder.Name, input.Amount, strings.TrimSpace(input.Message))
	job, err := s.bids.Place(ctx, bid)
	if err != nil {
		if !apperrors.IsDomain(err) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to place bid on job %s: %v", jobID, err)
		}
		return nil, err
	}

	metrics.BidsPlacedCounter.Inc()
	s.bus.Publish(events.BidPlacedTopic, events.BidPlaced{Bid: *bid, Job: *job})
	return bid, nil
}

// AcceptBid accepts the bid on behalf of the job owner and rejects every other pending bid on the job.
func (s *BidsService) AcceptBid(ctx context.Context, ownerID, bidID string) (*models.Bid, error) {
	decision, err := s.decide(ctx, ownerID, bidID, s.bids.Accept)
	if err != nil {
		return nil, err
	}

	metrics.BidDecisionsCounter.WithLabelValues(string(models.BidAccepted)).Inc()
	s.bus.Publish(events.BidAcceptedTopic, events.BidAccepted{Bid: decision.Bid, Job: decision.Job})
	for _, sibling := range decision.Rejected {
		metrics.BidDecisionsCounter.WithLabelValues(string(models.BidRejected)).Inc()
		s.bus.Publish(events.BidRejectedTopic, events.BidRejected{Bid: sibling, Job: decision.Job})
	}

	log.Infof("bid %s accepted on job %s, %d sibling bids rejected", bidID, decision.Job.ID, len(decision.Rejected))
	return &decision.Bid, nil
}

func (s *BidsService) RejectBid(ctx context.Context, ownerID, bidID string) (*models.Bid, error) {
	decision, err := s.decide(ctx, ownerID, bidID, s.bids.Reject)
	if err != nil {
		return nil, err
	}

	if decision.Changed {
		metrics.BidDecisionsCounter.WithLabelValues(string(models.BidRejected)).Inc()
		s.bus.Publish(events.BidRejectedTopic, events.BidRejected{Bid: decision.Bid, Job: decision.Job})
	}
	return &decision.Bid, nil
}

func (s *BidsService) decide(ctx context.Context, ownerID, bidID string,
	apply func(ctx context.Context, id string) (*models.BidDecision, error)) (*models.BidDecision, error) {

	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, bid.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(ownerID) {
		return nil, apperrors.NewForbiddenError("only the job owner can decide on its bids")
	}

	unlock := s.locks.Lock(job.ID)
	defer unlock()

	decision, err := apply(ctx, bidID)
	if err != nil && !apperrors.IsDomain(err) {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to decide on bid %s: %v", bidID, err)
	}
	return decision, err
}
