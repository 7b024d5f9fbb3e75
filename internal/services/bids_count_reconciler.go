package services

import (
	"context"
	"github.com/maxaizer/hirenearby/internal/logger"
	"github.com/maxaizer/hirenearby/internal/metrics"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type BidsCountRepository interface {
	ReconcileBidsCounts(ctx context.Context) (int64, error)
}

// BidsCountReconciler periodically recomputes the denormalized bids counter of every job.
type BidsCountReconciler struct {
	jobs     BidsCountRepository
	cron     *cron.Cron
	schedule string
}

func NewBidsCountReconciler(jobs BidsCountRepository, schedule string) (*BidsCountReconciler, error) {
	r := &BidsCountReconciler{
		jobs:     jobs,
		cron:     cron.New(),
		schedule: schedule,
	}

	_, err := r.cron.AddFunc(schedule, func() {
		_, _ = r.RunOnce(context.Background())
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *BidsCountReconciler) Start() {
	r.cron.Start()
	log.Infof("bids counter reconciler started, schedule: %s", r.schedule)
}

// Stop prevents new runs and waits for a running one to finish.
func (r *BidsCountReconciler) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce reconciles immediately and returns the number of corrected jobs.
func (r *BidsCountReconciler) RunOnce(ctx context.Context) (int64, error) {
	drifted, err := r.jobs.ReconcileBidsCounts(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to reconcile bids counters: %v", err)
		return 0, err
	}

	metrics.BidsCountDriftCounter.Add(float64(drifted))
	if drifted > 0 {
		log.Warnf("bids counters reconciled, corrected jobs: %d", drifted)
	} else {
		log.Debug("bids counters reconciled, no drift")
	}
	return drifted, nil
}
