package services

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hirenearby/internal/domain/events"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/maxaizer/hirenearby/internal/logger"
	log "github.com/sirupsen/logrus"
)

type notificationCreator interface {
	Create(ctx context.Context, notification models.Notification) (*models.Notification, error)
}

// NotificationDispatcher turns domain events into notifications. Handlers run on the publishing
// goroutine, so a notification exists by the time the operation that caused it returns. Handlers
// must not publish.
type NotificationDispatcher struct {
	bus           EventBus.Bus
	notifications notificationCreator
	handlers      map[string]any
}

func NewNotificationDispatcher(bus EventBus.Bus, notifications notificationCreator) (*NotificationDispatcher, error) {
	d := &NotificationDispatcher{bus: bus, notifications: notifications}
	d.handlers = map[string]any{
		events.BidPlacedTopic:               d.onBidPlaced,
		events.BidAcceptedTopic:             d.onBidAccepted,
		events.BidRejectedTopic:             d.onBidRejected,
		events.UserVerificationChangedTopic: d.onUserVerificationChanged,
	}

	for topic, handler := range d.handlers {
		if err := bus.Subscribe(topic, handler); err != nil {
			d.Stop()
			return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
	}
	return d, nil
}

func (d *NotificationDispatcher) Stop() {
	for topic, handler := range d.handlers {
		if d.bus.HasCallback(topic) {
			_ = d.bus.Unsubscribe(topic, handler)
		}
	}
}

func (d *NotificationDispatcher) onBidPlaced(event events.BidPlaced) {
	d.create(models.Notification{
		UserID:  event.Job.PostedBy,
		Type:    models.NotificationBidReceived,
		Title:   "New Bid Received",
		Message: fmt.Sprintf("%s placed a bid of %s on your %s job", event.Bid.BidderName, models.FormatAmount(event.Bid.Amount), event.Job.Title),
		JobID:   &event.Job.ID,
		BidID:   &event.Bid.ID,
	})
}

func (d *NotificationDispatcher) onBidAccepted(event events.BidAccepted) {
	d.create(models.Notification{
		UserID:  event.Bid.BidderID,
		Type:    models.NotificationBidAccepted,
		Title:   "Bid Accepted",
		Message: fmt.Sprintf("Your bid of %s on %s was accepted", models.FormatAmount(event.Bid.Amount), event.Job.Title),
		JobID:   &event.Job.ID,
		BidID:   &event.Bid.ID,
	})
}

func (d *NotificationDispatcher) onBidRejected(event events.BidRejected) {
	d.create(models.Notification{
		UserID:  event.Bid.BidderID,
		Type:    models.NotificationBidRejected,
		Title:   "Bid Rejected",
		Message: fmt.Sprintf("Your bid of %s on %s was not selected", models.FormatAmount(event.Bid.Amount), event.Job.Title),
		JobID:   &event.Job.ID,
		BidID:   &event.Bid.ID,
	})
}

func (d *NotificationDispatcher) onUserVerificationChanged(event events.UserVerificationChanged) {
	notification := models.Notification{
		UserID:  event.User.ID,
		Type:    models.NotificationUserRejected,
		Title:   "Verification Rejected",
		Message: "Your account verification was rejected by our admin team",
	}
	if event.Verified {
		notification.Type = models.NotificationUserVerified
		notification.Title = "Account Verified"
		notification.Message = "Your account has been verified by our admin team"
	}
	d.create(notification)
}

func (d *NotificationDispatcher) create(notification models.Notification) {
	if _, err := d.notifications.Create(context.Background(), notification); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeEvents).
			Errorf("failed to dispatch %s notification to user %s: %v", notification.Type, notification.UserID, err)
	}
}
