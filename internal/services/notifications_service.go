package services

import (
	"context"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/maxaizer/hirenearby/internal/logger"
	"github.com/maxaizer/hirenearby/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type notificationsRepository interface {
	Add(ctx context.Context, notification *models.Notification) error
	GetByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

// Sink receives every stored notification. Deliver must not block.
type Sink interface {
	Deliver(notification models.Notification)
}

type NotificationsService struct {
	notifications notificationsRepository
	sinks         []Sink
}

func NewNotificationsService(notifications notificationsRepository, sinks ...Sink) *NotificationsService {
	return &NotificationsService{notifications: notifications, sinks: sinks}
}

func (s *NotificationsService) AddSink(sink Sink) {
	s.sinks = append(s.sinks, sink)
}

func (s *NotificationsService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.notifications.GetByUser(ctx, userID)
}

func (s *NotificationsService) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	return s.notifications.MarkRead(ctx, userID, id)
}

func (s *NotificationsService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *NotificationsService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *NotificationsService) Create(ctx context.Context, notification models.Notification) (*models.Notification, error) {
	if err := s.notifications.Add(ctx, &notification); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to store %s notification for user %s: %v", notification.Type, notification.UserID, err)
		return nil, err
	}

	metrics.NotificationsCreatedCounter.WithLabelValues(string(notification.Type)).Inc()
	for _, sink := range s.sinks {
		sink.Deliver(notification)
	}
	return &notification, nil
}
