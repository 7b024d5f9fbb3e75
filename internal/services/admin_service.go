package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/events"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type adminUsersRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Get(ctx context.Context, filter models.VerificationFilter) ([]models.User, error)
	SetVerified(ctx context.Context, id string, verified bool) (*models.User, error)
	Stats(ctx context.Context) (models.UserStats, error)
}

// AdminService holds the user verification workflow. Every call requires an admin actor.
type AdminService struct {
	users adminUsersRepository
	bus   EventBus.Bus
}

func NewAdminService(users adminUsersRepository, bus EventBus.Bus) *AdminService {
	return &AdminService{users: users, bus: bus}
}

func (s *AdminService) ListUsers(ctx context.Context, actorID string, filter models.VerificationFilter) ([]models.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	users, err := s.users.Get(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(user models.User, _ int) models.User {
		return user.Redacted()
	}), nil
}

func (s *AdminService) Stats(ctx context.Context, actorID string) (*models.UserStats, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	stats, err := s.users.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) VerifyUser(ctx context.Context, actorID, userID string) (*models.User, error) {
	return s.setVerified(ctx, actorID, userID, true)
}

func (s *AdminService) RejectUser(ctx context.Context, actorID, userID string) (*models.User, error) {
	return s.setVerified(ctx, actorID, userID, false)
}

func (s *AdminService) setVerified(ctx context.Context, actorID, userID string, verified bool) (*models.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	user, err := s.users.SetVerified(ctx, userID, verified)
	if err != nil {
		return nil, err
	}

	log.Infof("user %s verification set to %t by %s", userID, verified, actorID)
	s.bus.Publish(events.UserVerificationChangedTopic, events.UserVerificationChanged{User: *user, Verified: verified})

	redacted := user.Redacted()
	return &redacted, nil
}

func (s *AdminService) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperrors.NewForbiddenError("admin role required")
	}
	return nil
}
