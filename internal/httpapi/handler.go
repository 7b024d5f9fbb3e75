package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/services"
)

type handler struct {
	auth          *services.AuthService
	jobs          *services.JobsService
	bids          *services.BidsService
	notifications *services.NotificationsService
	admin         *services.AdminService
}

func newHandler(svc Services) *handler {
	return &handler{
		auth:          svc.Auth,
		jobs:          svc.Jobs,
		bids:          svc.Bids,
		notifications: svc.Notifications,
		admin:         svc.Admin,
	}
}

func bindBody(c echo.Context, target any) error {
	if err := c.Bind(target); err != nil {
		return apperrors.NewValidationError("invalid JSON payload")
	}
	return nil
}
