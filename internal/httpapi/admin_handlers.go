package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"net/http"
)

func (h *handler) ListUsers(c echo.Context) error {
	filter, err := models.ToVerificationFilter(c.QueryParam("filter"))
	if err != nil {
		return err
	}

	users, err := h.admin.ListUsers(c.Request().Context(), currentUserID(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *handler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *handler) VerifyUser(c echo.Context) error {
	user, err := h.admin.VerifyUser(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *handler) RejectUser(c echo.Context) error {
	user, err := h.admin.RejectUser(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
