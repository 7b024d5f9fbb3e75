package httpapi

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

func (h *handler) ListNotifications(c echo.Context) error {
	notifications, err := h.notifications.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *handler) UnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

func (h *handler) MarkRead(c echo.Context) error {
	notification, err := h.notifications.MarkRead(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notification)
}

func (h *handler) MarkAllRead(c echo.Context) error {
	updated, err := h.notifications.MarkAllRead(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}
