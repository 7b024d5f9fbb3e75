package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/hirenearby/internal/services"
	"net/http"
)

func (h *handler) Signup(c echo.Context) error {
	var input services.SignupInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	result, err := h.auth.Signup(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *handler) Login(c echo.Context) error {
	var input services.LoginInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *handler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

func (h *handler) UpdateProfile(c echo.Context) error {
	var input services.UpdateProfileInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	user, err := h.auth.UpdateProfile(c.Request().Context(), currentUserID(c), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
