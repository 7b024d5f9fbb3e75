package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/hirenearby/internal/services"
	"net/http"
)

func (h *handler) ListBidsForJob(c echo.Context) error {
	bids, err := h.bids.ListBidsForJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bids)
}

func (h *handler) PlaceBid(c echo.Context) error {
	var input services.PlaceBidInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	bid, err := h.bids.PlaceBid(c.Request().Context(), currentUserID(c), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bid)
}

func (h *handler) ListMyBids(c echo.Context) error {
	bids, err := h.bids.ListMyBids(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bids)
}

func (h *handler) AcceptBid(c echo.Context) error {
	bid, err := h.bids.AcceptBid(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bid)
}

func (h *handler) RejectBid(c echo.Context) error {
	bid, err := h.bids.RejectBid(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bid)
}
