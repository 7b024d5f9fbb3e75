package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/maxaizer/hirenearby/internal/services"
	"net/http"
	"strconv"
)

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *handler) ListJobs(c echo.Context) error {
	page, err := intQuery(c, "page")
	if err != nil {
		return err
	}
	filters, err := jobFiltersFromQuery(c)
	if err != nil {
		return err
	}

	result, err := h.jobs.ListJobs(c.Request().Context(), currentUserID(c), page, filters)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *handler) ListMyJobs(c echo.Context) error {
	jobs, err := h.jobs.ListMyJobs(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

func (h *handler) CreateJob(c echo.Context) error {
	var input services.CreateJobInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	job, err := h.jobs.CreateJob(c.Request().Context(), currentUserID(c), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

func (h *handler) GetJob(c echo.Context) error {
	job, err := h.jobs.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

func (h *handler) UpdateJobStatus(c echo.Context) error {
	var req statusUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	status, err := models.ToJobStatus(req.Status)
	if err != nil {
		return err
	}

	job, err := h.jobs.UpdateJobStatus(c.Request().Context(), currentUserID(c), c.Param("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

func jobFiltersFromQuery(c echo.Context) (models.JobFilters, error) {
	filters := models.JobFilters{
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
	}

	if raw := c.QueryParam("budgetType"); raw != "" {
		budgetType, err := models.ToBudgetType(raw)
		if err != nil {
			return filters, err
		}
		filters.BudgetType = budgetType
	}

	var err error
	if filters.BudgetMin, err = floatQuery(c, "budgetMin"); err != nil {
		return filters, err
	}
	if filters.BudgetMax, err = floatQuery(c, "budgetMax"); err != nil {
		return filters, err
	}

	if raw := c.QueryParam("urgent"); raw != "" {
		urgent, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, apperrors.NewValidationError("urgent must be true or false")
		}
		filters.Urgent = urgent
	}

	return filters, nil
}

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("%s must be a whole number", name)
	}
	return value, nil
}

func floatQuery(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("%s must be a number", name)
	}
	return &value, nil
}
