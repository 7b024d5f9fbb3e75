package httpapi

import (
	"context"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/config"
	"github.com/maxaizer/hirenearby/internal/logger"
	"github.com/maxaizer/hirenearby/internal/services"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

type Services struct {
	Auth          *services.AuthService
	Jobs          *services.JobsService
	Bids          *services.BidsService
	Notifications *services.NotificationsService
	Admin         *services.AdminService
}

type Server struct {
	echo    *echo.Echo
	address string
}

func New(cfg config.HTTPConfig, svc Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = renderError

	e.Use(middleware.Recover())
	e.Use(observe())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", RateLimiter(cfg.RateLimitPerMinute))
	register(api, newHandler(svc))

	return &Server{echo: e, address: cfg.Address}
}

// Start blocks until the server stops. A graceful shutdown is not reported as an error.
func (s *Server) Start() error {
	log.Infof("http server listening on %s", s.address)
	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func renderError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := http.StatusInternalServerError, "internal server error"
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status, message = httpErr.Code, fmt.Sprint(httpErr.Message)
	} else if apperrors.IsDomain(err) {
		status, message = apperrors.StatusCode(err), err.Error()
	}

	if status >= http.StatusInternalServerError {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).
			Errorf("%s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, echo.Map{"error": message})
	}
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("failed to write error response: %v", err)
	}
}
