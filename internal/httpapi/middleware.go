package httpapi

import (
	"context"
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/maxaizer/hirenearby/internal/metrics"
	log "github.com/sirupsen/logrus"
	"strconv"
	"strings"
	"time"
)

const currentUserKey = "currentUser"

type tokenAuthenticator interface {
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
}

// observe logs every request and records its duration by route template.
func observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			elapsed := time.Since(start)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			metrics.HttpRequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(elapsed.Seconds())

			log.WithFields(log.Fields{
				"method":  c.Request().Method,
				"path":    c.Request().URL.Path,
				"status":  status,
				"latency": elapsed.String(),
				"ip":      c.RealIP(),
			}).Debug("http request")
			return nil
		}
	}
}

func requireUser(auth tokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return apperrors.NewAuthenticationError("missing bearer token")
			}
			user, err := auth.GetUserByToken(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// optionalUser resolves the caller when a token is sent and lets anonymous requests through.
func optionalUser(auth tokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return next(c)
			}
			user, err := auth.GetUserByToken(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func currentUser(c echo.Context) *models.User {
	user, _ := c.Get(currentUserKey).(*models.User)
	return user
}

func currentUserID(c echo.Context) string {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return ""
}
