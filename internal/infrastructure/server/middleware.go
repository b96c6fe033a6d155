package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/brightlane/sitecms/internal/adapters/http"
)

// requireAdmin rejects API calls without a valid admin session
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !httpHandlers.IsAdmin(c, s.authService, s.cookie) {
			s.logger.LogSecurityEvent("unauthorized_mutation", c.RealIP(), map[string]interface{}{
				"method": c.Request().Method,
				"path":   c.Request().URL.Path,
			})
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}
		return next(c)
	}
}

// requireAdminPage sends visitors without a session to the login form
func (s *Server) requireAdminPage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !httpHandlers.IsAdmin(c, s.authService, s.cookie) {
			return c.Redirect(http.StatusFound, "/admin/login")
		}
		return next(c)
	}
}

// metricsMiddleware reports every request to prometheus. It sits outside the
// request logger, which has already turned handler errors into responses.
func (s *Server) metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			s.metrics.ObserveRequest(
				c.Request().Method,
				c.Path(),
				c.Response().Status,
				time.Since(start),
			)

			return nil
		}
	}
}
