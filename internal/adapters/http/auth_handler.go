package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brightlane/sitecms/internal/domain/entities"
	"github.com/brightlane/sitecms/internal/infrastructure/logger"
	"github.com/brightlane/sitecms/internal/ports"
)

// ContextKeyAdmin is the echo context key holding *ports.AdminClaims
const ContextKeyAdmin = "admin"

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles admin login and logout over the JSON API
type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, cookie CookieConfig, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// Login godoc
// @Summary Start an admin session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.LoginRequest true "Admin password"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := startSession(c, h.authService, h.cookie, h.logger, req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect password")
		}
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{Success: true, ExpiresAt: session.ExpiresAt})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	clearSessionCookie(c, h.cookie)
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Session reports whether the caller holds a valid admin session
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, SessionResponse{Admin: IsAdmin(c, h.authService, h.cookie)})
}

type LoginResponse struct {
	Success   bool  `json:"success"`
	ExpiresAt int64 `json:"expires_at"`
}

type SessionResponse struct {
	Admin bool `json:"admin"`
}

func startSession(c echo.Context, authService ports.AuthService, cookie CookieConfig, log *logger.Logger, req ports.LoginRequest) (*ports.Session, error) {
	session, err := authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			log.LogSecurityEvent("login_failed", c.RealIP(), map[string]interface{}{
				"path": c.Request().URL.Path,
			})
			return nil, err
		}
		log.Errorw("Login failed", "error", err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Login failed").SetInternal(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  time.Unix(session.ExpiresAt, 0),
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

func clearSessionCookie(c echo.Context, cookie CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// AdminFromRequest returns the authorization context carried by the session
// cookie, or nil when there is no valid session.
func AdminFromRequest(c echo.Context, authService ports.AuthService, cookie CookieConfig) *ports.AdminClaims {
	if claims, ok := c.Get(ContextKeyAdmin).(*ports.AdminClaims); ok {
		return claims
	}

	ck, err := c.Cookie(cookie.Name)
	if err != nil || ck.Value == "" {
		return nil
	}

	claims, err := authService.ValidateToken(ck.Value)
	if err != nil {
		return nil
	}
	c.Set(ContextKeyAdmin, claims)
	return claims
}

// IsAdmin reports whether the request carries a valid admin session
func IsAdmin(c echo.Context, authService ports.AuthService, cookie CookieConfig) bool {
	claims := AdminFromRequest(c, authService, cookie)
	return claims != nil && claims.Admin
}
