package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/brightlane/sitecms/docs"
	httpHandlers "github.com/brightlane/sitecms/internal/adapters/http"
	"github.com/brightlane/sitecms/internal/application/services"
	"github.com/brightlane/sitecms/internal/infrastructure/config"
	"github.com/brightlane/sitecms/internal/infrastructure/logger"
	"github.com/brightlane/sitecms/internal/infrastructure/metrics"
	"github.com/brightlane/sitecms/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo        *echo.Echo
	config      *config.Config
	logger      *logger.Logger
	repo        ports.CollectionRepository
	metrics     *metrics.Metrics
	authService ports.AuthService
	cookie      httpHandlers.CookieConfig
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance. m may be nil when metrics are disabled.
func New(cfg *config.Config, repo ports.CollectionRepository, appLogger *logger.Logger, m *metrics.Metrics) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	renderer, err := httpHandlers.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	e.Renderer = renderer

	var recorder services.MutationRecorder
	if m != nil {
		recorder = m
	}

	authService, err := services.NewAuthService(cfg.Auth, appLogger)
	if err != nil {
		return nil, err
	}
	catalog := services.NewServiceCatalog(repo, appLogger, recorder)
	blogService := services.NewBlogService(repo, appLogger, recorder)

	cookie := httpHandlers.CookieConfig{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.SecureCookie,
	}

	server := &Server{
		echo:        e,
		config:      cfg,
		logger:      appLogger,
		repo:        repo,
		metrics:     m,
		authService: authService,
		cookie:      cookie,
	}

	server.setupMiddleware()

	server.setupRoutes(
		httpHandlers.NewServiceHandler(catalog, appLogger),
		httpHandlers.NewBlogHandler(blogService, appLogger),
		httpHandlers.NewAuthHandler(authService, cookie, appLogger),
		httpHandlers.NewPageHandler(catalog, blogService, authService, cookie, cfg.App.Name, appLogger),
	)

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	if s.metrics != nil {
		s.echo.Use(s.metricsMiddleware())
	}

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			s.logger.LogHTTPRequest(
				values.Method,
				values.URI,
				values.RequestID,
				values.RemoteIP,
				values.Status,
				float64(values.Latency.Nanoseconds())/1000000,
				values.Error,
			)
			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))

	if limit := s.config.Security.RateLimitRequests; limit > 0 {
		window := s.config.Security.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: s.isOpsPath,
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{Rate: rate.Every(window / time.Duration(limit)), Burst: limit, ExpiresIn: window},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, httpHandlers.ErrorResponse{Error: "rate limit exceeded"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				s.logger.LogSecurityEvent("rate_limited", identifier, map[string]interface{}{
					"path": context.Request().URL.Path,
				})
				return context.JSON(http.StatusTooManyRequests, httpHandlers.ErrorResponse{Error: "rate limit exceeded"})
			},
		}))
	}

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		Skipper: func(c echo.Context) bool {
			// swagger ui ships inline scripts
			return strings.HasPrefix(c.Request().URL.Path, "/swagger/")
		},
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'; img-src * data:",
	}))

	if s.config.Server.BodyLimit != "" {
		s.echo.Use(middleware.BodyLimit(s.config.Server.BodyLimit))
	}

	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: s.config.Server.RequestTimeout,
		}))
	}
}

// isOpsPath reports health and tooling endpoints, which are never rate limited
func (s *Server) isOpsPath(c echo.Context) bool {
	path := c.Request().URL.Path
	switch {
	case path == "/health", path == "/health/detailed", path == "/ready":
		return true
	case s.metrics != nil && path == s.config.Metrics.Path:
		return true
	}
	return strings.HasPrefix(path, "/swagger/")
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(serviceHandler *httpHandlers.ServiceHandler, blogHandler *httpHandlers.BlogHandler, authHandler *httpHandlers.AuthHandler, pageHandler *httpHandlers.PageHandler) {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	if s.metrics != nil {
		s.echo.GET(s.config.Metrics.Path, echo.WrapHandler(s.metrics.Handler()))
	}

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Pages
	s.echo.GET("/", pageHandler.Index)
	s.echo.GET("/blogs", pageHandler.Blogs)

	adminPages := s.echo.Group("/admin")
	adminPages.GET("/login", pageHandler.LoginForm)
	adminPages.POST("/login", pageHandler.LoginSubmit)
	adminPages.GET("/logout", pageHandler.Logout)
	adminPages.GET("/panel", pageHandler.Panel, s.requireAdminPage)

	api := s.echo.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/session", authHandler.Session)

	serviceGroup := api.Group("/services")
	serviceGroup.GET("", serviceHandler.ListServices)
	serviceGroup.GET("/:id", serviceHandler.GetService)
	serviceGroup.POST("", serviceHandler.CreateService, s.requireAdmin)
	serviceGroup.PUT("/:id", serviceHandler.UpdateService, s.requireAdmin)
	serviceGroup.DELETE("/:id", serviceHandler.DeleteService, s.requireAdmin)

	blogGroup := api.Group("/blogs")
	blogGroup.GET("", blogHandler.ListBlogs)
	blogGroup.GET("/starred", blogHandler.ListStarredBlogs)
	blogGroup.GET("/:id", blogHandler.GetBlog)
	blogGroup.POST("", blogHandler.CreateBlog, s.requireAdmin)
	blogGroup.PUT("/:id", blogHandler.UpdateBlog, s.requireAdmin)
	blogGroup.DELETE("/:id", blogHandler.DeleteBlog, s.requireAdmin)
	blogGroup.PUT("/:id/star", blogHandler.ToggleStar, s.requireAdmin)
}

type statsReporter interface {
	Stats() map[string]interface{}
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	storage := map[string]interface{}{
		"driver": s.config.Storage.Driver,
		"status": "ok",
	}

	if err := s.repo.Ping(c.Request().Context()); err != nil {
		status = "error"
		storage["status"] = "error"
		storage["error"] = err.Error()
	} else if sr, ok := s.repo.(statsReporter); ok {
		storage["stats"] = sr.Stats()
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]interface{}{
			"storage": storage,
		},
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.repo.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the router as a plain http.Handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	address := s.config.Server.GetAddr()
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	s.logger.Infow("Starting server", "address", address, "storage", s.config.Storage.Driver)
	err := s.echo.Start(address)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders every error as {"error": "..."}
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  string
		)

		var he *echo.HTTPError
		var ve validator.ValidationErrors
		switch {
		case errors.As(err, &he):
			code = he.Code
			msg = fmt.Sprint(he.Message)
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.As(err, &ve):
			code = http.StatusBadRequest
			msg = ve.Error()
		default:
			msg = http.StatusText(code)
		}

		if code == http.StatusInternalServerError {
			if c.Echo().Debug {
				msg = err.Error()
			}
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, httpHandlers.ErrorResponse{Error: msg})
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
