package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/brightlane/sitecms/internal/domain/entities"
	"github.com/brightlane/sitecms/internal/infrastructure/logger"
	"github.com/brightlane/sitecms/internal/ports"
)

// ServiceHandler handles the services API
type ServiceHandler struct {
	catalog ports.ServiceCatalog
	logger  *logger.Logger
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(catalog ports.ServiceCatalog, logger *logger.Logger) *ServiceHandler {
	return &ServiceHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListServices godoc
// @Summary List services
// @Tags services
// @Produce json
// @Success 200 {array} entities.Service
// @Router /services [get]
func (h *ServiceHandler) ListServices(c echo.Context) error {
	services, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to load services")
	}
	return c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetService(c echo.Context) error {
	id, err := parseID(c, "Invalid service ID")
	if err != nil {
		return err
	}

	service, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to load services")
	}
	return c.JSON(http.StatusOK, service)
}

// CreateService godoc
// @Summary Add a service
// @Description The id is assigned by the server
// @Tags services
// @Accept json
// @Produce json
// @Param request body entities.ServicePayload true "Service data"
// @Success 200 {object} entities.Service
// @Failure 401 {object} ErrorResponse
// @Router /services [post]
func (h *ServiceHandler) CreateService(c echo.Context) error {
	var req entities.ServicePayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	service, err := h.catalog.Create(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "Failed to create service")
	}
	return c.JSON(http.StatusOK, service)
}

// UpdateService godoc
// @Summary Replace a service
// @Tags services
// @Accept json
// @Produce json
// @Param id path int true "Service ID"
// @Param request body entities.ServicePayload true "Service data"
// @Success 200 {object} entities.Service
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /services/{id} [put]
func (h *ServiceHandler) UpdateService(c echo.Context) error {
	id, err := parseID(c, "Invalid service ID")
	if err != nil {
		return err
	}

	var req entities.ServicePayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	service, err := h.catalog.Update(c.Request().Context(), id, req)
	if err != nil {
		return h.fail(c, err, "Failed to update service")
	}
	return c.JSON(http.StatusOK, service)
}

// DeleteService succeeds whether or not the id exists
func (h *ServiceHandler) DeleteService(c echo.Context) error {
	id, err := parseID(c, "Invalid service ID")
	if err != nil {
		return err
	}

	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "Failed to delete service")
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *ServiceHandler) fail(c echo.Context, err error, msg string) error {
	if errors.Is(err, entities.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Service not found")
	}
	requestLogger(c, h.logger).WithError(err).Error(msg)
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
}

// BlogHandler handles the blogs API
type BlogHandler struct {
	blogs  ports.BlogService
	logger *logger.Logger
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogs ports.BlogService, logger *logger.Logger) *BlogHandler {
	return &BlogHandler{
		blogs:  blogs,
		logger: logger,
	}
}

// ListBlogs godoc
// @Summary List blog posts
// @Tags blogs
// @Produce json
// @Success 200 {array} entities.Blog
// @Router /blogs [get]
func (h *BlogHandler) ListBlogs(c echo.Context) error {
	blogs, err := h.blogs.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to load blogs")
	}
	return c.JSON(http.StatusOK, blogs)
}

// ListStarredBlogs returns the posts shown on the home page
func (h *BlogHandler) ListStarredBlogs(c echo.Context) error {
	blogs, err := h.blogs.ListStarred(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to load blogs")
	}
	return c.JSON(http.StatusOK, blogs)
}

func (h *BlogHandler) GetBlog(c echo.Context) error {
	id, err := parseID(c, "Invalid blog ID")
	if err != nil {
		return err
	}

	blog, err := h.blogs.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to load blogs")
	}
	return c.JSON(http.StatusOK, blog)
}

// CreateBlog godoc
// @Summary Add a blog post
// @Description New posts are not starred unless the payload says so
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body entities.BlogPayload true "Blog data"
// @Success 200 {object} entities.Blog
// @Failure 401 {object} ErrorResponse
// @Router /blogs [post]
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	var req entities.BlogPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	blog, err := h.blogs.Create(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "Failed to create blog")
	}
	return c.JSON(http.StatusOK, blog)
}

// UpdateBlog godoc
// @Summary Replace a blog post
// @Description The starred flag is kept when the payload omits it
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path int true "Blog ID"
// @Param request body entities.BlogPayload true "Blog data"
// @Success 200 {object} entities.Blog
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{id} [put]
func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	id, err := parseID(c, "Invalid blog ID")
	if err != nil {
		return err
	}

	var req entities.BlogPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	blog, err := h.blogs.Update(c.Request().Context(), id, req)
	if err != nil {
		return h.fail(c, err, "Failed to update blog")
	}
	return c.JSON(http.StatusOK, blog)
}

func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	id, err := parseID(c, "Invalid blog ID")
	if err != nil {
		return err
	}

	if err := h.blogs.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "Failed to delete blog")
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ToggleStar godoc
// @Summary Flip the starred flag of a blog post
// @Tags blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} entities.StarResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{id}/star [put]
func (h *BlogHandler) ToggleStar(c echo.Context) error {
	id, err := parseID(c, "Invalid blog ID")
	if err != nil {
		return err
	}

	starred, err := h.blogs.ToggleStar(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to update blog")
	}
	return c.JSON(http.StatusOK, entities.StarResult{Success: true, Starred: starred})
}

func (h *BlogHandler) fail(c echo.Context, err error, msg string) error {
	if errors.Is(err, entities.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
	}
	requestLogger(c, h.logger).WithError(err).Error(msg)
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
}

// Utility functions and helper types

func requestLogger(c echo.Context, l *logger.Logger) *logger.Logger {
	return l.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID))
}

func parseID(c echo.Context, msg string) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, msg)
	}
	return id, nil
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
