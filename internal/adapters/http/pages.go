package http

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightlane/sitecms/internal/domain/entities"
	"github.com/brightlane/sitecms/internal/infrastructure/logger"
	"github.com/brightlane/sitecms/internal/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer renders the embedded page templates for echo
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates
func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: t}, nil
}

// Render implements echo.Renderer
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// PageData is the model passed to every page template
type PageData struct {
	Title    string
	Admin    bool
	Error    string
	Services []entities.Service
	Blogs    []entities.Blog
}

// PageHandler serves the server-rendered site and the admin form login
type PageHandler struct {
	catalog     ports.ServiceCatalog
	blogs       ports.BlogService
	authService ports.AuthService
	cookie      CookieConfig
	siteName    string
	logger      *logger.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(catalog ports.ServiceCatalog, blogs ports.BlogService, authService ports.AuthService, cookie CookieConfig, siteName string, logger *logger.Logger) *PageHandler {
	return &PageHandler{
		catalog:     catalog,
		blogs:       blogs,
		authService: authService,
		cookie:      cookie,
		siteName:    siteName,
		logger:      logger,
	}
}

// Index renders the services and the starred posts
func (h *PageHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()

	services, err := h.catalog.List(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	starred, err := h.blogs.ListStarred(ctx)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Render(http.StatusOK, "index.html", h.page(c, h.siteName, func(p *PageData) {
		p.Services = services
		p.Blogs = starred
	}))
}

// Blogs renders every post
func (h *PageHandler) Blogs(c echo.Context) error {
	blogs, err := h.blogs.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.Render(http.StatusOK, "blogs.html", h.page(c, "Blog", func(p *PageData) {
		p.Blogs = blogs
	}))
}

func (h *PageHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_login.html", h.page(c, "Admin login", nil))
}

// LoginSubmit checks the form password and redirects to the panel on success
func (h *PageHandler) LoginSubmit(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return h.loginError(c)
	}

	if _, err := startSession(c, h.authService, h.cookie, h.logger, req); err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			return h.loginError(c)
		}
		return err
	}

	return c.Redirect(http.StatusFound, "/admin/panel")
}

func (h *PageHandler) Logout(c echo.Context) error {
	clearSessionCookie(c, h.cookie)
	return c.Redirect(http.StatusFound, "/")
}

// Panel renders both collections for the admin
func (h *PageHandler) Panel(c echo.Context) error {
	ctx := c.Request().Context()

	services, err := h.catalog.List(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	blogs, err := h.blogs.List(ctx)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Render(http.StatusOK, "admin_panel.html", h.page(c, "Admin panel", func(p *PageData) {
		p.Services = services
		p.Blogs = blogs
	}))
}

func (h *PageHandler) loginError(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_login.html", h.page(c, "Admin login", func(p *PageData) {
		p.Error = "Incorrect password"
	}))
}

func (h *PageHandler) page(c echo.Context, title string, fill func(*PageData)) PageData {
	p := PageData{
		Title: title,
		Admin: IsAdmin(c, h.authService, h.cookie),
	}
	if fill != nil {
		fill(&p)
	}
	return p
}

func (h *PageHandler) fail(c echo.Context, err error) error {
	requestLogger(c, h.logger).WithError(err).Error("Failed to load page content")
	return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load content").SetInternal(err)
}
