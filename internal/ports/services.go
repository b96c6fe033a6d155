package ports

import (
	"context"

	"github.com/brightlane/sitecms/internal/domain/entities"
)

// ServiceCatalog interface for service collection operations
type ServiceCatalog interface {
	List(ctx context.Context) ([]entities.Service, error)
	Get(ctx context.Context, id int) (entities.Service, error)
	Create(ctx context.Context, req entities.ServicePayload) (entities.Service, error)
	Update(ctx context.Context, id int, req entities.ServicePayload) (entities.Service, error)
	Delete(ctx context.Context, id int) error
}

// BlogService interface for blog collection operations
type BlogService interface {
	List(ctx context.Context) ([]entities.Blog, error)
	ListStarred(ctx context.Context) ([]entities.Blog, error)
	Get(ctx context.Context, id int) (entities.Blog, error)
	Create(ctx context.Context, req entities.BlogPayload) (entities.Blog, error)
	Update(ctx context.Context, id int, req entities.BlogPayload) (entities.Blog, error)
	Delete(ctx context.Context, id int) error
	ToggleStar(ctx context.Context, id int) (bool, error)
}

// AuthService interface for the shared-secret admin session
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	ValidateToken(token string) (*AdminClaims, error)
}

// Request/Response Types

type LoginRequest struct {
	Password string `json:"password" form:"password" validate:"required,max=256"`
}

// Session is the signed admin session handed back on login
type Session struct {
	Token     string `json:"-"`
	ExpiresAt int64  `json:"expires_at"`
}

// AdminClaims is the authorization context carried by a valid session
type AdminClaims struct {
	Admin     bool   `json:"admin"`
	SessionID string `json:"session_id"`
}
