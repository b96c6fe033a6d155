package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightlane/sitecms/internal/domain/entities"
	"github.com/brightlane/sitecms/internal/infrastructure/config"
	"github.com/brightlane/sitecms/internal/infrastructure/logger"
	"github.com/brightlane/sitecms/internal/ports"
)

const tokenIssuer = "sitecms"

// Claims represents the JWT claims of an admin session
type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// AuthService checks the shared admin password and issues session tokens
type AuthService struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	logger       *logger.Logger
	now          func() time.Time
}

// NewAuthService creates a new auth service. A configured password hash wins
// over the plain password.
func NewAuthService(cfg config.AuthConfig, logger *logger.Logger) (*AuthService, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		if cfg.AdminPassword == "" {
			return nil, errors.New("admin password is not configured")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &AuthService{
		passwordHash: hash,
		secret:       []byte(cfg.SessionSecret),
		ttl:          ttl,
		logger:       logger.WithComponent("auth"),
		now:          time.Now,
	}, nil
}

var _ ports.AuthService = (*AuthService)(nil)

// Login compares the password with the admin secret and issues a session
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.Session, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return nil, entities.ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	s.logger.Infow("Admin session issued", "session_id", claims.ID)

	return &ports.Session{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// ValidateToken verifies a session token and returns its authorization context
func (s *AuthService) ValidateToken(tokenString string) (*ports.AdminClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrUnauthorized, err)
	}
	if !token.Valid || !claims.Admin {
		return nil, entities.ErrUnauthorized
	}

	return &ports.AdminClaims{
		Admin:     true,
		SessionID: claims.ID,
	}, nil
}

// HashPassword returns the bcrypt hash to put in auth.admin_password_hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
