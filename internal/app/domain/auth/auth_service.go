package auth

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
	"github.com/FACorreiaa/go-photoshare/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/photoapi"
)

// AuthAPI is the part of the photo API that issues and revokes tokens.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, req photoapi.RegisterRequest) error
	Logout(ctx context.Context, token string) error
}

// Ensure implementation satisfies the interface
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the business logic contract.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, req photoapi.RegisterRequest) error
	Logout(ctx context.Context, token string) error
}

// AuthServiceImpl provides the implementation for AuthService.
type AuthServiceImpl struct {
	logger *zap.Logger
	api    AuthAPI
}

// NewAuthService creates a new authentication service instance.
func NewAuthService(api AuthAPI, logger *zap.Logger) *AuthServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthServiceImpl{logger: logger, api: api}
}

// Login exchanges credentials for a session token.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	l := s.logger.With(zap.String("method", "Login"), zap.String("email", email))
	l.Debug("Attempting login")

	ctx, span := otel.Tracer("AuthService").Start(ctx, "AuthService.Login", trace.WithAttributes(
		attribute.String("email", email),
	))
	defer span.End()

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		l.Warn("Login rejected", zap.Int("status", photoapi.StatusOf(err)), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Login failed")
		count(ctx, "login", "failure")
		// Don't reveal whether the account exists or the API is down
		return "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	count(ctx, "login", "success")
	l.Info("Login successful")
	span.SetStatus(codes.Ok, "Logged in")
	return token, nil
}

// Register creates an account. It never signs the user in.
func (s *AuthServiceImpl) Register(ctx context.Context, req photoapi.RegisterRequest) error {
	l := s.logger.With(zap.String("method", "Register"), zap.String("email", req.Email))
	l.Debug("Attempting registration")

	ctx, span := otel.Tracer("AuthService").Start(ctx, "AuthService.Register", trace.WithAttributes(
		attribute.String("email", req.Email),
		attribute.Bool("profile_photo", req.ProfilePhoto != nil),
	))
	defer span.End()

	if err := s.api.Register(ctx, req); err != nil {
		l.Warn("Registration failed", zap.Int("status", photoapi.StatusOf(err)), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Registration failed")
		count(ctx, "register", "failure")
		return fmt.Errorf("registration failed: %w", err)
	}

	count(ctx, "register", "success")
	l.Info("Registration successful")
	span.SetStatus(codes.Ok, "User registered")
	return nil
}

// Logout ends the server-side session. Authorization failures are returned
// unchanged so callers can treat them as already logged out.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	l := s.logger.With(zap.String("method", "Logout"))

	ctx, span := otel.Tracer("AuthService").Start(ctx, "AuthService.Logout")
	defer span.End()

	if err := s.api.Logout(ctx, token); err != nil {
		l.Warn("Logout failed", zap.Int("status", photoapi.StatusOf(err)), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Logout failed")
		count(ctx, "logout", "failure")
		return fmt.Errorf("logout: %w", err)
	}

	count(ctx, "logout", "success")
	l.Info("Logout successful")
	return nil
}

func count(ctx context.Context, action, result string) {
	metrics.Get().AuthRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("result", result),
	))
}
