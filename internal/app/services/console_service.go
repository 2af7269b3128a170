package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/repositories"
	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/auth"
	"github.com/qmc/portal/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// InvalidCredentialsMessage is shown when a login attempt fails
const InvalidCredentialsMessage = "Invalid credentials. Please use the designated administrator login."

// ConsoleService gates the admin console
type ConsoleService interface {
	Login(ctx context.Context, username, password string) (*auth.Session, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Authenticate(token string) (*auth.Claims, error)
	GetCredentials(ctx context.Context) (models.AdminCredentials, error)
	UpdateCredentials(ctx context.Context, creds models.AdminCredentials) error
}

type consoleServiceImpl struct {
	credsRepo *repositories.CredentialsRepository
	sessions  *auth.SessionService
	audit     AuditService
	logger    zerolog.Logger
}

// NewConsoleService creates a new console service instance
func NewConsoleService(
	credsRepo *repositories.CredentialsRepository,
	sessions *auth.SessionService,
	audit AuditService,
	logger zerolog.Logger,
) ConsoleService {
	return &consoleServiceImpl{
		credsRepo: credsRepo,
		sessions:  sessions,
		audit:     audit,
		logger:    logger,
	}
}

// Login compares both fields exactly against the stored credentials, which
// are re-read on every attempt. Both outcomes are audited.
func (s *consoleServiceImpl) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	creds, err := s.credsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading credentials: %w", err)
	}

	if username != creds.User || password != creds.Pass {
		if _, err := s.audit.AddLog(ctx, "Login Failure", "Attempt with username: "+username, models.LogSecurity); err != nil {
			return nil, err
		}
		s.logger.Warn().Str("username", username).Msg("Console login failed")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, InvalidCredentialsMessage)
	}

	session, err := s.sessions.Issue(creds.User)
	if err != nil {
		return nil, fmt.Errorf("error issuing session: %w", err)
	}
	if _, err := s.audit.AddLog(ctx, "Login Success", "Administrative portal accessed", models.LogSecurity); err != nil {
		s.sessions.Revoke(session.ID)
		return nil, err
	}
	return session, nil
}

func (s *consoleServiceImpl) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.ErrUnauthenticated
	}
	s.sessions.Revoke(claims.ID)
	_, err := s.audit.AddLog(ctx, "Logout", "User signed out manually", models.LogSecurity)
	return err
}

func (s *consoleServiceImpl) Authenticate(token string) (*auth.Claims, error) {
	claims, err := s.sessions.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrSessionExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
	}
	return claims, nil
}

func (s *consoleServiceImpl) GetCredentials(ctx context.Context) (models.AdminCredentials, error) {
	return s.credsRepo.Get(ctx)
}

// UpdateCredentials replaces the login. Live sessions stay valid.
func (s *consoleServiceImpl) UpdateCredentials(ctx context.Context, creds models.AdminCredentials) error {
	if err := validation.Struct(&creds); err != nil {
		return err
	}
	if err := s.credsRepo.Save(ctx, creds); err != nil {
		return fmt.Errorf("error saving credentials: %w", err)
	}
	_, err := s.audit.AddLog(ctx, "Security Update", "Admin credentials modified", models.LogSecurity)
	return err
}
