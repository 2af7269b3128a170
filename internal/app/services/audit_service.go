package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/repositories"
	"github.com/qmc/portal/internal/pkg/helpers"
	"github.com/qmc/portal/internal/pkg/idgen"
	"github.com/rs/zerolog"
)

// AuditService records operator actions
type AuditService interface {
	AddLog(ctx context.Context, action, details string, category models.LogCategory) (*models.LogEntry, error)
	List(ctx context.Context) ([]models.LogEntry, error)
	Clear(ctx context.Context) error
}

type auditServiceImpl struct {
	auditRepo *repositories.AuditRepository
	credsRepo *repositories.CredentialsRepository
	ids       idgen.Generator
	clock     Clock
	logger    zerolog.Logger

	// serializes the read-modify-write of the trail document
	mu sync.Mutex
}

// NewAuditService creates a new audit service instance
func NewAuditService(
	auditRepo *repositories.AuditRepository,
	credsRepo *repositories.CredentialsRepository,
	ids idgen.Generator,
	clock Clock,
	logger zerolog.Logger,
) AuditService {
	return &auditServiceImpl{
		auditRepo: auditRepo,
		credsRepo: credsRepo,
		ids:       ids,
		clock:     clock,
		logger:    logger,
	}
}

// AddLog prepends an entry attributed to the console's admin user and keeps
// the newest MaxAuditEntries
func (s *auditServiceImpl) AddLog(ctx context.Context, action, details string, category models.LogCategory) (*models.LogEntry, error) {
	creds, err := s.credsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error resolving audit user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.auditRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading audit log: %w", err)
	}

	entry := models.LogEntry{
		ID:        s.ids.NewID(),
		Timestamp: helpers.FormatLocaleTimestamp(s.clock.now()),
		User:      creds.User,
		Action:    action,
		Details:   details,
		Category:  category,
	}

	updated := make([]models.LogEntry, 0, len(entries)+1)
	updated = append(updated, entry)
	updated = append(updated, entries...)
	if len(updated) > models.MaxAuditEntries {
		updated = updated[:models.MaxAuditEntries]
	}

	if err := s.auditRepo.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("error saving audit log: %w", err)
	}

	s.logger.Info().
		Str("action", action).
		Str("category", string(category)).
		Str("user", entry.User).
		Msg("Audit entry recorded")
	return &entry, nil
}

func (s *auditServiceImpl) List(ctx context.Context) ([]models.LogEntry, error) {
	return s.auditRepo.List(ctx)
}

// Clear empties the trail without recording that it happened
func (s *auditServiceImpl) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.auditRepo.Clear(ctx); err != nil {
		return fmt.Errorf("error clearing audit log: %w", err)
	}
	s.logger.Warn().Msg("Audit log cleared")
	return nil
}
