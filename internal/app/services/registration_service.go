package services

import (
	"context"
	"fmt"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/repositories"
)

// RegistrationService issues student registration numbers
type RegistrationService interface {
	State(ctx context.Context) (models.RegistrationState, error)
	Issue(ctx context.Context) (string, error)
}

type registrationServiceImpl struct {
	regRepo *repositories.RegistrationRepository
	audit   AuditService
	clock   Clock
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(regRepo *repositories.RegistrationRepository, audit AuditService, clock Clock) RegistrationService {
	return &registrationServiceImpl{regRepo: regRepo, audit: audit, clock: clock}
}

func (s *registrationServiceImpl) State(ctx context.Context) (models.RegistrationState, error) {
	return s.regRepo.State(ctx)
}

// Issue bumps the counter and records the new number. The counter, last id
// and history are three independent writes; concurrent issuers race.
func (s *registrationServiceImpl) Issue(ctx context.Context) (string, error) {
	state, err := s.regRepo.State(ctx)
	if err != nil {
		return "", fmt.Errorf("error loading registration state: %w", err)
	}

	next := state.Count + 1
	id := models.RegistrationNumber(s.clock.now().Year(), next)

	if err := s.regRepo.SetCount(ctx, next); err != nil {
		return "", fmt.Errorf("error saving registration count: %w", err)
	}
	if err := s.regRepo.SetLastID(ctx, id); err != nil {
		return "", fmt.Errorf("error saving registration id: %w", err)
	}
	if err := s.regRepo.SaveHistory(ctx, append(state.History, id)); err != nil {
		return "", fmt.Errorf("error saving registration history: %w", err)
	}

	if _, err := s.audit.AddLog(ctx, "Registration Issued", id, models.LogSystem); err != nil {
		return "", err
	}
	return id, nil
}
