package services

import (
	"context"
	"fmt"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/repositories"
	"github.com/qmc/portal/internal/pkg/aitext"
	"github.com/qmc/portal/internal/pkg/apperrors"
)

// QuoteService picks the home page quote
type QuoteService interface {
	// HomeQuote returns the override when one is switched on, otherwise a
	// generated quote. It never fails on the generator's account.
	HomeQuote(ctx context.Context) (aitext.Quote, error)
	GetOverride(ctx context.Context) (models.CustomQuote, error)
	SaveOverride(ctx context.Context, q models.CustomQuote) error
}

type quoteServiceImpl struct {
	contentRepo *repositories.ContentRepository
	ai          *aitext.Service
	audit       AuditService
}

// NewQuoteService creates a new quote service instance
func NewQuoteService(contentRepo *repositories.ContentRepository, ai *aitext.Service, audit AuditService) QuoteService {
	return &quoteServiceImpl{contentRepo: contentRepo, ai: ai, audit: audit}
}

func (s *quoteServiceImpl) HomeQuote(ctx context.Context) (aitext.Quote, error) {
	override, err := s.contentRepo.Quote(ctx)
	if err != nil {
		return aitext.Quote{}, err
	}
	if override.IsOverride && override.Text != "" {
		return aitext.Quote{Quote: override.Text, Author: override.Author}, nil
	}
	return s.ai.GetDailyQuote(ctx), nil
}

func (s *quoteServiceImpl) GetOverride(ctx context.Context) (models.CustomQuote, error) {
	return s.contentRepo.Quote(ctx)
}

func (s *quoteServiceImpl) SaveOverride(ctx context.Context, q models.CustomQuote) error {
	if q.IsOverride && q.Text == "" {
		return apperrors.NewValidationError().Add("text", "Required")
	}
	if err := s.contentRepo.SaveQuote(ctx, q); err != nil {
		return fmt.Errorf("error saving quote override: %w", err)
	}

	details := "Switched to generated quote"
	if q.IsOverride {
		details = fmt.Sprintf("Custom quote by %s", q.Author)
	}
	_, err := s.audit.AddLog(ctx, "Quote Update", details, models.LogBranding)
	return err
}
