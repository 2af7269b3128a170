package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/qmc/portal/internal/app/repositories"
	"github.com/qmc/portal/internal/pkg/aitext"
	"github.com/qmc/portal/internal/pkg/apperrors"
)

// EnquiryService answers admission questions on the admissions page
type EnquiryService interface {
	Welcome(ctx context.Context) (string, error)
	Ask(ctx context.Context, query string) (string, error)
}

type enquiryServiceImpl struct {
	siteRepo *repositories.SiteConfigRepository
	ai       *aitext.Service
}

// NewEnquiryService creates a new enquiry service instance
func NewEnquiryService(siteRepo *repositories.SiteConfigRepository, ai *aitext.Service) EnquiryService {
	return &enquiryServiceImpl{siteRepo: siteRepo, ai: ai}
}

// Welcome is the assistant's opening message
func (s *enquiryServiceImpl) Welcome(ctx context.Context) (string, error) {
	cfg, err := s.siteRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Welcome to the %s Admissions Portal! I'm here to help you join our regal community for the %s session. "+
		"Do you have any questions about requirements or the classes we offer?", cfg.CollegeName, cfg.AdmissionYear), nil
}

// Ask forwards a question to the assistant; blank questions are rejected
// before any call is made
func (s *enquiryServiceImpl) Ask(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", apperrors.NewValidationError().Add("query", "Please type a question")
	}
	return s.ai.GetAdmissionChatResponse(ctx, query), nil
}
