package services

import (
	"context"
	"fmt"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/repositories"
	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/imaging"
	"github.com/qmc/portal/internal/pkg/validation"
)

// BrandingService edits the site identity and the featured images
type BrandingService interface {
	GetConfig(ctx context.Context) (models.SiteConfig, error)
	UpdateConfig(ctx context.Context, cfg models.SiteConfig) error
	SetHeroImage(ctx context.Context, src string) error
	SetDirectorImage(ctx context.Context, src string) error
}

type brandingServiceImpl struct {
	siteRepo    *repositories.SiteConfigRepository
	contentRepo *repositories.ContentRepository
	audit       AuditService
}

// NewBrandingService creates a new branding service instance
func NewBrandingService(
	siteRepo *repositories.SiteConfigRepository,
	contentRepo *repositories.ContentRepository,
	audit AuditService,
) BrandingService {
	return &brandingServiceImpl{siteRepo: siteRepo, contentRepo: contentRepo, audit: audit}
}

func (s *brandingServiceImpl) GetConfig(ctx context.Context) (models.SiteConfig, error) {
	return s.siteRepo.Get(ctx)
}

// UpdateConfig overwrites the whole config. Saving publishes the change that
// refreshes the navbar of every open view.
func (s *brandingServiceImpl) UpdateConfig(ctx context.Context, cfg models.SiteConfig) error {
	if err := validation.Struct(&cfg); err != nil {
		return err
	}
	if err := s.siteRepo.Save(ctx, cfg); err != nil {
		return fmt.Errorf("error saving site config: %w", err)
	}
	_, err := s.audit.AddLog(ctx, "Branding Update", fmt.Sprintf("Updated %s configuration", cfg.CollegeName), models.LogBranding)
	return err
}

func (s *brandingServiceImpl) SetHeroImage(ctx context.Context, src string) error {
	if !imaging.IsImageSource(src) {
		return fmt.Errorf("%w: hero image must be an image URL", apperrors.ErrValidationFailed)
	}
	if err := s.contentRepo.SaveHeroImage(ctx, src); err != nil {
		return fmt.Errorf("error saving hero image: %w", err)
	}
	_, err := s.audit.AddLog(ctx, "Media Update", "Hero image replaced", models.LogBranding)
	return err
}

func (s *brandingServiceImpl) SetDirectorImage(ctx context.Context, src string) error {
	if !imaging.IsImageSource(src) {
		return fmt.Errorf("%w: director image must be an image URL", apperrors.ErrValidationFailed)
	}
	if err := s.contentRepo.SaveDirectorImage(ctx, src); err != nil {
		return fmt.Errorf("error saving director image: %w", err)
	}
	_, err := s.audit.AddLog(ctx, "Media Update", "Director portrait replaced", models.LogBranding)
	return err
}
