package repositories

import (
	"context"

	"github.com/qmc/portal/internal/app/models"
)

// SiteConfigRepository stores the branding singleton
type SiteConfigRepository struct {
	docs *Documents
}

func NewSiteConfigRepository(docs *Documents) *SiteConfigRepository {
	return &SiteConfigRepository{docs: docs}
}

// Get returns the stored config, seeding the default on first use. A stored
// config without an admission year gets the default year on read only.
func (r *SiteConfigRepository) Get(ctx context.Context) (models.SiteConfig, error) {
	cfg, err := loadOrSeed(ctx, r.docs, models.KeySiteConfig, models.DefaultSiteConfig)
	if err != nil {
		return cfg, err
	}
	if cfg.AdmissionYear == "" {
		cfg.AdmissionYear = models.DefaultAdmissionYear
	}
	return cfg, nil
}

// Save overwrites the whole config
func (r *SiteConfigRepository) Save(ctx context.Context, cfg models.SiteConfig) error {
	return r.docs.Save(ctx, models.KeySiteConfig, cfg)
}

// CredentialsRepository stores the console login singleton
type CredentialsRepository struct {
	docs *Documents
}

func NewCredentialsRepository(docs *Documents) *CredentialsRepository {
	return &CredentialsRepository{docs: docs}
}

// Get returns the stored login, seeding the default on first use
func (r *CredentialsRepository) Get(ctx context.Context) (models.AdminCredentials, error) {
	return loadOrSeed(ctx, r.docs, models.KeyAdminCredentials, models.DefaultAdminCredentials)
}

// Save overwrites the login
func (r *CredentialsRepository) Save(ctx context.Context, creds models.AdminCredentials) error {
	return r.docs.Save(ctx, models.KeyAdminCredentials, creds)
}
