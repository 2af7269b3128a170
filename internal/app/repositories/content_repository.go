package repositories

import (
	"context"

	"github.com/qmc/portal/internal/app/models"
)

// ContentRepository stores the home page content: notices, gallery, quote
// override and the two featured images
type ContentRepository struct {
	docs *Documents
}

func NewContentRepository(docs *Documents) *ContentRepository {
	return &ContentRepository{docs: docs}
}

func (r *ContentRepository) Notices(ctx context.Context) ([]models.Notice, error) {
	return loadOr(ctx, r.docs, models.KeyNotices, func() []models.Notice { return []models.Notice{} })
}

func (r *ContentRepository) SaveNotices(ctx context.Context, notices []models.Notice) error {
	return r.docs.Save(ctx, models.KeyNotices, notices)
}

func (r *ContentRepository) Media(ctx context.Context) ([]models.MediaAsset, error) {
	return loadOr(ctx, r.docs, models.KeyMediaGallery, func() []models.MediaAsset { return []models.MediaAsset{} })
}

func (r *ContentRepository) SaveMedia(ctx context.Context, assets []models.MediaAsset) error {
	return r.docs.Save(ctx, models.KeyMediaGallery, assets)
}

// Quote returns the stored override, the zero value (not an override) when absent
func (r *ContentRepository) Quote(ctx context.Context) (models.CustomQuote, error) {
	return loadOr(ctx, r.docs, models.KeyQuoteOverride, func() models.CustomQuote { return models.CustomQuote{} })
}

func (r *ContentRepository) SaveQuote(ctx context.Context, q models.CustomQuote) error {
	return r.docs.Save(ctx, models.KeyQuoteOverride, q)
}

func (r *ContentRepository) HeroImage(ctx context.Context) (string, error) {
	return loadOr(ctx, r.docs, models.KeyHeroImage, func() string { return models.DefaultHeroImage })
}

func (r *ContentRepository) SaveHeroImage(ctx context.Context, src string) error {
	return r.docs.Save(ctx, models.KeyHeroImage, src)
}

func (r *ContentRepository) DirectorImage(ctx context.Context) (string, error) {
	return loadOr(ctx, r.docs, models.KeyDirectorImage, func() string { return models.DefaultDirectorImage })
}

func (r *ContentRepository) SaveDirectorImage(ctx context.Context, src string) error {
	return r.docs.Save(ctx, models.KeyDirectorImage, src)
}
