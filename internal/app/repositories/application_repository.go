package repositories

import (
	"context"

	"github.com/qmc/portal/internal/app/models"
)

// ApplicationRepository stores submitted admission forms as one list
type ApplicationRepository struct {
	docs *Documents
}

func NewApplicationRepository(docs *Documents) *ApplicationRepository {
	return &ApplicationRepository{docs: docs}
}

// List returns every application in submission order
func (r *ApplicationRepository) List(ctx context.Context) ([]models.AdmissionForm, error) {
	return loadOr(ctx, r.docs, models.KeyApplications, func() []models.AdmissionForm {
		return []models.AdmissionForm{}
	})
}

// Append adds form to the end of the list. This is a read-modify-write: two
// concurrent appends can lose one of them.
func (r *ApplicationRepository) Append(ctx context.Context, form models.AdmissionForm) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	return r.docs.Save(ctx, models.KeyApplications, append(list, form))
}
