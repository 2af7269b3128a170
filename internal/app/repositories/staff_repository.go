package repositories

import (
	"context"

	"github.com/qmc/portal/internal/app/models"
)

// StaffRepository stores the faculty roster as one list
type StaffRepository struct {
	docs *Documents
}

func NewStaffRepository(docs *Documents) *StaffRepository {
	return &StaffRepository{docs: docs}
}

// List returns the roster, empty when none is stored
func (r *StaffRepository) List(ctx context.Context) ([]models.StaffProfile, error) {
	return loadOr(ctx, r.docs, models.KeyStaff, func() []models.StaffProfile {
		return []models.StaffProfile{}
	})
}

// ListOrSeed returns the roster, writing the initial four profiles when none is stored
func (r *StaffRepository) ListOrSeed(ctx context.Context) ([]models.StaffProfile, error) {
	return loadOrSeed(ctx, r.docs, models.KeyStaff, models.InitialStaff)
}

// Save overwrites the roster
func (r *StaffRepository) Save(ctx context.Context, list []models.StaffProfile) error {
	return r.docs.Save(ctx, models.KeyStaff, list)
}
