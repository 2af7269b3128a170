package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/repositories"
	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/idgen"
	"github.com/qmc/portal/internal/pkg/imaging"
	"github.com/qmc/portal/internal/pkg/validation"
)

// StaffDirectory is the public faculty page
type StaffDirectory struct {
	Director models.StaffProfile   `json:"director"`
	Staff    []models.StaffProfile `json:"staff"`
	Query    string                `json:"query,omitempty"`
}

// StaffService manages the faculty roster
type StaffService interface {
	List(ctx context.Context) ([]models.StaffProfile, error)
	Directory(ctx context.Context, query string) (*StaffDirectory, error)
	Add(ctx context.Context, profile models.StaffProfile) (*models.StaffProfile, error)
	Update(ctx context.Context, profile models.StaffProfile) (*models.StaffProfile, error)
	Delete(ctx context.Context, id string, confirmed bool) error
	UpdatePhoto(ctx context.Context, id, image string) (*models.StaffProfile, error)
}

type staffServiceImpl struct {
	staffRepo *repositories.StaffRepository
	audit     AuditService
	ids       idgen.Generator
}

// NewStaffService creates a new staff service instance
func NewStaffService(staffRepo *repositories.StaffRepository, audit AuditService, ids idgen.Generator) StaffService {
	return &staffServiceImpl{staffRepo: staffRepo, audit: audit, ids: ids}
}

// List returns the stored roster without seeding it
func (s *staffServiceImpl) List(ctx context.Context) ([]models.StaffProfile, error) {
	return s.staffRepo.List(ctx)
}

// Directory seeds the initial roster when none is stored, then filters it by
// a case-insensitive match on name or department. The director is profile
// "0", or the first initial profile when that id is gone.
func (s *staffServiceImpl) Directory(ctx context.Context, query string) (*StaffDirectory, error) {
	list, err := s.staffRepo.ListOrSeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading staff: %w", err)
	}

	director := models.InitialStaff()[0]
	if i := models.FindStaff(list, models.DirectorID); i >= 0 {
		director = list[i]
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	others := make([]models.StaffProfile, 0, len(list))
	for _, p := range list {
		if p.ID == models.DirectorID {
			continue
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Department), needle) {
			others = append(others, p)
		}
	}

	return &StaffDirectory{Director: director, Staff: others, Query: query}, nil
}

// Add assigns a fresh id, drawing again if the generator ever repeats one
// already present in the roster
func (s *staffServiceImpl) Add(ctx context.Context, profile models.StaffProfile) (*models.StaffProfile, error) {
	if err := validation.Struct(&profile); err != nil {
		return nil, err
	}

	list, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading staff: %w", err)
	}

	profile.ID = s.ids.NewID()
	for models.FindStaff(list, profile.ID) >= 0 {
		profile.ID = s.ids.NewID()
	}

	if err := s.staffRepo.Save(ctx, append(list, profile)); err != nil {
		return nil, fmt.Errorf("error saving staff: %w", err)
	}
	if _, err := s.audit.AddLog(ctx, "Staff Added", "Record for "+profile.Name, models.LogStaff); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update replaces the profile with the same id
func (s *staffServiceImpl) Update(ctx context.Context, profile models.StaffProfile) (*models.StaffProfile, error) {
	if err := validation.Struct(&profile); err != nil {
		return nil, err
	}

	list, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading staff: %w", err)
	}

	i := models.FindStaff(list, profile.ID)
	if i < 0 {
		return nil, apperrors.ErrStaffNotFound
	}
	list[i] = profile

	if err := s.staffRepo.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("error saving staff: %w", err)
	}
	if _, err := s.audit.AddLog(ctx, "Staff Updated", "Record for "+profile.Name, models.LogStaff); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Delete removes exactly the profile with id once confirmed. An unknown id
// leaves the roster as it is and is logged as "unknown".
func (s *staffServiceImpl) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return apperrors.NewCustomError(apperrors.ErrConfirmationRequired, "Are you sure you want to remove this faculty member?")
	}

	list, err := s.staffRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("error loading staff: %w", err)
	}

	name := "unknown"
	kept := make([]models.StaffProfile, 0, len(list))
	for _, p := range list {
		if p.ID == id {
			if p.Name != "" {
				name = p.Name
			}
			continue
		}
		kept = append(kept, p)
	}

	if err := s.staffRepo.Save(ctx, kept); err != nil {
		return fmt.Errorf("error saving staff: %w", err)
	}
	_, err = s.audit.AddLog(ctx, "Staff Deleted", fmt.Sprintf("Removed %s from records", name), models.LogStaff)
	return err
}

// UpdatePhoto replaces one portrait
func (s *staffServiceImpl) UpdatePhoto(ctx context.Context, id, image string) (*models.StaffProfile, error) {
	if !imaging.IsImageSource(image) {
		return nil, apperrors.NewValidationError().Add("image", "Photo required")
	}

	list, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading staff: %w", err)
	}

	i := models.FindStaff(list, id)
	if i < 0 {
		return nil, apperrors.ErrStaffNotFound
	}
	list[i].ImageURL = image

	if err := s.staffRepo.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("error saving staff: %w", err)
	}
	if _, err := s.audit.AddLog(ctx, "Staff Photo Updated", "New portrait for "+list[i].Name, models.LogStaff); err != nil {
		return nil, err
	}
	updated := list[i]
	return &updated, nil
}
