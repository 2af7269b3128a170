package services

import (
	"context"
	"testing"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffService_DirectorySeedsAndSearches(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	dir, err := env.staff.Directory(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, models.DirectorID, dir.Director.ID)
	assert.Len(t, dir.Staff, 3)

	stored, err := env.staff.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.InitialStaff(), stored)

	dir, err = env.staff.Directory(ctx, "sCiEnCe")
	require.NoError(t, err)
	require.Len(t, dir.Staff, 1)
	assert.Equal(t, "Mr. David Okafor", dir.Staff[0].Name)

	dir, err = env.staff.Directory(ctx, "johnson")
	require.NoError(t, err)
	require.Len(t, dir.Staff, 1)
	assert.Equal(t, "1", dir.Staff[0].ID)
}

func TestStaffService_DirectorFallsBackToInitialProfile(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	require.NoError(t, env.repos.StaffRepository.Save(ctx, []models.StaffProfile{{ID: "7", Name: "Ms. Ada Obi"}}))

	dir, err := env.staff.Directory(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, models.InitialStaff()[0], dir.Director)
	assert.Len(t, dir.Staff, 1)
}

func TestStaffService_Add(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.staff.Add(ctx, models.StaffProfile{Role: "Bursar"})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Required", verr.Fields["name"])

	added, err := env.staff.Add(ctx, models.StaffProfile{ID: "ignored", Name: "Mrs. Grace Bello", Department: "Arts"})
	require.NoError(t, err)
	assert.Equal(t, "101", added.ID)

	logs := env.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, "Staff Added", logs[0].Action)
	assert.Equal(t, "Record for Mrs. Grace Bello", logs[0].Details)
}

func TestStaffService_AddNeverReusesID(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	ids := []string{"5", "5", "6"}
	gen := idgen.Func(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	})
	svc := NewStaffService(env.repos.StaffRepository, env.audit, gen)

	a, err := svc.Add(ctx, models.StaffProfile{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Add(ctx, models.StaffProfile{Name: "B"})
	require.NoError(t, err)

	assert.Equal(t, "5", a.ID)
	assert.Equal(t, "6", b.ID)
}

func TestStaffService_Update(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	require.NoError(t, env.repos.StaffRepository.Save(ctx, models.InitialStaff()))

	_, err := env.staff.Update(ctx, models.StaffProfile{ID: "42", Name: "Nobody"})
	assert.ErrorIs(t, err, apperrors.ErrStaffNotFound)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	p := models.InitialStaff()[2]
	p.Role = "Dean of Science"
	_, err = env.staff.Update(ctx, p)
	require.NoError(t, err)

	list, err := env.staff.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dean of Science", list[2].Role)
	assert.Equal(t, "Staff Updated", env.logs(t)[0].Action)
}

func TestStaffService_Delete(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	require.NoError(t, env.repos.StaffRepository.Save(ctx, models.InitialStaff()))

	err := env.staff.Delete(ctx, "2", false)
	assert.ErrorIs(t, err, apperrors.ErrConfirmationRequired)
	assert.Empty(t, env.logs(t))

	require.NoError(t, env.staff.Delete(ctx, "2", true))

	list, err := env.staff.List(ctx)
	require.NoError(t, err)
	want := models.InitialStaff()
	assert.Equal(t, []models.StaffProfile{want[0], want[1], want[3]}, list)
	assert.Equal(t, "Removed Mr. David Okafor from records", env.logs(t)[0].Details)

	require.NoError(t, env.staff.Delete(ctx, "99", true))
	after, err := env.staff.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, after)
	assert.Equal(t, "Removed unknown from records", env.logs(t)[0].Details)
}

func TestStaffService_UpdatePhoto(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.staff.UpdatePhoto(ctx, "1", "not-an-image")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	const photo = "data:image/png;base64,iVBORw0KGgo="

	// an unvisited directory has no roster to edit and is not seeded here
	_, err = env.staff.UpdatePhoto(ctx, "1", photo)
	assert.ErrorIs(t, err, apperrors.ErrStaffNotFound)
	keys, err := env.store.Keys(ctx)
	require.NoError(t, err)
	assert.NotContains(t, keys, models.KeyStaff)

	_, err = env.staff.Directory(ctx, "")
	require.NoError(t, err)

	updated, err := env.staff.UpdatePhoto(ctx, "1", photo)
	require.NoError(t, err)
	assert.Equal(t, photo, updated.ImageURL)
	assert.Equal(t, "New portrait for Dr. Sarah Johnson", env.logs(t)[0].Details)

	_, err = env.staff.UpdatePhoto(ctx, "77", photo)
	assert.ErrorIs(t, err, apperrors.ErrStaffNotFound)
}
