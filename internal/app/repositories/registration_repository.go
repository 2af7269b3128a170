package repositories

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/pkg/apperrors"
)

// RegistrationRepository stores the registration counter, the last issued
// number and the issue history under three separate keys
type RegistrationRepository struct {
	docs *Documents
	now  func() time.Time
}

func NewRegistrationRepository(docs *Documents, now func() time.Time) *RegistrationRepository {
	if now == nil {
		now = time.Now
	}
	return &RegistrationRepository{docs: docs, now: now}
}

// Count returns the registered student count. Quoted numbers are accepted
// because older stores kept the counter as a string.
func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	raw, err := loadOr(ctx, r.docs, models.KeyRegisteredCount, func() json.RawMessage { return nil })
	if err != nil || raw == nil {
		return models.DefaultRegisteredCount, err
	}

	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	n, convErr := strconv.Atoi(text)
	if convErr != nil {
		return 0, apperrors.NewCorruptDocumentError(models.KeyRegisteredCount, convErr)
	}
	return n, nil
}

func (r *RegistrationRepository) SetCount(ctx context.Context, n int) error {
	return r.docs.Save(ctx, models.KeyRegisteredCount, n)
}

// LastID returns the last issued number, or the number of the default count in the current year
func (r *RegistrationRepository) LastID(ctx context.Context) (string, error) {
	return loadOr(ctx, r.docs, models.KeyLastRegID, func() string {
		return models.RegistrationNumber(r.now().Year(), models.DefaultRegisteredCount)
	})
}

func (r *RegistrationRepository) SetLastID(ctx context.Context, id string) error {
	return r.docs.Save(ctx, models.KeyLastRegID, id)
}

func (r *RegistrationRepository) History(ctx context.Context) ([]string, error) {
	return loadOr(ctx, r.docs, models.KeyRegHistory, func() []string { return []string{} })
}

func (r *RegistrationRepository) SaveHistory(ctx context.Context, history []string) error {
	return r.docs.Save(ctx, models.KeyRegHistory, history)
}

// State reads all three registration documents
func (r *RegistrationRepository) State(ctx context.Context) (models.RegistrationState, error) {
	var st models.RegistrationState
	var err error
	if st.Count, err = r.Count(ctx); err != nil {
		return st, err
	}
	if st.LastID, err = r.LastID(ctx); err != nil {
		return st, err
	}
	if st.History, err = r.History(ctx); err != nil {
		return st, err
	}
	return st, nil
}
