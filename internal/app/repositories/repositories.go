package repositories

import (
	"time"

	"github.com/qmc/portal/internal/pkg/events"
	"github.com/qmc/portal/internal/pkg/kvstore"
	"github.com/rs/zerolog"
)

// Repositories holds all the repository instances
type Repositories struct {
	Documents              *Documents
	SiteConfigRepository   *SiteConfigRepository
	CredentialsRepository  *CredentialsRepository
	StaffRepository        *StaffRepository
	ApplicationRepository  *ApplicationRepository
	AuditRepository        *AuditRepository
	RegistrationRepository *RegistrationRepository
	ContentRepository      *ContentRepository
}

// NewRepositories initializes all repositories over one store
func NewRepositories(store kvstore.Store, bus *events.Bus, now func() time.Time, logger zerolog.Logger) *Repositories {
	docs := NewDocuments(store, bus, logger)
	return &Repositories{
		Documents:              docs,
		SiteConfigRepository:   NewSiteConfigRepository(docs),
		CredentialsRepository:  NewCredentialsRepository(docs),
		StaffRepository:        NewStaffRepository(docs),
		ApplicationRepository:  NewApplicationRepository(docs),
		AuditRepository:        NewAuditRepository(docs),
		RegistrationRepository: NewRegistrationRepository(docs, now),
		ContentRepository:      NewContentRepository(docs),
	}
}
