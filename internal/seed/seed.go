package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appRepos "github.com/qmc/portal/internal/app/repositories"
)

// Options selects the optional documents to seed
type Options struct {
	// Staff also writes the initial roster. Off at startup, because the home
	// page shows no staff until the roster exists.
	Staff bool
}

// CreateDefaultData writes the compiled-in defaults for every document that
// is absent. Present documents are never touched.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, opts Options, lgr zerolog.Logger) error {
	lgr.Info().Bool("staff", opts.Staff).Msg("Checking/Creating default documents...")
	var finalErr error // To collect potential errors without stopping the process

	if _, err := repos.SiteConfigRepository.Get(ctx); err != nil {
		lgr.Error().Err(err).Msg("Error seeding site config")
		finalErr = errors.Join(finalErr, err)
	}

	if _, err := repos.CredentialsRepository.Get(ctx); err != nil {
		lgr.Error().Err(err).Msg("Error seeding admin credentials")
		finalErr = errors.Join(finalErr, err)
	}

	if opts.Staff {
		if _, err := repos.StaffRepository.ListOrSeed(ctx); err != nil {
			lgr.Error().Err(err).Msg("Error seeding staff roster")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default documents are in place")
	}
	return finalErr
}
