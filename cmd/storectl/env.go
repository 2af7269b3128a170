package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appRepos "github.com/qmc/portal/internal/app/repositories"
	appServices "github.com/qmc/portal/internal/app/services"
	"github.com/qmc/portal/internal/bootstrap"
	"github.com/qmc/portal/internal/pkg/events"
	"github.com/qmc/portal/internal/pkg/idgen"
	"github.com/qmc/portal/internal/pkg/kvstore"
	"github.com/qmc/portal/internal/pkg/logger"
)

// env is what every command works against
type env struct {
	repos  *appRepos.Repositories
	audit  appServices.AuditService
	logger zerolog.Logger

	bus   *events.Bus
	sub   *events.Subscription
	relay *events.PostgresRelay
	pool  *pgxpool.Pool
}

type envOpener func(ctx context.Context, configPath string) (*env, error)

func openEnv(ctx context.Context, configPath string) (*env, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}

	store, pool, err := bootstrap.OpenStore(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	e := newEnv(store, lgr)
	if pool != nil {
		e.pool = pool
		e.relay = events.NewPostgresRelay(pool, e.bus, cfg.Store.NotifyChannel, lgr)
	}
	return e, nil
}

func newEnv(store kvstore.Store, lgr zerolog.Logger) *env {
	bus := events.NewBus(logger.Component("events"))
	repos := appRepos.NewRepositories(store, bus, time.Now, lgr)
	return &env{
		repos:  repos,
		audit:  appServices.NewAuditService(repos.AuditRepository, repos.CredentialsRepository, idgen.NewTimeBased(nil), appServices.Clock(time.Now), lgr),
		logger: lgr,
		bus:    bus,
		sub:    bus.Subscribe(),
	}
}

// close forwards the changes the command made to running servers, then
// releases the store
func (e *env) close(ctx context.Context) {
	defer e.sub.Unsubscribe()
	if e.pool != nil {
		defer e.pool.Close()
	}

	for {
		select {
		case ev := <-e.sub.C:
			if e.relay == nil {
				continue
			}
			if err := e.relay.Forward(ctx, ev); err != nil {
				e.logger.Warn().Err(err).Str("key", ev.Key).Msg("Running servers were not notified")
			}
		default:
			return
		}
	}
}
