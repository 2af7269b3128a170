package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/qmc/portal/internal/app/controllers"
	appMigrations "github.com/qmc/portal/internal/app/migrations"
	appRepos "github.com/qmc/portal/internal/app/repositories"
	appRoutes "github.com/qmc/portal/internal/app/routes"
	appServices "github.com/qmc/portal/internal/app/services"
	"github.com/qmc/portal/internal/app/views"
	"github.com/qmc/portal/internal/config"
	"github.com/qmc/portal/internal/db"
	appMiddleware "github.com/qmc/portal/internal/middleware"
	"github.com/qmc/portal/internal/pkg/aitext"
	pkgAuth "github.com/qmc/portal/internal/pkg/auth"
	"github.com/qmc/portal/internal/pkg/events"
	"github.com/qmc/portal/internal/pkg/helpers"
	"github.com/qmc/portal/internal/pkg/idgen"
	"github.com/qmc/portal/internal/pkg/kvstore"
	"github.com/qmc/portal/internal/pkg/logger"
	"github.com/qmc/portal/internal/pkg/websocket"
	"github.com/qmc/portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuditService        appServices.AuditService
	ConsoleService      appServices.ConsoleService
	BrandingService     appServices.BrandingService
	StaffService        appServices.StaffService
	AdmissionService    appServices.AdmissionService
	RegistrationService appServices.RegistrationService
	QuoteService        appServices.QuoteService
	EnquiryService      appServices.EnquiryService
	DashboardService    appServices.DashboardService
	PageService         appServices.PageService
	Controllers         appRoutes.Controllers
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	Sessions            *pkgAuth.SessionService
	Bus                 *events.Bus
	Hub                 *websocket.Hub
	WSHandler           *websocket.Handler
	Relay               *events.PostgresRelay // nil unless the postgres driver is used
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// OpenStore opens the document store selected by the configuration. The
// pool is nil unless the postgres driver is used; its migrations are applied
// before the store is returned.
func OpenStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (kvstore.Store, *pgxpool.Pool, error) {
	switch cfg.Store.Driver {
	case config.StoreFile:
		store, err := kvstore.NewFileStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store: %w", err)
		}
		lgr.Info().Str("path", cfg.Store.Path).Msg("Using file store")
		return store, nil, nil

	case config.StorePostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool).Up(ctx, appMigrations.Files()); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
		return kvstore.NewPostgresStore(database.Pool), database.Pool, nil

	default:
		lgr.Warn().Msg("Using in-memory store; documents are lost on restart")
		return kvstore.NewMemoryStore(), nil, nil
	}
}

// NewTextGenerator returns the Gemini client, or nil when no API key is
// configured. A nil generator makes every AI answer its fixed fallback.
func NewTextGenerator(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) aitext.Generator {
	if cfg.GenAI.APIKey == "" {
		lgr.Warn().Msg("GEMINI_API_KEY not set; quotes and chat answers use fallbacks")
		return nil
	}
	gen, err := aitext.NewGeminiGenerator(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create Gemini client; using fallbacks")
		return nil
	}
	return gen
}

// SchoolFromConfig returns the school identity the assistant and footer use
func SchoolFromConfig(cfg *config.Config) aitext.School {
	return aitext.School{
		Name:    cfg.School.Name,
		Address: cfg.School.Address,
		Town:    cfg.School.Town,
		Phone:   cfg.School.Phone,
		Values:  cfg.School.Values,
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(
	ctx context.Context,
	cfg *config.Config,
	store kvstore.Store,
	dbPool *pgxpool.Pool,
	gen aitext.Generator,
	lgr zerolog.Logger,
) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	clock := appServices.Clock(time.Now)

	deps.Bus = events.NewBus(logger.Component("events"))
	deps.Repos = appRepos.NewRepositories(store, deps.Bus, time.Now, lgr)

	if err := seed.CreateDefaultData(ctx, deps.Repos, seed.Options{}, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	deps.Sessions = pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey:   cfg.Session.Secret,
		TTL:         helpers.ParseDuration(cfg.Session.TTL, 0),
		TokenIssuer: cfg.Session.Issuer,
	}, time.Now)

	school := SchoolFromConfig(cfg)
	ai := aitext.NewService(gen, helpers.ParseDuration(cfg.GenAI.Timeout, 15*time.Second), school, logger.Component("aitext"))
	ids := idgen.NewTimeBased(time.Now)

	deps.AuditService = appServices.NewAuditService(deps.Repos.AuditRepository, deps.Repos.CredentialsRepository, ids, clock, logger.Component("audit"))
	deps.ConsoleService = appServices.NewConsoleService(deps.Repos.CredentialsRepository, deps.Sessions, deps.AuditService, logger.Component("console"))
	deps.BrandingService = appServices.NewBrandingService(deps.Repos.SiteConfigRepository, deps.Repos.ContentRepository, deps.AuditService)
	deps.StaffService = appServices.NewStaffService(deps.Repos.StaffRepository, deps.AuditService, ids)
	deps.AdmissionService = appServices.NewAdmissionService(deps.Repos.ApplicationRepository, ids, clock, logger.Component("admissions"))
	deps.RegistrationService = appServices.NewRegistrationService(deps.Repos.RegistrationRepository, deps.AuditService, clock)
	deps.QuoteService = appServices.NewQuoteService(deps.Repos.ContentRepository, ai, deps.AuditService)
	deps.EnquiryService = appServices.NewEnquiryService(deps.Repos.SiteConfigRepository, ai)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos, appServices.NewHostProbe(), clock, lgr)
	deps.PageService = appServices.NewPageService(deps.Repos, deps.QuoteService, deps.EnquiryService, deps.StaffService, deps.ConsoleService, school)

	deps.Hub = websocket.NewHub(deps.Bus, logger.Component("websocket"))
	deps.WSHandler = websocket.NewHandler(deps.Hub, cfg.Server.AllowedOrigins, logger.Component("websocket"))
	if dbPool != nil {
		deps.Relay = events.NewPostgresRelay(dbPool, deps.Bus, cfg.Store.NotifyChannel, logger.Component("relay"))
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.ConsoleService)

	deps.Controllers = appRoutes.Controllers{
		View: appControllers.NewViewController(
			views.NewRouter(deps.PageService, time.Now),
			views.NewNavigator(time.Now),
			deps.BrandingService,
			deps.QuoteService,
			deps.StaffService,
		),
		Admission: appControllers.NewAdmissionController(deps.AdmissionService, deps.EnquiryService),
		Console:   appControllers.NewConsoleController(deps.ConsoleService, deps.DashboardService, lgr),
		Branding:  appControllers.NewBrandingController(deps.BrandingService, deps.QuoteService),
		Staff:     appControllers.NewStaffController(deps.StaffService),
		Records:   appControllers.NewRecordsController(deps.AdmissionService, deps.RegistrationService, deps.AuditService),
		Health:    appControllers.NewHealthController(store, cfg.Store.Driver, deps.Hub),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes, wrapped
// in the CORS handler.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) http.Handler {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case strings.EqualFold(cfg.Server.Mode, gin.TestMode):
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupRouter(router, deps.Controllers, deps.WSHandler, deps.AuthMiddleware, cfg.IsProduction())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	if len(cfg.Server.AllowedOrigins) == 0 {
		return router
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})(router)
}
