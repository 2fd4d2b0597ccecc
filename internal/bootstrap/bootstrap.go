package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	appAuth "github.com/yigit/courseplanner/internal/app/auth"
	appControllers "github.com/yigit/courseplanner/internal/app/controllers"
	appMigrations "github.com/yigit/courseplanner/internal/app/migrations"
	appRepos "github.com/yigit/courseplanner/internal/app/repositories"
	appRoutes "github.com/yigit/courseplanner/internal/app/routes"
	appServices "github.com/yigit/courseplanner/internal/app/services"
	"github.com/yigit/courseplanner/internal/config"
	"github.com/yigit/courseplanner/internal/db"
	appMiddleware "github.com/yigit/courseplanner/internal/middleware"
	pkgAuth "github.com/yigit/courseplanner/internal/pkg/auth"
	"github.com/yigit/courseplanner/internal/pkg/logger"
	"github.com/yigit/courseplanner/internal/pkg/metrics"
	"github.com/yigit/courseplanner/internal/pkg/validation"
	"github.com/yigit/courseplanner/internal/seed"
)

// DefaultConfigPath is read when CONFIG_PATH is unset
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	PlanController *appControllers.PlanController
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	Registry       *prometheus.Registry
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.FromSlash(DefaultConfigPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.FromStrings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Str("dbDriver", cfg.Database.Driver).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to Postgres and applies migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := db.Open(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	dir := cfg.Database.MigrationsDir
	if _, err := os.Stat(dir); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations directory %s: %w", dir, err)
	}
	if err := appMigrations.NewMigrator(pool, lgr).MigrateFromDirectory(ctx, dir); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	return pool, nil
}

// BuildRepositories picks the Postgres or in-memory backend and seeds it when configured.
// dbPool is nil for the memory driver.
func BuildRepositories(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) *appRepos.Repositories {
	var repos *appRepos.Repositories
	if cfg.UsesMemoryStore() {
		lgr.Warn().Msg("Using in-memory store; plans are lost on restart")
		repos = appRepos.NewMemoryRepositories(appRepos.NewMemoryStore())
	} else {
		repos = appRepos.NewRepositories(dbPool)
	}

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, repos, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}
	return repos
}

// BuildDependencies initializes services, controllers and middleware over repos.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = metrics.New(deps.Registry)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(repos, appServices.PlanServiceConfig{
		SeniorStandingCredits: cfg.Planner.SeniorStandingCredits,
	}, deps.Metrics, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.AuthzService = appAuth.NewAuthorizationService()
	deps.PlanController = appControllers.NewPlanController(deps.Services.PlanService, deps.AuthzService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.EqualFold(cfg.Server.Mode, "production") {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	validation.RegisterGinValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr, deps.Metrics))

	appRoutes.SetupRouter(router, deps.PlanController, deps.AuthMiddleware, deps.Registry)

	return router
}
