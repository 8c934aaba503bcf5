// Package bootstrap wires the application together: configuration, logging,
// database, repositories, services, controllers and routes.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/stagehub/stagehub/docs" // generated swagger docs
	appControllers "github.com/stagehub/stagehub/internal/app/controllers"
	appMigrations "github.com/stagehub/stagehub/internal/app/migrations"
	appRepos "github.com/stagehub/stagehub/internal/app/repositories"
	appRoutes "github.com/stagehub/stagehub/internal/app/routes"
	appServices "github.com/stagehub/stagehub/internal/app/services"
	"github.com/stagehub/stagehub/internal/config"
	"github.com/stagehub/stagehub/internal/db"
	appMiddleware "github.com/stagehub/stagehub/internal/middleware"
	pkgAuth "github.com/stagehub/stagehub/internal/pkg/auth"
	"github.com/stagehub/stagehub/internal/pkg/helpers"
	"github.com/stagehub/stagehub/internal/pkg/logger"
	"github.com/stagehub/stagehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	StudentService       appServices.StudentService
	CompanyService       appServices.CompanyService
	InternshipService    appServices.InternshipService
	MessagingService     appServices.MessagingService
	AuthController       *appControllers.AuthController
	HealthController     *appControllers.HealthController
	StudentController    *appControllers.StudentController
	CompanyController    *appControllers.CompanyController
	InternshipController *appControllers.InternshipController
	MessagingController  *appControllers.MessagingController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
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

	lgr := logger.GetLogger()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:     cfg.JWT.Secret,
		TokenExp:      helpers.ParseDuration(cfg.JWT.TokenExpiration, 1*time.Hour),
		TokenIssuer:   cfg.JWT.Issuer,
		TokenAudience: cfg.JWT.Audience,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.UserRepository, lgr)
	deps.CompanyService = appServices.NewCompanyService(deps.Repos.CompanyRepository, deps.Repos.UserRepository, lgr)
	deps.InternshipService = appServices.NewInternshipService(
		deps.Repos.InternshipRepository,
		deps.Repos.CompanyRepository,
		deps.Repos.StudentRepository,
		lgr,
	)
	deps.MessagingService = appServices.NewMessagingService(deps.Repos.MessagingRepository, deps.Repos.UserRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.HealthController = appControllers.NewHealthController(deps.JWTService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.CompanyController = appControllers.NewCompanyController(deps.CompanyService, lgr)
	deps.InternshipController = appControllers.NewInternshipController(deps.InternshipService, lgr)
	deps.MessagingController = appControllers.NewMessagingController(deps.MessagingService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.HealthController,
		deps.StudentController,
		deps.CompanyController,
		deps.InternshipController,
		deps.MessagingController,
		deps.AuthMiddleware,
	)

	return router
}
