package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mcetin/courseflow/internal/app/controllers"
	appMigrations "github.com/mcetin/courseflow/internal/app/migrations"
	appRepos "github.com/mcetin/courseflow/internal/app/repositories"
	appRoutes "github.com/mcetin/courseflow/internal/app/routes"
	appServices "github.com/mcetin/courseflow/internal/app/services"
	"github.com/mcetin/courseflow/internal/config"
	"github.com/mcetin/courseflow/internal/db"
	appMiddleware "github.com/mcetin/courseflow/internal/middleware"
	pkgAuth "github.com/mcetin/courseflow/internal/pkg/auth"
	"github.com/mcetin/courseflow/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	RegistryService      *appServices.RegistryService
	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	HealthController     *appControllers.HealthController
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
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
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		lgr.Error().Err(err).Msg("Failed to run migrations")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database migrations applied.")

	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	repos := appRepos.NewRepositories(dbPool)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	authService := appServices.NewAuthService(repos.User, jwtService, lgr)
	registryService := appServices.NewRegistryService(repos.Student, repos.Course, repos.Enrollment, lgr)

	deps := &Dependencies{
		AuthService:          authService,
		RegistryService:      registryService,
		AuthController:       appControllers.NewAuthController(authService, lgr),
		StudentController:    appControllers.NewStudentController(registryService),
		CourseController:     appControllers.NewCourseController(registryService),
		EnrollmentController: appControllers.NewEnrollmentController(registryService, lgr),
		HealthController:     appControllers.NewHealthController(dbPool),
		AuthMiddleware:       appMiddleware.NewAuthMiddleware(authService),
		Repos:                repos,
		JWTService:           jwtService,
		Logger:               lgr,
	}

	return deps, nil
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.StudentController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}
