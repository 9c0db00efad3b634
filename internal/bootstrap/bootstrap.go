package bootstrap

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/lfarias/gestor-academico/internal/app/controllers"
	appMigrations "github.com/lfarias/gestor-academico/internal/app/migrations"
	appRepos "github.com/lfarias/gestor-academico/internal/app/repositories"
	appRoutes "github.com/lfarias/gestor-academico/internal/app/routes"
	appServices "github.com/lfarias/gestor-academico/internal/app/services"
	"github.com/lfarias/gestor-academico/internal/config"
	"github.com/lfarias/gestor-academico/internal/db"
	appMiddleware "github.com/lfarias/gestor-academico/internal/middleware"
	pkgAuth "github.com/lfarias/gestor-academico/internal/pkg/auth"
	"github.com/lfarias/gestor-academico/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	CourseService        *appServices.CourseService
	SectionService       *appServices.SectionService
	StudentService       *appServices.StudentService
	EnrollmentService    *appServices.EnrollmentService
	RecordService        *appServices.RecordService
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	SectionController    *appControllers.SectionController
	StudentController    *appControllers.StudentController
	EnrollmentController *appControllers.EnrollmentController
	RecordController     *appControllers.RecordController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

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
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenDuration(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	authService, err := appServices.NewAuthService(cfg.Admin.Password, deps.JWTService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	deps.AuthService = authService

	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository)
	deps.SectionService = appServices.NewSectionService(deps.Repos.SectionRepository, deps.Repos.CourseRepository)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.EnrollmentService = appServices.NewEnrollmentService(deps.Repos.EnrollmentRepository)
	deps.RecordService = appServices.NewRecordService(deps.Repos.EnrollmentRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.SectionController = appControllers.NewSectionController(deps.SectionService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.RecordController = appControllers.NewRecordController(deps.RecordService)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.SectionController,
		deps.StudentController,
		deps.EnrollmentController,
		deps.RecordController,
		deps.AuthMiddleware,
	)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success", "time": time.Now().UTC()})
	})

	return router
}
