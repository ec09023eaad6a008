package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emre/sisgo/internal/app/controllers"
	appMigrations "github.com/emre/sisgo/internal/app/migrations"
	appRepos "github.com/emre/sisgo/internal/app/repositories"
	appRoutes "github.com/emre/sisgo/internal/app/routes"
	appServices "github.com/emre/sisgo/internal/app/services"
	"github.com/emre/sisgo/internal/config"
	"github.com/emre/sisgo/internal/db"
	appMiddleware "github.com/emre/sisgo/internal/middleware"
	"github.com/emre/sisgo/internal/pkg/logger"
	"github.com/emre/sisgo/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService      *appServices.StudentService
	TeacherService      *appServices.TeacherService
	CourseService       *appServices.CourseService
	RegistrarService    *appServices.RegistrarService
	StudentController   *appControllers.StudentController
	TeacherController   *appControllers.TeacherController
	CourseController    *appControllers.CourseController
	RegistrarController *appControllers.RegistrarController
	Repos               *appRepos.Repositories
	TxManager           appServices.TxManager
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
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

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failures should not block startup.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.TxManager = db.NewTxManager(dbPool)

	var err error
	deps.StudentService, err = appServices.NewStudentService(deps.Repos.StudentRepository)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize student service: %w", err)
	}
	deps.TeacherService, err = appServices.NewTeacherService(deps.Repos.TeacherRepository)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize teacher service: %w", err)
	}
	deps.CourseService, err = appServices.NewCourseService(deps.Repos.CourseRepository)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize course service: %w", err)
	}
	deps.RegistrarService, err = appServices.NewRegistrarService(
		deps.Repos.StudentRepository,
		deps.Repos.TeacherRepository,
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.PaymentRepository,
		deps.TxManager,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize registrar service: %w", err)
	}

	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.RegistrarController = appControllers.NewRegistrarController(deps.RegistrarService)

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
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.TeacherController,
		deps.CourseController,
		deps.RegistrarController,
	)

	// Liveness endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
