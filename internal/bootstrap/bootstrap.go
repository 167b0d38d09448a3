package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/tolgakurt/forumcore/internal/app/auth"
	appControllers "github.com/tolgakurt/forumcore/internal/app/controllers"
	appMigrations "github.com/tolgakurt/forumcore/internal/app/migrations"
	appModels "github.com/tolgakurt/forumcore/internal/app/models"
	appRepos "github.com/tolgakurt/forumcore/internal/app/repositories"
	appRoutes "github.com/tolgakurt/forumcore/internal/app/routes"
	appServices "github.com/tolgakurt/forumcore/internal/app/services"
	"github.com/tolgakurt/forumcore/internal/config"
	"github.com/tolgakurt/forumcore/internal/db"
	appMiddleware "github.com/tolgakurt/forumcore/internal/middleware"
	pkgAuth "github.com/tolgakurt/forumcore/internal/pkg/auth"
	"github.com/tolgakurt/forumcore/internal/pkg/email"
	"github.com/tolgakurt/forumcore/internal/pkg/helpers"
	"github.com/tolgakurt/forumcore/internal/pkg/logger"
	"github.com/tolgakurt/forumcore/internal/seed"
	"github.com/tolgakurt/forumcore/internal/userlink"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CategoryService         *appServices.CategoryService
	DiscussionService       *appServices.DiscussionService
	PostService             *appServices.PostService
	NotificationService     *appServices.NotificationService
	CategoryController      *appControllers.CategoryController
	DiscussionController    *appControllers.DiscussionController
	PostController          *appControllers.PostController
	AdminCategoryController *appControllers.AdminCategoryController
	AuthMiddleware          *appMiddleware.AuthMiddleware
	Repos                   *appRepos.Repositories
	JWTService              *pkgAuth.JWTService
	AuthzService            *appAuth.AuthorizationService
	UserLinks               *userlink.Registry
	Logger                  zerolog.Logger
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
	prettyLog := strings.ToLower(cfg.Logging.Format) == "console"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the starter categories.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Pool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
		// Seeding failures are not fatal; the admin surface can create categories
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	// Register the host application's user types before anything resolves
	// author linkage; the registry is frozen once wiring completes.
	deps.UserLinks = userlink.NewRegistry()
	for _, hostType := range cfg.Forum.UserTypes {
		if err := deps.UserLinks.Register(hostType); err != nil {
			lgr.Error().Err(err).Str("hostType", hostType).Msg("Failed to register user type")
			return nil, fmt.Errorf("failed to register user type %q: %w", hostType, err)
		}
	}
	deps.UserLinks.Freeze()

	deps.AuthzService = appAuth.NewAuthorizationService()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		UseTLS:   cfg.SMTP.UseTLS,
	}, lgr)

	deps.NotificationService = appServices.NewNotificationService(
		sender,
		cfg.Forum.AdminEmails,
		cfg.Forum.MailerFrom,
		lgr,
	)

	statuses := appModels.StatusList(cfg.Forum.DiscussionStatuses)

	deps.CategoryService = appServices.NewCategoryService(deps.Repos.CategoryRepository, deps.AuthzService)
	deps.DiscussionService = appServices.NewDiscussionService(
		deps.Repos.DiscussionRepository,
		deps.Repos.CategoryRepository,
		deps.NotificationService,
		deps.AuthzService,
		deps.UserLinks,
		statuses,
		cfg.Forum.LatestLimit,
	)
	deps.PostService = appServices.NewPostService(
		deps.Repos.PostRepository,
		deps.Repos.DiscussionRepository,
		deps.NotificationService,
		deps.AuthzService,
		deps.UserLinks,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.CategoryController = appControllers.NewCategoryController(deps.CategoryService, deps.DiscussionService)
	deps.DiscussionController = appControllers.NewDiscussionController(deps.DiscussionService)
	deps.PostController = appControllers.NewPostController(deps.PostService)
	deps.AdminCategoryController = appControllers.NewAdminCategoryController(deps.CategoryService)

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
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.CategoryController,
		deps.DiscussionController,
		deps.PostController,
		deps.AdminCategoryController,
		deps.AuthMiddleware,
	)

	return router
}
