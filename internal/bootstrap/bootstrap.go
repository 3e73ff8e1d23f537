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
	"github.com/rs/zerolog/log"

	appControllers "github.com/connecthub/manexis/internal/app/controllers"
	appMigrations "github.com/connecthub/manexis/internal/app/migrations"
	appRepos "github.com/connecthub/manexis/internal/app/repositories"
	appRoutes "github.com/connecthub/manexis/internal/app/routes"
	appServices "github.com/connecthub/manexis/internal/app/services"
	"github.com/connecthub/manexis/internal/config"
	"github.com/connecthub/manexis/internal/db"
	appMiddleware "github.com/connecthub/manexis/internal/middleware"
	pkgAuth "github.com/connecthub/manexis/internal/pkg/auth"
	"github.com/connecthub/manexis/internal/pkg/email"
	"github.com/connecthub/manexis/internal/pkg/filestorage"
	"github.com/connecthub/manexis/internal/pkg/helpers"
	"github.com/connecthub/manexis/internal/pkg/logger"
	"github.com/connecthub/manexis/internal/pkg/websocket"
	"github.com/connecthub/manexis/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	EmailService       email.EmailService
	FileStorage        *filestorage.LocalStorage
	Hub                *websocket.Hub
	AuthService        *appServices.AuthService
	UserService        *appServices.UserService
	FriendService      *appServices.FriendService
	PostService        *appServices.PostService
	MessageService     *appServices.MessageService
	SettingsService    *appServices.SettingsService
	MediaService       *appServices.MediaService
	AuthController     *appControllers.AuthController
	UserController     *appControllers.UserController
	FriendController   *appControllers.FriendController
	PostController     *appControllers.PostController
	MessageController  *appControllers.MessageController
	SettingsController *appControllers.SettingsController
	MediaController    *appControllers.MediaController
	WSHandler          *websocket.Handler
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Logger             zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and, in
// development mode, seeds demo data.
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
	migrator := appMigrations.NewMigrator(database)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.ApplyDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if strings.ToLower(cfg.Server.Mode) != "production" {
		if err := seed.CreateDemoData(context.Background(), dbPool, lgr); err != nil {
			// Demo data is a convenience, startup continues without it
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.SessionRepository,
		deps.Repos.VerificationTokenRepository,
		deps.Repos.PasswordResetTokenRepository,
		deps.JWTService,
		deps.EmailService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.FriendshipRepository,
		deps.Repos.SettingsRepository,
		deps.FileStorage,
		lgr,
	)
	deps.FriendService = appServices.NewFriendService(
		deps.Repos.FriendshipRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.PostService = appServices.NewPostService(
		deps.Repos.PostRepository,
		deps.Repos.FriendshipRepository,
		deps.Repos.UserRepository,
		deps.FileStorage,
		lgr,
	)
	deps.MessageService = appServices.NewMessageService(
		deps.Repos.ConversationRepository,
		deps.Repos.MessageRepository,
		deps.Repos.FriendshipRepository,
		deps.Repos.UserRepository,
		deps.Hub,
		lgr,
	)
	deps.SettingsService = appServices.NewSettingsService(
		deps.Repos.SettingsRepository,
		deps.Repos.UserRepository,
		deps.Repos.SessionRepository,
		lgr,
	)
	deps.MediaService = appServices.NewMediaService(
		deps.Repos.UserRepository,
		deps.Repos.PostRepository,
		deps.Repos.FriendshipRepository,
		deps.Repos.SettingsRepository,
		deps.FileStorage,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.FriendController = appControllers.NewFriendController(deps.FriendService, lgr)
	deps.PostController = appControllers.NewPostController(deps.PostService, lgr)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService, lgr)
	deps.SettingsController = appControllers.NewSettingsController(deps.SettingsService, lgr)
	deps.MediaController = appControllers.NewMediaController(deps.MediaService, lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, deps.Repos.ConversationRepository, lgr)

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

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.FriendController,
		deps.PostController,
		deps.MessageController,
		deps.SettingsController,
		deps.MediaController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
