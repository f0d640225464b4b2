package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/minsu/dormisphere/docs" // Import generated swagger docs
	appControllers "github.com/minsu/dormisphere/internal/app/controllers"
	appMigrations "github.com/minsu/dormisphere/internal/app/migrations"
	appRepos "github.com/minsu/dormisphere/internal/app/repositories"
	appRoutes "github.com/minsu/dormisphere/internal/app/routes"
	appServices "github.com/minsu/dormisphere/internal/app/services"
	"github.com/minsu/dormisphere/internal/config"
	"github.com/minsu/dormisphere/internal/db"
	appMiddleware "github.com/minsu/dormisphere/internal/middleware"
	pkgAuth "github.com/minsu/dormisphere/internal/pkg/auth"
	"github.com/minsu/dormisphere/internal/pkg/helpers"
	"github.com/minsu/dormisphere/internal/pkg/identity"
	"github.com/minsu/dormisphere/internal/pkg/logger"
	"github.com/minsu/dormisphere/internal/pkg/qr"
	"github.com/minsu/dormisphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	UserService       appServices.UserService
	NoticeService     appServices.NoticeService
	PostService       appServices.PostService
	InquiryService    appServices.InquiryService
	StayService       appServices.StayService
	LeaveService      appServices.LeaveService
	CheckInService    appServices.CheckInService
	MeritService      appServices.MeritService
	AuthController    *appControllers.AuthController
	NoticeController  *appControllers.NoticeController
	PostController    *appControllers.PostController
	InquiryController *appControllers.InquiryController
	UserController    *appControllers.UserController
	StayController    *appControllers.StayController
	LeaveController   *appControllers.LeaveController
	CheckInController *appControllers.CheckInController
	MeritController   *appControllers.MeritController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
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
		database.Close()
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

	if err := seed.CreateDefaultData(context.Background(), database.Pool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 720*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	identityClient := identity.NewClient(cfg.OAuth.UserinfoURL, cfg.OAuth.AllowedDomain)

	qrCodec, err := qr.NewCodec(cfg.QR.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize check-in codec: %w", err)
	}

	deps.AuthService = appServices.NewAuthService(identityClient, deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)
	deps.NoticeService = appServices.NewNoticeService(deps.Repos.NoticeRepository)
	deps.PostService = appServices.NewPostService(deps.Repos.PostRepository)
	deps.InquiryService = appServices.NewInquiryService(deps.Repos.InquiryRepository)
	deps.StayService = appServices.NewStayService(deps.Repos.StayRepository)
	deps.LeaveService = appServices.NewLeaveService(deps.Repos.LeaveRepository)
	deps.CheckInService = appServices.NewCheckInService(deps.Repos.CheckInRepository, qrCodec)
	deps.MeritService = appServices.NewMeritService(deps.Repos.MeritRepository, deps.Repos.UserRepository, database)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.UserService, deps.JWTService)
	deps.NoticeController = appControllers.NewNoticeController(deps.NoticeService)
	deps.PostController = appControllers.NewPostController(deps.PostService)
	deps.InquiryController = appControllers.NewInquiryController(deps.InquiryService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.StayController = appControllers.NewStayController(deps.StayService)
	deps.LeaveController = appControllers.NewLeaveController(deps.LeaveService)
	deps.CheckInController = appControllers.NewCheckInController(deps.CheckInService)
	deps.MeritController = appControllers.NewMeritController(deps.MeritService)

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

	// Session cookies travel cross-site, so origins must be listed
	// explicitly and credentials allowed.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORS.AllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.NoticeController,
		deps.PostController,
		deps.InquiryController,
		deps.UserController,
		deps.StayController,
		deps.LeaveController,
		deps.CheckInController,
		deps.MeritController,
		deps.AuthMiddleware,
	)

	return router
}
