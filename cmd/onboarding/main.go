package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"merchant-kita.onboarding/internal/config"
	"merchant-kita.onboarding/internal/domain/entities"
	"merchant-kita.onboarding/internal/infrastructure/complianceapi"
	"merchant-kita.onboarding/internal/infrastructure/jobs"
	"merchant-kita.onboarding/internal/infrastructure/metrics"
	"merchant-kita.onboarding/internal/infrastructure/mirror"
	"merchant-kita.onboarding/internal/infrastructure/models"
	"merchant-kita.onboarding/internal/infrastructure/repositories"
	"merchant-kita.onboarding/internal/interfaces/http/handlers"
	"merchant-kita.onboarding/internal/interfaces/http/middleware"
	"merchant-kita.onboarding/internal/usecases"
	"merchant-kita.onboarding/pkg/jwt"
	"merchant-kita.onboarding/pkg/logger"
	"merchant-kita.onboarding/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		// The progress mirror degrades gracefully without Redis; only the
		// cross-instance fan-out is lost.
		logger.Warn(context.Background(), "Redis unavailable, progress mirror is local only", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Redis initialized")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open the local draft store
	db, err := openDB(cfg.Storage.DSN())
	if err != nil {
		return fmt.Errorf("failed to open draft store: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(
		&models.ComplianceDraft{},
		&models.DraftOwner{},
		&models.Merchant{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("failed to migrate draft store: %w", err)
	}
	log.Println("✅ Draft store ready at", cfg.Storage.SQLitePath)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Repositories
	draftRepo := repositories.NewDraftRepository(db)
	selectionRepo := repositories.NewSelectionRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Remote compliance client and progress mirror
	appMetrics := metrics.New()
	client := complianceapi.NewClient(cfg.Compliance.BaseURL, cfg.Compliance.Timeout, appMetrics)
	progressMirror := mirror.NewProgressMirror()

	// Usecases
	wizardUsecase := usecases.NewWizardUsecase(draftRepo, client, progressMirror, appMetrics)
	statusRouter := usecases.NewStatusRouter(wizardUsecase)
	merchantUsecase := usecases.NewMerchantUsecase(selectionRepo)
	environmentUsecase := usecases.NewEnvironmentUsecase(settingRepo, client)
	gate := usecases.NewGate()

	// Handlers
	autosave := jobs.NewAutosaveJob(cfg.Autosave.Delay, func(ctx context.Context, merchantCode string, patch *entities.DraftPatch) error {
		_, err := wizardUsecase.UpdateDraft(ctx, merchantCode, patch)
		return err
	})
	wizardHandler := handlers.NewWizardHandler(wizardUsecase, autosave)
	complianceHandler := handlers.NewComplianceHandler(client, statusRouter)
	merchantHandler := handlers.NewMerchantHandler(merchantUsecase)
	environmentHandler := handlers.NewEnvironmentHandler(environmentUsecase)

	// Background watcher: reverts live mode when compliance progress drops
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, unsubscribe := progressMirror.Subscribe()
	go environmentUsecase.WatchProgress(ctx, events)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		wizardHandler:      wizardHandler,
		complianceHandler:  complianceHandler,
		merchantHandler:    merchantHandler,
		environmentHandler: environmentHandler,
		authMiddleware:     middleware.AuthMiddleware(jwtService),
		gateMiddleware:     middleware.GateMiddleware(gate, merchantUsecase, client),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		autosave.Stop()
		unsubscribe()
		cancel()
	}()

	log.Printf("🚀 Merchant onboarding backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
