package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/sypoint-pos/internal/application/service"
	"github.com/sangkips/sypoint-pos/internal/config"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/sypoint-pos/internal/domain/repository"
	"github.com/sangkips/sypoint-pos/internal/infrastructure/database"
	"github.com/sangkips/sypoint-pos/internal/infrastructure/repository"
	"github.com/sangkips/sypoint-pos/internal/presentation/http/handler"
	"github.com/sangkips/sypoint-pos/internal/presentation/http/routes"
	"github.com/sangkips/sypoint-pos/pkg/printer"
	"github.com/sangkips/sypoint-pos/pkg/utils"
)

// idempotencyPurgeInterval is how often expired checkout keys are removed.
const idempotencyPurgeInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Admin); err != nil {
		logger.Warn("failed to seed default data", slog.Any("error", err))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	discountTypeRepo := repository.NewDiscountTypeRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Receipt output
	sink, err := printer.NewSinkFromConfig(cfg.Register.ReceiptSink, cfg.Register.ReceiptDir)
	if err != nil {
		logger.Warn("failed to initialize receipt sink, receipts will not be written", slog.Any("error", err))
		sink = printer.NewNullSink()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, logger)
	catalogService := service.NewCatalogService(productRepo)
	transactionService := service.NewTransactionService(transactionRepo, discountTypeRepo, logger)
	receiptService := service.NewReceiptService(entity.ReceiptHeader{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
		Contact:   cfg.Store.Contact,
	}, sink, logger)
	shiftService := service.NewShiftService(shiftRepo)
	registerService := service.NewRegisterService(
		catalogService,
		transactionService,
		receiptService,
		authService,
		newRegisterLock(cfg.Redis, logger),
		cfg.Register.CheckoutTimeout,
		logger,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Register:    handler.NewRegisterHandler(registerService),
		Shift:       handler.NewShiftHandler(shiftService),
		Transaction: handler.NewTransactionHandler(transactionService),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rateLimiter := routes.NewRateLimiter(cfg.RateLimit)
	go rateLimiter.Run(ctx.Done())
	go purgeIdempotencyKeys(ctx, idempotencyRepo, logger)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Logger:          logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			slog.String("app", cfg.App.Name),
			slog.String("env", cfg.App.Env),
			slog.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

func newLogger(app config.AppConfig) *slog.Logger {
	level := slog.LevelInfo
	if app.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if app.Env == "production" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(h).With(slog.String("service", app.Name))
}

// newRegisterLock shares the checkout lock through Redis when one is
// configured, so several API instances can serve the same registers.
func newRegisterLock(cfg config.RedisConfig, logger *slog.Logger) service.RegisterLock {
	if cfg.URL == "" {
		return service.NewMemoryRegisterLock()
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, using in-process register lock", slog.Any("error", err))
		return service.NewMemoryRegisterLock()
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, using in-process register lock", slog.Any("error", err))
		_ = client.Close()
		return service.NewMemoryRegisterLock()
	}

	logger.Info("register lock backed by redis", slog.String("addr", opts.Addr))
	return service.NewRedisRegisterLock(client, cfg.LockTTL)
}

func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, logger *slog.Logger) {
	ticker := time.NewTicker(idempotencyPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := repo.DeleteExpired(ctx, now); err != nil {
				logger.Warn("purge expired idempotency keys", slog.Any("error", err))
			}
		}
	}
}
