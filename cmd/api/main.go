package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/storefront-golang/internal/accounts"
	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/01moynul/storefront-golang/internal/database"
	"github.com/01moynul/storefront-golang/internal/handlers"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/orders"
	"github.com/01moynul/storefront-golang/internal/payments"
	"github.com/01moynul/storefront-golang/internal/reviews"
	"github.com/01moynul/storefront-golang/internal/routes"
	"github.com/01moynul/storefront-golang/internal/storage"
	"github.com/01moynul/storefront-golang/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.InitLogger(logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zlog := logger.GetLogger()
	defer zlog.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. --- Database Connection ---
	db, err := database.OpenDB(ctx, cfg.DB, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, db, zlog); err != nil {
			zlog.Fatal("Failed to apply schema", zap.Error(err))
		}
	}

	// 2. --- Collaborators ---
	tokens, err := auth.NewTokens(cfg.JWT.SigningKey)
	if err != nil {
		zlog.Fatal("Failed to initialize token validation", zap.Error(err))
	}

	uploader, err := storage.New(cfg.Storage, cfg.Server.BaseURL)
	if err != nil {
		zlog.Fatal("Failed to initialize upload storage", zap.Error(err))
	}

	// --- Application Setup ---
	st := store.New(db)
	accountService := accounts.NewService(st)
	app := &handlers.Handlers{
		Accounts: accountService,
		Products: catalog.NewProductService(st),
		Taxonomy: catalog.NewTaxonomyService(st),
		Orders:   orders.NewService(st),
		Reviews:  reviews.NewService(st),
		Uploader: uploader,
		Checkout: payments.NewStripe(cfg.Stripe.SecretKey, cfg.Stripe.Currency),
		PayPal:   payments.NewPayPal(cfg.PayPal),
	}

	opts := routes.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Tokens:         tokens,
		Identities:     accountService,
	}
	if local, ok := uploader.(*storage.Local); ok {
		opts.UploadDir = local.Dir()
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, opts)

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("Starting storefront API server",
			zap.String("port", cfg.Server.Port), zap.String("storage", uploader.Driver()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
}
