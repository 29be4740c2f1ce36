package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"lekha/internal/config"
	"lekha/internal/email/noop"
	"lekha/internal/email/ses"
	"lekha/internal/handler"
	"lekha/internal/pdf"
	"lekha/internal/port"
	"lekha/internal/repository/postgres"
	"lekha/internal/router"
	"lekha/internal/service"
	s3storage "lekha/internal/storage/s3"
	"lekha/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lekha: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	invoiceRepo := postgres.NewInvoiceRepo(db)
	archiveRepo := postgres.NewItemArchiveRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	productRepo := postgres.NewProductRepo(db)
	profileRepo := postgres.NewSellerProfileRepo(db)
	statsRepo := postgres.NewStatsRepo(db)
	auditRepo := postgres.NewAuditRepo(db)

	// Dispatch adapters
	storage, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	renderer := pdf.NewRenderer()

	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender()
	}

	// Services
	lifecycleSvc := service.NewLifecycleService(
		invoiceRepo, archiveRepo, clientRepo, productRepo, profileRepo,
		auditRepo, renderer, storage, sender, cfg.Invoice, cfg.S3,
	)
	statsSvc := service.NewStatsService(statsRepo)
	masterSvc := service.NewMasterService(clientRepo, productRepo, profileRepo)
	dispatcher := service.NewActionDispatcher(lifecycleSvc)
	worker := service.NewReminderWorker(
		lifecycleSvc, invoiceRepo, auditRepo,
		cfg.Sweep.Interval(), cfg.Sweep.Concurrency,
	)

	// Handlers
	invoiceH := handler.NewInvoiceHandler(lifecycleSvc, worker)
	masterH := handler.NewMasterHandler(masterSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	actionH := handler.NewActionHandler(dispatcher)
	auditH := handler.NewAuditHandler(auditRepo)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(invoiceH, masterH, statsH, actionH, auditH, healthH)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker.Start(workerCtx)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	stopWorker()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
