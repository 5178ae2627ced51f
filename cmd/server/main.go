// @title BizCardX API
// @version 1.0
// @description Business card OCR extraction and contact storage.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bizcardx/internal/config"
	"bizcardx/internal/email/noop"
	"bizcardx/internal/email/ses"
	"bizcardx/internal/extraction"
	"bizcardx/internal/handler"
	"bizcardx/internal/logger"
	"bizcardx/internal/ocr/tesseract"
	"bizcardx/internal/port"
	"bizcardx/internal/repository/sqlrepo"
	"bizcardx/internal/router"
	"bizcardx/internal/service"
	s3storage "bizcardx/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlrepo.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	zl.Info("database connected", zap.String("driver", cfg.DB.Driver))

	// Initialize repositories
	cardRepo := sqlrepo.NewCardRepo(db)

	// Initialize OCR and extraction
	recognizer := tesseract.NewRecognizer(&cfg.OCR, zl)
	leading, err := cfg.Extraction.LeadingTags()
	if err != nil {
		return fmt.Errorf("invalid extraction config: %w", err)
	}
	extractor := extraction.NewExtractor(extraction.WithLeadingFields(leading...))
	for _, r := range extractor.Classifier().Rules() {
		zl.Debug("classification rule", zap.String("key", r.Key), zap.String("description", r.Description))
	}

	// Initialize optional image archive
	var storage port.ObjectStorage
	if cfg.S3.Enabled() {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3, zl)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		zl.Info("image archive enabled", zap.String("bucket", cfg.S3.Bucket))
	}

	emailSender, err := newEmailSender(ctx, &cfg.Email, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth)
	cardSvc := service.NewCardService(cardRepo, recognizer, storage, emailSender, extractor, service.CardServiceConfig{
		MaxImageBytes: cfg.OCR.MaxImageBytes(),
		Bucket:        cfg.S3.Bucket,
		PresignExpiry: cfg.S3.PresignExpiry,
	}, zl)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	cardH := handler.NewCardHandler(cardSvc)
	healthH := handler.NewHealthHandler(cardRepo)

	// Setup router
	r := router.Setup(cfg, zl, authSvc, authH, cardH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr), zap.Bool("auth", authSvc.Enabled()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// newEmailSender picks the card share transport. Provider "none" disables sharing.
func newEmailSender(ctx context.Context, cfg *config.EmailConfig, zl *zap.Logger) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(ctx, cfg.Region, cfg.FromAddress, cfg.FromName)
	case "none":
		return nil, nil
	default:
		return noop.NewNoopSender(zl), nil
	}
}
