package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/refundtrack/internal/config"
	"github.com/MrJamesThe3rd/refundtrack/internal/database"
	"github.com/MrJamesThe3rd/refundtrack/internal/export"
	apphttp "github.com/MrJamesThe3rd/refundtrack/internal/http"
	exportHandler "github.com/MrJamesThe3rd/refundtrack/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/refundtrack/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/refundtrack/internal/http/matching"
	"github.com/MrJamesThe3rd/refundtrack/internal/http/metrics"
	productHandler "github.com/MrJamesThe3rd/refundtrack/internal/http/product"
	receiptHandler "github.com/MrJamesThe3rd/refundtrack/internal/http/receipt"
	"github.com/MrJamesThe3rd/refundtrack/internal/importer"
	"github.com/MrJamesThe3rd/refundtrack/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/refundtrack/internal/matching/store"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
	productStore "github.com/MrJamesThe3rd/refundtrack/internal/product/store"
	"github.com/MrJamesThe3rd/refundtrack/internal/receipt"
	"github.com/MrJamesThe3rd/refundtrack/internal/receipt/ocr"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	var (
		productService  = product.NewService(productStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		importService   = importer.NewService()
		exportService   = export.NewService(productService)
		receiptService  = receipt.NewService(
			ocr.New(cfg.OCR.URL, cfg.OCR.Token, cfg.OCR.Timeout),
			matchingService,
			productService,
		)
	)

	handlers := apphttp.Handlers{
		Products: productHandler.NewHandler(productService),
		Import:   importHandler.NewHandler(importService, productService, matchingService),
		Receipts: receiptHandler.NewHandler(receiptService),
		Matching: matchingHandler.NewHandler(matchingService),
		Export:   exportHandler.NewHandler(exportService),
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           apphttp.New(handlers, metrics.New(cfg.App.Name), cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + cfg.OCR.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr, "ocr", cfg.OCR.URL != "")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
