package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freetic/freetic/app/ai"
	"github.com/freetic/freetic/app/api"
	"github.com/freetic/freetic/app/cfg"
	"github.com/freetic/freetic/app/database"
	"github.com/freetic/freetic/app/seed"
	"github.com/freetic/freetic/app/tasks"
)

func main() {
	// Load configuration from environment variables and command-line flags
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	if appConfig.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting Freetic server", "version", appConfig.Version)

	// Database connection
	db, err := database.NewConnection(appConfig.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	slog.Info("Database opened", "path", appConfig.DBPath)

	// Run migrations
	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Migrations applied", "version", version, "dirty", dirty)

	// Initialize repositories
	bookRepo := database.NewBookRepository(db)
	historyRepo := database.NewHistoryRepository(db)
	shelfRepo := database.NewShelfRepository(db)
	adRepo := database.NewAdConfigRepository(db)
	quoteRepo := database.NewQuoteRepository(db)

	// Seed the catalog on first run
	if err := seedCatalog(appConfig.SeedsDir, bookRepo, quoteRepo); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// AI provider (optional)
	provider := ai.NewGeminiProvider(appConfig.GeminiAPIKey, appConfig.GeminiModel)
	recommender := ai.NewRecommender(provider)
	quoteGen := ai.NewQuoteGenerator(provider)
	if provider.Available() {
		slog.Info("AI provider configured", "provider", provider.Name())
	} else {
		slog.Info("AI provider not configured, recommendations disabled and quotes served from storage")
	}

	// Initialize and start scheduler
	slog.Info("Starting background scheduler", "workers", appConfig.WorkerCount, "interval", appConfig.SchedulerInterval)
	scheduler := tasks.NewScheduler(bookRepo, adRepo)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	apiHandler := api.NewHandler(bookRepo, historyRepo, shelfRepo, adRepo, quoteRepo, recommender, quoteGen, scheduler)
	server := api.NewServer(apiHandler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Freetic server shutdown complete")
}

// seedCatalog loads seed files and inserts books and quotes, but only into
// empty tables so restarts never duplicate the catalog.
func seedCatalog(seedsDir string, bookRepo database.BookRepository, quoteRepo database.QuoteRepository) error {
	bookCount, err := bookRepo.GetBookCount()
	if err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	quoteCount, err := quoteRepo.GetQuoteCount()
	if err != nil {
		return fmt.Errorf("failed to count quotes: %w", err)
	}

	if bookCount > 0 && quoteCount > 0 {
		return nil
	}

	loader := seed.NewLoader(seedsDir)
	books, quotes, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load seed files: %w", err)
	}

	if bookCount == 0 {
		for _, book := range books {
			if _, err := bookRepo.Insert(book); err != nil {
				return fmt.Errorf("failed to seed book %q: %w", book.Title, err)
			}
		}
		if len(books) > 0 {
			slog.Info("Seeded books", "count", len(books))
		}
	}

	if quoteCount == 0 {
		for _, quote := range quotes {
			record := database.Quote{
				Text:       quote.Text,
				Author:     quote.Author,
				SourceBook: quote.Source,
			}
			if _, err := quoteRepo.Insert(record); err != nil {
				return fmt.Errorf("failed to seed quote: %w", err)
			}
		}
		if len(quotes) > 0 {
			slog.Info("Seeded quotes", "count", len(quotes))
		}
	}

	return nil
}
