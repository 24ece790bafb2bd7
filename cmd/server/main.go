package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/api"
	"github.com/duyet/finance-hub-sub002/internal/config"
	"github.com/duyet/finance-hub-sub002/internal/database"
	"github.com/duyet/finance-hub-sub002/internal/repository"
	"github.com/duyet/finance-hub-sub002/internal/scheduler"
	"github.com/duyet/finance-hub-sub002/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	lotRepo := repository.NewLotRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	taxEventRepo := repository.NewTaxEventRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	preferenceService := service.NewPreferenceService(preferenceRepo)
	washSaleDetector := service.NewWashSaleDetector(lotRepo)
	ledgerService := service.NewLedgerService(
		db,
		lotRepo,
		taxEventRepo,
		preferenceService,
		washSaleDetector,
	)
	gainsService := service.NewGainsService(lotRepo, summaryRepo)
	harvestService := service.NewHarvestService(lotRepo, priceRepo, preferenceService)
	taxEventService := service.NewTaxEventService(taxEventRepo)
	reportService := service.NewReportService(gainsService, taxEventRepo)
	marketDataService, err := service.NewMarketDataService(priceRepo, settingRepo, cfg.Security.FernetKey)
	if err != nil {
		log.Fatalf("Failed to create market data service: %v", err)
	}

	// Start nightly summary rebuild scheduler
	summaryScheduler := scheduler.New(lotRepo, gainsService)
	if err := summaryScheduler.Start(cfg.Scheduler.SummaryRebuildSpec); err != nil {
		log.Fatalf("Failed to start summary scheduler: %v", err)
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		Ledger:     ledgerService,
		Gains:      gainsService,
		Harvest:    harvestService,
		Report:     reportService,
		TaxEvent:   taxEventService,
		Preference: preferenceService,
		MarketData: marketDataService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	summaryScheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
