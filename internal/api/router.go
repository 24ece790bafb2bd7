package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/duyet/finance-hub-sub002/internal/api/handlers"
	custommiddleware "github.com/duyet/finance-hub-sub002/internal/api/middleware"
	"github.com/duyet/finance-hub-sub002/internal/config"
	"github.com/duyet/finance-hub-sub002/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System     *service.SystemService
	Ledger     *service.LedgerService
	Gains      *service.GainsService
	Harvest    *service.HarvestService
	Report     *service.ReportService
	TaxEvent   *service.TaxEventService
	Preference *service.PreferenceService
	MarketData *service.MarketDataService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/lot", func(r chi.Router) {
			lotHandler := handlers.NewLotHandler(svc.Ledger)
			r.With(custommiddleware.APIKeyMiddleware).Post("/", lotHandler.CreateLot)
			r.Route("/user/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", lotHandler.LotsPerUser)
			})
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", lotHandler.GetLot)
				r.With(custommiddleware.APIKeyMiddleware).Post("/dispose", lotHandler.DisposeLot)
			})
		})

		r.Route("/harvest", func(r chi.Router) {
			harvestHandler := handlers.NewHarvestHandler(svc.Harvest)
			r.Post("/opportunities", harvestHandler.FindOpportunities)
		})

		r.Route("/tax", func(r chi.Router) {
			gainsHandler := handlers.NewGainsHandler(svc.Gains)
			reportHandler := handlers.NewReportHandler(svc.Report)
			taxEventHandler := handlers.NewTaxEventHandler(svc.TaxEvent)

			r.Route("/summary/{year}/user/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.With(custommiddleware.APIKeyMiddleware).Post("/", gainsHandler.RecomputeSummary)
				r.Get("/", gainsHandler.GetSummaries)
			})

			r.Route("/report/{year}/user/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", reportHandler.GetReport)
			})

			r.Route("/event", func(r chi.Router) {
				r.With(custommiddleware.APIKeyMiddleware).Post("/", taxEventHandler.RecordEvent)
				r.Route("/user/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", taxEventHandler.EventsPerUser)
				})
			})
		})

		r.Route("/preference/user/{uuid}", func(r chi.Router) {
			preferenceHandler := handlers.NewPreferenceHandler(svc.Preference)
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", preferenceHandler.GetPreference)
			r.With(custommiddleware.APIKeyMiddleware).Put("/", preferenceHandler.UpdatePreference)
		})

		r.Route("/price", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(svc.MarketData)
			r.Use(custommiddleware.APIKeyMiddleware)
			r.Put("/", priceHandler.UpsertPrices)
			r.Put("/feed-token", priceHandler.SetFeedToken)
		})
	})

	return r
}
