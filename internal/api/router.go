package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/handlers"
	custommiddleware "github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/middleware"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/config"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	referenceService *service.ReferenceService,
	marketService *service.MarketService,
	simulationService *service.SimulationService,
	reportService *service.ReportService,
	leadService *service.LeadService,
	cfg *config.Config,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/cities", func(r chi.Router) {
			cityHandler := handlers.NewCityHandler(referenceService)
			r.Get("/", cityHandler.Cities)
			r.Get("/{city}", cityHandler.City)
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(marketService)
			r.Get("/rent", marketHandler.Rent)
			r.Get("/short-term", marketHandler.ShortTerm)
		})

		r.Route("/simulations", func(r chi.Router) {
			simulationHandler := handlers.NewSimulationHandler(simulationService)
			r.Post("/", simulationHandler.Simulate)
			r.Post("/compare", simulationHandler.Compare)
			r.Post("/taxes", simulationHandler.Taxes)
			r.Post("/projections", simulationHandler.Projections)
		})

		r.Route("/reports", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(reportService)
			r.Post("/", reportHandler.CreateToken)
			r.Post("/pdf", reportHandler.PDF)
			r.Route("/{token}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateReportTokenMiddleware)
				r.Get("/pdf", reportHandler.TokenPDF)
			})
		})

		r.With(middleware.Throttle(32)).Post("/contact", handlers.NewContactHandler(leadService).Submit)
	})

	return r
}
