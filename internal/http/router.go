package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/catalog-manager/docs"
	"github.com/rogerio-castellano/catalog-manager/internal/http/handlers"
	rl "github.com/rogerio-castellano/catalog-manager/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-manager/internal/observability"
)

// RouterOptions carries the optional cross-cutting pieces of the router.
// The zero value serves every route without rate limiting or metrics.
type RouterOptions struct {
	Logger         *slog.Logger
	Metrics        *observability.Metrics
	Limiter        *rl.Limiter
	RequestTimeout time.Duration
}

func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}
	r.Use(opts.Metrics.Middleware)

	r.Get("/healthz", handlers.HealthHandler)
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware)
		}

		r.Get("/products", handlers.GetProductsHandler)
		r.Post("/products", handlers.CreateProductHandler)
		r.Post("/products/restore", handlers.RestoreProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Get("/products/{id}/history", handlers.GetProductHistoryHandler)

		r.Get("/categories", handlers.GetCategoriesHandler)

		r.Get("/history", handlers.GetHistoryHandler)
		r.Get("/history/export", handlers.ExportHistoryHandler)

		r.Get("/favorites", handlers.GetFavoritesHandler)
		r.Post("/favorites", handlers.AddFavoritesHandler)
		r.Delete("/favorites", handlers.RemoveFavoritesHandler)
		r.Get("/favorites/products", handlers.GetFavoriteProductsHandler)
		r.Post("/favorites/{id}/toggle", handlers.ToggleFavoriteHandler)

		r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	})
	return r
}
