package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/sitebook/internal/http/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/http/report"
)

type Options struct {
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
}

func New(
	contractsV1 *contract.Handler,
	reportsV1 *report.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Report-Run"},
		MaxAge:         300,
	}))

	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/statuses", contractsV1.StatusRoutes)

		r.Route("/contracts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			contractsV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)
	})

	return router
}
