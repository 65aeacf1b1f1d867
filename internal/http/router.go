package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/fundhive/internal/auth"
	"github.com/MrJamesThe3rd/fundhive/internal/http/campaign"
	"github.com/MrJamesThe3rd/fundhive/internal/http/donation"
	"github.com/MrJamesThe3rd/fundhive/internal/http/respond"
)

type Options struct {
	AllowedOrigins []string
}

func New(
	opts Options,
	rs *respond.Responder,
	verifier *auth.Verifier,
	campaignsV1 *campaign.Handler,
	donationsV1 *donation.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature"},
		MaxAge:         300,
	}))

	router.NotFound(rs.NotFound)

	protect := auth.Protect(verifier, rs.Error)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			campaignsV1.Routes(r, protect)
		})

		r.Route("/donations", func(r chi.Router) {
			donationsV1.Routes(r, protect)
		})
	})

	return router
}
