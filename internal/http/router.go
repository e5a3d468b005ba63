package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yuchenwang/wallet-api/internal/http/auth"
	"github.com/yuchenwang/wallet-api/internal/http/respond"
	"github.com/yuchenwang/wallet-api/internal/http/transaction"
	"github.com/yuchenwang/wallet-api/internal/ratelimit"
)

func New(
	transactions *transaction.Handler,
	limiter ratelimit.Limiter,
	jwtSecret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// The gate runs before any handler so rate-limited requests never reach
	// the repository.
	if limiter != nil {
		router.Use(RateLimit(limiter))
	}

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/transactions", func(r chi.Router) {
		if jwtSecret != "" {
			r.Use(auth.Verify(jwtSecret))
		}

		transactions.Routes(r)
	})

	return router
}
