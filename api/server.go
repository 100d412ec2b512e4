// ABOUTME: API server setup wiring routes, CORS and middleware
// ABOUTME: Builds the http.Handler served by cmd/api

package api

import (
	"net/http"

	"github.com/rs/cors"

	"bluesky-feed-api/api/handlers"
	"bluesky-feed-api/api/middleware"
	"bluesky-feed-api/core/interfaces"
)

// Config holds configuration for the API surface
type Config struct {
	Logger interfaces.Logger

	// RateLimit is the allowed requests per second per client IP;
	// zero disables rate limiting
	RateLimit float64

	// RateBurst is the per-client burst size
	RateBurst int
}

// NewHandler builds the routed handler with CORS and middleware applied
func NewHandler(cfg Config, feedHandler *handlers.FeedHandler) http.Handler {
	mux := http.NewServeMux()

	feedHandler.RegisterRoutes(mux)
	handlers.NewHealthHandler().RegisterRoutes(mux)

	var handler http.Handler = mux

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit, burst)
		handler = middleware.RateLimitMiddleware(limiter)(handler)
	}

	if cfg.Logger != nil {
		handler = middleware.RequestLoggingMiddleware(cfg.Logger)(handler)
	}

	// CORS is the outermost layer so preflights never hit the limiter.
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	return c.Handler(handler)
}
