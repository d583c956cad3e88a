package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// preflightMaxAge is how long browsers may cache a preflight, in seconds.
const preflightMaxAge = 600

// NewCORS allows the simulator front-ends in allowedOrigins to call the API.
// There is no authentication, so credentials are never forwarded. The report
// filename and request id are exposed for downloads and support tickets.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "Content-Length", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           preflightMaxAge,
	})
}
