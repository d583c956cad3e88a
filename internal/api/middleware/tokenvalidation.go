// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/response"
)

// A sealed report token is URL-safe base64 of at least 73 bytes.
const (
	minTokenLength = 100
	maxTokenLength = 8192
)

var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+=*$`)

// ValidateReportTokenMiddleware rejects {token} URL parameters that cannot be
// a sealed report token before any decryption is attempted.
// Returns 404 Not Found, the same status as an expired or tampered token.
//
// Example usage in router:
//
//	r.Route("/{token}", func(r chi.Router) {
//	    r.Use(middleware.ValidateReportTokenMiddleware)
//	    r.Get("/pdf", handler.TokenPDF)
//	})
func ValidateReportTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		if len(token) < minTokenLength || len(token) > maxTokenLength || !tokenPattern.MatchString(token) {
			response.RespondError(w, http.StatusNotFound, "report not found", "invalid or expired report token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
