package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/middleware"
)

func TestNewCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := middleware.NewCORS([]string{"https://simulateur.amcapital.fr"}).Handler(next)

	t.Run("preflight allows POST without credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/simulations", nil)
		req.Header.Set("Origin", "https://simulateur.amcapital.fr")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://simulateur.amcapital.fr" {
			t.Errorf("Expected allowed origin, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
			t.Errorf("Expected no credentials header, got %q", got)
		}
	})

	t.Run("preflight rejects DELETE", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/simulations", nil)
		req.Header.Set("Origin", "https://simulateur.amcapital.fr")
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Expected no allow-origin header, got %q", got)
		}
	})

	t.Run("exposes the download filename", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/reports/x/pdf", nil)
		req.Header.Set("Origin", "https://simulateur.amcapital.fr")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Expose-Headers"); got == "" {
			t.Error("Expected exposed headers")
		}
	})
}
