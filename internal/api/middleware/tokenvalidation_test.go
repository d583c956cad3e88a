package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/middleware"
)

func serveWithToken(t *testing.T, token string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	mw := middleware.ValidateReportTokenMiddleware(next)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("token", token)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)
	return w, handlerCalled
}

func TestValidateReportTokenMiddleware(t *testing.T) {
	t.Run("passes through a well-formed token", func(t *testing.T) {
		w, called := serveWithToken(t, "gAAAAA"+strings.Repeat("Ab9_-", 30)+"==")

		if !called {
			t.Error("Expected next handler to be called")
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("returns 404 for a short token", func(t *testing.T) {
		w, called := serveWithToken(t, "gAAAAAshort")

		if called {
			t.Error("Expected next handler NOT to be called")
		}
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("returns 404 for characters outside the alphabet", func(t *testing.T) {
		w, called := serveWithToken(t, strings.Repeat("a", 120)+"/../")

		if called {
			t.Error("Expected next handler NOT to be called")
		}
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an empty token", func(t *testing.T) {
		w, called := serveWithToken(t, "")

		if called {
			t.Error("Expected next handler NOT to be called")
		}
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}
