package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/middleware"
)

func TestLogger(t *testing.T) {
	serve := func(t *testing.T, status int, path string) map[string]any {
		t.Helper()

		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("ok"))
		})
		h := chimiddleware.RequestID(middleware.Logger(logger)(next))

		req := httptest.NewRequest(http.MethodGet, path, nil)
		h.ServeHTTP(httptest.NewRecorder(), req)

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("Failed to decode log record %q: %v", buf.String(), err)
		}
		return record
	}

	t.Run("logs status, size and request id", func(t *testing.T) {
		record := serve(t, http.StatusOK, "/api/cities")

		if record["level"] != "INFO" {
			t.Errorf("Expected INFO, got %v", record["level"])
		}
		if record["status"] != float64(200) || record["bytes"] != float64(2) {
			t.Errorf("Unexpected status/bytes %v/%v", record["status"], record["bytes"])
		}
		if record["requestId"] == "" {
			t.Error("Expected a request id")
		}
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		record := serve(t, http.StatusBadRequest, "/api/simulations")
		if record["level"] != "WARN" {
			t.Errorf("Expected WARN, got %v", record["level"])
		}
	})

	t.Run("server errors log at error", func(t *testing.T) {
		record := serve(t, http.StatusInternalServerError, "/api/simulations")
		if record["level"] != "ERROR" {
			t.Errorf("Expected ERROR, got %v", record["level"])
		}
	})

	t.Run("strips line breaks from the path", func(t *testing.T) {
		record := serve(t, http.StatusOK, "/api/cities%0D%0Afake")
		if record["path"] != "/api/citiesfake" {
			t.Errorf("Expected sanitized path, got %v", record["path"])
		}
	})
}
