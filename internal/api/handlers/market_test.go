package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/testutil"
)

func TestMarketHandler_Rent(t *testing.T) {
	t.Run("returns the estimate", func(t *testing.T) {
		handler := NewMarketHandler(testutil.NewTestMarketService(t))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/market/rent", map[string]string{
			"city":     "Paris",
			"unitType": "studio",
			"surface":  "20",
		})
		w := httptest.NewRecorder()

		handler.Rent(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var est model.RentEstimate
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&est)

		if est.Data.TotalMonthlyRent != 973 {
			t.Errorf("Expected 973, got %v", est.Data.TotalMonthlyRent)
		}
		if est.Data.RentPerSquareMeter != 48.65 {
			t.Errorf("Expected 48.65, got %v", est.Data.RentPerSquareMeter)
		}
	})

	t.Run("accepts a decimal comma", func(t *testing.T) {
		handler := NewMarketHandler(testutil.NewTestMarketService(t))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/market/rent", map[string]string{
			"city": "lyon", "unitType": "t2", "surface": "45,5",
		})
		w := httptest.NewRecorder()

		handler.Rent(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 when surface is missing", func(t *testing.T) {
		handler := NewMarketHandler(testutil.NewTestMarketService(t))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/market/rent", map[string]string{"city": "lyon", "unitType": "t2"})
		w := httptest.NewRecorder()

		handler.Rent(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for an unknown unit type", func(t *testing.T) {
		handler := NewMarketHandler(testutil.NewTestMarketService(t))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/market/rent", map[string]string{
			"city": "lyon", "unitType": "loft", "surface": "45",
		})
		w := httptest.NewRecorder()

		handler.Rent(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 503 when the provider fails", func(t *testing.T) {
		provider := testutil.NewMockMarketProvider().WithError(errors.New("upstream timeout"))
		handler := NewMarketHandler(service.NewMarketService(provider))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/market/rent", map[string]string{
			"city": "lyon", "unitType": "t2", "surface": "45",
		})
		w := httptest.NewRecorder()

		handler.Rent(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestMarketHandler_ShortTerm(t *testing.T) {
	handler := NewMarketHandler(testutil.NewTestMarketService(t))

	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/market/short-term", map[string]string{
		"city": "paris", "unitType": "t2", "surface": "50",
	})
	w := httptest.NewRecorder()

	handler.ShortTerm(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var est model.ShortTermEstimate
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&est)

	if est.Data.MonthlyRevenue != 4410 {
		t.Errorf("Expected 4410, got %v", est.Data.MonthlyRevenue)
	}
	if len(est.Data.SeasonalRevenues) != 12 {
		t.Errorf("Expected 12 seasonal revenues, got %d", len(est.Data.SeasonalRevenues))
	}
}
