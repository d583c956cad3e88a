package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/response"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/validation"
)

// MarketHandler serves market-data estimates.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// Rent returns the long-term rent estimate for a property.
//
// Endpoint: GET /api/market/rent?city=lyon&unitType=t2&surface=45
// Response: 200 OK with RentEstimate
// Error: 400 Bad Request if a parameter is missing or out of range
// Error: 503 Service Unavailable if the provider cannot produce an estimate
func (h *MarketHandler) Rent(w http.ResponseWriter, r *http.Request) {
	q, ok := parseMarketQuery(w, r)
	if !ok {
		return
	}

	est, err := h.marketService.RentEstimate(r.Context(), q)
	if err != nil {
		respondServiceError(w, r, err, "failed to estimate rent")
		return
	}
	response.RespondJSON(w, http.StatusOK, est)
}

// ShortTerm returns the nightly-rental revenue estimate for a property.
//
// Endpoint: GET /api/market/short-term?city=lyon&unitType=t2&surface=45
// Response: 200 OK with ShortTermEstimate
// Error: 400 Bad Request if a parameter is missing or out of range
// Error: 503 Service Unavailable if the provider cannot produce an estimate
func (h *MarketHandler) ShortTerm(w http.ResponseWriter, r *http.Request) {
	q, ok := parseMarketQuery(w, r)
	if !ok {
		return
	}

	est, err := h.marketService.ShortTermEstimate(r.Context(), q)
	if err != nil {
		respondServiceError(w, r, err, "failed to estimate short-term revenue")
		return
	}
	response.RespondJSON(w, http.StatusOK, est)
}

func parseMarketQuery(w http.ResponseWriter, r *http.Request) (model.MarketQuery, bool) {
	params := r.URL.Query()

	q := model.MarketQuery{
		City:     params.Get("city"),
		UnitType: model.ParseUnitType(params.Get("unitType")),
	}

	raw := strings.TrimSpace(params.Get("surface"))
	if raw == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", []string{validation.MsgSurfaceRange})
		return q, false
	}
	surface, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid surface parameter", err.Error())
		return q, false
	}
	q.Surface = surface
	return q, true
}
