package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/response"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
)

// CityHandler serves the reference city list.
type CityHandler struct {
	referenceService *service.ReferenceService
}

// NewCityHandler creates a new CityHandler
func NewCityHandler(referenceService *service.ReferenceService) *CityHandler {
	return &CityHandler{
		referenceService: referenceService,
	}
}

// Cities returns every supported city with its rent reference.
//
// Endpoint: GET /api/cities
// Response: 200 OK with []CityMarketProfile sorted by slug
func (h *CityHandler) Cities(w http.ResponseWriter, _ *http.Request) {
	cities := h.referenceService.Cities()
	if cities == nil {
		cities = []model.CityMarketProfile{}
	}
	response.RespondJSON(w, http.StatusOK, cities)
}

// City returns one city. The name is normalized, so "Saint Étienne" and
// "saint-etienne" resolve to the same profile.
//
// Endpoint: GET /api/cities/{city}
// Response: 200 OK with CityMarketProfile
// Error: 404 Not Found if the city is not in the reference tables
func (h *CityHandler) City(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "city")

	city, ok := h.referenceService.City(name)
	if !ok {
		response.RespondError(w, http.StatusNotFound, "city not found", name)
		return
	}
	response.RespondJSON(w, http.StatusOK, city)
}
