package handlers

import (
	"net/http"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/request"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/response"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/validation"
)

// SimulationHandler handles the profitability endpoints.
type SimulationHandler struct {
	simulationService *service.SimulationService
}

// NewSimulationHandler creates a new SimulationHandler
func NewSimulationHandler(simulationService *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{
		simulationService: simulationService,
	}
}

// Simulate computes the profitability report of a hypothetical purchase.
//
// Endpoint: POST /api/simulations
// Request Body: SimulationRequest (price, surface, unitType, exploitationMode, city, and optionally marketData and fetchMarketData)
// Response: 200 OK with SimulationReport
// Error: 400 Bad Request if the body does not match the contract or validation fails
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SimulationRequest](r, validation.SchemaSimulation)
	if err != nil {
		respondServiceError(w, r, err, "failed to run simulation")
		return
	}

	in, err := simulateInput(req)
	if err != nil {
		respondServiceError(w, r, err, "failed to run simulation")
		return
	}

	report, err := h.simulationService.Simulate(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err, "failed to run simulation")
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// Compare evaluates the property under both exploitation modes.
//
// Endpoint: POST /api/simulations/compare
// Request Body: CompareRequest (price, surface, unitType, city, and optionally longTermData, shortTermData and fetchMarketData)
// Response: 200 OK with ComparisonResult
// Error: 400 Bad Request if the body does not match the contract or validation fails
func (h *SimulationHandler) Compare(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CompareRequest](r, validation.SchemaCompare)
	if err != nil {
		respondServiceError(w, r, err, "failed to compare modes")
		return
	}

	longData, err := request.DecodeMarketData(req.LongTermData, model.LongTerm)
	if err != nil {
		respondServiceError(w, r, err, "failed to compare modes")
		return
	}
	shortData, err := request.DecodeMarketData(req.ShortTermData, model.ShortTerm)
	if err != nil {
		respondServiceError(w, r, err, "failed to compare modes")
		return
	}

	result, err := h.simulationService.Compare(r.Context(), service.CompareInput{
		Config:          req.Config(),
		LongTermData:    longData,
		ShortTermData:   shortData,
		FetchMarketData: req.FetchMarketData,
	})
	if err != nil {
		respondServiceError(w, r, err, "failed to compare modes")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Taxes compares the micro and réel tax regimes for the simulated property.
//
// Endpoint: POST /api/simulations/taxes
// Request Body: TaxRequest (SimulationRequest fields plus optional marginalTaxRate, 0 to 0.6)
// Response: 200 OK with TaxComparison
// Error: 400 Bad Request if the body does not match the contract or validation fails
func (h *SimulationHandler) Taxes(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.TaxRequest](r, validation.SchemaTaxes)
	if err != nil {
		respondServiceError(w, r, err, "failed to compute taxes")
		return
	}

	in, err := simulateInput(req.SimulationRequest)
	if err != nil {
		respondServiceError(w, r, err, "failed to compute taxes")
		return
	}

	taxes, err := h.simulationService.Taxes(r.Context(), in, req.MarginalTaxRate)
	if err != nil {
		respondServiceError(w, r, err, "failed to compute taxes")
		return
	}

	response.RespondJSON(w, http.StatusOK, taxes)
}

// ProjectionsResponse wraps the yearly projections with the parameters used.
type ProjectionsResponse struct {
	Years          int                      `json:"years"`
	RentGrowth     float64                  `json:"rentGrowth"`
	PropertyGrowth float64                  `json:"propertyGrowth"`
	Projections    []model.YearlyProjection `json:"projections"`
}

// Projections projects rent, charges and property value year by year.
//
// Endpoint: POST /api/simulations/projections
// Request Body: ProjectionRequest (SimulationRequest fields plus optional years, rentGrowth, propertyGrowth)
// Response: 200 OK with ProjectionsResponse
// Error: 400 Bad Request if the body does not match the contract or validation fails
func (h *SimulationHandler) Projections(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ProjectionRequest](r, validation.SchemaProjections)
	if err != nil {
		respondServiceError(w, r, err, "failed to compute projections")
		return
	}

	in, err := simulateInput(req.SimulationRequest)
	if err != nil {
		respondServiceError(w, r, err, "failed to compute projections")
		return
	}

	params := engine.ProjectionParams{Years: req.Years, RentGrowth: req.RentGrowth, PropertyGrowth: req.PropertyGrowth}
	projections, err := h.simulationService.Projections(r.Context(), in, params)
	if err != nil {
		respondServiceError(w, r, err, "failed to compute projections")
		return
	}

	rentGrowth, propertyGrowth := params.Rates()
	resp := ProjectionsResponse{
		Years:          len(projections),
		RentGrowth:     rentGrowth,
		PropertyGrowth: propertyGrowth,
		Projections:    projections,
	}
	response.RespondJSON(w, http.StatusOK, resp)
}

func simulateInput(req request.SimulationRequest) (service.SimulateInput, error) {
	data, err := req.DecodeMarketData()
	if err != nil {
		return service.SimulateInput{}, err
	}
	return service.SimulateInput{
		Config:          req.Config(),
		MarketData:      data,
		FetchMarketData: req.FetchMarketData,
	}, nil
}
