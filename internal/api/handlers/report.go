package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/request"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/response"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/report"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/validation"
)

// ReportHandler issues report tokens and serves PDF reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// TokenResponse is returned when a report token is issued.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	PDFURL    string    `json:"pdfUrl"`
}

// CreateToken seals a simulation request into a shareable token.
//
// Endpoint: POST /api/reports
// Request Body: SimulationRequest
// Response: 201 Created with TokenResponse
// Error: 400 Bad Request if the body does not match the contract or validation fails
func (h *ReportHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SimulationRequest](r, validation.SchemaSimulation)
	if err != nil {
		respondServiceError(w, r, err, "failed to issue report token")
		return
	}

	token, err := h.reportService.IssueToken(req)
	if err != nil {
		respondServiceError(w, r, err, "failed to issue report token")
		return
	}

	response.RespondJSON(w, http.StatusCreated, TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(h.reportService.TokenTTL()),
		PDFURL:    fmt.Sprintf("/api/reports/%s/pdf", token),
	})
}

// TokenPDF renders the PDF for a previously issued token.
//
// Endpoint: GET /api/reports/{token}/pdf
// Response: 200 OK with application/pdf
// Error: 404 Not Found if the token is invalid or expired
func (h *ReportHandler) TokenPDF(w http.ResponseWriter, r *http.Request) {
	req, err := h.reportService.OpenToken(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, r, err, "failed to open report token")
		return
	}
	h.writePDF(w, r, req)
}

// PDF renders the PDF for the simulation in the request body.
//
// Endpoint: POST /api/reports/pdf
// Request Body: SimulationRequest
// Response: 200 OK with application/pdf
// Error: 400 Bad Request if the body does not match the contract or validation fails
// Error: 500 Internal Server Error if rendering fails
func (h *ReportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SimulationRequest](r, validation.SchemaSimulation)
	if err != nil {
		respondServiceError(w, r, err, "failed to render report")
		return
	}
	h.writePDF(w, r, req)
}

// writePDF renders into memory first so a failure can still produce a JSON error.
func (h *ReportHandler) writePDF(w http.ResponseWriter, r *http.Request, req request.SimulationRequest) {
	var buf bytes.Buffer
	rep, err := h.reportService.RenderPDF(r.Context(), &buf, req)
	if err != nil {
		respondServiceError(w, r, err, "failed to render report")
		return
	}

	response.RespondAttachment(w, "application/pdf", report.Filename(rep), buf.Bytes())
}
