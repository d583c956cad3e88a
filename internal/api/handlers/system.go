package handlers

import (
	"net/http"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/response"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cities   int    `json:"cities"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system, database connectivity and the
// size of the loaded reference tables.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthResponse
// Error: 503 Service Unavailable if the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	cities := h.systemService.CityCount()

	// Check database health
	if err := h.systemService.CheckHealth(r.Context()); err != nil {
		resp := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Cities:   cities,
			Error:    err.Error(),
		}
		response.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	// System is healthy
	resp := HealthResponse{
		Status:   "healthy",
		Database: "connected",
		Cities:   cities,
	}
	response.RespondJSON(w, http.StatusOK, resp)
}

// VersionInfoResponse represents the version check response containing application
// and database version information, feature availability, and migration status.
type VersionInfoResponse struct {
	AppVersion       string          `json:"app_version"`
	DbVersion        string          `json:"db_version"`
	Features         map[string]bool `json:"features"`
	MigrationNeeded  bool            `json:"migration_needed"`
	MigrationMessage *string         `json:"migration_message"`
}

// Version handles GET requests to retrieve version information and feature availability.
// Returns the application version, database schema version, available features, and any pending migrations.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	version, err := h.systemService.CheckVersion(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to get version information", err.Error())
		return
	}

	resp := VersionInfoResponse{
		AppVersion:       version.AppVersion,
		DbVersion:        version.DbVersion,
		Features:         version.Features,
		MigrationNeeded:  version.MigrationNeeded,
		MigrationMessage: version.MigrationMessage,
	}

	response.RespondJSON(w, http.StatusOK, resp)
}
