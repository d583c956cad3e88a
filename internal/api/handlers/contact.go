package handlers

import (
	"net/http"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/request"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/response"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/validation"
)

// ContactHandler handles contact-form submissions.
type ContactHandler struct {
	leadService *service.LeadService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(leadService *service.LeadService) *ContactHandler {
	return &ContactHandler{
		leadService: leadService,
	}
}

// ContactResponse acknowledges a submission.
type ContactResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Submit validates a contact request and hands it to the sales pipeline.
//
// Endpoint: POST /api/contact
// Request Body: ContactRequest (firstName, lastName, email, phone, message, and optionally projectType, budget, timeline, simulation)
// Response: 201 Created with ContactResponse
// Error: 400 Bad Request if the body does not match the contract or validation fails
// Error: 502 Bad Gateway if the lead could not be handed off
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ContactRequest](r, validation.SchemaContact)
	if err != nil {
		respondServiceError(w, r, err, "failed to submit contact request")
		return
	}

	lead, err := h.leadService.Submit(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, "failed to submit contact request")
		return
	}

	response.RespondJSON(w, http.StatusCreated, ContactResponse{
		ID:      lead.ID,
		Message: "Votre demande a bien été envoyée. Nous vous recontacterons sous 48h.",
	})
}
