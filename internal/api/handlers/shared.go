package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/response"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/validation"
)

// maxBodyBytes bounds request bodies; simulation payloads are a few KB.
const maxBodyBytes = 1 << 20

// parseJSON reads the request body, checks it against the named JSON schema
// and decodes it into T. Every failure wraps apperrors.ErrInvalidRequestBody.
func parseJSON[T any](r *http.Request, schema string) (T, error) {
	var req T

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return req, fmt.Errorf("%w: %v", apperrors.ErrInvalidRequestBody, err)
	}
	if len(body) > maxBodyBytes {
		return req, fmt.Errorf("%w: body exceeds %d bytes", apperrors.ErrInvalidRequestBody, maxBodyBytes)
	}

	if schema != "" {
		if err := validation.ValidateSchema(schema, body); err != nil {
			return req, err
		}
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("%w: %v", apperrors.ErrInvalidRequestBody, err)
	}
	return req, nil
}

// respondServiceError maps service errors to HTTP responses. Unknown errors
// become a 500 with fallback as the message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Messages())
	case errors.Is(err, apperrors.ErrInvalidRequestBody):
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
	case errors.Is(err, apperrors.ErrInvalidReportToken):
		response.RespondError(w, http.StatusNotFound, "report not found", "invalid or expired report token")
	case errors.Is(err, apperrors.ErrMarketDataUnavailable):
		response.RespondError(w, http.StatusServiceUnavailable, "market data unavailable", err.Error())
	case errors.Is(err, apperrors.ErrLeadPublishFailed):
		response.RespondError(w, http.StatusBadGateway, "failed to submit contact request", nil)
	default:
		slog.ErrorContext(r.Context(), fallback, "error", err, "requestId", middleware.GetReqID(r.Context()))
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
