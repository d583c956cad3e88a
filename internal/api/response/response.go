// Package response writes the simulator's JSON bodies, error envelopes and
// file downloads.
package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ErrorResponse is the error envelope of every failed API call. Details holds
// the validation messages in display order, or a short technical reason.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with the given status. A nil data writes
// the status only.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already sent
		slog.Error("response encoding failed", "status", status, "error", err)
	}
}

// RespondError writes an ErrorResponse.
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Messages())
//	response.RespondError(w, http.StatusNotFound, "city not found", nil)
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// RespondAttachment sends body as a download named filename.
func RespondAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Warn("attachment write failed", "filename", filename, "error", err)
	}
}
