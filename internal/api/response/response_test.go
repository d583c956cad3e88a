package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	t.Run("encodes the body", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondJSON(w, http.StatusCreated, map[string]string{"city": "lyon"})

		if w.Code != http.StatusCreated {
			t.Errorf("Expected 201, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json, got %q", ct)
		}
		if w.Body.String() != "{\"city\":\"lyon\"}\n" {
			t.Errorf("Unexpected body %q", w.Body.String())
		}
	})

	t.Run("nil data writes the status only", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondJSON(w, http.StatusNoContent, nil)

		if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
			t.Errorf("Expected empty 204, got %d %q", w.Code, w.Body.String())
		}
	})
}

func TestRespondError(t *testing.T) {
	t.Run("carries validation messages", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondError(w, http.StatusBadRequest, "validation failed", []string{"Ville requise"})

		var body struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode: %v", err)
		}
		if body.Error != "validation failed" || len(body.Details) != 1 || body.Details[0] != "Ville requise" {
			t.Errorf("Unexpected body %+v", body)
		}
	})

	t.Run("omits empty details", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondError(w, http.StatusNotFound, "city not found", nil)

		if w.Body.String() != "{\"error\":\"city not found\"}\n" {
			t.Errorf("Unexpected body %q", w.Body.String())
		}
	})
}

func TestRespondAttachment(t *testing.T) {
	w := httptest.NewRecorder()
	RespondAttachment(w, "application/pdf", "AM-Capital-Simulation-lyon-2026-10-19.pdf", []byte("%PDF-1.3"))

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="AM-Capital-Simulation-lyon-2026-10-19.pdf"` {
		t.Errorf("Unexpected Content-Disposition %q", got)
	}
	if got := w.Header().Get("Content-Length"); got != "8" {
		t.Errorf("Expected Content-Length 8, got %q", got)
	}
	if w.Body.String() != "%PDF-1.3" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}
