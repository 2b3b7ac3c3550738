package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"yulebook/internal/database"
	"yulebook/internal/metrics"
	"yulebook/internal/models"
	"yulebook/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// respondError maps service and storage errors onto HTTP statuses.
// Validation messages pass through verbatim; everything else is hidden
// behind a generic 500 and logged server-side.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := s.menus.GetAvailableMenu(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var form models.BookingForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := s.bookings.CreateBooking(r.Context(), &form)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	metrics.BookingCreated(receipt.TotalAmount)
	writeJSON(w, http.StatusCreated, receipt)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	reference := strings.TrimSpace(r.URL.Query().Get("reference"))
	if reference == "" {
		writeError(w, http.StatusBadRequest, "reference query parameter is required")
		return
	}

	booking, err := s.bookings.GetByReference(r.Context(), reference)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
