package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/blinksale/rate-limiting/internal/service"
)

// LimitsHandler exposes admin operations on per-fingerprint counter state.
type LimitsHandler struct {
	admission *service.AdmissionService
	logger    *zap.Logger
}

// NewLimitsHandler creates a new limits handler.
func NewLimitsHandler(admission *service.AdmissionService, logger *zap.Logger) *LimitsHandler {
	return &LimitsHandler{
		admission: admission,
		logger:    logger,
	}
}

// Status handles GET /limits/{fingerprint} - inspect live counter state.
func (h *LimitsHandler) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fingerprint := mux.Vars(r)["fingerprint"]
		if fingerprint == "" {
			h.writeError(w, http.StatusBadRequest, "fingerprint is required")
			return
		}

		status, err := h.admission.Status(r.Context(), fingerprint)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				h.writeError(w, http.StatusNotFound, "no counter state for fingerprint")
				return
			}
			h.logger.Error("failed to read counter state", zap.String("fingerprint", fingerprint), zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(status)
	}
}

// Clear handles DELETE /limits/{fingerprint} - drop counter state, lifting
// any active window or lockout.
func (h *LimitsHandler) Clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fingerprint := mux.Vars(r)["fingerprint"]
		if fingerprint == "" {
			h.writeError(w, http.StatusBadRequest, "fingerprint is required")
			return
		}

		if err := h.admission.Clear(r.Context(), fingerprint); err != nil {
			h.logger.Error("failed to clear counter state", zap.String("fingerprint", fingerprint), zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "failed to clear counter state")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"message":     "counter state cleared",
			"fingerprint": fingerprint,
		})
	}
}

// writeError writes an error response
func (h *LimitsHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
