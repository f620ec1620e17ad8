package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"chronopay-gw/internal/logger"
	"chronopay-gw/internal/utils"

	"go.uber.org/zap"
)

// Handler serves the admin configuration page of the payment method.
type Handler struct {
	Svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{Svc: svc}
}

// GetConfigure returns the stored settings.
func (h *Handler) GetConfigure(w http.ResponseWriter, r *http.Request) {
	st, err := h.Svc.Load(r.Context())
	if errors.Is(err, ErrNotInstalled) {
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to load chronopay settings", zap.Error(err))
		utils.WriteJSONError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, st)
}

// PostConfigure validates and stores new settings, then echoes them back.
func (h *Handler) PostConfigure(w http.ResponseWriter, r *http.Request) {
	var st Settings
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&st); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	err := h.Svc.Save(r.Context(), st)
	switch {
	case errors.Is(err, ErrInvalidGatewayURL), errors.Is(err, ErrNegativeFee):
		utils.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		utils.WriteJSONError(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, st)
}
