package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"chronopay-gw/internal/chronopay"
	"chronopay-gw/internal/logger"
	"chronopay-gw/internal/metrics"
	"chronopay-gw/internal/order"
	"chronopay-gw/internal/payment"
	"chronopay-gw/internal/settings"
	"chronopay-gw/internal/utils"

	"go.uber.org/zap"
)

// LandingPath is where the caller is sent after every callback.
const LandingPath = "/"

type OrderService interface {
	GetOrderByID(ctx context.Context, orderID int) (*order.Order, error)
	CanMarkOrderAsPaid(o *order.Order) bool
	MarkOrderAsPaid(ctx context.Context, o *order.Order) error
}

type SettingsProvider interface {
	Load(ctx context.Context) (settings.Settings, error)
	IsInstalled(ctx context.Context) (bool, error)
}

// Handler receives ChronoPay instant payment notifications.
type Handler struct {
	OrderSvc  OrderService
	Settings  SettingsProvider
	Callbacks payment.CallbackRecorder
	Stats     *metrics.CallbackStats
}

func NewIPNHandler(orderSvc OrderService, sp SettingsProvider, callbacks payment.CallbackRecorder) *Handler {
	return &Handler{
		OrderSvc:  orderSvc,
		Settings:  sp,
		Callbacks: callbacks,
		Stats:     &metrics.CallbackStats{},
	}
}

// IPNHandler validates the callback and marks the referenced order as paid.
// The response is a redirect to the landing page whatever the outcome.
func (h *Handler) IPNHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)
	timer := metrics.StartTimer()

	installed, err := h.Settings.IsInstalled(ctx)
	if err != nil || !installed {
		log.Error("chronopay module cannot be loaded", zap.Bool("installed", installed), zap.Error(err))
		utils.WriteJSONError(w, "payment method unavailable", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Warn("failed to parse callback form", zap.Error(err))
	}
	fields := chronopay.FieldsFromForm(r.PostForm)

	st, err := h.Settings.Load(ctx)
	if err != nil {
		log.Error("failed to load chronopay settings", zap.Error(err))
		http.Redirect(w, r, LandingPath, http.StatusFound)
		return
	}

	h.Stats.Received.Inc()
	valid := chronopay.ValidateResponseSign(fields, st.SharedSecret)
	callbackID := h.record(ctx, fields, valid)

	outcome, reason := h.process(ctx, fields, valid)
	h.count(outcome)

	log = log.With(
		zap.String("transaction_id", fields.Get(chronopay.FieldTransactionID)),
		zap.String("cs1", fields.Get(chronopay.FieldOrderID)),
		zap.String("outcome", string(outcome)),
		zap.Duration("duration", timer.Duration()),
	)
	if outcome == payment.OutcomeMarkedPaid {
		log.Info("chronopay callback processed")
	} else {
		log.Warn("chronopay callback did not mark order paid", zap.String("reason", reason))
	}
	h.finish(ctx, callbackID, outcome, reason)

	http.Redirect(w, r, LandingPath, http.StatusFound)
}

// process runs the gate: signature, order id, lookup, eligibility, mark paid.
// Every step must pass before the next one runs.
func (h *Handler) process(ctx context.Context, fields *chronopay.Fields, valid bool) (payment.Outcome, string) {
	if !valid {
		return payment.OutcomeInvalidSignature, "signature mismatch"
	}

	orderID, ok := utils.ParseInt32(fields.Get(chronopay.FieldOrderID))
	if !ok {
		return payment.OutcomeInvalidOrderID, "cs1 is not an integer"
	}

	o, err := h.OrderSvc.GetOrderByID(ctx, int(orderID))
	if err != nil {
		return payment.OutcomeError, "order lookup failed: " + err.Error()
	}
	if o == nil {
		return payment.OutcomeOrderNotFound, "order not found"
	}

	if !h.OrderSvc.CanMarkOrderAsPaid(o) {
		return payment.OutcomeNotPayable, "order payment status is " + string(o.PaymentStatus)
	}

	if err := h.OrderSvc.MarkOrderAsPaid(ctx, o); err != nil {
		if errors.Is(err, order.ErrAlreadyPaid) || errors.Is(err, order.ErrNotPayable) {
			return payment.OutcomeNotPayable, err.Error()
		}
		return payment.OutcomeError, "mark paid failed: " + err.Error()
	}
	return payment.OutcomeMarkedPaid, ""
}

func (h *Handler) count(outcome payment.Outcome) {
	switch outcome {
	case payment.OutcomeMarkedPaid:
		h.Stats.MarkedPaid.Inc()
	case payment.OutcomeInvalidSignature:
		h.Stats.InvalidSignature.Inc()
	case payment.OutcomeError:
		h.Stats.Failed.Inc()
	default:
		h.Stats.Rejected.Inc()
	}
}

// StatsHandler returns the callback counters as JSON.
func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.Stats.Snapshot())
}

// record stores the raw callback. It returns 0 when auditing failed.
func (h *Handler) record(ctx context.Context, fields *chronopay.Fields, valid bool) int64 {
	if h.Callbacks == nil {
		return 0
	}
	payload, err := json.Marshal(fields.Map())
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to encode callback payload", zap.Error(err))
		payload = []byte("{}")
	}

	id, err := h.Callbacks.SaveCallback(ctx, &payment.Callback{
		Provider:        payment.ProviderChronoPay,
		TransactionID:   fields.Get(chronopay.FieldTransactionID),
		TransactionType: fields.Get(chronopay.FieldTransactionType),
		OrderRef:        fields.Get(chronopay.FieldOrderID),
		SignatureValid:  valid,
		Payload:         payload,
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to save callback", zap.Error(err))
		return 0
	}
	return id
}

func (h *Handler) finish(ctx context.Context, callbackID int64, outcome payment.Outcome, reason string) {
	if h.Callbacks == nil || callbackID == 0 {
		return
	}

	var err error
	if outcome == payment.OutcomeMarkedPaid {
		err = h.Callbacks.MarkCallbackProcessed(ctx, callbackID, outcome)
	} else {
		err = h.Callbacks.MarkCallbackFailed(ctx, callbackID, outcome, reason)
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update callback audit", zap.Int64("callback_id", callbackID), zap.Error(err))
	}
}
