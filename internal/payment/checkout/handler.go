package checkout

import (
	"context"
	"errors"
	"net/http"

	"chronopay-gw/internal/chronopay"
	"chronopay-gw/internal/logger"
	"chronopay-gw/internal/order"
	"chronopay-gw/internal/utils"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// OrderParam is the route parameter holding the order id.
const OrderParam = "order_id"

type OrderService interface {
	GetOrderByID(ctx context.Context, orderID int) (*order.Order, error)
}

// PaymentProcessor builds the gateway redirect for an order.
type PaymentProcessor interface {
	PostProcessPayment(ctx context.Context, o *order.Order) (*chronopay.RedirectForm, error)
	CanRePostProcessPayment(o *order.Order) (bool, error)
}

// Handler sends customers to the ChronoPay hosted payment page.
type Handler struct {
	OrderSvc  OrderService
	Processor PaymentProcessor
}

func NewHandler(orderSvc OrderService, p PaymentProcessor) *Handler {
	return &Handler{OrderSvc: orderSvc, Processor: p}
}

// Redirect renders the auto-submitting form for a pending order.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	if o.PaymentStatus != order.PaymentStatusPending {
		utils.WriteJSONError(w, "order is not awaiting payment", http.StatusConflict)
		return
	}
	h.render(w, r, o)
}

// Retry sends the customer back to the gateway for an order whose first
// attempt was abandoned.
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	allowed, err := h.Processor.CanRePostProcessPayment(o)
	if err != nil {
		utils.WriteJSONError(w, "failed to check order", http.StatusInternalServerError)
		return
	}
	if !allowed {
		utils.WriteJSONError(w, "payment cannot be retried yet", http.StatusConflict)
		return
	}
	h.render(w, r, o)
}

func (h *Handler) loadOrder(w http.ResponseWriter, r *http.Request) (*order.Order, bool) {
	ctx := r.Context()
	raw := httprouter.ParamsFromContext(ctx).ByName(OrderParam)

	orderID, ok := utils.ParseInt32(raw)
	if !ok || orderID <= 0 {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return nil, false
	}

	o, err := h.OrderSvc.GetOrderByID(ctx, int(orderID))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load order", zap.Int32("order_id", orderID), zap.Error(err))
		utils.WriteJSONError(w, "failed to load order", http.StatusInternalServerError)
		return nil, false
	}
	if o == nil {
		utils.WriteJSONError(w, order.ErrOrderNotFound.Error(), http.StatusNotFound)
		return nil, false
	}
	return o, true
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, o *order.Order) {
	log := logger.FromCtx(r.Context()).With(zap.Int("order_id", o.ID))

	form, err := h.Processor.PostProcessPayment(r.Context(), o)
	if err != nil {
		log.Error("failed to build chronopay redirect", zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, chronopay.ErrInvalidGatewayURL) {
			status = http.StatusServiceUnavailable
		}
		utils.WriteJSONError(w, "payment method unavailable", status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := form.Render(w); err != nil {
		log.Error("failed to render chronopay redirect", zap.Error(err))
	}
}
