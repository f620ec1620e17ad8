package checkout

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chronopay-gw/internal/chronopay"
	"chronopay-gw/internal/order"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, orderID int) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) PostProcessPayment(ctx context.Context, o *order.Order) (*chronopay.RedirectForm, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chronopay.RedirectForm), args.Error(1)
}

func (m *MockProcessor) CanRePostProcessPayment(o *order.Order) (bool, error) {
	args := m.Called(o)
	return args.Bool(0), args.Error(1)
}

func testForm() *chronopay.RedirectForm {
	f := chronopay.NewFields()
	f.Add(chronopay.FieldProductID, "prod-1")
	f.Add(chronopay.FieldOrderID, "42")
	f.Add(chronopay.FieldSign, "29905a2eb1d6cd0df2055ad52dc14e30")
	return &chronopay.RedirectForm{
		Name:   chronopay.FormName,
		Method: http.MethodPost,
		URL:    "https://secure.chronopay.com/index_shop.cgi",
		Fields: f,
	}
}

func newRouter(h *Handler) http.Handler {
	router := httprouter.New()
	router.Handler(http.MethodGet, "/checkout/chronopay/:order_id", http.HandlerFunc(h.Redirect))
	router.Handler(http.MethodGet, "/checkout/chronopay/:order_id/retry", http.HandlerFunc(h.Retry))
	return router
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler_Redirect(t *testing.T) {
	t.Run("Renders_Form", func(t *testing.T) {
		orders := new(MockOrderService)
		proc := new(MockProcessor)
		h := NewHandler(orders, proc)

		o := &order.Order{ID: 42, PaymentStatus: order.PaymentStatusPending}
		orders.On("GetOrderByID", mock.Anything, 42).Return(o, nil)
		proc.On("PostProcessPayment", mock.Anything, o).Return(testForm(), nil)

		w := serve(h, "/checkout/chronopay/42")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		body := w.Body.String()
		assert.Contains(t, body, `action="https://secure.chronopay.com/index_shop.cgi"`)
		assert.Contains(t, body, `name="cs1" value="42"`)
		assert.Contains(t, body, `value="29905a2eb1d6cd0df2055ad52dc14e30"`)
		proc.AssertExpectations(t)
	})

	t.Run("Invalid_OrderID", func(t *testing.T) {
		orders := new(MockOrderService)
		h := NewHandler(orders, new(MockProcessor))

		w := serve(h, "/checkout/chronopay/abc")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		orders.AssertNotCalled(t, "GetOrderByID", mock.Anything, mock.Anything)
	})

	t.Run("Order_Not_Found", func(t *testing.T) {
		orders := new(MockOrderService)
		h := NewHandler(orders, new(MockProcessor))
		orders.On("GetOrderByID", mock.Anything, 7).Return(nil, nil)

		w := serve(h, "/checkout/chronopay/7")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Lookup_Error", func(t *testing.T) {
		orders := new(MockOrderService)
		h := NewHandler(orders, new(MockProcessor))
		orders.On("GetOrderByID", mock.Anything, 7).Return(nil, errors.New("db down"))

		w := serve(h, "/checkout/chronopay/7")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Already_Paid", func(t *testing.T) {
		orders := new(MockOrderService)
		proc := new(MockProcessor)
		h := NewHandler(orders, proc)
		orders.On("GetOrderByID", mock.Anything, 42).Return(&order.Order{ID: 42, PaymentStatus: order.PaymentStatusPaid}, nil)

		w := serve(h, "/checkout/chronopay/42")

		assert.Equal(t, http.StatusConflict, w.Code)
		proc.AssertNotCalled(t, "PostProcessPayment", mock.Anything, mock.Anything)
	})

	t.Run("Bad_Gateway_Config", func(t *testing.T) {
		orders := new(MockOrderService)
		proc := new(MockProcessor)
		h := NewHandler(orders, proc)

		o := &order.Order{ID: 42, PaymentStatus: order.PaymentStatusPending}
		orders.On("GetOrderByID", mock.Anything, 42).Return(o, nil)
		proc.On("PostProcessPayment", mock.Anything, o).Return(nil, chronopay.ErrInvalidGatewayURL)

		w := serve(h, "/checkout/chronopay/42")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHandler_Retry(t *testing.T) {
	t.Run("Allowed", func(t *testing.T) {
		orders := new(MockOrderService)
		proc := new(MockProcessor)
		h := NewHandler(orders, proc)

		o := &order.Order{ID: 42, PaymentStatus: order.PaymentStatusPending}
		orders.On("GetOrderByID", mock.Anything, 42).Return(o, nil)
		proc.On("CanRePostProcessPayment", o).Return(true, nil)
		proc.On("PostProcessPayment", mock.Anything, o).Return(testForm(), nil)

		w := serve(h, "/checkout/chronopay/42/retry")

		assert.Equal(t, http.StatusOK, w.Code)
		proc.AssertExpectations(t)
	})

	t.Run("Too_Early", func(t *testing.T) {
		orders := new(MockOrderService)
		proc := new(MockProcessor)
		h := NewHandler(orders, proc)

		o := &order.Order{ID: 42, PaymentStatus: order.PaymentStatusPending}
		orders.On("GetOrderByID", mock.Anything, 42).Return(o, nil)
		proc.On("CanRePostProcessPayment", o).Return(false, nil)

		w := serve(h, "/checkout/chronopay/42/retry")

		assert.Equal(t, http.StatusConflict, w.Code)
		proc.AssertNotCalled(t, "PostProcessPayment", mock.Anything, mock.Anything)
	})
}
