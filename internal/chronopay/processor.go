package chronopay

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"chronopay-gw/internal/logger"
	"chronopay-gw/internal/order"
	"chronopay-gw/internal/settings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettingsProvider loads the current merchant configuration.
type SettingsProvider interface {
	Load(ctx context.Context) (settings.Settings, error)
}

type RecurringPaymentType string

const RecurringNotSupported RecurringPaymentType = "NOT_SUPPORTED"

type PaymentMethodType string

const PaymentMethodRedirection PaymentMethodType = "REDIRECTION"

// Result is returned by every payment operation. Err is set whenever Errors
// is non-empty.
type Result struct {
	NewPaymentStatus order.PaymentStatus
	Errors           []string
	Err              error
}

func (r Result) Success() bool {
	return len(r.Errors) == 0
}

func unsupported(msg string) Result {
	return Result{
		Errors: []string{msg},
		Err:    fmt.Errorf("%w: %s", ErrNotSupported, msg),
	}
}

// Processor is the ChronoPay hosted-redirect payment method.
type Processor struct {
	settings     SettingsProvider
	currencyCode string
	storeURL     string
	now          func() time.Time
}

func NewProcessor(sp SettingsProvider, currencyCode, storeURL string) *Processor {
	return &Processor{
		settings:     sp,
		currencyCode: currencyCode,
		storeURL:     storeURL,
		now:          time.Now,
	}
}

// ProcessPayment leaves the order pending; payment happens on the gateway.
func (p *Processor) ProcessPayment(ctx context.Context, o *order.Order) Result {
	return Result{NewPaymentStatus: order.PaymentStatusPending}
}

// PostProcessPayment builds the signed redirect form for o.
func (p *Processor) PostProcessPayment(ctx context.Context, o *order.Order) (*RedirectForm, error) {
	if o == nil {
		return nil, ErrNilOrder
	}
	st, err := p.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	form, err := BuildRedirectForm(st, o, p.currencyCode, p.storeURL)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("chronopay redirect form built",
		zap.Int("order_id", o.ID),
		zap.String("product_price", form.Fields.Get(FieldProductPrice)),
		zap.String("currency", p.currencyCode),
	)
	return form, nil
}

// CanRePostProcessPayment reports whether the customer may be sent to the
// gateway again: the order must still be pending and at least a minute old.
func (p *Processor) CanRePostProcessPayment(o *order.Order) (bool, error) {
	if o == nil {
		return false, ErrNilOrder
	}
	if o.PaymentStatus != order.PaymentStatusPending {
		return false, nil
	}
	return p.now().Sub(o.CreatedAt) >= time.Minute, nil
}

func (p *Processor) AdditionalHandlingFee(ctx context.Context) (decimal.Decimal, error) {
	st, err := p.settings.Load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return st.AdditionalFee, nil
}

func (p *Processor) HidePaymentMethod() bool { return false }

func (p *Processor) Capture(ctx context.Context, o *order.Order) Result {
	return unsupported("Capture method not supported")
}

func (p *Processor) Refund(ctx context.Context, o *order.Order, amount decimal.Decimal) Result {
	return unsupported("Refund method not supported")
}

func (p *Processor) Void(ctx context.Context, o *order.Order) Result {
	return unsupported("Void method not supported")
}

func (p *Processor) ProcessRecurringPayment(ctx context.Context, o *order.Order) Result {
	return unsupported("Recurring payment not supported")
}

func (p *Processor) CancelRecurringPayment(ctx context.Context, o *order.Order) Result {
	return unsupported("Recurring payment not supported")
}

func (p *Processor) SupportCapture() bool                         { return false }
func (p *Processor) SupportPartiallyRefund() bool                 { return false }
func (p *Processor) SupportRefund() bool                          { return false }
func (p *Processor) SupportVoid() bool                            { return false }
func (p *Processor) RecurringPaymentType() RecurringPaymentType   { return RecurringNotSupported }
func (p *Processor) PaymentMethodType() PaymentMethodType         { return PaymentMethodRedirection }
func (p *Processor) SkipPaymentInfo() bool                        { return false }
func (p *Processor) SystemName() string                           { return SystemName }
func (p *Processor) ValidatePaymentForm(form url.Values) []string { return nil }

func (p *Processor) ConfigurationPageURL() string {
	return p.storeURL + ConfigurePath
}
