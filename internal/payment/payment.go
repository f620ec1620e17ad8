package payment

import "context"

// CallbackRecorder audits inbound gateway callbacks. It never decides whether
// an order gets paid.
type CallbackRecorder interface {
	SaveCallback(ctx context.Context, cb *Callback) (int64, error)
	MarkCallbackProcessed(ctx context.Context, callbackID int64, outcome Outcome) error
	MarkCallbackFailed(ctx context.Context, callbackID int64, outcome Outcome, reason string) error
}
