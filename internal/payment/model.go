package payment

import (
	"encoding/json"
	"time"
)

const ProviderChronoPay = "CHRONOPAY"

// Callback is one received IPN request as stored in payment_callbacks.
type Callback struct {
	ID              int64
	Provider        string
	TransactionID   string
	TransactionType string
	OrderRef        string
	SignatureValid  bool
	Payload         json.RawMessage
	ReceivedAt      time.Time
}

// Outcome records what the IPN gate decided for a callback.
type Outcome string

const (
	OutcomeMarkedPaid       Outcome = "MARKED_PAID"
	OutcomeInvalidSignature Outcome = "INVALID_SIGNATURE"
	OutcomeInvalidOrderID   Outcome = "INVALID_ORDER_ID"
	OutcomeOrderNotFound    Outcome = "ORDER_NOT_FOUND"
	OutcomeNotPayable       Outcome = "NOT_PAYABLE"
	OutcomeError            Outcome = "ERROR"
)
