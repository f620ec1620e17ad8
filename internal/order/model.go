package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "PENDING"
	PaymentStatusAuthorized        PaymentStatus = "AUTHORIZED"
	PaymentStatusPaid              PaymentStatus = "PAID"
	PaymentStatusPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentStatusRefunded          PaymentStatus = "REFUNDED"
	PaymentStatusVoided            PaymentStatus = "VOIDED"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusComplete   OrderStatus = "COMPLETE"
	StatusCancelled  OrderStatus = "CANCELLED"
)

type Order struct {
	ID            int
	CustomerID    int
	Total         decimal.Decimal
	Status        OrderStatus
	PaymentStatus PaymentStatus
	PaymentMethod string
	CreatedAt     time.Time
	PaidAt        *time.Time

	BillingAddress Address
}

type Address struct {
	FirstName     string
	LastName      string
	Address1      string
	City          string
	ZipPostalCode string
	PhoneNumber   string
	Email         string

	// Optional; nil when the address has no subdivision or country.
	StateAbbreviation *string
	CountryISO3       *string
}
