package order

import (
	"context"
	"errors"
	"time"

	"chronopay-gw/internal/logger"

	"go.uber.org/zap"
)

// Service is the order-processing collaborator the payment method talks to.
type Service interface {
	GetOrderByID(ctx context.Context, orderID int) (*Order, error)
	CanMarkOrderAsPaid(o *Order) bool
	MarkOrderAsPaid(ctx context.Context, o *Order) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// GetOrderByID returns nil, nil when the order does not exist.
func (s *service) GetOrderByID(ctx context.Context, orderID int) (*Order, error) {
	if orderID == 0 {
		return nil, nil
	}
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// CanMarkOrderAsPaid reports whether o may still transition to paid.
func (s *service) CanMarkOrderAsPaid(o *Order) bool {
	if o == nil {
		return false
	}
	if o.Status == StatusCancelled {
		return false
	}
	return o.PaymentStatus == PaymentStatusPending || o.PaymentStatus == PaymentStatusAuthorized
}

func (s *service) MarkOrderAsPaid(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx)
	if o == nil {
		return ErrOrderNotFound
	}
	if !s.CanMarkOrderAsPaid(o) {
		return ErrNotPayable
	}

	paidAt := s.now().UTC()
	if err := s.repo.MarkAsPaid(ctx, o.ID, paidAt); err != nil {
		if errors.Is(err, ErrAlreadyPaid) {
			log.Info("order already marked as paid", zap.Int("order_id", o.ID))
		}
		return err
	}

	o.PaymentStatus = PaymentStatusPaid
	o.Status = StatusProcessing
	o.PaidAt = &paidAt

	log.Info("order marked as paid", zap.Int("order_id", o.ID))
	return nil
}
