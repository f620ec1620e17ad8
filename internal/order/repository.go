package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type Repository interface {
	GetOrderByID(ctx context.Context, orderID int) (*Order, error)
	MarkAsPaid(ctx context.Context, orderID int, paidAt time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrderByID(ctx context.Context, orderID int) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.customer_id, o.total, o.status, o.payment_status, o.payment_method,
			o.created_at, o.paid_at,
			a.first_name, a.last_name, a.address1, a.city, a.zip_postal_code,
			a.phone_number, a.email, a.state_abbreviation, a.country_iso3
		FROM orders o
		JOIN order_addresses a ON a.id = o.billing_address_id
		WHERE o.id = $1
	`, orderID)

	var (
		o       Order
		paidAt  sql.NullTime
		state   sql.NullString
		country sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.Total, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.CreatedAt, &paidAt,
		&o.BillingAddress.FirstName, &o.BillingAddress.LastName, &o.BillingAddress.Address1,
		&o.BillingAddress.City, &o.BillingAddress.ZipPostalCode,
		&o.BillingAddress.PhoneNumber, &o.BillingAddress.Email, &state, &country,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if paidAt.Valid {
		o.PaidAt = &paidAt.Time
	}
	if state.Valid {
		o.BillingAddress.StateAbbreviation = &state.String
	}
	if country.Valid {
		o.BillingAddress.CountryISO3 = &country.String
	}
	return &o, nil
}

// MarkAsPaid flips the payment status inside one transaction. The UPDATE only
// matches orders that are not paid yet, so concurrent callbacks for the same
// order mark it at most once; the loser gets ErrAlreadyPaid.
func (r *repository) MarkAsPaid(ctx context.Context, orderID int, paidAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = $1, paid_at = $2, status = $3
		WHERE id = $4 AND payment_status IN ($5, $6)
	`, PaymentStatusPaid, paidAt, StatusProcessing, orderID, PaymentStatusPending, PaymentStatusAuthorized)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update order payment status: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		tx.Rollback()
		return fmt.Errorf("%w: %d", ErrAlreadyPaid, orderID)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_notes (order_id, note) VALUES ($1, $2)
	`, orderID, "Order has been marked as paid"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to add order note: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
