package payment

import (
	"context"
	"database/sql"
)

type Repository interface {
	CallbackRecorder
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// SaveCallback inserts every callback, duplicates included: retries by the
// gateway are part of the audit trail.
func (r *repository) SaveCallback(ctx context.Context, cb *Callback) (int64, error) {
	const q = `
	INSERT INTO payment_callbacks (
		provider,
		transaction_id,
		transaction_type,
		order_ref,
		signature_valid,
		payload
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		q,
		cb.Provider,
		cb.TransactionID,
		cb.TransactionType,
		cb.OrderRef,
		cb.SignatureValid,
		[]byte(cb.Payload),
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	cb.ID = id
	return id, nil
}

func (r *repository) MarkCallbackProcessed(ctx context.Context, callbackID int64, outcome Outcome) error {
	const q = `
	UPDATE payment_callbacks
	SET processed_at = now(), outcome = $2
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, callbackID, outcome)
	return err
}

func (r *repository) MarkCallbackFailed(ctx context.Context, callbackID int64, outcome Outcome, reason string) error {
	const q = `
	UPDATE payment_callbacks
	SET processed_at = now(), outcome = $2, process_error = $3
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, callbackID, outcome, reason)
	return err
}
