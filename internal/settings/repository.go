package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s Settings) error
	Delete(ctx context.Context) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Load returns ErrNotInstalled when no chronopay rows exist.
func (r *repository) Load(ctx context.Context) (*Settings, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, value FROM payment_settings WHERE name LIKE $1
	`, keyPrefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		values[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNotInstalled
	}

	s := &Settings{
		GatewayURL:    values[keyGatewayURL],
		ProductID:     values[keyProductID],
		ProductName:   values[keyProductName],
		SharedSecret:  values[keySharedSecret],
		AdditionalFee: decimal.Zero,
	}
	if raw := values[keyAdditionalFee]; raw != "" {
		fee, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSetting, keyAdditionalFee, err)
		}
		s.AdditionalFee = fee
	}
	return s, nil
}

func (r *repository) Save(ctx context.Context, s Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	const q = `
	INSERT INTO payment_settings (name, value)
	VALUES ($1, $2)
	ON CONFLICT (name)
	DO UPDATE SET value = EXCLUDED.value, updated_at = now();
	`

	pairs := [][2]string{
		{keyGatewayURL, s.GatewayURL},
		{keyProductID, s.ProductID},
		{keyProductName, s.ProductName},
		{keySharedSecret, s.SharedSecret},
		{keyAdditionalFee, s.AdditionalFee.String()},
	}
	for _, p := range pairs {
		if _, err := tx.ExecContext(ctx, q, p[0], p[1]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save setting %s: %w", p[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payment_settings WHERE name LIKE $1`, keyPrefix+"%")
	return err
}
