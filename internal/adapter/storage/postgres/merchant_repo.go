package postgres

import (
	"context"
	"errors"
	"fmt"

	"settlement-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MerchantRepo implements ports.MerchantRepository.
type MerchantRepo struct {
	pool Pool
}

// NewMerchantRepo creates a new MerchantRepo.
func NewMerchantRepo(pool Pool) *MerchantRepo {
	return &MerchantRepo{pool: pool}
}

const merchantColumns = `id, external_id, name, access_key, secret_key, balance, status, callback_url, payin_rate, created_at, updated_at`

// Create inserts a new merchant.
func (r *MerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	query := `INSERT INTO merchants (` + merchantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.ExternalID, m.Name, m.AccessKey, m.SecretKey,
		m.Balance, m.Status, m.CallbackURL, m.PayinRate,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merchant: %w", err)
	}
	return nil
}

// GetByID fetches a merchant by UUID.
func (r *MerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	query := `SELECT ` + merchantColumns + ` FROM merchants WHERE id = $1`
	return r.scanMerchant(r.pool.QueryRow(ctx, query, id))
}

// GetByExternalID fetches a merchant by its external identifier.
func (r *MerchantRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.Merchant, error) {
	query := `SELECT ` + merchantColumns + ` FROM merchants WHERE external_id = $1`
	return r.scanMerchant(r.pool.QueryRow(ctx, query, externalID))
}

// GetByAccessKey fetches a merchant by API access key.
func (r *MerchantRepo) GetByAccessKey(ctx context.Context, accessKey string) (*domain.Merchant, error) {
	query := `SELECT ` + merchantColumns + ` FROM merchants WHERE access_key = $1`
	return r.scanMerchant(r.pool.QueryRow(ctx, query, accessKey))
}

// AdjustBalance applies a signed delta to the merchant balance inside a
// transaction. Callers pair it with a terminal-state write.
func (r *MerchantRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta float64) error {
	query := `UPDATE merchants SET balance = balance + $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("adjust merchant balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("merchant not found: %s", id)
	}
	return nil
}

// Reserve debits amount only when the balance covers it. The balance check
// and the debit are one conditional statement so concurrent payouts cannot
// overdraw.
func (r *MerchantRepo) Reserve(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount float64) (bool, error) {
	query := `UPDATE merchants SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1`

	tag, err := tx.Exec(ctx, query, amount, id)
	if err != nil {
		return false, fmt.Errorf("reserve merchant balance: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// scanMerchant is a helper to scan a single row into a Merchant.
func (r *MerchantRepo) scanMerchant(row pgx.Row) (*domain.Merchant, error) {
	m := &domain.Merchant{}
	err := row.Scan(
		&m.ID, &m.ExternalID, &m.Name, &m.AccessKey, &m.SecretKey,
		&m.Balance, &m.Status, &m.CallbackURL, &m.PayinRate,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan merchant: %w", err)
	}
	return m, nil
}
