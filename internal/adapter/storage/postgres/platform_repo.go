package postgres

import (
	"context"
	"errors"
	"fmt"

	"settlement-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// PlatformAccountRepo implements ports.PlatformAccountRepository.
type PlatformAccountRepo struct {
	pool Pool
}

// NewPlatformAccountRepo creates a new PlatformAccountRepo.
func NewPlatformAccountRepo(pool Pool) *PlatformAccountRepo {
	return &PlatformAccountRepo{pool: pool}
}

// Get fetches a platform revenue account by its identifier.
func (r *PlatformAccountRepo) Get(ctx context.Context, id string) (*domain.PlatformAccount, error) {
	query := `SELECT id, balance, updated_at FROM platform_accounts WHERE id = $1`

	a := &domain.PlatformAccount{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Balance, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan platform account: %w", err)
	}
	return a, nil
}

// AdjustBalance applies a signed delta to the platform account. Negative
// deltas are allowed: a channel whose cost exceeds the merchant fee books
// a loss rather than silently clamping to zero.
func (r *PlatformAccountRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, id string, delta float64) error {
	query := `UPDATE platform_accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("adjust platform balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("platform account not found: %s", id)
	}
	return nil
}
