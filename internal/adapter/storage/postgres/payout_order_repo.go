package postgres

import (
	"context"
	"errors"
	"fmt"

	"settlement-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PayoutOrderRepo implements ports.PayoutOrderRepository.
type PayoutOrderRepo struct {
	pool Pool
}

// NewPayoutOrderRepo creates a new PayoutOrderRepo.
func NewPayoutOrderRepo(pool Pool) *PayoutOrderRepo {
	return &PayoutOrderRepo{pool: pool}
}

const payoutColumns = `id, external_order_id, platform_order_id, merchant_id, channel,
		amount, fee, total_deduction, frozen_rate, status, reference,
		account_number, account_name, ifsc, wallet, source, hold_for_approval,
		approved_by, approved_at, reject_reason, raw_callback, created_at, updated_at`

// Create inserts a new pending payout inside the reservation transaction,
// so the balance hold and the pending row commit together.
func (r *PayoutOrderRepo) Create(ctx context.Context, tx pgx.Tx, o *domain.PayoutOrder) error {
	query := `INSERT INTO payout_orders (` + payoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`

	_, err := tx.Exec(ctx, query,
		o.ID, o.ExternalOrderID, o.PlatformOrderID, o.MerchantID, o.Channel,
		o.Amount, o.Fee, o.TotalDeduction, o.FrozenRate, o.Status, o.Reference,
		o.Destination.AccountNumber, o.Destination.AccountName, o.Destination.IFSC,
		o.Destination.Wallet, o.Source, o.HoldForApproval,
		o.ApprovedBy, o.ApprovedAt, o.RejectReason, o.RawCallback,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payout order: %w", err)
	}
	return nil
}

// GetByID fetches a payout order by UUID.
func (r *PayoutOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PayoutOrder, error) {
	query := `SELECT ` + payoutColumns + ` FROM payout_orders WHERE id = $1`
	return r.scanOrder(r.pool.QueryRow(ctx, query, id))
}

// GetByExternalOrderID fetches a payout order by merchant-facing id.
func (r *PayoutOrderRepo) GetByExternalOrderID(ctx context.Context, externalOrderID string) (*domain.PayoutOrder, error) {
	query := `SELECT ` + payoutColumns + ` FROM payout_orders WHERE external_order_id = $1`
	return r.scanOrder(r.pool.QueryRow(ctx, query, externalOrderID))
}

// GetByPlatformOrderID fetches a payout order by the upstream-issued id.
func (r *PayoutOrderRepo) GetByPlatformOrderID(ctx context.Context, platformOrderID string) (*domain.PayoutOrder, error) {
	query := `SELECT ` + payoutColumns + ` FROM payout_orders WHERE platform_order_id = $1`
	return r.scanOrder(r.pool.QueryRow(ctx, query, platformOrderID))
}

// ExistsExternalOrderID reports whether the merchant-facing id is taken.
func (r *PayoutOrderRepo) ExistsExternalOrderID(ctx context.Context, externalOrderID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payout_orders WHERE external_order_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, externalOrderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check payout order exists: %w", err)
	}
	return exists, nil
}

// MarkSuccess transitions PENDING->SUCCESS conditionally. A redelivered
// success webhook matches zero rows and reports false.
func (r *PayoutOrderRepo) MarkSuccess(ctx context.Context, tx pgx.Tx, id uuid.UUID, reference, rawCallback, approvedBy string) (bool, error) {
	query := `UPDATE payout_orders
		SET status = $1, reference = $2, raw_callback = $3,
			approved_by = CASE WHEN $4 <> '' THEN $4 ELSE approved_by END,
			approved_at = CASE WHEN $4 <> '' THEN NOW() ELSE approved_at END,
			updated_at = NOW()
		WHERE id = $5 AND status = $6`

	tag, err := tx.Exec(ctx, query,
		domain.OrderStatusSuccess, reference, rawCallback, approvedBy,
		id, domain.OrderStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("mark payout success: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkFailed transitions PENDING->FAILED conditionally with a reason. The
// guard makes the paired refund fire at most once per payout.
func (r *PayoutOrderRepo) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, reason, rawCallback string) (bool, error) {
	query := `UPDATE payout_orders
		SET status = $1, reject_reason = $2, raw_callback = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5`

	tag, err := tx.Exec(ctx, query,
		domain.OrderStatusFailed, reason, rawCallback, id, domain.OrderStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("mark payout failed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PayoutOrderRepo) scanOrder(row pgx.Row) (*domain.PayoutOrder, error) {
	o := &domain.PayoutOrder{}
	err := row.Scan(
		&o.ID, &o.ExternalOrderID, &o.PlatformOrderID, &o.MerchantID, &o.Channel,
		&o.Amount, &o.Fee, &o.TotalDeduction, &o.FrozenRate, &o.Status, &o.Reference,
		&o.Destination.AccountNumber, &o.Destination.AccountName, &o.Destination.IFSC,
		&o.Destination.Wallet, &o.Source, &o.HoldForApproval,
		&o.ApprovedBy, &o.ApprovedAt, &o.RejectReason, &o.RawCallback,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payout order: %w", err)
	}
	return o, nil
}
