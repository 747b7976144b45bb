package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PayinOrderRepo implements ports.PayinOrderRepository.
type PayinOrderRepo struct {
	pool Pool
}

// NewPayinOrderRepo creates a new PayinOrderRepo.
func NewPayinOrderRepo(pool Pool) *PayinOrderRepo {
	return &PayinOrderRepo{pool: pool}
}

const payinColumns = `id, external_order_id, platform_order_id, merchant_id, channel,
		gross_amount, fee, net_amount, frozen_rate, status, reference, raw_callback,
		passthrough, auto_settle_due_at, created_at, updated_at, settled_at`

// Create inserts a new pending pay-in order.
func (r *PayinOrderRepo) Create(ctx context.Context, o *domain.PayinOrder) error {
	query := `INSERT INTO payin_orders (` + payinColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.pool.Exec(ctx, query,
		o.ID, o.ExternalOrderID, o.PlatformOrderID, o.MerchantID, o.Channel,
		o.GrossAmount, o.Fee, o.NetAmount, o.FrozenRate, o.Status, o.Reference,
		o.RawCallback, o.Passthrough, o.AutoSettleDueAt,
		o.CreatedAt, o.UpdatedAt, o.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert payin order: %w", err)
	}
	return nil
}

// GetByID fetches a pay-in order by UUID.
func (r *PayinOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PayinOrder, error) {
	query := `SELECT ` + payinColumns + ` FROM payin_orders WHERE id = $1`
	return r.scanOrder(r.pool.QueryRow(ctx, query, id))
}

// GetByExternalOrderID fetches a pay-in order by merchant-facing id.
func (r *PayinOrderRepo) GetByExternalOrderID(ctx context.Context, externalOrderID string) (*domain.PayinOrder, error) {
	query := `SELECT ` + payinColumns + ` FROM payin_orders WHERE external_order_id = $1`
	return r.scanOrder(r.pool.QueryRow(ctx, query, externalOrderID))
}

// GetByPlatformOrderID fetches a pay-in order by the upstream-issued id.
func (r *PayinOrderRepo) GetByPlatformOrderID(ctx context.Context, platformOrderID string) (*domain.PayinOrder, error) {
	query := `SELECT ` + payinColumns + ` FROM payin_orders WHERE platform_order_id = $1`
	return r.scanOrder(r.pool.QueryRow(ctx, query, platformOrderID))
}

// ExistsExternalOrderID reports whether the merchant-facing id is taken.
func (r *PayinOrderRepo) ExistsExternalOrderID(ctx context.Context, externalOrderID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payin_orders WHERE external_order_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, externalOrderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check payin order exists: %w", err)
	}
	return exists, nil
}

// MarkSuccess transitions PENDING->SUCCESS conditionally. The status guard
// in the WHERE clause is the concurrency-control primitive: a redelivered
// webhook matches zero rows and reports false instead of crediting twice.
func (r *PayinOrderRepo) MarkSuccess(ctx context.Context, tx pgx.Tx, id uuid.UUID, fee, netAmount float64, reference, rawCallback string, settledAt time.Time) (bool, error) {
	query := `UPDATE payin_orders
		SET status = $1, fee = $2, net_amount = $3, reference = $4,
			raw_callback = $5, settled_at = $6, updated_at = NOW()
		WHERE id = $7 AND status = $8`

	tag, err := tx.Exec(ctx, query,
		domain.OrderStatusSuccess, fee, netAmount, reference,
		rawCallback, settledAt, id, domain.OrderStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("mark payin success: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkFailed transitions PENDING->FAILED conditionally.
func (r *PayinOrderRepo) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, rawCallback string) (bool, error) {
	query := `UPDATE payin_orders
		SET status = $1, raw_callback = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4`

	tag, err := tx.Exec(ctx, query,
		domain.OrderStatusFailed, rawCallback, id, domain.OrderStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("mark payin failed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListDueAutoSettle returns pending soft-channel orders whose persisted
// due-at has elapsed, oldest first.
func (r *PayinOrderRepo) ListDueAutoSettle(ctx context.Context, channelCode string, now time.Time, limit int) ([]domain.PayinOrder, error) {
	query := `SELECT ` + payinColumns + ` FROM payin_orders
		WHERE channel = $1 AND status = $2 AND auto_settle_due_at IS NOT NULL AND auto_settle_due_at <= $3
		ORDER BY auto_settle_due_at ASC LIMIT $4`

	rows, err := r.pool.Query(ctx, query, channelCode, domain.OrderStatusPending, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due auto settle: %w", err)
	}
	defer rows.Close()

	var orders []domain.PayinOrder
	for rows.Next() {
		o := domain.PayinOrder{}
		if err := scanPayinFields(rows, &o); err != nil {
			return nil, fmt.Errorf("scan payin row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payin rows: %w", err)
	}
	return orders, nil
}

// ClearAutoSettle removes the due-at stamp after the single check fired.
func (r *PayinOrderRepo) ClearAutoSettle(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE payin_orders SET auto_settle_due_at = NULL, updated_at = NOW() WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("clear auto settle: %w", err)
	}
	return nil
}

func (r *PayinOrderRepo) scanOrder(row pgx.Row) (*domain.PayinOrder, error) {
	o := &domain.PayinOrder{}
	if err := scanPayinFields(row, o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payin order: %w", err)
	}
	return o, nil
}

func scanPayinFields(row pgx.Row, o *domain.PayinOrder) error {
	return row.Scan(
		&o.ID, &o.ExternalOrderID, &o.PlatformOrderID, &o.MerchantID, &o.Channel,
		&o.GrossAmount, &o.Fee, &o.NetAmount, &o.FrozenRate, &o.Status, &o.Reference,
		&o.RawCallback, &o.Passthrough, &o.AutoSettleDueAt,
		&o.CreatedAt, &o.UpdatedAt, &o.SettledAt,
	)
}
