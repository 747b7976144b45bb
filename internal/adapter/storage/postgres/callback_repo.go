package postgres

import (
	"context"
	"fmt"

	"settlement-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// CallbackLogRepo implements ports.CallbackLogRepository.
type CallbackLogRepo struct {
	pool Pool
}

// NewCallbackLogRepo creates a new CallbackLogRepo.
func NewCallbackLogRepo(pool Pool) *CallbackLogRepo {
	return &CallbackLogRepo{pool: pool}
}

// Create records an inbound webhook before any verification runs, so even
// rejected deliveries leave an audit trail.
func (r *CallbackLogRepo) Create(ctx context.Context, l *domain.CallbackLog) error {
	query := `INSERT INTO callback_logs (id, channel, kind, order_ref, raw_body, outcome, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		l.ID, l.Channel, l.Kind, l.OrderRef, l.RawBody, l.Outcome, l.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert callback log: %w", err)
	}
	return nil
}

// SetOutcome updates the audit row once processing has resolved.
func (r *CallbackLogRepo) SetOutcome(ctx context.Context, id uuid.UUID, outcome domain.CallbackOutcome, orderRef string) error {
	query := `UPDATE callback_logs SET outcome = $1, order_ref = $2 WHERE id = $3`

	if _, err := r.pool.Exec(ctx, query, outcome, orderRef, id); err != nil {
		return fmt.Errorf("update callback log: %w", err)
	}
	return nil
}
