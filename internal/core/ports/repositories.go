package ports

import (
	"context"
	"time"

	"settlement-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MerchantRepository defines persistence operations for merchants.
// Methods accepting pgx.Tx mutate the balance ledger and must run inside
// the same transaction as the paired terminal-state write.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.Merchant, error)
	GetByAccessKey(ctx context.Context, accessKey string) (*domain.Merchant, error)
	// AdjustBalance applies a signed delta to the merchant balance.
	AdjustBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta float64) error
	// Reserve debits amount only when the balance covers it, in a single
	// conditional statement. Returns false when funds are insufficient.
	Reserve(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount float64) (bool, error)
}

// PayinOrderRepository defines persistence for pay-in orders. Terminal
// transitions are conditional updates guarded on the current PENDING
// status; they report false instead of mutating twice.
type PayinOrderRepository interface {
	Create(ctx context.Context, order *domain.PayinOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PayinOrder, error)
	GetByExternalOrderID(ctx context.Context, externalOrderID string) (*domain.PayinOrder, error)
	GetByPlatformOrderID(ctx context.Context, platformOrderID string) (*domain.PayinOrder, error)
	ExistsExternalOrderID(ctx context.Context, externalOrderID string) (bool, error)
	// MarkSuccess performs PENDING->SUCCESS with recomputed fee split,
	// settlement reference and raw payload. False means no pending row
	// matched (duplicate delivery or already failed).
	MarkSuccess(ctx context.Context, tx pgx.Tx, id uuid.UUID, fee, netAmount float64, reference, rawCallback string, settledAt time.Time) (bool, error)
	// MarkFailed performs PENDING->FAILED.
	MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, rawCallback string) (bool, error)
	// ListDueAutoSettle returns pending orders of the given channel whose
	// persisted due-at has elapsed.
	ListDueAutoSettle(ctx context.Context, channelCode string, now time.Time, limit int) ([]domain.PayinOrder, error)
	// ClearAutoSettle removes the due-at stamp after the single check.
	ClearAutoSettle(ctx context.Context, id uuid.UUID) error
}

// PayoutOrderRepository defines persistence for payout orders.
type PayoutOrderRepository interface {
	Create(ctx context.Context, tx pgx.Tx, order *domain.PayoutOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PayoutOrder, error)
	GetByExternalOrderID(ctx context.Context, externalOrderID string) (*domain.PayoutOrder, error)
	GetByPlatformOrderID(ctx context.Context, platformOrderID string) (*domain.PayoutOrder, error)
	ExistsExternalOrderID(ctx context.Context, externalOrderID string) (bool, error)
	// MarkSuccess performs PENDING->SUCCESS. approvedBy is empty on the
	// webhook path and set on admin approval.
	MarkSuccess(ctx context.Context, tx pgx.Tx, id uuid.UUID, reference, rawCallback, approvedBy string) (bool, error)
	// MarkFailed performs PENDING->FAILED with a recorded reason.
	MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, reason, rawCallback string) (bool, error)
}

// PlatformAccountRepository defines persistence for the operator profit
// account. Deltas may be negative.
type PlatformAccountRepository interface {
	Get(ctx context.Context, id string) (*domain.PlatformAccount, error)
	AdjustBalance(ctx context.Context, tx pgx.Tx, id string, delta float64) error
}

// CallbackLogRepository is the append-only inbound webhook audit log.
type CallbackLogRepository interface {
	Create(ctx context.Context, log *domain.CallbackLog) error
	// SetOutcome tags a record once the engine knows what it did with the
	// webhook. The raw body is never rewritten.
	SetOutcome(ctx context.Context, id uuid.UUID, outcome domain.CallbackOutcome, orderRef string) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
