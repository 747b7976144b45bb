package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"settlement-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Merchant Repo ---

type inMemoryMerchantRepo struct {
	mu        sync.RWMutex
	merchants map[uuid.UUID]*domain.Merchant
}

func newInMemoryMerchantRepo() *inMemoryMerchantRepo {
	return &inMemoryMerchantRepo{merchants: make(map[uuid.UUID]*domain.Merchant)}
}

func (r *inMemoryMerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.merchants {
		if existing.ExternalID == m.ExternalID {
			return fmt.Errorf("external id already exists")
		}
	}
	r.merchants[m.ID] = m
	return nil
}

func (r *inMemoryMerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.merchants[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (r *inMemoryMerchantRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.merchants {
		if m.ExternalID == externalID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *inMemoryMerchantRepo) GetByAccessKey(ctx context.Context, accessKey string) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.merchants {
		if m.AccessKey == accessKey {
			return m, nil
		}
	}
	return nil, nil
}

func (r *inMemoryMerchantRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.merchants[id]
	if !ok {
		return fmt.Errorf("merchant not found")
	}
	m.Balance += delta
	return nil
}

func (r *inMemoryMerchantRepo) Reserve(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.merchants[id]
	if !ok {
		return false, fmt.Errorf("merchant not found")
	}
	if m.Balance < amount {
		return false, nil
	}
	m.Balance -= amount
	return true, nil
}

// --- In-Memory Payin Order Repo ---

type inMemoryPayinRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.PayinOrder
}

func newInMemoryPayinRepo() *inMemoryPayinRepo {
	return &inMemoryPayinRepo{orders: make(map[uuid.UUID]*domain.PayinOrder)}
}

func (r *inMemoryPayinRepo) Create(ctx context.Context, order *domain.PayinOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.ExternalOrderID == order.ExternalOrderID {
			return fmt.Errorf("external order id already exists")
		}
	}
	r.orders[order.ID] = order
	return nil
}

func (r *inMemoryPayinRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PayinOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (r *inMemoryPayinRepo) GetByExternalOrderID(ctx context.Context, externalOrderID string) (*domain.PayinOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ExternalOrderID == externalOrderID {
			return o, nil
		}
	}
	return nil, nil
}

func (r *inMemoryPayinRepo) GetByPlatformOrderID(ctx context.Context, platformOrderID string) (*domain.PayinOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.PlatformOrderID == platformOrderID {
			return o, nil
		}
	}
	return nil, nil
}

func (r *inMemoryPayinRepo) ExistsExternalOrderID(ctx context.Context, externalOrderID string) (bool, error) {
	o, err := r.GetByExternalOrderID(ctx, externalOrderID)
	return o != nil, err
}

func (r *inMemoryPayinRepo) MarkSuccess(ctx context.Context, tx pgx.Tx, id uuid.UUID, fee, netAmount float64, reference, rawCallback string, settledAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != domain.OrderStatusPending {
		return false, nil
	}
	o.Status = domain.OrderStatusSuccess
	o.Fee = fee
	o.NetAmount = netAmount
	o.Reference = reference
	o.RawCallback = rawCallback
	o.SettledAt = &settledAt
	o.UpdatedAt = settledAt
	return true, nil
}

func (r *inMemoryPayinRepo) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, rawCallback string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != domain.OrderStatusPending {
		return false, nil
	}
	o.Status = domain.OrderStatusFailed
	o.RawCallback = rawCallback
	o.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *inMemoryPayinRepo) ListDueAutoSettle(ctx context.Context, channelCode string, now time.Time, limit int) ([]domain.PayinOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []domain.PayinOrder
	for _, o := range r.orders {
		if o.Channel != channelCode || o.Status != domain.OrderStatusPending {
			continue
		}
		if o.AutoSettleDueAt == nil || o.AutoSettleDueAt.After(now) {
			continue
		}
		due = append(due, *o)
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (r *inMemoryPayinRepo) ClearAutoSettle(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		o.AutoSettleDueAt = nil
	}
	return nil
}

func (r *inMemoryPayinRepo) all() []domain.PayinOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.PayinOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out
}

// --- In-Memory Payout Order Repo ---

type inMemoryPayoutRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.PayoutOrder
}

func newInMemoryPayoutRepo() *inMemoryPayoutRepo {
	return &inMemoryPayoutRepo{orders: make(map[uuid.UUID]*domain.PayoutOrder)}
}

func (r *inMemoryPayoutRepo) Create(ctx context.Context, tx pgx.Tx, order *domain.PayoutOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.ExternalOrderID == order.ExternalOrderID {
			return fmt.Errorf("external order id already exists")
		}
	}
	r.orders[order.ID] = order
	return nil
}

func (r *inMemoryPayoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PayoutOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (r *inMemoryPayoutRepo) GetByExternalOrderID(ctx context.Context, externalOrderID string) (*domain.PayoutOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ExternalOrderID == externalOrderID {
			return o, nil
		}
	}
	return nil, nil
}

func (r *inMemoryPayoutRepo) GetByPlatformOrderID(ctx context.Context, platformOrderID string) (*domain.PayoutOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.PlatformOrderID == platformOrderID {
			return o, nil
		}
	}
	return nil, nil
}

func (r *inMemoryPayoutRepo) ExistsExternalOrderID(ctx context.Context, externalOrderID string) (bool, error) {
	o, err := r.GetByExternalOrderID(ctx, externalOrderID)
	return o != nil, err
}

func (r *inMemoryPayoutRepo) MarkSuccess(ctx context.Context, tx pgx.Tx, id uuid.UUID, reference, rawCallback, approvedBy string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != domain.OrderStatusPending {
		return false, nil
	}
	now := time.Now().UTC()
	o.Status = domain.OrderStatusSuccess
	o.Reference = reference
	o.RawCallback = rawCallback
	if approvedBy != "" {
		o.ApprovedBy = approvedBy
		o.ApprovedAt = &now
	}
	o.UpdatedAt = now
	return true, nil
}

func (r *inMemoryPayoutRepo) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, reason, rawCallback string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != domain.OrderStatusPending {
		return false, nil
	}
	o.Status = domain.OrderStatusFailed
	o.RejectReason = reason
	o.RawCallback = rawCallback
	o.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *inMemoryPayoutRepo) all() []domain.PayoutOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.PayoutOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out
}

// --- In-Memory Platform Account Repo ---

type inMemoryPlatformRepo struct {
	mu       sync.RWMutex
	accounts map[string]*domain.PlatformAccount
}

func newInMemoryPlatformRepo() *inMemoryPlatformRepo {
	return &inMemoryPlatformRepo{accounts: make(map[string]*domain.PlatformAccount)}
}

func (r *inMemoryPlatformRepo) seed(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[id] = &domain.PlatformAccount{ID: id}
}

func (r *inMemoryPlatformRepo) Get(ctx context.Context, id string) (*domain.PlatformAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (r *inMemoryPlatformRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, id string, delta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("platform account not found")
	}
	a.Balance += delta
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// --- In-Memory Callback Log Repo ---

type inMemoryCallbackRepo struct {
	mu   sync.RWMutex
	logs map[uuid.UUID]*domain.CallbackLog
}

func newInMemoryCallbackRepo() *inMemoryCallbackRepo {
	return &inMemoryCallbackRepo{logs: make(map[uuid.UUID]*domain.CallbackLog)}
}

func (r *inMemoryCallbackRepo) Create(ctx context.Context, log *domain.CallbackLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[log.ID] = log
	return nil
}

func (r *inMemoryCallbackRepo) SetOutcome(ctx context.Context, id uuid.UUID, outcome domain.CallbackOutcome, orderRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.logs[id]
	if !ok {
		return fmt.Errorf("callback log not found")
	}
	l.Outcome = outcome
	l.OrderRef = orderRef
	return nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
