package postgres

import (
	"context"
	"testing"
	"time"

	"settlement-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayinOrder() *domain.PayinOrder {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.PayinOrder{
		ID:              uuid.New(),
		ExternalOrderID: "ORD-" + uuid.New().String()[:8],
		PlatformOrderID: "P" + uuid.New().String()[:12],
		MerchantID:      uuid.New(),
		Channel:         "swiftpay",
		GrossAmount:     1000,
		FrozenRate:      0.05,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func testPayinColumns() []string {
	return []string{
		"id", "external_order_id", "platform_order_id", "merchant_id", "channel",
		"gross_amount", "fee", "net_amount", "frozen_rate", "status", "reference",
		"raw_callback", "passthrough", "auto_settle_due_at", "created_at", "updated_at", "settled_at",
	}
}

func payinRow(o *domain.PayinOrder) *pgxmock.Rows {
	return pgxmock.NewRows(testPayinColumns()).AddRow(
		o.ID, o.ExternalOrderID, o.PlatformOrderID, o.MerchantID, o.Channel,
		o.GrossAmount, o.Fee, o.NetAmount, o.FrozenRate, o.Status, o.Reference,
		o.RawCallback, o.Passthrough, o.AutoSettleDueAt,
		o.CreatedAt, o.UpdatedAt, o.SettledAt,
	)
}

func TestPayinOrderRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPayinOrderRepo(mock)
	o := newTestPayinOrder()

	mock.ExpectExec("INSERT INTO payin_orders").
		WithArgs(o.ID, o.ExternalOrderID, o.PlatformOrderID, o.MerchantID, o.Channel,
			o.GrossAmount, o.Fee, o.NetAmount, o.FrozenRate, o.Status, o.Reference,
			o.RawCallback, o.Passthrough, o.AutoSettleDueAt,
			o.CreatedAt, o.UpdatedAt, o.SettledAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), o)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayinOrderRepo_GetByPlatformOrderID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPayinOrderRepo(mock)
	o := newTestPayinOrder()

	mock.ExpectQuery("SELECT .+ FROM payin_orders WHERE platform_order_id").
		WithArgs(o.PlatformOrderID).
		WillReturnRows(payinRow(o))

	result, err := repo.GetByPlatformOrderID(context.Background(), o.PlatformOrderID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, o.ID, result.ID)
	assert.Equal(t, o.PlatformOrderID, result.PlatformOrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayinOrderRepo_GetByExternalOrderID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPayinOrderRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM payin_orders WHERE external_order_id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(testPayinColumns()))

	result, err := repo.GetByExternalOrderID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayinOrderRepo_ExistsExternalOrderID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPayinOrderRepo(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ORD-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsExternalOrderID(context.Background(), "ORD-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayinOrderRepo_MarkSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPayinOrderRepo(mock)
	orderID := uuid.New()
	settledAt := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payin_orders").
		WithArgs(domain.OrderStatusSuccess, 50.0, 950.0, "UTR123",
			`{"status":"1"}`, settledAt, orderID, domain.OrderStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	ok, err := repo.MarkSuccess(context.Background(), tx, orderID, 50.0, 950.0, "UTR123", `{"status":"1"}`, settledAt)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayinOrderRepo_MarkSuccess_AlreadyTerminal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPayinOrderRepo(mock)
	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payin_orders").
		WithArgs(domain.OrderStatusSuccess, 50.0, 950.0, "UTR123",
			`{}`, pgxmock.AnyArg(), orderID, domain.OrderStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	ok, err := repo.MarkSuccess(context.Background(), tx, orderID, 50.0, 950.0, "UTR123", `{}`, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayinOrderRepo_MarkFailed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPayinOrderRepo(mock)
	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payin_orders").
		WithArgs(domain.OrderStatusFailed, `{"status":"2"}`, orderID, domain.OrderStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	ok, err := repo.MarkFailed(context.Background(), tx, orderID, `{"status":"2"}`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayinOrderRepo_ListDueAutoSettle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPayinOrderRepo(mock)
	due := time.Now().UTC().Add(-time.Minute)
	o := newTestPayinOrder()
	o.Channel = "softpay"
	o.AutoSettleDueAt = &due
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM payin_orders .+ auto_settle_due_at").
		WithArgs("softpay", domain.OrderStatusPending, now, 50).
		WillReturnRows(payinRow(o))

	orders, err := repo.ListDueAutoSettle(context.Background(), "softpay", now, 50)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, o.ID, orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayinOrderRepo_ClearAutoSettle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPayinOrderRepo(mock)
	orderID := uuid.New()

	mock.ExpectExec("UPDATE payin_orders SET auto_settle_due_at = NULL").
		WithArgs(orderID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.ClearAutoSettle(context.Background(), orderID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
