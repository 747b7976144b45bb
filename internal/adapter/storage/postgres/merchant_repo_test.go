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

func newTestMerchant() *domain.Merchant {
	rate := 0.045
	return &domain.Merchant{
		ID:          uuid.New(),
		ExternalID:  "M" + uuid.New().String()[:8],
		Name:        "Test Shop",
		AccessKey:   "ak_" + uuid.New().String()[:16],
		SecretKey:   "sk_" + uuid.New().String()[:16],
		Balance:     1000,
		Status:      domain.MerchantStatusActive,
		CallbackURL: "https://example.com/notify",
		PayinRate:   &rate,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func testMerchantColumns() []string {
	return []string{"id", "external_id", "name", "access_key", "secret_key", "balance", "status", "callback_url", "payin_rate", "created_at", "updated_at"}
}

func merchantRow(m *domain.Merchant) *pgxmock.Rows {
	return pgxmock.NewRows(testMerchantColumns()).AddRow(
		m.ID, m.ExternalID, m.Name, m.AccessKey, m.SecretKey,
		m.Balance, m.Status, m.CallbackURL, m.PayinRate,
		m.CreatedAt, m.UpdatedAt,
	)
}

func TestMerchantRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	m := newTestMerchant()

	mock.ExpectExec("INSERT INTO merchants").
		WithArgs(m.ID, m.ExternalID, m.Name, m.AccessKey, m.SecretKey,
			m.Balance, m.Status, m.CallbackURL, m.PayinRate,
			m.CreatedAt, m.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), m)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_GetByExternalID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	m := newTestMerchant()

	mock.ExpectQuery("SELECT .+ FROM merchants WHERE external_id").
		WithArgs(m.ExternalID).
		WillReturnRows(merchantRow(m))

	result, err := repo.GetByExternalID(context.Background(), m.ExternalID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, m.ExternalID, result.ExternalID)
	assert.Equal(t, m.AccessKey, result.AccessKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM merchants WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(testMerchantColumns()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_AdjustBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	merchantID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE merchants SET balance = balance").
		WithArgs(950.0, merchantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.AdjustBalance(context.Background(), tx, merchantID, 950.0)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_AdjustBalance_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	merchantID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE merchants SET balance = balance").
		WithArgs(100.0, merchantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.AdjustBalance(context.Background(), tx, merchantID, 100.0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "merchant not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_Reserve(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	merchantID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE merchants SET balance = balance - .+ AND balance >=").
		WithArgs(1030.0, merchantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	ok, err := repo.Reserve(context.Background(), tx, merchantID, 1030.0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_Reserve_InsufficientBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	merchantID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE merchants SET balance = balance - .+ AND balance >=").
		WithArgs(99999.0, merchantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	ok, err := repo.Reserve(context.Background(), tx, merchantID, 99999.0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
