package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"settlement-gateway/internal/channel"
	"settlement-gateway/internal/core/ports"
	"settlement-gateway/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupForwarder(t *testing.T) (*ForwarderServiceImpl, *mocks.MockMerchantRepository, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMerchantRepository(ctrl)
	svc := NewForwarderService(repo, 5*time.Second, zerolog.Nop())
	return svc, repo, ctrl
}

func TestForwarder_Forward_SignsAndDelivers(t *testing.T) {
	svc, repo, ctrl := setupForwarder(t)
	defer ctrl.Finish()

	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	merchant := activeMerchant()
	merchant.CallbackURL = server.URL
	repo.EXPECT().GetByID(gomock.Any(), merchant.ID).Return(merchant, nil)

	orderID := uuid.New()
	err := svc.Forward(context.Background(), ports.MerchantNotification{
		MerchantID: merchant.ID,
		OrderID:    "PI-1",
		ID:         orderID,
		Amount:     1000,
		Success:    true,
		Reference:  "UTR-9",
		Param:      "opaque",
	})
	require.NoError(t, err)

	assert.Equal(t, "1", received["status"])
	assert.Equal(t, "1000.00", received["amount"])
	assert.Equal(t, "PI-1", received["orderId"])
	assert.Equal(t, orderID.String(), received["id"])
	assert.Equal(t, "UTR-9", received["utr"])
	assert.Equal(t, "opaque", received["param"])
	// The merchant must be able to verify with their own secret.
	assert.True(t, channel.NewMerchantSigner().Verify(received, merchant.SecretKey))
}

func TestForwarder_Forward_OverrideURLWins(t *testing.T) {
	svc, repo, ctrl := setupForwarder(t)
	defer ctrl.Finish()

	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	merchant := activeMerchant()
	merchant.CallbackURL = "http://configured.example.invalid/never"
	repo.EXPECT().GetByID(gomock.Any(), merchant.ID).Return(merchant, nil)

	err := svc.Forward(context.Background(), ports.MerchantNotification{
		MerchantID:  merchant.ID,
		OrderID:     "PI-2",
		ID:          uuid.New(),
		Amount:      50,
		Success:     false,
		OverrideURL: server.URL,
	})
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestForwarder_Forward_NoTargetSkips(t *testing.T) {
	svc, repo, ctrl := setupForwarder(t)
	defer ctrl.Finish()

	merchant := activeMerchant()
	merchant.CallbackURL = ""
	repo.EXPECT().GetByID(gomock.Any(), merchant.ID).Return(merchant, nil)

	err := svc.Forward(context.Background(), ports.MerchantNotification{
		MerchantID: merchant.ID,
		OrderID:    "PI-3",
		ID:         uuid.New(),
	})
	require.NoError(t, err)
}

func TestForwarder_Forward_Non2xxIsError(t *testing.T) {
	svc, repo, ctrl := setupForwarder(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	merchant := activeMerchant()
	merchant.CallbackURL = server.URL
	repo.EXPECT().GetByID(gomock.Any(), merchant.ID).Return(merchant, nil)

	err := svc.Forward(context.Background(), ports.MerchantNotification{
		MerchantID: merchant.ID,
		OrderID:    "PI-4",
		ID:         uuid.New(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestForwarder_Forward_UnknownMerchant(t *testing.T) {
	svc, repo, ctrl := setupForwarder(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	err := svc.Forward(context.Background(), ports.MerchantNotification{MerchantID: id})
	require.Error(t, err)
}
