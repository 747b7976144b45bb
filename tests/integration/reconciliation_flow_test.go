package integration

import (
	"context"
	"fmt"
	"testing"

	"settlement-gateway/config"
	"settlement-gateway/internal/adapter/metrics"
	"settlement-gateway/internal/channel"
	"settlement-gateway/internal/core/domain"
	"settlement-gateway/internal/core/ports"
	"settlement-gateway/internal/service"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chanSecret   = "chan-secret"
	platformAcct = "platform-main"
)

func flowChannels() map[string]config.ChannelConfig {
	return map[string]config.ChannelConfig{
		"swiftpay": {
			Secret:      chanSecret,
			MinAmount:   10,
			DefaultRate: 0.05,
			CostRate:    0.03,
			PayoutRate:  0.03,
			PayoutFee:   6,
		},
	}
}

// fakeUpstream accepts every create call and issues a platform order id.
type fakeUpstream struct{}

func (u *fakeUpstream) CreateOrder(ctx context.Context, req ports.UpstreamCreateRequest) (*ports.UpstreamCreateResult, error) {
	return &ports.UpstreamCreateResult{
		PlatformOrderID: "UP-" + req.ExternalOrderID,
		PaymentURL:      "https://pay.example.com/" + req.ExternalOrderID,
	}, nil
}

type flowEnv struct {
	merchants *inMemoryMerchantRepo
	payins    *inMemoryPayinRepo
	payouts   *inMemoryPayoutRepo
	platform  *inMemoryPlatformRepo
	merchant  *domain.Merchant
	orderSvc  ports.OrderService
	payoutSvc ports.PayoutService
	reconSvc  ports.ReconciliationService
}

// newFlowEnv wires the real services over in-memory repositories, with one
// active merchant and a seeded platform profit account.
func newFlowEnv(t *testing.T) *flowEnv {
	t.Helper()

	merchants := newInMemoryMerchantRepo()
	payins := newInMemoryPayinRepo()
	payouts := newInMemoryPayoutRepo()
	platform := newInMemoryPlatformRepo()
	callbacks := newInMemoryCallbackRepo()
	transactor := newInMemoryTransactor()

	merchant := &domain.Merchant{
		ID:         uuid.New(),
		ExternalID: "M-100",
		Name:       "Acme Retail",
		AccessKey:  "ak-flow",
		SecretKey:  "merchant-secret",
		Status:     domain.MerchantStatusActive,
	}
	require.NoError(t, merchants.Create(context.Background(), merchant))
	platform.seed(platformAcct)

	pcfg := config.PlatformConfig{
		AccountID:     platformAcct,
		PublicBaseURL: "https://gw.example.com",
	}
	log := zerolog.Nop()

	orderSvc := service.NewOrderService(merchants, payins, &fakeUpstream{}, flowChannels(), pcfg, log)
	payoutSvc := service.NewPayoutService(merchants, payouts, platform, transactor, nil, flowChannels(), pcfg, log)
	reconSvc := service.NewReconciliationService(
		channel.Defaults(""),
		merchants, payins, payouts, platform, callbacks,
		transactor, nil, nil, nil,
		metrics.New(prometheus.NewRegistry()),
		flowChannels(), pcfg, log,
	)

	return &flowEnv{
		merchants: merchants,
		payins:    payins,
		payouts:   payouts,
		platform:  platform,
		merchant:  merchant,
		orderSvc:  orderSvc,
		payoutSvc: payoutSvc,
		reconSvc:  reconSvc,
	}
}

func signedParams(platformOrderID, amount, status, utr string) map[string]string {
	p := map[string]string{
		"orderId": platformOrderID,
		"amount":  amount,
		"status":  status,
		"utr":     utr,
	}
	p["sign"] = channel.NewSwiftPay().Sign(p, chanSecret)
	return p
}

// settlePayinFor creates a pay-in and drives it to SUCCESS through the
// webhook path, returning the settled order.
func (e *flowEnv) settlePayinFor(t *testing.T, amount float64, utr string) *domain.PayinOrder {
	t.Helper()
	ctx := context.Background()

	res, err := e.orderSvc.CreatePayin(ctx, ports.CreatePayinRequest{
		MerchantID: e.merchant.ID,
		Channel:    "swiftpay",
		Amount:     amount,
	})
	require.NoError(t, err)

	order, err := e.payins.GetByExternalOrderID(ctx, res.OrderID)
	require.NoError(t, err)
	require.NotNil(t, order)

	params := signedParams(order.PlatformOrderID, fmt.Sprintf("%.2f", amount), "1", utr)
	ack := e.reconSvc.HandlePayinWebhook(ctx, "swiftpay", params, "status=1")
	require.Equal(t, "success", ack)

	settled, err := e.payins.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusSuccess, settled.Status)
	return settled
}

func TestEndToEnd_PayinSettleAndRedeliver(t *testing.T) {
	e := newFlowEnv(t)
	ctx := context.Background()

	res, err := e.orderSvc.CreatePayin(ctx, ports.CreatePayinRequest{
		MerchantID: e.merchant.ID,
		Channel:    "swiftpay",
		Amount:     100,
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Fee)

	order, err := e.payins.GetByExternalOrderID(ctx, res.OrderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 0.05, order.FrozenRate)
	assert.Equal(t, 95.0, order.NetAmount)

	params := signedParams(order.PlatformOrderID, "100.00", "1", "UTR-E2E")
	ack := e.reconSvc.HandlePayinWebhook(ctx, "swiftpay", params, "status=1")
	assert.Equal(t, "success", ack)

	settled, err := e.payins.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusSuccess, settled.Status)
	assert.Equal(t, "UTR-E2E", settled.Reference)

	m, err := e.merchants.GetByID(ctx, e.merchant.ID)
	require.NoError(t, err)
	assert.InDelta(t, 95.0, m.Balance, 1e-9)

	// Admin profit: fee 5 minus channel cost 100*0.03 = 2.
	acct, err := e.platform.Get(ctx, platformAcct)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, acct.Balance, 1e-9)

	// Redelivering the identical webhook is acked but credits nothing.
	ack = e.reconSvc.HandlePayinWebhook(ctx, "swiftpay", params, "status=1")
	assert.Equal(t, "success", ack)

	m, err = e.merchants.GetByID(ctx, e.merchant.ID)
	require.NoError(t, err)
	assert.InDelta(t, 95.0, m.Balance, 1e-9)
	acct, err = e.platform.Get(ctx, platformAcct)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, acct.Balance, 1e-9)
}

// The merchant balance must equal the replayed sum of net-settled pay-ins
// minus settled payout deductions minus reserved pending payout holds.
func TestEndToEnd_BalanceReconstructsFromOrders(t *testing.T) {
	e := newFlowEnv(t)
	ctx := context.Background()

	// Settled pay-in: +95.
	e.settlePayinFor(t, 100, "UTR-R1")

	// A second pay-in left pending contributes nothing.
	_, err := e.orderSvc.CreatePayin(ctx, ports.CreatePayinRequest{
		MerchantID: e.merchant.ID,
		Channel:    "swiftpay",
		Amount:     200,
	})
	require.NoError(t, err)

	// Pending payout holds amount+fee: 50 + (50*0.03 + 6) = 57.5.
	held, err := e.payoutSvc.CreatePayout(ctx, ports.CreatePayoutRequest{
		MerchantID:  e.merchant.ID,
		Channel:     "swiftpay",
		Amount:      50,
		Source:      domain.PayoutSourceManual,
		Destination: domain.PayoutDestination{Wallet: "acme@upi"},
	})
	require.NoError(t, err)

	// A rejected payout reserves and then refunds, netting to zero.
	rejected, err := e.payoutSvc.CreatePayout(ctx, ports.CreatePayoutRequest{
		MerchantID:  e.merchant.ID,
		Channel:     "swiftpay",
		Amount:      20,
		Source:      domain.PayoutSourceAPI,
		Destination: domain.PayoutDestination{Wallet: "acme@upi"},
	})
	require.NoError(t, err)
	require.NoError(t, e.payoutSvc.Reject(ctx, rejected.ID, "ops@gw", "bad beneficiary"))

	m, err := e.merchants.GetByID(ctx, e.merchant.ID)
	require.NoError(t, err)
	assert.InDelta(t, 37.5, m.Balance, 1e-9)
	assert.InDelta(t, m.Balance, e.replayedBalance(), 1e-9)

	// Approving the held payout leaves the balance untouched (funds were
	// reserved at creation) and the replay still matches.
	require.NoError(t, e.payoutSvc.Approve(ctx, held.ID, "ops@gw", "UTR-PO1"))

	m, err = e.merchants.GetByID(ctx, e.merchant.ID)
	require.NoError(t, err)
	assert.InDelta(t, 37.5, m.Balance, 1e-9)
	assert.InDelta(t, m.Balance, e.replayedBalance(), 1e-9)

	// The payout fee landed on the platform account on approval.
	acct, err := e.platform.Get(ctx, platformAcct)
	require.NoError(t, err)
	assert.InDelta(t, 2.0+7.5, acct.Balance, 1e-9)
}

// replayedBalance reconstructs the merchant balance from the order books
// alone: net-settled pay-ins minus payout deductions still held or spent.
func (e *flowEnv) replayedBalance() float64 {
	var total float64
	for _, o := range e.payins.all() {
		if o.Status == domain.OrderStatusSuccess {
			total += o.NetAmount
		}
	}
	for _, o := range e.payouts.all() {
		switch o.Status {
		case domain.OrderStatusSuccess, domain.OrderStatusPending:
			total -= o.TotalDeduction
		}
	}
	return total
}
