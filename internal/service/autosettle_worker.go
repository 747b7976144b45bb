package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"settlement-gateway/config"
	"settlement-gateway/internal/adapter/metrics"
	"settlement-gateway/internal/channel"
	"settlement-gateway/internal/core/domain"
	"settlement-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

const autoSettleBatch = 50

// AutoSettleWorker promotes due soft-channel orders through the same
// crediting primitive the webhook path uses. Scheduling is durable: the
// due-at lives on the order row, so a restart resumes where it left off.
type AutoSettleWorker struct {
	payinRepo ports.PayinOrderRepository
	recon     ports.ReconciliationService
	forwarder ports.ForwarderService
	merchants ports.MerchantRepository
	metrics   *metrics.Metrics
	rate      float64
	poll      time.Duration
	randFn    func() float64
	log       zerolog.Logger
}

// NewAutoSettleWorker creates the softpay settlement poller.
func NewAutoSettleWorker(
	payinRepo ports.PayinOrderRepository,
	recon ports.ReconciliationService,
	forwarder ports.ForwarderService,
	merchants ports.MerchantRepository,
	m *metrics.Metrics,
	chCfg config.ChannelConfig,
	poll time.Duration,
	log zerolog.Logger,
) *AutoSettleWorker {
	if poll <= 0 {
		poll = 10 * time.Second
	}
	return &AutoSettleWorker{
		payinRepo: payinRepo,
		recon:     recon,
		forwarder: forwarder,
		merchants: merchants,
		metrics:   m,
		rate:      chCfg.AutoSuccessRate,
		poll:      poll,
		randFn:    rand.Float64,
		log:       log,
	}
}

// Run polls until the context is cancelled.
func (w *AutoSettleWorker) Run(ctx context.Context) {
	if w.rate <= 0 {
		w.log.Info().Msg("auto settle disabled, worker idle")
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	w.log.Info().
		Float64("rate", w.rate).
		Dur("poll", w.poll).
		Msg("auto settle worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("auto settle worker stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one scan over due orders. Exported so tests can drive it
// without the ticker.
func (w *AutoSettleWorker) Tick(ctx context.Context) {
	due, err := w.payinRepo.ListDueAutoSettle(ctx, channel.CodeSoftPay, time.Now().UTC(), autoSettleBatch)
	if err != nil {
		w.log.Error().Err(err).Msg("auto settle scan failed")
		return
	}

	for i := range due {
		w.check(ctx, &due[i])
	}
}

// check performs the single per-order draw. The due-at is cleared either
// way; a lost draw leaves the order pending for the real webhook.
func (w *AutoSettleWorker) check(ctx context.Context, order *domain.PayinOrder) {
	// Re-fetch: the order may have settled between scan and check.
	current, err := w.payinRepo.GetByID(ctx, order.ID)
	if err != nil || current == nil {
		w.log.Warn().Err(err).Str("order_id", order.ExternalOrderID).Msg("auto settle re-fetch failed")
		return
	}
	if current.Status != domain.OrderStatusPending || current.Channel != channel.CodeSoftPay {
		w.clear(ctx, current)
		return
	}

	if w.randFn() >= w.rate {
		w.clear(ctx, current)
		w.count(channel.CodeSoftPay, "skipped")
		w.log.Info().Str("order_id", current.ExternalOrderID).Msg("auto settle draw lost, order stays pending")
		return
	}

	reference := syntheticReference(current)
	err = w.recon.SettlePayin(ctx, current, reference, `{"source":"auto_settle"}`)
	var dup *ports.AlreadySettledError
	if errors.As(err, &dup) {
		w.clear(ctx, current)
		return
	}
	if err != nil {
		// Keep the due-at so the next tick retries.
		w.log.Error().Err(err).Str("order_id", current.ExternalOrderID).Msg("auto settle failed")
		return
	}

	w.clear(ctx, current)
	w.count(channel.CodeSoftPay, "settled")

	if w.forwarder != nil && w.merchants != nil {
		w.notify(ctx, current, reference)
	}
}

func (w *AutoSettleWorker) notify(ctx context.Context, order *domain.PayinOrder, reference string) {
	merchant, err := w.merchants.GetByID(ctx, order.MerchantID)
	if err != nil || merchant == nil {
		w.log.Warn().Err(err).Str("order_id", order.ExternalOrderID).Msg("auto settle merchant lookup failed")
		return
	}

	passthrough, err := domain.DecodePassthrough(order.Passthrough)
	if err != nil {
		w.log.Warn().Err(err).Str("order_id", order.ExternalOrderID).Msg("corrupt passthrough bundle")
	}

	n := ports.MerchantNotification{
		MerchantID:  merchant.ID,
		OrderID:     order.ExternalOrderID,
		ID:          order.ID,
		Amount:      order.GrossAmount,
		Success:     true,
		Reference:   reference,
		Param:       passthrough.Param,
		OverrideURL: passthrough.CallbackURL,
	}
	if err := w.forwarder.Forward(ctx, n); err != nil {
		w.log.Warn().Err(err).Str("order_id", order.ExternalOrderID).Msg("auto settle forwarding failed")
	}
}

func (w *AutoSettleWorker) clear(ctx context.Context, order *domain.PayinOrder) {
	if err := w.payinRepo.ClearAutoSettle(ctx, order.ID); err != nil {
		w.log.Warn().Err(err).Str("order_id", order.ExternalOrderID).Msg("failed to clear auto settle stamp")
	}
}

func (w *AutoSettleWorker) count(channelCode, outcome string) {
	if w.metrics == nil {
		return
	}
	w.metrics.AutoSettles.WithLabelValues(channelCode, outcome).Inc()
}

// syntheticReference fabricates a UTR-shaped settlement reference.
func syntheticReference(order *domain.PayinOrder) string {
	return fmt.Sprintf("SIM%s%d", order.ID.String()[:8], time.Now().Unix())
}
