package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement-gateway/config"
	"settlement-gateway/internal/adapter/metrics"
	"settlement-gateway/internal/channel"
	"settlement-gateway/internal/core/domain"
	"settlement-gateway/internal/core/ports"
	"settlement-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const dedupeTTL = 24 * time.Hour

// fallbackAck is returned when even the channel is unresolvable; most
// processors accept a bare success token.
const fallbackAck = "success"

// ReconciliationServiceImpl implements ports.ReconciliationService. Every
// webhook is acknowledged with the channel's token no matter what happened
// internally; the audit log and counters carry the real outcome.
type ReconciliationServiceImpl struct {
	registry     *channel.Registry
	merchantRepo ports.MerchantRepository
	payinRepo    ports.PayinOrderRepository
	payoutRepo   ports.PayoutOrderRepository
	platformRepo ports.PlatformAccountRepository
	callbackRepo ports.CallbackLogRepository
	transactor   ports.DBTransactor
	dedupe       ports.DedupeCache
	publisher    ports.EventPublisher
	forwarder    ports.ForwarderService
	metrics      *metrics.Metrics
	channels     map[string]config.ChannelConfig
	platform     config.PlatformConfig
	log          zerolog.Logger
}

// NewReconciliationService creates a new ReconciliationServiceImpl.
// dedupe, publisher and forwarder may be nil.
func NewReconciliationService(
	registry *channel.Registry,
	merchantRepo ports.MerchantRepository,
	payinRepo ports.PayinOrderRepository,
	payoutRepo ports.PayoutOrderRepository,
	platformRepo ports.PlatformAccountRepository,
	callbackRepo ports.CallbackLogRepository,
	transactor ports.DBTransactor,
	dedupe ports.DedupeCache,
	publisher ports.EventPublisher,
	forwarder ports.ForwarderService,
	m *metrics.Metrics,
	channels map[string]config.ChannelConfig,
	platform config.PlatformConfig,
	log zerolog.Logger,
) *ReconciliationServiceImpl {
	return &ReconciliationServiceImpl{
		registry:     registry,
		merchantRepo: merchantRepo,
		payinRepo:    payinRepo,
		payoutRepo:   payoutRepo,
		platformRepo: platformRepo,
		callbackRepo: callbackRepo,
		transactor:   transactor,
		dedupe:       dedupe,
		publisher:    publisher,
		forwarder:    forwarder,
		metrics:      m,
		channels:     channels,
		platform:     platform,
		log:          log,
	}
}

// HandlePayinWebhook runs the per-webhook algorithm and returns the ack
// token. Processing failures never propagate upstream: retry storms from a
// confused processor are worse than a gap the audit log already recorded.
func (s *ReconciliationServiceImpl) HandlePayinWebhook(ctx context.Context, channelCode string, params map[string]string, rawBody string) string {
	ch, ok := s.registry.Get(channelCode)
	if !ok {
		s.log.Warn().Str("channel", channelCode).Msg("webhook for unknown channel")
		return fallbackAck
	}
	ack := ch.Ack()
	s.metrics.WebhooksReceived.WithLabelValues(ch.Code(), "payin").Inc()

	// Audit first, before any matching or verification.
	auditID := s.audit(ctx, ch.Code(), domain.CallbackKindPayin, rawBody)

	n, err := ch.Parse(params)
	if err != nil {
		s.log.Info().Err(err).Str("channel", ch.Code()).Msg("unparseable payin webhook")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeUnmatched, "")
		s.metrics.WebhooksUnmatched.WithLabelValues(ch.Code(), "payin").Inc()
		return ack
	}

	order, err := s.resolvePayin(ctx, n)
	if err != nil {
		s.log.Error().Err(err).Str("channel", ch.Code()).Msg("payin order lookup failed")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeError, n.PlatformOrderID)
		return ack
	}
	if order == nil || order.Channel != ch.Code() {
		s.log.Info().
			Str("channel", ch.Code()).
			Str("platform_order_id", n.PlatformOrderID).
			Str("merchant_order_id", n.MerchantOrderID).
			Msg("payin webhook matched no order")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeUnmatched, n.PlatformOrderID)
		s.metrics.WebhooksUnmatched.WithLabelValues(ch.Code(), "payin").Inc()
		return ack
	}

	// Secret selection is keyed off the resolved order's merchant only.
	merchant, err := s.merchantRepo.GetByID(ctx, order.MerchantID)
	if err != nil || merchant == nil {
		s.log.Error().Err(err).Str("merchant_id", order.MerchantID.String()).Msg("merchant lookup failed")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeError, order.ExternalOrderID)
		return ack
	}
	secret := s.secretFor(merchant, ch.Code())

	if !ch.Verify(params, secret) {
		s.log.Debug().
			Str("channel", ch.Code()).
			Str("order_id", order.ExternalOrderID).
			Str("expected", ch.Sign(params, secret)).
			Str("received", n.Signature).
			Msg("payin webhook signature mismatch")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeBadSignature, order.ExternalOrderID)
		s.metrics.WebhooksBadSig.WithLabelValues(ch.Code(), "payin").Inc()
		return ack
	}

	status, transitions := ch.MapStatus(n.StatusCode)
	if !transitions {
		s.log.Info().
			Str("channel", ch.Code()).
			Str("order_id", order.ExternalOrderID).
			Str("status_code", n.StatusCode).
			Msg("non-transition status code, ignoring")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeIgnored, order.ExternalOrderID)
		return ack
	}

	// Fast-path duplicate suppression. Read-only here: the marker is
	// written only after a committed transition, so a transient DB error
	// never leaves a marker that would block the redelivery. Authoritative
	// safety is the status guard in the conditional update below.
	key := dedupeKey(ch.Code(), "payin", n.PlatformOrderID, n.StatusCode)
	if s.seenBefore(ctx, key) {
		s.log.Info().Str("order_id", order.ExternalOrderID).Msg("duplicate payin delivery suppressed")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeDuplicate, order.ExternalOrderID)
		s.metrics.WebhooksDuplicate.WithLabelValues(ch.Code(), "payin").Inc()
		return ack
	}

	switch status {
	case domain.OrderStatusSuccess:
		err = s.SettlePayin(ctx, order, n.Reference, rawBody)
	case domain.OrderStatusFailed:
		err = s.failPayin(ctx, order, rawBody)
	}

	var dup *ports.AlreadySettledError
	switch {
	case errors.As(err, &dup):
		s.log.Info().Str("order_id", order.ExternalOrderID).Msg("payin already terminal, duplicate delivery")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeDuplicate, order.ExternalOrderID)
		s.metrics.WebhooksDuplicate.WithLabelValues(ch.Code(), "payin").Inc()
		s.markProcessed(ctx, key)
	case err != nil:
		s.log.Error().Err(err).Str("order_id", order.ExternalOrderID).Msg("payin transition failed")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeError, order.ExternalOrderID)
	case status == domain.OrderStatusSuccess:
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeSettled, order.ExternalOrderID)
		s.markProcessed(ctx, key)
		s.forward(ctx, order, merchant, true, n.Reference)
	default:
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeFailed, order.ExternalOrderID)
		s.markProcessed(ctx, key)
		s.forward(ctx, order, merchant, false, "")
	}
	return ack
}

// SettlePayin is the single shared crediting primitive. The conditional
// transition, the merchant credit and the platform profit land in one
// transaction or not at all.
func (s *ReconciliationServiceImpl) SettlePayin(ctx context.Context, order *domain.PayinOrder, reference, rawCallback string) error {
	// Recomputed from the frozen rate, never trusted from the wire.
	split := CalculatePayinFee(order.GrossAmount, order.FrozenRate)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	settledAt := time.Now().UTC()
	ok, err := s.payinRepo.MarkSuccess(ctx, dbTx, order.ID, split.Fee, split.NetAmount, reference, rawCallback, settledAt)
	if err != nil {
		return fmt.Errorf("mark payin success: %w", err)
	}
	if !ok {
		return &ports.AlreadySettledError{OrderID: order.ID}
	}

	if err := s.merchantRepo.AdjustBalance(ctx, dbTx, order.MerchantID, split.NetAmount); err != nil {
		return fmt.Errorf("credit merchant: %w", err)
	}

	if s.platform.AccountID != "" {
		profit := AdminProfit(order.GrossAmount, split.Fee, s.channels[order.Channel].CostRate)
		if profit < 0 {
			s.log.Warn().
				Str("order_id", order.ExternalOrderID).
				Float64("profit", profit).
				Msg("negative admin profit on settlement")
		}
		if err := s.platformRepo.AdjustBalance(ctx, dbTx, s.platform.AccountID, profit); err != nil {
			return fmt.Errorf("apply admin profit: %w", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.metrics.Settlements.WithLabelValues(order.Channel, "payin", string(domain.OrderStatusSuccess)).Inc()
	s.publishPayin(ctx, order, split, domain.OrderStatusSuccess, reference)

	s.log.Info().
		Str("order_id", order.ExternalOrderID).
		Str("merchant_id", order.MerchantID.String()).
		Float64("gross", order.GrossAmount).
		Float64("net", split.NetAmount).
		Str("reference", reference).
		Msg("payin settled")
	return nil
}

// failPayin performs the conditional PENDING->FAILED with no balance change.
func (s *ReconciliationServiceImpl) failPayin(ctx context.Context, order *domain.PayinOrder, rawCallback string) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	ok, err := s.payinRepo.MarkFailed(ctx, dbTx, order.ID, rawCallback)
	if err != nil {
		return fmt.Errorf("mark payin failed: %w", err)
	}
	if !ok {
		return &ports.AlreadySettledError{OrderID: order.ID}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.metrics.Settlements.WithLabelValues(order.Channel, "payin", string(domain.OrderStatusFailed)).Inc()
	s.log.Info().Str("order_id", order.ExternalOrderID).Msg("payin failed")
	return nil
}

// SubmitReference settles a pending pay-in from a manually submitted UTR.
func (s *ReconciliationServiceImpl) SubmitReference(ctx context.Context, externalOrderID, reference string) error {
	if reference == "" {
		return apperror.ErrMissingField("utr")
	}

	order, err := s.payinRepo.GetByExternalOrderID(ctx, externalOrderID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("load order: %w", err))
	}
	if order == nil {
		return apperror.ErrNotFound("order")
	}

	err = s.SettlePayin(ctx, order, reference, fmt.Sprintf(`{"source":"manual_utr","utr":%q}`, reference))
	var dup *ports.AlreadySettledError
	if errors.As(err, &dup) {
		return apperror.ErrAlreadyTerminal()
	}
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}

	if merchant, merr := s.merchantRepo.GetByID(ctx, order.MerchantID); merr == nil && merchant != nil {
		s.forward(ctx, order, merchant, true, reference)
	}
	return nil
}

// HandlePayoutWebhook mirrors the pay-in path for disbursements. Failure
// refunds amount+fee exactly once; success credits the fee to the platform.
func (s *ReconciliationServiceImpl) HandlePayoutWebhook(ctx context.Context, channelCode string, params map[string]string, rawBody string) string {
	ch, ok := s.registry.Get(channelCode)
	if !ok {
		s.log.Warn().Str("channel", channelCode).Msg("payout webhook for unknown channel")
		return fallbackAck
	}
	ack := ch.Ack()
	s.metrics.WebhooksReceived.WithLabelValues(ch.Code(), "payout").Inc()

	auditID := s.audit(ctx, ch.Code(), domain.CallbackKindPayout, rawBody)

	n, err := ch.Parse(params)
	if err != nil {
		s.log.Info().Err(err).Str("channel", ch.Code()).Msg("unparseable payout webhook")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeUnmatched, "")
		s.metrics.WebhooksUnmatched.WithLabelValues(ch.Code(), "payout").Inc()
		return ack
	}

	order, err := s.resolvePayout(ctx, n)
	if err != nil {
		s.log.Error().Err(err).Str("channel", ch.Code()).Msg("payout order lookup failed")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeError, n.PlatformOrderID)
		return ack
	}
	if order == nil || order.Channel != ch.Code() {
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeUnmatched, n.PlatformOrderID)
		s.metrics.WebhooksUnmatched.WithLabelValues(ch.Code(), "payout").Inc()
		return ack
	}

	merchant, err := s.merchantRepo.GetByID(ctx, order.MerchantID)
	if err != nil || merchant == nil {
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeError, order.ExternalOrderID)
		return ack
	}
	secret := s.secretFor(merchant, ch.Code())

	if !ch.Verify(params, secret) {
		s.log.Debug().
			Str("channel", ch.Code()).
			Str("payout_id", order.ID.String()).
			Str("expected", ch.Sign(params, secret)).
			Str("received", n.Signature).
			Msg("payout webhook signature mismatch")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeBadSignature, order.ExternalOrderID)
		s.metrics.WebhooksBadSig.WithLabelValues(ch.Code(), "payout").Inc()
		return ack
	}

	status, transitions := ch.MapStatus(n.StatusCode)
	if !transitions {
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeIgnored, order.ExternalOrderID)
		return ack
	}

	key := dedupeKey(ch.Code(), "payout", n.PlatformOrderID, n.StatusCode)
	if s.seenBefore(ctx, key) {
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeDuplicate, order.ExternalOrderID)
		s.metrics.WebhooksDuplicate.WithLabelValues(ch.Code(), "payout").Inc()
		return ack
	}

	switch status {
	case domain.OrderStatusSuccess:
		err = s.settlePayout(ctx, order, n.Reference, rawBody)
	case domain.OrderStatusFailed:
		err = s.failPayout(ctx, order, n.StatusCode, rawBody)
	}

	var dup *ports.AlreadySettledError
	switch {
	case errors.As(err, &dup):
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeDuplicate, order.ExternalOrderID)
		s.metrics.WebhooksDuplicate.WithLabelValues(ch.Code(), "payout").Inc()
		s.markProcessed(ctx, key)
	case err != nil:
		s.log.Error().Err(err).Str("payout_id", order.ID.String()).Msg("payout transition failed")
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeError, order.ExternalOrderID)
	case status == domain.OrderStatusSuccess:
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeSettled, order.ExternalOrderID)
		s.markProcessed(ctx, key)
	default:
		s.setOutcome(ctx, auditID, domain.CallbackOutcomeFailed, order.ExternalOrderID)
		s.markProcessed(ctx, key)
	}
	return ack
}

// settlePayout: funds were reserved at creation, so only the fee moves.
func (s *ReconciliationServiceImpl) settlePayout(ctx context.Context, order *domain.PayoutOrder, reference, rawCallback string) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	ok, err := s.payoutRepo.MarkSuccess(ctx, dbTx, order.ID, reference, rawCallback, "")
	if err != nil {
		return fmt.Errorf("mark payout success: %w", err)
	}
	if !ok {
		return &ports.AlreadySettledError{OrderID: order.ID}
	}

	if s.platform.AccountID != "" && order.Fee != 0 {
		if err := s.platformRepo.AdjustBalance(ctx, dbTx, s.platform.AccountID, order.Fee); err != nil {
			return fmt.Errorf("credit platform fee: %w", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.metrics.Settlements.WithLabelValues(order.Channel, "payout", string(domain.OrderStatusSuccess)).Inc()
	s.log.Info().
		Str("payout_id", order.ID.String()).
		Str("reference", reference).
		Msg("payout settled")
	return nil
}

// failPayout refunds the creation-time reservation. The conditional
// transition makes a redelivered failure webhook refund zero times, not twice.
func (s *ReconciliationServiceImpl) failPayout(ctx context.Context, order *domain.PayoutOrder, reason, rawCallback string) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	ok, err := s.payoutRepo.MarkFailed(ctx, dbTx, order.ID, reason, rawCallback)
	if err != nil {
		return fmt.Errorf("mark payout failed: %w", err)
	}
	if !ok {
		return &ports.AlreadySettledError{OrderID: order.ID}
	}

	if err := s.merchantRepo.AdjustBalance(ctx, dbTx, order.MerchantID, order.TotalDeduction); err != nil {
		return fmt.Errorf("refund payout hold: %w", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.metrics.Settlements.WithLabelValues(order.Channel, "payout", string(domain.OrderStatusFailed)).Inc()
	s.metrics.PayoutRefunds.WithLabelValues(order.Channel).Inc()
	s.log.Info().
		Str("payout_id", order.ID.String()).
		Float64("refund", order.TotalDeduction).
		Str("reason", reason).
		Msg("payout failed, hold refunded")
	return nil
}

// --- helpers ---

func (s *ReconciliationServiceImpl) resolvePayin(ctx context.Context, n *channel.Notification) (*domain.PayinOrder, error) {
	order, err := s.payinRepo.GetByPlatformOrderID(ctx, n.PlatformOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil && n.MerchantOrderID != "" {
		order, err = s.payinRepo.GetByExternalOrderID(ctx, n.MerchantOrderID)
		if err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (s *ReconciliationServiceImpl) resolvePayout(ctx context.Context, n *channel.Notification) (*domain.PayoutOrder, error) {
	order, err := s.payoutRepo.GetByPlatformOrderID(ctx, n.PlatformOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil && n.MerchantOrderID != "" {
		order, err = s.payoutRepo.GetByExternalOrderID(ctx, n.MerchantOrderID)
		if err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (s *ReconciliationServiceImpl) secretFor(m *domain.Merchant, channelCode string) string {
	chCfg := s.channels[channelCode]
	if s.platform.SandboxMerchantID != "" && m.ExternalID == s.platform.SandboxMerchantID && chCfg.SandboxSecret != "" {
		return chCfg.SandboxSecret
	}
	return chCfg.Secret
}

// audit writes the unconditional raw-payload record. A write failure is
// logged but never blocks processing.
func (s *ReconciliationServiceImpl) audit(ctx context.Context, channelCode string, kind domain.CallbackKind, rawBody string) uuid.UUID {
	entry := &domain.CallbackLog{
		ID:         uuid.New(),
		Channel:    channelCode,
		Kind:       kind,
		RawBody:    rawBody,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.callbackRepo.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("channel", channelCode).Msg("failed to write callback audit log")
	}
	return entry.ID
}

func (s *ReconciliationServiceImpl) setOutcome(ctx context.Context, id uuid.UUID, outcome domain.CallbackOutcome, orderRef string) {
	if err := s.callbackRepo.SetOutcome(ctx, id, outcome, orderRef); err != nil {
		s.log.Warn().Err(err).Str("outcome", string(outcome)).Msg("failed to tag callback outcome")
	}
}

func dedupeKey(channelCode, kind, platformOrderID, statusCode string) string {
	return channelCode + ":" + kind + ":" + platformOrderID + ":" + statusCode
}

// seenBefore is the read side of the fast path. A nil cache or a cache
// error falls through to the DB guard.
func (s *ReconciliationServiceImpl) seenBefore(ctx context.Context, key string) bool {
	if s.dedupe == nil {
		return false
	}
	seen, err := s.dedupe.Seen(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("dedupe cache unavailable, falling through to DB guard")
		return false
	}
	return seen
}

// markProcessed records the key once the transition is known terminal,
// either freshly committed or observed as already settled. Best effort.
func (s *ReconciliationServiceImpl) markProcessed(ctx context.Context, key string) {
	if s.dedupe == nil {
		return
	}
	if _, err := s.dedupe.MarkProcessed(ctx, key, dedupeTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to record dedupe marker")
	}
}

// forward pushes the merchant notification off the webhook's critical path.
func (s *ReconciliationServiceImpl) forward(ctx context.Context, order *domain.PayinOrder, merchant *domain.Merchant, success bool, reference string) {
	if s.forwarder == nil {
		return
	}

	passthrough, err := domain.DecodePassthrough(order.Passthrough)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ExternalOrderID).Msg("corrupt passthrough bundle, forwarding without it")
	}

	n := ports.MerchantNotification{
		MerchantID:  merchant.ID,
		OrderID:     order.ExternalOrderID,
		ID:          order.ID,
		Amount:      order.GrossAmount,
		Success:     success,
		Reference:   reference,
		Param:       passthrough.Param,
		OverrideURL: passthrough.CallbackURL,
	}

	fwdCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.forwarder.Forward(fwdCtx, n); err != nil {
			s.metrics.ForwardsFailed.WithLabelValues(order.Channel).Inc()
			s.log.Warn().Err(err).Str("order_id", order.ExternalOrderID).Msg("merchant forwarding failed")
		}
	}()
}

func (s *ReconciliationServiceImpl) publishPayin(ctx context.Context, order *domain.PayinOrder, split PayinFee, status domain.OrderStatus, reference string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishSettlement(ctx, ports.SettlementEvent{
		Kind:       "payin",
		OrderID:    order.ExternalOrderID,
		MerchantID: order.MerchantID.String(),
		Channel:    order.Channel,
		Status:     string(status),
		Gross:      order.GrossAmount,
		Fee:        split.Fee,
		Net:        split.NetAmount,
		Reference:  reference,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ExternalOrderID).Msg("failed to publish settlement event")
	}
}
