package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"settlement-gateway/config"
	"settlement-gateway/internal/core/domain"
	"settlement-gateway/internal/core/ports"
	"settlement-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/rs/zerolog"
)

// PayoutServiceImpl implements ports.PayoutService. Funds move at the edges
// of the lifecycle: amount+fee is reserved at creation, refunded once on
// terminal failure, and the fee is skimmed to the platform on success.
type PayoutServiceImpl struct {
	merchantRepo ports.MerchantRepository
	payoutRepo   ports.PayoutOrderRepository
	platformRepo ports.PlatformAccountRepository
	transactor   ports.DBTransactor
	publisher    ports.EventPublisher
	channels     map[string]config.ChannelConfig
	platform     config.PlatformConfig
	newOrderID   func() string
	log          zerolog.Logger
}

// NewPayoutService creates a new PayoutServiceImpl. publisher may be nil.
func NewPayoutService(
	merchantRepo ports.MerchantRepository,
	payoutRepo ports.PayoutOrderRepository,
	platformRepo ports.PlatformAccountRepository,
	transactor ports.DBTransactor,
	publisher ports.EventPublisher,
	channels map[string]config.ChannelConfig,
	platform config.PlatformConfig,
	log zerolog.Logger,
) *PayoutServiceImpl {
	gen, err := nanoid.CustomASCII(orderIDAlphabet, 16)
	if err != nil {
		panic(fmt.Sprintf("payout id generator: %v", err))
	}
	return &PayoutServiceImpl{
		merchantRepo: merchantRepo,
		payoutRepo:   payoutRepo,
		platformRepo: platformRepo,
		transactor:   transactor,
		publisher:    publisher,
		channels:     channels,
		platform:     platform,
		newOrderID:   func() string { return "PO" + gen() },
		log:          log,
	}
}

// CreatePayout reserves amount+fee and persists the pending payout in one
// transaction. Manually entered payouts are held for admin approval.
func (s *PayoutServiceImpl) CreatePayout(ctx context.Context, req ports.CreatePayoutRequest) (*domain.PayoutOrder, error) {
	channelCode := strings.ToLower(req.Channel)
	chCfg, ok := s.channels[channelCode]
	if !ok {
		return nil, apperror.ErrUnknownChannel(req.Channel)
	}

	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Amount < chCfg.MinAmount {
		return nil, apperror.ErrAmountBelowMinimum(chCfg.MinAmount)
	}
	if req.Destination.Wallet == "" && (req.Destination.AccountNumber == "" || req.Destination.IFSC == "") {
		return nil, apperror.Validation("Destination requires a wallet or an account number with IFSC")
	}

	merchant, err := s.merchantRepo.GetByID(ctx, req.MerchantID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load merchant: %w", err))
	}
	if merchant == nil {
		return nil, apperror.ErrNotFound("merchant")
	}
	if !merchant.IsActive() {
		return nil, apperror.ErrMerchantInactive()
	}

	externalOrderID := req.ExternalOrderID
	if externalOrderID == "" {
		externalOrderID = s.newOrderID()
	} else {
		exists, err := s.payoutRepo.ExistsExternalOrderID(ctx, externalOrderID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("check payout id: %w", err))
		}
		if exists {
			return nil, apperror.ErrDuplicateOrderID(externalOrderID)
		}
	}

	split := CalculatePayoutFee(req.Amount, chCfg.PayoutRate, chCfg.PayoutFee)

	now := time.Now().UTC()
	order := &domain.PayoutOrder{
		ID:              uuid.New(),
		ExternalOrderID: externalOrderID,
		MerchantID:      merchant.ID,
		Channel:         channelCode,
		Amount:          req.Amount,
		Fee:             split.Fee,
		TotalDeduction:  split.TotalDeduction,
		FrozenRate:      chCfg.PayoutRate,
		Status:          domain.OrderStatusPending,
		Destination:     req.Destination,
		Source:          req.Source,
		HoldForApproval: req.Source == domain.PayoutSourceManual,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	reserved, err := s.merchantRepo.Reserve(ctx, dbTx, merchant.ID, split.TotalDeduction)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("reserve balance: %w", err))
	}
	if !reserved {
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := s.payoutRepo.Create(ctx, dbTx, order); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create payout order: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("payout_id", order.ID.String()).
		Str("order_id", externalOrderID).
		Str("merchant_id", merchant.ID.String()).
		Str("channel", channelCode).
		Float64("amount", req.Amount).
		Float64("total_deduction", split.TotalDeduction).
		Bool("hold_for_approval", order.HoldForApproval).
		Msg("payout order created")

	return order, nil
}

// Approve performs PENDING->SUCCESS on a payout. The reservation from
// creation already covers the deduction, so only the fee moves: it is
// credited to the platform account.
func (s *PayoutServiceImpl) Approve(ctx context.Context, payoutID uuid.UUID, approvedBy, reference string) error {
	order, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("load payout: %w", err))
	}
	if order == nil {
		return apperror.ErrNotFound("payout")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	ok, err := s.payoutRepo.MarkSuccess(ctx, dbTx, order.ID, reference, "", approvedBy)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("mark payout success: %w", err))
	}
	if !ok {
		return apperror.ErrAlreadyTerminal()
	}

	if s.platform.AccountID != "" && order.Fee != 0 {
		if err := s.platformRepo.AdjustBalance(ctx, dbTx, s.platform.AccountID, order.Fee); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("credit platform fee: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.publish(ctx, order, domain.OrderStatusSuccess, reference)

	s.log.Info().
		Str("payout_id", order.ID.String()).
		Str("approved_by", approvedBy).
		Str("reference", reference).
		Msg("payout approved")
	return nil
}

// Reject performs PENDING->FAILED and refunds amount+fee exactly once; the
// conditional transition guards the refund.
func (s *PayoutServiceImpl) Reject(ctx context.Context, payoutID uuid.UUID, approvedBy, reason string) error {
	order, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("load payout: %w", err))
	}
	if order == nil {
		return apperror.ErrNotFound("payout")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	ok, err := s.payoutRepo.MarkFailed(ctx, dbTx, order.ID, reason, "")
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("mark payout failed: %w", err))
	}
	if !ok {
		return apperror.ErrAlreadyTerminal()
	}

	if err := s.merchantRepo.AdjustBalance(ctx, dbTx, order.MerchantID, order.TotalDeduction); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("refund payout hold: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.publish(ctx, order, domain.OrderStatusFailed, "")

	s.log.Info().
		Str("payout_id", order.ID.String()).
		Str("rejected_by", approvedBy).
		Str("reason", reason).
		Msg("payout rejected and refunded")
	return nil
}

func (s *PayoutServiceImpl) publish(ctx context.Context, order *domain.PayoutOrder, status domain.OrderStatus, reference string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishSettlement(ctx, ports.SettlementEvent{
		Kind:       "payout",
		OrderID:    order.ExternalOrderID,
		MerchantID: order.MerchantID.String(),
		Channel:    order.Channel,
		Status:     string(status),
		Gross:      order.Amount,
		Fee:        order.Fee,
		Net:        order.TotalDeduction,
		Reference:  reference,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("payout_id", order.ID.String()).Msg("failed to publish payout event")
	}
}
