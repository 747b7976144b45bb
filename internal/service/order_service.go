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

// orderIDAlphabet avoids look-alike characters in merchant-visible ids.
const orderIDAlphabet = "0123456789ABCDEFGHJKLMNPQRSTVWXYZ"

// OrderServiceImpl implements ports.OrderService.
type OrderServiceImpl struct {
	merchantRepo ports.MerchantRepository
	payinRepo    ports.PayinOrderRepository
	upstream     ports.UpstreamClient
	channels     map[string]config.ChannelConfig
	platform     config.PlatformConfig
	newOrderID   func() string
	log          zerolog.Logger
}

// NewOrderService creates a new OrderServiceImpl.
func NewOrderService(
	merchantRepo ports.MerchantRepository,
	payinRepo ports.PayinOrderRepository,
	upstream ports.UpstreamClient,
	channels map[string]config.ChannelConfig,
	platform config.PlatformConfig,
	log zerolog.Logger,
) *OrderServiceImpl {
	gen, err := nanoid.CustomASCII(orderIDAlphabet, 16)
	if err != nil {
		panic(fmt.Sprintf("order id generator: %v", err))
	}
	return &OrderServiceImpl{
		merchantRepo: merchantRepo,
		payinRepo:    payinRepo,
		upstream:     upstream,
		channels:     channels,
		platform:     platform,
		newOrderID:   func() string { return "PI" + gen() },
		log:          log,
	}
}

// CreatePayin validates the request, registers the order upstream and
// persists it as PENDING. Upstream rejection persists nothing.
func (s *OrderServiceImpl) CreatePayin(ctx context.Context, req ports.CreatePayinRequest) (*ports.CreatePayinResult, error) {
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
		exists, err := s.payinRepo.ExistsExternalOrderID(ctx, externalOrderID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("check order id: %w", err))
		}
		if exists {
			return nil, apperror.ErrDuplicateOrderID(externalOrderID)
		}
	}

	// Frozen at creation; later rate changes never apply retroactively.
	rate := merchant.EffectiveRate(chCfg.DefaultRate)
	split := CalculatePayinFee(req.Amount, rate)

	upstreamRes, err := s.upstream.CreateOrder(ctx, ports.UpstreamCreateRequest{
		Channel:         channelCode,
		CreateURL:       chCfg.CreateURL,
		Secret:          s.resolveSecret(merchant, chCfg),
		ExternalOrderID: externalOrderID,
		Amount:          req.Amount,
		NotifyURL:       s.platform.PublicBaseURL + "/callback/" + channelCode,
		ReturnURL:       req.SkipURL,
	})
	if err != nil {
		return nil, apperror.ErrUpstreamCreate(err)
	}

	passthrough, err := domain.Passthrough{
		CallbackURL: req.CallbackURL,
		SkipURL:     req.SkipURL,
		Param:       req.Param,
		DeepLinks:   upstreamRes.DeepLinks,
	}.Encode()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode passthrough: %w", err))
	}

	now := time.Now().UTC()
	order := &domain.PayinOrder{
		ID:              uuid.New(),
		ExternalOrderID: externalOrderID,
		PlatformOrderID: upstreamRes.PlatformOrderID,
		MerchantID:      merchant.ID,
		Channel:         channelCode,
		GrossAmount:     req.Amount,
		Fee:             split.Fee,
		NetAmount:       split.NetAmount,
		FrozenRate:      rate,
		Status:          domain.OrderStatusPending,
		Passthrough:     passthrough,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if chCfg.AutoSuccessRate > 0 {
		due := now.Add(autoSettleDelay(chCfg))
		order.AutoSettleDueAt = &due
	}

	if err := s.payinRepo.Create(ctx, order); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create payin order: %w", err))
	}

	s.log.Info().
		Str("order_id", externalOrderID).
		Str("platform_order_id", order.PlatformOrderID).
		Str("merchant_id", merchant.ID.String()).
		Str("channel", channelCode).
		Float64("amount", req.Amount).
		Float64("rate", rate).
		Msg("payin order created")

	return &ports.CreatePayinResult{
		OrderID:    externalOrderID,
		ID:         order.ID,
		Amount:     req.Amount,
		Fee:        split.Fee,
		PaymentURL: upstreamRes.PaymentURL,
		DeepLinks:  upstreamRes.DeepLinks,
	}, nil
}

// resolveSecret picks the sandbox secret for the designated test merchant.
func (s *OrderServiceImpl) resolveSecret(m *domain.Merchant, chCfg config.ChannelConfig) string {
	if s.platform.SandboxMerchantID != "" && m.ExternalID == s.platform.SandboxMerchantID && chCfg.SandboxSecret != "" {
		return chCfg.SandboxSecret
	}
	return chCfg.Secret
}

func autoSettleDelay(chCfg config.ChannelConfig) time.Duration {
	if chCfg.AutoSettleDelay > 0 {
		return chCfg.AutoSettleDelay
	}
	return 30 * time.Second
}
