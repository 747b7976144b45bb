package ports

import (
	"context"
	"time"

	"settlement-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// --- Service Ports (Business Logic) ---

// OrderService creates outbound pay-in orders.
type OrderService interface {
	CreatePayin(ctx context.Context, req CreatePayinRequest) (*CreatePayinResult, error)
}

// CreatePayinRequest holds validated input for pay-in creation.
type CreatePayinRequest struct {
	MerchantID      uuid.UUID
	Channel         string
	Amount          float64
	ExternalOrderID string // optional; generated when empty
	CallbackURL     string
	SkipURL         string
	Param           string // opaque passthrough, echoed on notification
}

// CreatePayinResult is returned to the merchant after upstream acceptance.
type CreatePayinResult struct {
	OrderID    string            // external order id
	ID         uuid.UUID         // internal id
	Amount     float64
	Fee        float64
	PaymentURL string
	DeepLinks  map[string]string
}

// PayoutService creates and transitions payout orders.
type PayoutService interface {
	CreatePayout(ctx context.Context, req CreatePayoutRequest) (*domain.PayoutOrder, error)
	// Approve performs PENDING->SUCCESS on a held payout; funds were
	// already reserved at creation so no balance changes.
	Approve(ctx context.Context, payoutID uuid.UUID, approvedBy, reference string) error
	// Reject performs PENDING->FAILED, refunds amount+fee once and
	// records the reason.
	Reject(ctx context.Context, payoutID uuid.UUID, approvedBy, reason string) error
}

// CreatePayoutRequest holds validated input for payout creation.
type CreatePayoutRequest struct {
	MerchantID      uuid.UUID
	Channel         string
	Amount          float64
	ExternalOrderID string
	Destination     domain.PayoutDestination
	Source          domain.PayoutSource
}

// ReconciliationService is the core state machine fed by webhooks, the
// manual-reference compensation path and the auto-settle worker.
type ReconciliationService interface {
	// HandlePayinWebhook processes an inbound pay-in notification and
	// returns the channel ack token. It never surfaces processing errors
	// to the upstream.
	HandlePayinWebhook(ctx context.Context, channelCode string, params map[string]string, rawBody string) string
	// HandlePayoutWebhook mirrors HandlePayinWebhook for disbursements.
	HandlePayoutWebhook(ctx context.Context, channelCode string, params map[string]string, rawBody string) string
	// SettlePayin is the single shared crediting primitive: conditional
	// PENDING->SUCCESS, merchant credit, admin-profit skim, settlement
	// event, all in one transaction. Both the webhook path and the
	// simulator MUST go through here.
	SettlePayin(ctx context.Context, order *domain.PayinOrder, reference, rawCallback string) error
	// SubmitReference settles a pending pay-in from a manually submitted
	// settlement reference (UTR), via SettlePayin.
	SubmitReference(ctx context.Context, externalOrderID, reference string) error
}

// AlreadySettledError is reported by SettlePayin when the conditional
// update matched no pending row. Callers treat it as a benign duplicate.
type AlreadySettledError struct{ OrderID uuid.UUID }

func (e *AlreadySettledError) Error() string {
	return "order already in a terminal state: " + e.OrderID.String()
}

// ForwarderService pushes re-signed notifications to merchant endpoints.
type ForwarderService interface {
	// Forward builds, signs and POSTs the merchant notification. It is
	// called fire-and-forget; failures are logged, never retried, and
	// never roll back the settlement.
	Forward(ctx context.Context, n MerchantNotification) error
}

// MerchantNotification is the merchant-facing callback body before signing.
type MerchantNotification struct {
	MerchantID  uuid.UUID
	OrderID     string // external order id
	ID          uuid.UUID
	Amount      float64
	Success     bool
	Reference   string // UTR
	Param       string
	OverrideURL string // takes precedence over the merchant profile URL
}

// UpstreamClient calls a channel's order-creation API.
type UpstreamClient interface {
	CreateOrder(ctx context.Context, req UpstreamCreateRequest) (*UpstreamCreateResult, error)
}

// UpstreamCreateRequest is the channel-facing create call.
type UpstreamCreateRequest struct {
	Channel         string
	CreateURL       string
	Secret          string
	ExternalOrderID string
	Amount          float64
	NotifyURL       string
	ReturnURL       string
}

// UpstreamCreateResult carries what the channel promised at creation.
type UpstreamCreateResult struct {
	PlatformOrderID string
	PaymentURL      string
	DeepLinks       map[string]string
}

// DedupeCache is the redis fast-path duplicate-delivery suppressor. It is
// best-effort only; the conditional update remains authoritative.
type DedupeCache interface {
	// Seen reports whether a delivery key was already recorded. It never
	// records anything itself.
	Seen(ctx context.Context, key string) (bool, error)
	// MarkProcessed atomically records key and reports whether this call
	// was the first to do so. Callers record only after the transition
	// committed, so a transient DB failure never leaves a marker that
	// would suppress the retry.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// SettlementEvent is published after a committed settlement.
type SettlementEvent struct {
	Kind       string    `json:"kind"` // payin | payout
	OrderID    string    `json:"order_id"`
	MerchantID string    `json:"merchant_id"`
	Channel    string    `json:"channel"`
	Status     string    `json:"status"`
	Gross      float64   `json:"gross"`
	Fee        float64   `json:"fee"`
	Net        float64   `json:"net"`
	Reference  string    `json:"reference,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher emits settlement events to the message bus, best-effort.
type EventPublisher interface {
	PublishSettlement(ctx context.Context, event SettlementEvent) error
}
