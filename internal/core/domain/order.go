package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the canonical lifecycle state shared by pay-ins and payouts.
// Transitions are monotonic: PENDING -> {SUCCESS, FAILED}; both are final.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusSuccess OrderStatus = "SUCCESS"
	OrderStatusFailed  OrderStatus = "FAILED"
)

// IsTerminal returns true for final states.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusSuccess || s == OrderStatusFailed
}

// Passthrough is the bundle promised to the merchant at order creation and
// unpacked unchanged when the settlement notification is forwarded.
type Passthrough struct {
	CallbackURL string            `json:"callback_url,omitempty"`
	SkipURL     string            `json:"skip_url,omitempty"`
	Param       string            `json:"param,omitempty"`
	DeepLinks   map[string]string `json:"deep_links,omitempty"`
}

// Encode serializes the bundle for storage on the order row.
func (p Passthrough) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodePassthrough restores a bundle from its stored form. An empty input
// yields a zero bundle.
func DecodePassthrough(raw string) (Passthrough, error) {
	var p Passthrough
	if raw == "" {
		return p, nil
	}
	err := json.Unmarshal([]byte(raw), &p)
	return p, err
}

// PayinOrder represents a collection order created against an upstream channel.
type PayinOrder struct {
	ID              uuid.UUID   `json:"id"`
	ExternalOrderID string      `json:"external_order_id"` // globally unique, merchant-facing
	PlatformOrderID string      `json:"platform_order_id"` // issued by the upstream channel
	MerchantID      uuid.UUID   `json:"merchant_id"`
	Channel         string      `json:"channel"`
	GrossAmount     float64     `json:"gross_amount"`
	Fee             float64     `json:"fee"`
	NetAmount       float64     `json:"net_amount"`
	FrozenRate      float64     `json:"frozen_rate"` // rate at creation, never retroactively changed
	Status          OrderStatus `json:"status"`
	Reference       string      `json:"reference"` // UTR / settlement reference
	RawCallback     string      `json:"-"`
	Passthrough     string      `json:"-"`
	// AutoSettleDueAt schedules the soft channel's single simulated
	// settlement check. Persisted so restarts cannot lose it.
	AutoSettleDueAt *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	SettledAt       *time.Time `json:"settled_at,omitempty"`
}

// PayoutSource distinguishes API-created payouts from manually entered ones.
type PayoutSource string

const (
	PayoutSourceAPI    PayoutSource = "API"
	PayoutSourceManual PayoutSource = "MANUAL"
)

// PayoutDestination holds bank or wallet coordinates for a disbursement.
type PayoutDestination struct {
	AccountNumber string `json:"account_number,omitempty"`
	AccountName   string `json:"account_name,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
	Wallet        string `json:"wallet,omitempty"`
}

// PayoutOrder represents a disbursement. TotalDeduction (amount+fee) is
// debited from the merchant at creation; terminal failure refunds it.
type PayoutOrder struct {
	ID              uuid.UUID         `json:"id"`
	ExternalOrderID string            `json:"external_order_id"`
	PlatformOrderID string            `json:"platform_order_id"`
	MerchantID      uuid.UUID         `json:"merchant_id"`
	Channel         string            `json:"channel"`
	Amount          float64           `json:"amount"`
	Fee             float64           `json:"fee"`
	TotalDeduction  float64           `json:"total_deduction"`
	FrozenRate      float64           `json:"frozen_rate"`
	Status          OrderStatus       `json:"status"`
	Reference       string            `json:"reference"`
	Destination     PayoutDestination `json:"destination"`
	Source          PayoutSource      `json:"source"`
	HoldForApproval bool              `json:"hold_for_approval"`
	ApprovedBy      string            `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time        `json:"approved_at,omitempty"`
	RejectReason    string            `json:"reject_reason,omitempty"`
	RawCallback     string            `json:"-"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
