package domain

import (
	"time"

	"github.com/google/uuid"
)

// MerchantStatus represents the state of a merchant account.
type MerchantStatus string

const (
	MerchantStatusActive      MerchantStatus = "ACTIVE"
	MerchantStatusSuspended   MerchantStatus = "SUSPENDED"
	MerchantStatusDeactivated MerchantStatus = "DEACTIVATED"
)

// Merchant represents a registered merchant with a balance ledger row.
// Balance equals the replayed sum of net-settled pay-ins minus settled
// payout deductions minus reserved pending payout holds.
type Merchant struct {
	ID          uuid.UUID      `json:"id"`
	ExternalID  string         `json:"external_id"`
	Name        string         `json:"name"`
	AccessKey   string         `json:"access_key"`
	SecretKey   string         `json:"-"` // Never expose
	Balance     float64        `json:"balance"`
	Status      MerchantStatus `json:"status"`
	CallbackURL string         `json:"callback_url"`
	// PayinRate overrides the channel default rate when set.
	PayinRate *float64  `json:"payin_rate,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive returns true if the merchant account is active.
func (m *Merchant) IsActive() bool {
	return m.Status == MerchantStatusActive
}

// EffectiveRate resolves the merchant's pay-in rate against a channel default.
// The result is frozen onto orders at creation time.
func (m *Merchant) EffectiveRate(channelDefault float64) float64 {
	if m.PayinRate != nil {
		return *m.PayinRate
	}
	return channelDefault
}

// PlatformAccount is the operator's own profit ledger row. Admin profit
// (fee minus channel cost) is applied here and may go negative.
type PlatformAccount struct {
	ID        string    `json:"id"`
	Balance   float64   `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}
