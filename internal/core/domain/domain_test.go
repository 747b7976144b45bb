package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.True(t, OrderStatusSuccess.IsTerminal())
	assert.True(t, OrderStatusFailed.IsTerminal())
}

func TestMerchant_IsActive(t *testing.T) {
	m := &Merchant{Status: MerchantStatusActive}
	assert.True(t, m.IsActive())

	m.Status = MerchantStatusSuspended
	assert.False(t, m.IsActive())

	m.Status = MerchantStatusDeactivated
	assert.False(t, m.IsActive())
}

func TestMerchant_EffectiveRate(t *testing.T) {
	m := &Merchant{}
	assert.Equal(t, 0.05, m.EffectiveRate(0.05), "no override uses channel default")

	override := 0.03
	m.PayinRate = &override
	assert.Equal(t, 0.03, m.EffectiveRate(0.05), "override wins over channel default")
}

func TestPassthrough_EncodeDecode(t *testing.T) {
	p := Passthrough{
		CallbackURL: "https://merchant.example/cb",
		SkipURL:     "https://merchant.example/done",
		Param:       "opaque-123",
		DeepLinks:   map[string]string{"upi": "upi://pay?pa=x"},
	}

	raw, err := p.Encode()
	require.NoError(t, err)

	got, err := DecodePassthrough(raw)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestDecodePassthrough_Empty(t *testing.T) {
	got, err := DecodePassthrough("")
	require.NoError(t, err)
	assert.Equal(t, Passthrough{}, got)
}

func TestDecodePassthrough_Invalid(t *testing.T) {
	_, err := DecodePassthrough("{not json")
	assert.Error(t, err)
}
