package channel

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"settlement-gateway/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func softParams(secret string) map[string]string {
	ch := NewSoftPay()
	params := map[string]string{
		"order_no":     "SF5566",
		"mch_order_no": "ORD-3003",
		"amount":       "75.25",
		"status":       "PAID",
		"utr":          "UTR777000",
	}
	params["sign"] = ch.Sign(params, secret)
	return params
}

func TestSoftPay_CanonicalizationPinned(t *testing.T) {
	// HMAC-SHA256 over the sorted non-empty k=v& canonical string.
	ch := NewSoftPay()
	params := map[string]string{
		"order_no": "SF1",
		"amount":   "10",
		"status":   "PAID",
	}
	mac := hmac.New(sha256.New, []byte("sek"))
	mac.Write([]byte("amount=10&order_no=SF1&status=PAID"))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), ch.Sign(params, "sek"))
}

func TestSoftPay_VerifyRoundTrip(t *testing.T) {
	ch := NewSoftPay()
	params := softParams("soft-secret")
	assert.True(t, ch.Verify(params, "soft-secret"))
	assert.False(t, ch.Verify(params, "wrong"))
}

func TestSoftPay_VerifyRejectsMissingField(t *testing.T) {
	ch := NewSoftPay()
	params := softParams("soft-secret")
	delete(params, "status")
	assert.False(t, ch.Verify(params, "soft-secret"))
}

func TestSoftPay_Parse(t *testing.T) {
	ch := NewSoftPay()
	n, err := ch.Parse(softParams("s"))
	require.NoError(t, err)
	assert.Equal(t, "SF5566", n.PlatformOrderID)
	assert.Equal(t, "ORD-3003", n.MerchantOrderID)
	assert.Equal(t, "PAID", n.StatusCode)
}

func TestSoftPay_MapStatus(t *testing.T) {
	ch := NewSoftPay()

	st, ok := ch.MapStatus("PAID")
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusSuccess, st)

	st, ok = ch.MapStatus("paid")
	require.True(t, ok, "status codes compare case-insensitively")
	assert.Equal(t, domain.OrderStatusSuccess, st)

	for _, code := range []string{"FAILED", "EXPIRED"} {
		st, ok = ch.MapStatus(code)
		require.True(t, ok, code)
		assert.Equal(t, domain.OrderStatusFailed, st)
	}

	_, ok = ch.MapStatus("CREATED")
	assert.False(t, ok)
}
