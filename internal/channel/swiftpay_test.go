package channel

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"settlement-gateway/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swiftParams(secret string) map[string]string {
	ch := NewSwiftPay()
	params := map[string]string{
		"orderId":         "SP20260830001",
		"merchantOrderId": "ORD-1001",
		"amount":          "100.00",
		"status":          "1",
		"utr":             "UTR999888",
	}
	params["sign"] = ch.Sign(params, secret)
	return params
}

func TestSwiftPay_CanonicalizationPinned(t *testing.T) {
	// Fixed ordered concatenation: orderId + amount + status + secret.
	ch := NewSwiftPay()
	params := map[string]string{
		"orderId": "SP1", "amount": "55.50", "status": "1",
		"utr": "not-part-of-signature",
	}
	sum := sha256.Sum256([]byte("SP155.501" + "sek"))
	assert.Equal(t, hex.EncodeToString(sum[:]), ch.Sign(params, "sek"))
}

func TestSwiftPay_VerifyRoundTrip(t *testing.T) {
	ch := NewSwiftPay()
	params := swiftParams("secret-1")
	assert.True(t, ch.Verify(params, "secret-1"))
	assert.False(t, ch.Verify(params, "secret-2"))
}

func TestSwiftPay_VerifyCaseInsensitiveHex(t *testing.T) {
	ch := NewSwiftPay()
	params := swiftParams("secret-1")
	params["sign"] = strings.ToUpper(params["sign"])
	assert.True(t, ch.Verify(params, "secret-1"))
}

func TestSwiftPay_VerifyRejectsMissingField(t *testing.T) {
	ch := NewSwiftPay()
	params := swiftParams("secret-1")
	delete(params, "amount")
	assert.False(t, ch.Verify(params, "secret-1"))
}

func TestSwiftPay_VerifyRejectsTamperedAmount(t *testing.T) {
	ch := NewSwiftPay()
	params := swiftParams("secret-1")
	params["amount"] = "999.00"
	assert.False(t, ch.Verify(params, "secret-1"))
}

func TestSwiftPay_Parse(t *testing.T) {
	ch := NewSwiftPay()
	n, err := ch.Parse(swiftParams("s"))
	require.NoError(t, err)
	assert.Equal(t, "SP20260830001", n.PlatformOrderID)
	assert.Equal(t, "ORD-1001", n.MerchantOrderID)
	assert.Equal(t, "100.00", n.Amount)
	assert.Equal(t, "1", n.StatusCode)
	assert.Equal(t, "UTR999888", n.Reference)
}

func TestSwiftPay_ParseMissingField(t *testing.T) {
	ch := NewSwiftPay()
	_, err := ch.Parse(map[string]string{"orderId": "SP1", "amount": "10"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

func TestSwiftPay_MapStatus(t *testing.T) {
	ch := NewSwiftPay()

	st, ok := ch.MapStatus("1")
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusSuccess, st)

	st, ok = ch.MapStatus("2")
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusFailed, st)

	st, ok = ch.MapStatus("3")
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusFailed, st)

	_, ok = ch.MapStatus("0")
	assert.False(t, ok, "unknown codes must not transition")
}
