package channel

import (
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"strings"
	"testing"

	"settlement-gateway/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniParams(secret string) map[string]string {
	ch := NewUniPay()
	params := map[string]string{
		"trade_no":     "UP8877001",
		"out_trade_no": "ORD-2002",
		"total_amount": "250.00",
		"trade_status": "TRADE_SUCCESS",
		"utr":          "UTR123456",
	}
	params["sign"] = ch.Sign(params, secret)
	return params
}

func TestUniPay_CanonicalizationPinned(t *testing.T) {
	// Sorted non-empty params joined k=v&, then &key=secret, MD5 uppercase.
	ch := NewUniPay()
	params := map[string]string{
		"trade_no":     "UP1",
		"total_amount": "10.00",
		"trade_status": "TRADE_SUCCESS",
		"empty":        "",
	}
	canonical := "total_amount=10.00&trade_no=UP1&trade_status=TRADE_SUCCESS&key=sek"
	sum := md5.Sum([]byte(canonical)) //nolint:gosec
	assert.Equal(t, strings.ToUpper(hex.EncodeToString(sum[:])), ch.Sign(params, "sek"))
}

func TestUniPay_VerifyRoundTrip(t *testing.T) {
	ch := NewUniPay()
	params := uniParams("uni-secret")
	assert.True(t, ch.Verify(params, "uni-secret"))
	assert.False(t, ch.Verify(params, "other-secret"))
}

func TestUniPay_VerifyCaseInsensitive(t *testing.T) {
	ch := NewUniPay()
	params := uniParams("uni-secret")
	params["sign"] = strings.ToLower(params["sign"])
	assert.True(t, ch.Verify(params, "uni-secret"))
}

func TestUniPay_VerifyRejectsMissingField(t *testing.T) {
	ch := NewUniPay()
	params := uniParams("uni-secret")
	delete(params, "trade_status")
	assert.False(t, ch.Verify(params, "uni-secret"))
}

func TestUniPay_EmptyParamsExcludedFromSignature(t *testing.T) {
	ch := NewUniPay()
	params := uniParams("uni-secret")
	// Adding an empty parameter must not change the canonical string.
	params["extra"] = ""
	assert.True(t, ch.Verify(params, "uni-secret"))
}

func TestUniPay_Parse(t *testing.T) {
	ch := NewUniPay()
	n, err := ch.Parse(uniParams("s"))
	require.NoError(t, err)
	assert.Equal(t, "UP8877001", n.PlatformOrderID)
	assert.Equal(t, "ORD-2002", n.MerchantOrderID)
	assert.Equal(t, "TRADE_SUCCESS", n.StatusCode)
	assert.Equal(t, "UTR123456", n.Reference)
}

func TestUniPay_MapStatus(t *testing.T) {
	ch := NewUniPay()

	for _, code := range []string{"TRADE_SUCCESS", "TRADE_FINISHED"} {
		st, ok := ch.MapStatus(code)
		require.True(t, ok, code)
		assert.Equal(t, domain.OrderStatusSuccess, st)
	}
	for _, code := range []string{"TRADE_CLOSED", "TRADE_FAILED"} {
		st, ok := ch.MapStatus(code)
		require.True(t, ok, code)
		assert.Equal(t, domain.OrderStatusFailed, st)
	}

	_, ok := ch.MapStatus("WAIT_BUYER_PAY")
	assert.False(t, ok)
}
