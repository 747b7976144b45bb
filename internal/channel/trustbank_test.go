package channel

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"settlement-gateway/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trustKeys(t *testing.T) (pub string, priv string) {
	t.Helper()
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(pubKey),
		base64.StdEncoding.EncodeToString(privKey)
}

func trustParams(t *testing.T, priv string) map[string]string {
	ch := NewTrustBank("")
	params := map[string]string{
		"txnId":     "TB445566",
		"orderId":   "ORD-4004",
		"amount":    "500.00",
		"status":    "SETTLED",
		"rrn":       "RRN20260830",
		"timestamp": "1756512000",
	}
	params["signature"] = ch.Sign(params, priv)
	return params
}

func TestTrustBank_DetachedSignatureRoundTrip(t *testing.T) {
	pub, priv := trustKeys(t)
	ch := NewTrustBank(pub)
	params := trustParams(t, priv)

	assert.True(t, ch.Verify(params, pub))
	// Falls back to the configured key when no secret is passed.
	assert.True(t, ch.Verify(params, ""))
}

func TestTrustBank_CanonicalStringPinned(t *testing.T) {
	ch := NewTrustBank("")
	params := map[string]string{
		"amount": "1.00", "orderId": "O1", "rrn": "R1",
		"status": "SETTLED", "timestamp": "123",
	}
	assert.Equal(t, "1.00|O1|R1|SETTLED|123", ch.canonical(params))
}

func TestTrustBank_VerifyRejectsTamperedContent(t *testing.T) {
	pub, priv := trustKeys(t)
	ch := NewTrustBank(pub)
	params := trustParams(t, priv)
	params["amount"] = "9999.00"
	assert.False(t, ch.Verify(params, pub))
}

func TestTrustBank_VerifyRejectsWrongKey(t *testing.T) {
	_, priv := trustKeys(t)
	otherPub, _ := trustKeys(t)
	ch := NewTrustBank(otherPub)
	params := trustParams(t, priv)
	assert.False(t, ch.Verify(params, ""))
}

func TestTrustBank_VerifyRejectsMissingField(t *testing.T) {
	pub, priv := trustKeys(t)
	ch := NewTrustBank(pub)
	params := trustParams(t, priv)
	delete(params, "timestamp")
	assert.False(t, ch.Verify(params, pub))
}

func TestTrustBank_VerifyRejectsGarbageKeys(t *testing.T) {
	ch := NewTrustBank("not-base64!!")
	_, priv := trustKeys(t)
	params := trustParams(t, priv)
	assert.False(t, ch.Verify(params, ""))

	assert.Equal(t, "", ch.Sign(params, "also-not-a-key"))
}

func TestTrustBank_Parse(t *testing.T) {
	_, priv := trustKeys(t)
	ch := NewTrustBank("")
	n, err := ch.Parse(trustParams(t, priv))
	require.NoError(t, err)
	assert.Equal(t, "TB445566", n.PlatformOrderID)
	assert.Equal(t, "ORD-4004", n.MerchantOrderID)
	assert.Equal(t, "RRN20260830", n.Reference)
}

func TestTrustBank_MapStatus(t *testing.T) {
	ch := NewTrustBank("")

	st, ok := ch.MapStatus("SETTLED")
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusSuccess, st)

	for _, code := range []string{"RETURNED", "DEEMED"} {
		st, ok = ch.MapStatus(code)
		require.True(t, ok, code)
		assert.Equal(t, domain.OrderStatusFailed, st)
	}

	_, ok = ch.MapStatus("INITIATED")
	assert.False(t, ok)
}
