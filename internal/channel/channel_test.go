package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedQuery_Canonicalization(t *testing.T) {
	params := map[string]string{
		"b":    "2",
		"a":    "1",
		"z":    "26",
		"sign": "should-be-excluded",
		"m":    "", // empty values are excluded
	}
	assert.Equal(t, "a=1&b=2&z=26", sortedQuery(params, "sign"))
}

func TestSortedQuery_Empty(t *testing.T) {
	assert.Equal(t, "", sortedQuery(map[string]string{}, "sign"))
	assert.Equal(t, "", sortedQuery(map[string]string{"sign": "x", "a": ""}, "sign"))
}

func TestRequireFields(t *testing.T) {
	params := map[string]string{"a": "1", "b": ""}
	assert.Equal(t, "", requireFields(params, "a"))
	assert.Equal(t, "b", requireFields(params, "a", "b"))
	assert.Equal(t, "c", requireFields(params, "a", "c"))
}

func TestRegistry_GetIsCaseInsensitive(t *testing.T) {
	reg := NewRegistry(NewSwiftPay(), NewUniPay())

	ch, ok := reg.Get("SwiftPay")
	require.True(t, ok)
	assert.Equal(t, CodeSwiftPay, ch.Code())

	_, ok = reg.Get("nopay")
	assert.False(t, ok)
}

func TestDefaults_TrustBankRequiresPublicKey(t *testing.T) {
	reg := Defaults("")
	_, ok := reg.Get(CodeTrustBank)
	assert.False(t, ok, "trustbank must stay unregistered without a public key")

	assert.Equal(t, []string{CodeSoftPay, CodeSwiftPay, CodeUniPay}, reg.Codes())
}
