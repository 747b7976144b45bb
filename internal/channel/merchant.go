package channel

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// MerchantSigner signs outbound merchant notifications: non-empty fields
// sorted by key ascending, joined key=value&..., secret appended, SHA-256,
// lowercase hex. Merchants verify with their own secret.
type MerchantSigner struct{}

// NewMerchantSigner creates the merchant-facing signer.
func NewMerchantSigner() *MerchantSigner { return &MerchantSigner{} }

// Sign computes the notification signature with the merchant secret.
func (m *MerchantSigner) Sign(fields map[string]string, secret string) string {
	sum := sha256.Sum256([]byte(sortedQuery(fields, "sign") + secret))
	return hex.EncodeToString(sum[:])
}

// Verify checks a signature produced by Sign; hex case-insensitive.
func (m *MerchantSigner) Verify(fields map[string]string, secret string) bool {
	expected := m.Sign(fields, secret)
	received := strings.ToLower(fields["sign"])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}
