package channel

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"settlement-gateway/internal/core/domain"

	"settlement-gateway/pkg/apperror"
)

// TrustBank carries a detached ed25519 signature over a canonical
// serialized business-content string instead of a shared secret:
//
//	amount|orderId|reference|status|timestamp
//
// The signature is base64 and verified against the bank's public key. The
// secret argument of Verify is that base64 public key; Sign takes the
// base64 private key (used in tests only; production signing happens at
// the bank).
type TrustBank struct {
	publicKey string // base64, from config; fallback when Verify gets ""
}

// NewTrustBank creates the trustbank channel pinned to a public key.
func NewTrustBank(publicKey string) *TrustBank {
	return &TrustBank{publicKey: publicKey}
}

func (t *TrustBank) Code() string { return CodeTrustBank }

func (t *TrustBank) Ack() string { return "success" }

func (t *TrustBank) canonical(params map[string]string) string {
	return strings.Join([]string{
		params["amount"],
		params["orderId"],
		params["rrn"],
		params["status"],
		params["timestamp"],
	}, "|")
}

// Sign produces the detached base64 signature with an ed25519 private key.
func (t *TrustBank) Sign(params map[string]string, secret string) string {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil || len(key) != ed25519.PrivateKeySize {
		return ""
	}
	sig := ed25519.Sign(ed25519.PrivateKey(key), []byte(t.canonical(params)))
	return base64.StdEncoding.EncodeToString(sig)
}

// Verify checks the detached signature against the public key. An empty
// secret falls back to the configured key.
func (t *TrustBank) Verify(params map[string]string, secret string) bool {
	if requireFields(params, "txnId", "orderId", "amount", "status", "timestamp", "signature") != "" {
		return false
	}
	if secret == "" {
		secret = t.publicKey
	}
	pub, err := base64.StdEncoding.DecodeString(secret)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(params["signature"])
	if err != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), []byte(t.canonical(params)), sig)
}

func (t *TrustBank) Parse(params map[string]string) (*Notification, error) {
	if missing := requireFields(params, "txnId", "amount", "status"); missing != "" {
		return nil, fmt.Errorf("trustbank: %w", apperror.ErrMissingField(missing))
	}
	return &Notification{
		PlatformOrderID: params["txnId"],
		MerchantOrderID: params["orderId"],
		Amount:          params["amount"],
		StatusCode:      params["status"],
		Reference:       params["rrn"],
		Signature:       params["signature"],
		Params:          params,
	}, nil
}

func (t *TrustBank) MapStatus(code string) (domain.OrderStatus, bool) {
	switch strings.ToUpper(code) {
	case "SETTLED":
		return domain.OrderStatusSuccess, true
	case "RETURNED", "DEEMED":
		return domain.OrderStatusFailed, true
	default:
		return "", false
	}
}
