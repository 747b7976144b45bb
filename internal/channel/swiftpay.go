package channel

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"settlement-gateway/internal/core/domain"

	"settlement-gateway/pkg/apperror"
)

// SwiftPay signs with a fixed ordered field concatenation:
// SHA-256(orderId + amount + status + secret), lowercase hex. Hex case on
// the wire is unspecified, so comparison is case-insensitive.
type SwiftPay struct{}

// NewSwiftPay creates the swiftpay channel.
func NewSwiftPay() *SwiftPay { return &SwiftPay{} }

func (s *SwiftPay) Code() string { return CodeSwiftPay }

func (s *SwiftPay) Ack() string { return "success" }

// Sign computes the fixed-order concatenation signature.
func (s *SwiftPay) Sign(params map[string]string, secret string) string {
	payload := params["orderId"] + params["amount"] + params["status"] + secret
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Verify rejects on any missing signed field.
func (s *SwiftPay) Verify(params map[string]string, secret string) bool {
	if requireFields(params, "orderId", "amount", "status", "sign") != "" {
		return false
	}
	expected := s.Sign(params, secret)
	received := strings.ToLower(params["sign"])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}

func (s *SwiftPay) Parse(params map[string]string) (*Notification, error) {
	if missing := requireFields(params, "orderId", "amount", "status"); missing != "" {
		return nil, fmt.Errorf("swiftpay: %w", apperror.ErrMissingField(missing))
	}
	return &Notification{
		PlatformOrderID: params["orderId"],
		MerchantOrderID: params["merchantOrderId"],
		Amount:          params["amount"],
		StatusCode:      params["status"],
		Reference:       params["utr"],
		Signature:       params["sign"],
		Params:          params,
	}, nil
}

// MapStatus: 1 = settled, 2/3 = failed or expired; anything else is ignored.
func (s *SwiftPay) MapStatus(code string) (domain.OrderStatus, bool) {
	switch code {
	case "1":
		return domain.OrderStatusSuccess, true
	case "2", "3":
		return domain.OrderStatusFailed, true
	default:
		return "", false
	}
}
