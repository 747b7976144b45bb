package channel

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"settlement-gateway/internal/core/domain"

	"settlement-gateway/pkg/apperror"
)

// SoftPay is the soft channel: orders against it may be promoted by the
// simulated-settlement worker. Its signature is HMAC-SHA256 over the
// sorted-parameter canonical string, lowercase hex.
type SoftPay struct{}

// NewSoftPay creates the softpay channel.
func NewSoftPay() *SoftPay { return &SoftPay{} }

func (s *SoftPay) Code() string { return CodeSoftPay }

func (s *SoftPay) Ack() string { return "SUCCESS" }

// Sign computes HMAC-SHA256 over the sorted canonical string.
func (s *SoftPay) Sign(params map[string]string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sortedQuery(params, "sign")))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify rejects on missing required fields; hex case-insensitive.
func (s *SoftPay) Verify(params map[string]string, secret string) bool {
	if requireFields(params, "order_no", "amount", "status", "sign") != "" {
		return false
	}
	expected := s.Sign(params, secret)
	received := strings.ToLower(params["sign"])
	return hmac.Equal([]byte(expected), []byte(received))
}

func (s *SoftPay) Parse(params map[string]string) (*Notification, error) {
	if missing := requireFields(params, "order_no", "amount", "status"); missing != "" {
		return nil, fmt.Errorf("softpay: %w", apperror.ErrMissingField(missing))
	}
	return &Notification{
		PlatformOrderID: params["order_no"],
		MerchantOrderID: params["mch_order_no"],
		Amount:          params["amount"],
		StatusCode:      params["status"],
		Reference:       params["utr"],
		Signature:       params["sign"],
		Params:          params,
	}, nil
}

func (s *SoftPay) MapStatus(code string) (domain.OrderStatus, bool) {
	switch strings.ToUpper(code) {
	case "PAID":
		return domain.OrderStatusSuccess, true
	case "FAILED", "EXPIRED":
		return domain.OrderStatusFailed, true
	default:
		return "", false
	}
}
