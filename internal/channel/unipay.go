package channel

import (
	"crypto/md5" //nolint:gosec // upstream contract, not our choice
	"encoding/hex"
	"fmt"
	"strings"

	"settlement-gateway/internal/core/domain"

	"settlement-gateway/pkg/apperror"
)

// UniPay signs the sorted-parameter family: non-empty params sorted by key
// ascending, joined key=value&..., then &key=<secret> appended, MD5,
// transmitted uppercase. Comparison is case-insensitive.
type UniPay struct{}

// NewUniPay creates the unipay channel.
func NewUniPay() *UniPay { return &UniPay{} }

func (u *UniPay) Code() string { return CodeUniPay }

func (u *UniPay) Ack() string { return "OK" }

// Sign computes the sorted-parameter MD5 signature (uppercase).
func (u *UniPay) Sign(params map[string]string, secret string) string {
	canonical := sortedQuery(params, "sign") + "&key=" + secret
	sum := md5.Sum([]byte(canonical)) //nolint:gosec
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Verify rejects on missing required fields.
func (u *UniPay) Verify(params map[string]string, secret string) bool {
	if requireFields(params, "trade_no", "total_amount", "trade_status", "sign") != "" {
		return false
	}
	return strings.EqualFold(u.Sign(params, secret), params["sign"])
}

func (u *UniPay) Parse(params map[string]string) (*Notification, error) {
	if missing := requireFields(params, "trade_no", "total_amount", "trade_status"); missing != "" {
		return nil, fmt.Errorf("unipay: %w", apperror.ErrMissingField(missing))
	}
	return &Notification{
		PlatformOrderID: params["trade_no"],
		MerchantOrderID: params["out_trade_no"],
		Amount:          params["total_amount"],
		StatusCode:      params["trade_status"],
		Reference:       params["utr"],
		Signature:       params["sign"],
		Params:          params,
	}, nil
}

func (u *UniPay) MapStatus(code string) (domain.OrderStatus, bool) {
	switch code {
	case "TRADE_SUCCESS", "TRADE_FINISHED":
		return domain.OrderStatusSuccess, true
	case "TRADE_CLOSED", "TRADE_FAILED":
		return domain.OrderStatusFailed, true
	default:
		return "", false
	}
}
