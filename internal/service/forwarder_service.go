package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"settlement-gateway/internal/channel"
	"settlement-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// ForwarderServiceImpl implements ports.ForwarderService. It re-signs the
// settlement outcome with the merchant's own secret and POSTs it once. No
// retries: the merchant can always poll the order.
type ForwarderServiceImpl struct {
	merchantRepo ports.MerchantRepository
	signer       *channel.MerchantSigner
	http         *http.Client
	log          zerolog.Logger
}

// NewForwarderService creates a new ForwarderServiceImpl with a bounded
// delivery timeout.
func NewForwarderService(merchantRepo ports.MerchantRepository, timeout time.Duration, log zerolog.Logger) *ForwarderServiceImpl {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ForwarderServiceImpl{
		merchantRepo: merchantRepo,
		signer:       channel.NewMerchantSigner(),
		http:         &http.Client{Timeout: timeout},
		log:          log,
	}
}

// Forward builds, signs and POSTs the merchant notification.
func (s *ForwarderServiceImpl) Forward(ctx context.Context, n ports.MerchantNotification) error {
	merchant, err := s.merchantRepo.GetByID(ctx, n.MerchantID)
	if err != nil {
		return fmt.Errorf("load merchant: %w", err)
	}
	if merchant == nil {
		return fmt.Errorf("merchant not found: %s", n.MerchantID)
	}

	target := n.OverrideURL
	if target == "" {
		target = merchant.CallbackURL
	}
	if target == "" {
		s.log.Debug().Str("order_id", n.OrderID).Msg("no callback target, skipping forward")
		return nil
	}

	status := "0"
	if n.Success {
		status = "1"
	}
	body := map[string]string{
		"status":  status,
		"amount":  strconv.FormatFloat(n.Amount, 'f', 2, 64),
		"orderId": n.OrderID,
		"id":      n.ID.String(),
		"utr":     n.Reference,
		"param":   n.Param,
	}
	body["sign"] = s.signer.Sign(body, merchant.SecretKey)

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("merchant endpoint returned HTTP %d", resp.StatusCode)
	}

	s.log.Info().
		Str("order_id", n.OrderID).
		Str("target", target).
		Bool("success", n.Success).
		Msg("merchant notified")
	return nil
}
