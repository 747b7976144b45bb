// Package upstream talks to the channel processors' order-creation APIs.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"settlement-gateway/internal/channel"
	"settlement-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// Client implements ports.UpstreamClient. Requests are form-encoded and
// signed with the channel's own scheme; responses are the processors'
// common JSON envelope.
type Client struct {
	http     *http.Client
	registry *channel.Registry
	log      zerolog.Logger
}

// NewClient creates an upstream client with a bounded per-call timeout.
func NewClient(timeout time.Duration, registry *channel.Registry, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		registry: registry,
		log:      log,
	}
}

type createEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		PlatformOrderID string            `json:"platformOrderId"`
		PayURL          string            `json:"payUrl"`
		DeepLinks       map[string]string `json:"deepLinks"`
	} `json:"data"`
}

// CreateOrder posts a signed creation request to the channel and returns the
// platform order id the webhook will later be matched on.
func (c *Client) CreateOrder(ctx context.Context, req ports.UpstreamCreateRequest) (*ports.UpstreamCreateResult, error) {
	ch, ok := c.registry.Get(req.Channel)
	if !ok {
		return nil, fmt.Errorf("unknown channel %q", req.Channel)
	}

	params := map[string]string{
		"orderId":   req.ExternalOrderID,
		"amount":    strconv.FormatFloat(req.Amount, 'f', 2, 64),
		"notifyUrl": req.NotifyURL,
	}
	if req.ReturnURL != "" {
		params["returnUrl"] = req.ReturnURL
	}
	params["sign"] = ch.Sign(params, req.Secret)

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.CreateURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call %s create: %w", req.Channel, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s create response: %w", req.Channel, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s create returned HTTP %d", req.Channel, resp.StatusCode)
	}

	var env createEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode %s create response: %w", req.Channel, err)
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("%s create rejected: code=%d message=%s", req.Channel, env.Code, env.Message)
	}
	if env.Data.PlatformOrderID == "" {
		return nil, fmt.Errorf("%s create response missing platform order id", req.Channel)
	}

	c.log.Debug().
		Str("channel", req.Channel).
		Str("order_id", req.ExternalOrderID).
		Str("platform_order_id", env.Data.PlatformOrderID).
		Msg("upstream order created")

	return &ports.UpstreamCreateResult{
		PlatformOrderID: env.Data.PlatformOrderID,
		PaymentURL:      env.Data.PayURL,
		DeepLinks:       env.Data.DeepLinks,
	}, nil
}
