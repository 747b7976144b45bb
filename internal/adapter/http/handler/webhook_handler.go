package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"

	"settlement-gateway/internal/core/ports"
	"settlement-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WebhookHandler terminates inbound channel callbacks. It normalizes the
// body into a flat parameter map and always answers the channel's ack
// token; processing outcome never leaks onto the wire.
type WebhookHandler struct {
	reconSvc ports.ReconciliationService
	log      zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(reconSvc ports.ReconciliationService, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{reconSvc: reconSvc, log: log}
}

// Payin handles POST /callback/:channel.
func (h *WebhookHandler) Payin(c *gin.Context) {
	params, raw := h.decode(c)
	ack := h.reconSvc.HandlePayinWebhook(c.Request.Context(), c.Param("channel"), params, raw)
	response.Ack(c, ack)
}

// Payout handles POST /callback/:channel/payout.
func (h *WebhookHandler) Payout(c *gin.Context) {
	params, raw := h.decode(c)
	ack := h.reconSvc.HandlePayoutWebhook(c.Request.Context(), c.Param("channel"), params, raw)
	response.Ack(c, ack)
}

// decode flattens the request into key -> value pairs. Channels post
// either form-urlencoded or JSON; query parameters are merged in last so
// a processor mixing both styles still resolves.
func (h *WebhookHandler) decode(c *gin.Context) (map[string]string, string) {
	params := make(map[string]string)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to read webhook body")
		body = nil
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	raw := string(body)

	contentType, _, _ := mime.ParseMediaType(c.ContentType())
	switch {
	case strings.Contains(contentType, "json"):
		var flat map[string]any
		if err := json.Unmarshal(body, &flat); err == nil {
			for k, v := range flat {
				params[k] = stringify(v)
			}
		} else {
			h.log.Warn().Err(err).Msg("unparseable webhook JSON body")
		}
	default:
		if values, err := url.ParseQuery(raw); err == nil {
			for k, vs := range values {
				if len(vs) > 0 {
					params[k] = vs[0]
				}
			}
		}
	}

	for k, vs := range c.Request.URL.Query() {
		if _, seen := params[k]; !seen && len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params, raw
}

// stringify renders a decoded JSON scalar the way it appeared on the wire.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case bool:
		return fmt.Sprintf("%t", t)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
