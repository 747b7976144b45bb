// Package channel models each external payment processor as a small
// capability: parse its webhook, verify and produce its signature, and map
// its status codes onto the canonical order lifecycle. Canonicalization
// rules are pinned per channel and treated as external contracts.
package channel

import (
	"sort"
	"strings"

	"settlement-gateway/internal/core/domain"
)

// Channel codes known to the gateway.
const (
	CodeSwiftPay  = "swiftpay"
	CodeUniPay    = "unipay"
	CodeSoftPay   = "softpay"
	CodeTrustBank = "trustbank"
)

// Notification is the normalized content of an inbound webhook.
type Notification struct {
	PlatformOrderID string
	MerchantOrderID string
	Amount          string // raw amount text as transmitted
	StatusCode      string // channel-specific, see MapStatus
	Reference       string // UTR / settlement reference
	Signature       string
	Params          map[string]string
}

// Channel is the per-processor capability selected by channel tag.
type Channel interface {
	Code() string
	// Ack is the literal acknowledgement token the upstream requires,
	// returned with 2xx regardless of internal outcome.
	Ack() string
	// Verify checks the webhook signature. Missing required fields reject.
	Verify(params map[string]string, secret string) bool
	// Sign produces the channel's signature over params (used by tests and
	// by the sandbox responder).
	Sign(params map[string]string, secret string) string
	// Parse extracts the normalized notification, or an error naming the
	// missing field.
	Parse(params map[string]string) (*Notification, error)
	// MapStatus translates the channel status code onto the canonical enum.
	// ok is false for codes that must not trigger any transition.
	MapStatus(code string) (status domain.OrderStatus, ok bool)
}

// Registry resolves channels by code.
type Registry struct {
	channels map[string]Channel
}

// NewRegistry builds a registry from the given channels.
func NewRegistry(channels ...Channel) *Registry {
	m := make(map[string]Channel, len(channels))
	for _, ch := range channels {
		m[ch.Code()] = ch
	}
	return &Registry{channels: m}
}

// Defaults returns a registry with every built-in channel.
// trustPublicKey/trustPrivateKey are the base64 ed25519 keys for trustbank;
// an empty public key leaves trustbank unregistered.
func Defaults(trustPublicKey string) *Registry {
	chs := []Channel{
		NewSwiftPay(),
		NewUniPay(),
		NewSoftPay(),
	}
	if trustPublicKey != "" {
		chs = append(chs, NewTrustBank(trustPublicKey))
	}
	return NewRegistry(chs...)
}

// Get returns the channel registered under code.
func (r *Registry) Get(code string) (Channel, bool) {
	ch, ok := r.channels[strings.ToLower(code)]
	return ch, ok
}

// Codes lists registered channel codes.
func (r *Registry) Codes() []string {
	out := make([]string, 0, len(r.channels))
	for code := range r.channels {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// sortedQuery joins non-empty params (minus the signature field) sorted by
// key ascending as key=value&..., the canonical form shared by the
// sorted-parameter signature family.
func sortedQuery(params map[string]string, signatureField string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == signatureField || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

// requireFields returns the first missing field name, or "".
func requireFields(params map[string]string, fields ...string) string {
	for _, f := range fields {
		if params[f] == "" {
			return f
		}
	}
	return ""
}
