package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the reconciliation counters. Unmatched and bad-signature
// deliveries share one wire ack but are counted apart: a spike in the first
// suggests an upstream id mix-up, a spike in the second a key rotation gone
// wrong.
type Metrics struct {
	WebhooksReceived  *prometheus.CounterVec
	WebhooksUnmatched *prometheus.CounterVec
	WebhooksBadSig    *prometheus.CounterVec
	WebhooksDuplicate *prometheus.CounterVec
	Settlements       *prometheus.CounterVec
	PayoutRefunds     *prometheus.CounterVec
	ForwardsFailed    *prometheus.CounterVec
	AutoSettles       *prometheus.CounterVec
}

// New registers all counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		WebhooksReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_webhooks_received_total",
			Help: "Inbound webhook deliveries by channel and kind.",
		}, []string{"channel", "kind"}),
		WebhooksUnmatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_webhooks_unmatched_total",
			Help: "Webhook deliveries that matched no known order.",
		}, []string{"channel", "kind"}),
		WebhooksBadSig: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_webhooks_bad_signature_total",
			Help: "Webhook deliveries that failed signature verification.",
		}, []string{"channel", "kind"}),
		WebhooksDuplicate: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_webhooks_duplicate_total",
			Help: "Webhook redeliveries suppressed as duplicates.",
		}, []string{"channel", "kind"}),
		Settlements: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_settlements_total",
			Help: "Committed terminal transitions by channel, kind and status.",
		}, []string{"channel", "kind", "status"}),
		PayoutRefunds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_payout_refunds_total",
			Help: "Failed-payout refunds credited back to merchants.",
		}, []string{"channel"}),
		ForwardsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_merchant_forwards_failed_total",
			Help: "Merchant notification deliveries that did not get a 2xx.",
		}, []string{"channel"}),
		AutoSettles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_auto_settles_total",
			Help: "Simulated settlements by outcome (settled or skipped).",
		}, []string{"channel", "outcome"}),
	}
}
