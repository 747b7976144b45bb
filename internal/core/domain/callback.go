package domain

import (
	"time"

	"github.com/google/uuid"
)

// CallbackKind distinguishes pay-in from payout webhooks in the audit log.
type CallbackKind string

const (
	CallbackKindPayin  CallbackKind = "PAYIN"
	CallbackKindPayout CallbackKind = "PAYOUT"
)

// CallbackOutcome tags what the engine did with an inbound webhook. The wire
// response is the same ack either way; the outcome exists so log review and
// metrics can tell the failure causes apart.
type CallbackOutcome string

const (
	CallbackOutcomeSettled      CallbackOutcome = "SETTLED"
	CallbackOutcomeFailed       CallbackOutcome = "FAILED"
	CallbackOutcomeDuplicate    CallbackOutcome = "DUPLICATE"
	CallbackOutcomeUnmatched    CallbackOutcome = "UNMATCHED"
	CallbackOutcomeIgnored      CallbackOutcome = "IGNORED" // non-transition status code
	CallbackOutcomeBadSignature CallbackOutcome = "BAD_SIGNATURE"
	CallbackOutcomeError        CallbackOutcome = "ERROR"
)

// CallbackLog is an append-only audit record of every inbound webhook,
// written unconditionally before any matching or verification.
type CallbackLog struct {
	ID         uuid.UUID       `json:"id"`
	Channel    string          `json:"channel"`
	Kind       CallbackKind    `json:"kind"`
	OrderRef   string          `json:"order_ref,omitempty"` // platform or merchant order id, if any
	RawBody    string          `json:"raw_body"`
	Outcome    CallbackOutcome `json:"outcome"`
	ReceivedAt time.Time       `json:"received_at"`
}
