// Package queue defines message payloads exchanged over the message broker.
package queue

// AlertQueueName is the durable queue availability alerts are published to.
const AlertQueueName = "availability.alerts"

// SessionAlert identifies one session that is low on seats or sold out.
type SessionAlert struct {
	SessionID string `json:"session_id"`
	Start     string `json:"start"`
	Remaining int    `json:"remaining"`
}

// AvailabilityAlertEvent is published after a tool invocation whose
// snapshot produced at least one notice.  It carries enough for a consumer
// to log or notify organisers without calling Billetweb again.
type AvailabilityAlertEvent struct {
	InvocationID string         `json:"invocation_id"`
	EventID      string         `json:"event_id"`
	LowStock     []SessionAlert `json:"low_stock"`
	SoldOut      []SessionAlert `json:"sold_out"`
	Notices      []string       `json:"notices"`
	GeneratedAt  string         `json:"generated_at"`
}
