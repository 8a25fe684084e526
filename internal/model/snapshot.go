package model

// Snapshot is the merged view of one event produced on every invocation.
// Notices is nil when no session is low on seats or sold out.
type Snapshot struct {
	Sessions []AggregatedSession
	Tiers    []TicketTier
	Notices  []string
}
