package model

// Session is one scheduled performance as returned by the Billetweb
// /event/{id}/dates endpoint.  Billetweb encodes every field as a string,
// including the numeric ones, so parsing is left to the aggregator.
//
// Fields:
//  ID          – opaque session identifier, unique within the event.
//  Start       – local start datetime ("2006-01-02 15:04" or with seconds).
//  End         – local end datetime.
//  Description – optional free text shown next to the date.
//  Quota       – capacity of the session (numeric string).
//  TotalSales  – tickets sold according to the dates feed (numeric string).
type Session struct {
	ID          string `json:"id"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
	Quota       string `json:"quota"`
	TotalSales  string `json:"total_sales"`
}

// LowAvailabilityThreshold is the inclusive upper bound of remaining seats
// for which a session is reported as running low.
const LowAvailabilityThreshold = 30

// Status is the availability state derived from a session's remaining
// seats.  It is never stored; call AggregatedSession.Status to compute it.
type Status string

const (
	StatusSoldOut   Status = "sold_out"
	StatusLowStock  Status = "low_stock"
	StatusAvailable Status = "available"
)

// StatusOf maps a remaining seat count to its Status.
func StatusOf(remaining int) Status {
	switch {
	case remaining <= 0:
		return StatusSoldOut
	case remaining <= LowAvailabilityThreshold:
		return StatusLowStock
	default:
		return StatusAvailable
	}
}

// AggregatedSession is a Session joined with its AvailabilityCounter.  It is
// the shape handed to the booking wizard through the tool metadata.
type AggregatedSession struct {
	ID          string `json:"id"`
	Start       string `json:"start"`
	Description string `json:"description"`
	Remaining   int    `json:"remaining"`
	Sold        int    `json:"sold"`
	Quota       int    `json:"quota"`
}

// Status reports the session's availability state.
func (s AggregatedSession) Status() Status {
	return StatusOf(s.Remaining)
}

// SoldOut reports whether no seat is left for the session.
func (s AggregatedSession) SoldOut() bool {
	return s.Status() == StatusSoldOut
}
