package model

// AvailabilityCounter carries the per-session sales state returned by
// /event/{id}/avail.  ID references Session.ID but nothing guarantees a
// matching session exists.  Avail may be zero or negative when a session
// is oversold.
type AvailabilityCounter struct {
	ID    string `json:"id"`
	Avail string `json:"avail"`
	Sales string `json:"sales"`
}
