package model

// VisibilityPublic is the Billetweb visibility value of tiers offered to
// the public.  Any other value marks a hidden or internal tier.
const VisibilityPublic = "0"

// TicketTier is a purchasable price category from /event/{id}/tickets.
// Price is expressed in euros and arrives as a JSON number.
type TicketTier struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Visibility string  `json:"visibility,omitempty"`
}

// Purchasable reports whether the tier may be offered to an end user:
// it must be public and not free.
func (t TicketTier) Purchasable() bool {
	return t.Visibility == VisibilityPublic && t.Price > 0
}
