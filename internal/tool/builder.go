package tool

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/iliyamo/billetweb-booking/internal/model"
	"github.com/iliyamo/billetweb-booking/internal/utils"
)

// BuyTicketsName is the name the tool is registered under.
const BuyTicketsName = "buy-tickets"

const noRemainingTotals = "Ne mentionne pas le nombre total de places restantes sauf si l'utilisateur le demande explicitement."

// Builder turns an aggregated Snapshot into the tool Result.  It only
// formats; it never fetches or recomputes availability.
type Builder struct {
	Profile Profile
}

// NewBuilder returns a Builder for p.
func NewBuilder(p Profile) *Builder {
	return &Builder{Profile: p}
}

// Build packages snap into the three parallel representations.
func (b *Builder) Build(snap model.Snapshot) Result {
	dates := make([]string, 0, len(snap.Sessions))
	for _, s := range snap.Sessions {
		dates = append(dates, s.Start)
	}
	pricing := make([]string, 0, len(snap.Tiers))
	for _, t := range snap.Tiers {
		pricing = append(pricing, fmt.Sprintf("%s: %s€", t.Name, FormatPrice(t.Price)))
	}

	sessions := snap.Sessions
	if sessions == nil {
		sessions = []model.AggregatedSession{}
	}
	tiers := snap.Tiers
	if tiers == nil {
		tiers = []model.TicketTier{}
	}

	return Result{
		StructuredContent: Summary{
			Title:             b.Profile.Title,
			Venue:             b.Profile.Venue,
			Dates:             dates,
			Pricing:           pricing,
			AvailabilityNotes: snap.Notices,
		},
		Content: []Content{{Type: "text", Text: b.narrative(snap)}},
		Meta: Meta{
			Sessions: sessions,
			Tickets:  tiers,
			ShopBase: b.Profile.ShopBase,
			CoverURL: b.Profile.CoverURL,
		},
	}
}

// narrative is the conversational paragraph.  Remaining seat counts only
// appear through the notices.
func (b *Builder) narrative(snap model.Snapshot) string {
	p := b.Profile
	lines := []string{headline(p, snap.Sessions), pricingSentence(snap.Tiers)}
	lines = append(lines, snap.Notices...)
	lines = append(lines, "", "Informations complémentaires à utiliser UNIQUEMENT si l'utilisateur pose des questions :")
	for _, f := range p.Facts {
		lines = append(lines, "- "+f)
	}
	lines = append(lines, "- "+noRemainingTotals)
	return strings.Join(lines, "\n")
}

func headline(p Profile, sessions []model.AggregatedSession) string {
	name := p.Name
	if p.Subtitle != "" {
		name += " — " + p.Subtitle
	}
	switch len(sessions) {
	case 0:
		return fmt.Sprintf("%s. Aucune représentation programmée pour le moment.", name)
	case 1:
		return fmt.Sprintf("%s. 1 représentation%s à %s.", name, span(sessions), p.Venue)
	default:
		return fmt.Sprintf("%s. %d représentations%s à %s.", name, len(sessions), span(sessions), p.Venue)
	}
}

// span renders the date range of the sessions, or nothing when a start
// date cannot be parsed.
func span(sessions []model.AggregatedSession) string {
	first, err := utils.ParseLocal(sessions[0].Start)
	if err != nil {
		return ""
	}
	last := first
	for _, s := range sessions[1:] {
		t, err := utils.ParseLocal(s.Start)
		if err != nil {
			return ""
		}
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}
	return " " + utils.FrenchDateRange(first, last)
}

func pricingSentence(tiers []model.TicketTier) string {
	if len(tiers) == 0 {
		return "Tarifs : aucun tarif disponible pour le moment."
	}
	parts := make([]string, 0, len(tiers))
	for _, t := range tiers {
		parts = append(parts, fmt.Sprintf("%s€ (%s)", FormatPrice(t.Price), t.Name))
	}
	return "Tarifs : " + strings.Join(parts, ", ") + "."
}

// FormatPrice renders a euro amount without trailing zeros: 18 -> "18",
// 12.5 -> "12.5".
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// BuyTicketsDescriptor declares the buy-tickets tool: no input, read-only,
// non-destructive and closed-world.  The UI may only talk to the shop's
// origin.
func BuyTicketsDescriptor(p Profile) Descriptor {
	d := Descriptor{
		Name:        BuyTicketsName,
		Title:       "Buy tickets for " + p.Name,
		Description: p.Description,
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
		Annotations: Annotations{ReadOnlyHint: true, DestructiveHint: false, OpenWorldHint: false},
	}
	if origin := originOf(p.ShopBase); origin != "" {
		domains := []string{origin}
		d.Meta = &DescriptorMeta{UI: UIMeta{CSP: CSP{
			ConnectDomains:  domains,
			ResourceDomains: domains,
			RedirectDomains: domains,
		}}}
	}
	return d
}

func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
