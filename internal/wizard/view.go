package wizard

import (
	"fmt"
	"strconv"

	"github.com/iliyamo/billetweb-booking/internal/model"
	"github.com/iliyamo/billetweb-booking/internal/tool"
	"github.com/iliyamo/billetweb-booking/internal/utils"
)

const (
	// LoadingLabel is shown until the host delivers tool data.
	LoadingLabel = "Chargement..."
	// CTALabel is the confirmation button that opens the checkout page.
	CTALabel     = "Réserver sur Billetweb"

	badgeSoldOut   = "Complet"
	badgeAvailable = "Disponible"
)

// Branding is the static presentation of the show on the intro screen.
type Branding struct {
	Title    string
	Subtitle string
	Venue    string
}

// BrandingFrom extracts the wizard branding from a tool profile.
func BrandingFrom(p tool.Profile) Branding {
	return Branding{Title: p.Name, Subtitle: p.Subtitle, Venue: p.Venue}
}

// View is a render-ready snapshot of the wizard.  Exactly one of Intro,
// Dates, Tiers and Summary is populated unless Loading is set.
type View struct {
	Loading  bool
	Step     Step
	Progress int // 1 to 3 once past the intro, 0 otherwise
	Intro    *IntroView
	Dates    []DateCard
	Tiers    []TierCard
	Summary  *SummaryView
}

// IntroView is the first screen: poster, show names and price tags.
type IntroView struct {
	CoverURL  string
	Title     string
	Subtitle  string
	Venue     string
	PriceTags []string
}

// DateCard is one session on the date selection screen.  Sold out
// sessions are Disabled and cannot be chosen.
type DateCard struct {
	ID       string
	Day      string // "Vendredi 24 avril"
	Time     string // "20h00"
	Badge    string
	Note     string
	Disabled bool
}

// TierCard is one ticket tier on the tier selection screen.
type TierCard struct {
	ID       string
	Name     string
	Price    string // "18€"
	Selected bool
}

// SummaryView recaps the chosen session and tier before the handoff.
type SummaryView struct {
	When     string // "Vendredi 24 avril à 20h00"
	Ticket   string // "Adulte — 18€"
	CTA      string
	Checkout string
}

// View builds the current view model.
func (w *Wizard) View() View {
	if w.Loading() {
		return View{Loading: true}
	}
	v := View{Step: w.sel.Step}
	switch w.sel.Step {
	case StepIntro:
		v.Intro = w.introView()
	case StepDateSelection:
		v.Progress = 1
		v.Dates = w.dateCards()
	case StepTierSelection:
		v.Progress = 2
		v.Tiers = w.tierCards()
	case StepConfirmation:
		v.Progress = 3
		v.Summary = w.summaryView()
	}
	return v
}

func (w *Wizard) introView() *IntroView {
	tags := make([]string, 0, len(w.meta.Tickets))
	for _, t := range w.meta.Tickets {
		tags = append(tags, t.Name+" "+priceLabel(t.Price))
	}
	return &IntroView{
		CoverURL:  w.meta.CoverURL,
		Title:     w.branding.Title,
		Subtitle:  w.branding.Subtitle,
		Venue:     w.branding.Venue,
		PriceTags: tags,
	}
}

func (w *Wizard) dateCards() []DateCard {
	cards := make([]DateCard, 0, len(w.meta.Sessions))
	for _, s := range w.meta.Sessions {
		day, at := startLabels(s.Start)
		cards = append(cards, DateCard{
			ID:       s.ID,
			Day:      day,
			Time:     at,
			Badge:    badge(s),
			Note:     s.Description,
			Disabled: s.SoldOut(),
		})
	}
	return cards
}

func (w *Wizard) tierCards() []TierCard {
	cards := make([]TierCard, 0, len(w.meta.Tickets))
	for _, t := range w.meta.Tickets {
		cards = append(cards, TierCard{
			ID:       t.ID,
			Name:     t.Name,
			Price:    priceLabel(t.Price),
			Selected: t.ID == w.sel.TicketID,
		})
	}
	return cards
}

func (w *Wizard) summaryView() *SummaryView {
	s, _ := w.session(w.sel.SessionID)
	t, _ := w.tier(w.sel.TicketID)
	day, at := startLabels(s.Start)
	u, _ := w.CheckoutURL()
	return &SummaryView{
		When:     day + " à " + at,
		Ticket:   t.Name + " — " + priceLabel(t.Price),
		CTA:      CTALabel,
		Checkout: u,
	}
}

func badge(s model.AggregatedSession) string {
	switch s.Status() {
	case model.StatusSoldOut:
		return badgeSoldOut
	case model.StatusLowStock:
		return strconv.Itoa(s.Remaining) + " places"
	default:
		return badgeAvailable
	}
}

// startLabels splits a session start into its French day and time labels.
// An unparseable start is shown verbatim as the day.
func startLabels(start string) (day, at string) {
	t, err := utils.ParseLocal(start)
	if err != nil {
		return start, ""
	}
	return utils.FrenchDay(t), utils.FrenchTime(t)
}

func priceLabel(p float64) string {
	return fmt.Sprintf("%s€", tool.FormatPrice(p))
}
