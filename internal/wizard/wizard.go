// Package wizard implements the booking flow shown inside the host's UI
// fragment: intro, date selection, tier selection and confirmation, ending
// with a handoff to the Billetweb checkout page.
//
// A Wizard is plain local state driven by discrete user actions.  It is not
// safe for concurrent use; the host owns one instance per mounted widget and
// drops it on unmount.
package wizard

import (
	"context"
	"errors"

	"github.com/iliyamo/billetweb-booking/internal/model"
	"github.com/iliyamo/billetweb-booking/internal/tool"
)

// Step is the wizard's position in the booking flow.
type Step int

const (
	StepIntro Step = iota
	StepDateSelection
	StepTierSelection
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepIntro:
		return "intro"
	case StepDateSelection:
		return "date_selection"
	case StepTierSelection:
		return "tier_selection"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

var (
	ErrNotReady       = errors.New("booking data not loaded")
	ErrWrongStep      = errors.New("action not available at this step")
	ErrUnknownSession = errors.New("unknown session")
	ErrSessionSoldOut = errors.New("session is sold out")
	ErrUnknownTier    = errors.New("unknown ticket tier")
)

// Opener opens an external URL on behalf of the widget.  The host runtime
// provides it.
type Opener interface {
	OpenExternal(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) OpenExternal(ctx context.Context, url string) error { return f(ctx, url) }

// Selection is the transient booking state.  Empty IDs mean "not chosen".
type Selection struct {
	Step      Step
	SessionID string
	TicketID  string
}

// Wizard walks a user from the intro screen to the checkout handoff.
type Wizard struct {
	branding Branding
	meta     *tool.Meta
	sel      Selection
}

// New returns a wizard in the loading state.
func New(b Branding) *Wizard {
	return &Wizard{branding: b}
}

// Loading reports whether the host has not delivered data yet.
func (w *Wizard) Loading() bool {
	return w.meta == nil
}

// Selection returns a copy of the current selection.
func (w *Wizard) Selection() Selection {
	return w.sel
}

// Load hands the tool metadata to the wizard.  A nil meta (pending call or
// failed call) keeps or puts the wizard in the loading state.  Reloading
// keeps the current selection only while it still resolves against the new
// data: a session that vanished or sold out sends the user back to date
// selection, a vanished tier back to tier selection.
func (w *Wizard) Load(meta *tool.Meta) {
	w.meta = meta
	if meta == nil {
		return
	}
	if w.sel.SessionID != "" {
		s, ok := w.session(w.sel.SessionID)
		if !ok || s.SoldOut() {
			w.sel = Selection{Step: StepDateSelection}
			return
		}
	}
	if w.sel.TicketID != "" {
		if _, ok := w.tier(w.sel.TicketID); !ok {
			w.sel.TicketID = ""
			w.sel.Step = StepTierSelection
		}
	}
}

// Start leaves the intro screen.
func (w *Wizard) Start() error {
	if err := w.at(StepIntro); err != nil {
		return err
	}
	w.sel.Step = StepDateSelection
	return nil
}

// SelectSession picks a performance and moves on to tier selection.  Sold
// out sessions are refused and leave the wizard untouched.
func (w *Wizard) SelectSession(id string) error {
	if err := w.at(StepDateSelection); err != nil {
		return err
	}
	s, ok := w.session(id)
	if !ok {
		return ErrUnknownSession
	}
	if s.SoldOut() {
		return ErrSessionSoldOut
	}
	w.sel.SessionID = id
	w.sel.Step = StepTierSelection
	return nil
}

// SelectTier picks a ticket tier and moves on to confirmation.  Tiers are
// not quota-limited, so any listed tier is accepted.
func (w *Wizard) SelectTier(id string) error {
	if err := w.at(StepTierSelection); err != nil {
		return err
	}
	if _, ok := w.tier(id); !ok {
		return ErrUnknownTier
	}
	w.sel.TicketID = id
	w.sel.Step = StepConfirmation
	return nil
}

// Back returns to the previous step, clearing only the choice made at the
// step being left.
func (w *Wizard) Back() error {
	if w.Loading() {
		return ErrNotReady
	}
	switch w.sel.Step {
	case StepDateSelection:
		w.sel.Step = StepIntro
	case StepTierSelection:
		w.sel.SessionID = ""
		w.sel.Step = StepDateSelection
	case StepConfirmation:
		w.sel.TicketID = ""
		w.sel.Step = StepTierSelection
	default:
		return ErrWrongStep
	}
	return nil
}

// CheckoutURL is the Billetweb checkout link for the chosen session.  The
// tier is picked again on Billetweb's side and is not part of the URL.
func (w *Wizard) CheckoutURL() (string, error) {
	if err := w.at(StepConfirmation); err != nil {
		return "", err
	}
	return w.meta.ShopBase + "&session=" + w.sel.SessionID, nil
}

// Handoff opens the checkout page through the host.  The wizard keeps its
// state; nothing is tracked after the handoff.
func (w *Wizard) Handoff(ctx context.Context, o Opener) error {
	u, err := w.CheckoutURL()
	if err != nil {
		return err
	}
	return o.OpenExternal(ctx, u)
}

func (w *Wizard) at(step Step) error {
	if w.Loading() {
		return ErrNotReady
	}
	if w.sel.Step != step {
		return ErrWrongStep
	}
	return nil
}

func (w *Wizard) session(id string) (model.AggregatedSession, bool) {
	for _, s := range w.meta.Sessions {
		if s.ID == id {
			return s, true
		}
	}
	return model.AggregatedSession{}, false
}

func (w *Wizard) tier(id string) (model.TicketTier, bool) {
	for _, t := range w.meta.Tickets {
		if t.ID == id {
			return t, true
		}
	}
	return model.TicketTier{}, false
}
