package tool

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/billetweb-booking/internal/model"
)

func testProfile() Profile {
	p := DefaultProfile()
	p.Facts = []string{"Un fait."}
	return p
}

func TestBuildLowStockSnapshot(t *testing.T) {
	t.Parallel()
	snap := model.Snapshot{
		Sessions: []model.AggregatedSession{{ID: "1", Start: "2026-04-24 20:00", Remaining: 5, Sold: 95, Quota: 100}},
		Tiers:    []model.TicketTier{{ID: "a", Name: "Adulte", Price: 18, Visibility: "0"}},
		Notices:  []string{"Attention : la séance du 2026-04-24 20:00 est presque complète (5 places restantes)."},
	}
	res := NewBuilder(testProfile()).Build(snap)

	assert.Equal(t, "ESPERANZA - Spectacle Musical par i-Majine", res.StructuredContent.Title)
	assert.Equal(t, []string{"2026-04-24 20:00"}, res.StructuredContent.Dates)
	assert.Equal(t, []string{"Adulte: 18€"}, res.StructuredContent.Pricing)
	assert.Equal(t, snap.Notices, res.StructuredContent.AvailabilityNotes)

	require.Len(t, res.Content, 1)
	text := res.Content[0].Text
	assert.Equal(t, "text", res.Content[0].Type)
	assert.True(t, strings.HasPrefix(text,
		"Esperanza — Spectacle Musical par i-Majine. 1 représentation le 24 avril 2026 à La Longère de Beaupuy, Mouilleron-le-Captif.\n"+
			"Tarifs : 18€ (Adulte).\n"+
			"Attention : la séance du 2026-04-24 20:00 est presque complète (5 places restantes).\n\n"), text)
	assert.Contains(t, text, "- Un fait.")
	assert.True(t, strings.HasSuffix(text, noRemainingTotals))

	assert.Equal(t, snap.Sessions, res.Meta.Sessions)
	assert.Equal(t, snap.Tiers, res.Meta.Tickets)
	assert.Equal(t, DefaultProfile().ShopBase, res.Meta.ShopBase)
	assert.Equal(t, DefaultProfile().CoverURL, res.Meta.CoverURL)
}

func TestBuildOmitsNoticesWhenNothingToReport(t *testing.T) {
	t.Parallel()
	snap := model.Snapshot{
		Sessions: []model.AggregatedSession{
			{ID: "1", Start: "2026-04-24 20:00", Remaining: 80},
			{ID: "2", Start: "2026-04-26 15:00", Remaining: 120},
		},
	}
	res := NewBuilder(testProfile()).Build(snap)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "availabilityNotes")
	assert.Contains(t, string(raw), `"tickets":[]`)
	assert.Contains(t, res.Content[0].Text, "2 représentations du 24 au 26 avril 2026")
	assert.Contains(t, res.Content[0].Text, "Tarifs : aucun tarif disponible pour le moment.")
}

func TestNarrativeNeverStatesRemainingTotals(t *testing.T) {
	t.Parallel()
	snap := model.Snapshot{
		Sessions: []model.AggregatedSession{{ID: "1", Start: "2026-04-24 20:00", Remaining: 437, Quota: 500}},
	}
	res := NewBuilder(testProfile()).Build(snap)
	assert.NotContains(t, res.Content[0].Text, "437")
	assert.NotContains(t, res.Content[0].Text, "500")
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "18", FormatPrice(18))
	assert.Equal(t, "12.5", FormatPrice(12.5))
	assert.Equal(t, "9.99", FormatPrice(9.99))
}

func TestBuyTicketsDescriptor(t *testing.T) {
	t.Parallel()
	d := BuyTicketsDescriptor(DefaultProfile())

	assert.Equal(t, BuyTicketsName, d.Name)
	assert.True(t, d.Annotations.ReadOnlyHint)
	assert.False(t, d.Annotations.DestructiveHint)
	assert.False(t, d.Annotations.OpenWorldHint)
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(d.InputSchema))
	require.NotNil(t, d.Meta)
	assert.Equal(t, []string{"https://www.billetweb.fr"}, d.Meta.UI.CSP.ConnectDomains)
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Register(Descriptor{Name: "b"}, nil)
	r.Register(Descriptor{Name: "a"}, nil)
	r.Register(Descriptor{Name: "b", Description: "second"}, nil)

	ds := r.Descriptors()
	require.Len(t, ds, 2)
	assert.Equal(t, "b", ds[0].Name)
	assert.Equal(t, "second", ds[0].Description)

	_, err := r.Lookup("missing")
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestProfileOverrides(t *testing.T) {
	t.Parallel()
	p := DefaultProfile().WithOverrides("Autre", "", "https://shop.test/?e=1", "")
	assert.Equal(t, "Autre", p.Title)
	assert.Equal(t, DefaultProfile().Venue, p.Venue)
	assert.Equal(t, "https://shop.test/?e=1", p.ShopBase)
}
