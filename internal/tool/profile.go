package tool

// Profile holds everything about the event that is presentation rather
// than availability: names, venue, conversational facts and URLs.
type Profile struct {
	Title       string   // structured title, e.g. "ESPERANZA - Spectacle Musical par i-Majine"
	Name        string   // short name used in the narrative and by the wizard
	Subtitle    string   // tagline under the name
	Venue       string   // venue line
	Description string   // tool description shown to the host's model
	Facts       []string // background facts, only to be used when the user asks
	ShopBase    string   // checkout URL the wizard appends "&session=" to
	CoverURL    string   // poster image
}

// DefaultProfile returns the profile of "Esperanza", the musical by
// i-Majine this service was built for.
func DefaultProfile() Profile {
	return Profile{
		Title:    "ESPERANZA - Spectacle Musical par i-Majine",
		Name:     "Esperanza",
		Subtitle: "Spectacle Musical par i-Majine",
		Venue:    "La Longère de Beaupuy, Mouilleron-le-Captif",
		Description: `Show ticket purchasing widget for "Esperanza", a musical by i-Majine in April 2026 at ` +
			`La Longère de Beaupuy, Mouilleron-le-Captif. Use when the user wants to see Esperanza, ` +
			`buy tickets for the show, or asks about the musical Esperanza.`,
		Facts: []string{
			"i-Majine est une association vendéenne de comédie musicale. Esperanza est le 6e spectacle de l'association.",
			"23 artistes vendéens et bénévoles chantent, dansent et jouent la comédie en live.",
			"L'équipe de bénévoles, la Dream Team, travaille à la confection des costumes et décors : tout est fait par l'association.",
			"Le spectacle est accessible aux PMR. Il suffit d'envoyer un mail à i-majine@live.fr pour valider la disponibilité des places PMR.",
			"Un tarif de groupe est accessible à partir de 12 personnes.",
			"Pour les entreprises, un tarif CSE est disponible sur simple demande.",
		},
		ShopBase: "https://www.billetweb.fr/shop.php?event=esperanza-spectacle-musical",
		CoverURL: "https://www.billetweb.fr/files/page/esperanza-spectacle-musical.png",
	}
}

// WithOverrides returns a copy of p where every non-empty argument replaces
// the matching field.
func (p Profile) WithOverrides(title, venue, shopBase, coverURL string) Profile {
	if title != "" {
		p.Title = title
	}
	if venue != "" {
		p.Venue = venue
	}
	if shopBase != "" {
		p.ShopBase = shopBase
	}
	if coverURL != "" {
		p.CoverURL = coverURL
	}
	return p
}
