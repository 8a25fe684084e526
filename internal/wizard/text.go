package wizard

import (
	"fmt"
	"io"
	"strings"
)

// Render writes v as plain text for terminal hosts.  Selectable entries are
// numbered from 1; disabled dates keep their number but are marked.
func Render(out io.Writer, v View) error {
	var b strings.Builder
	switch {
	case v.Loading:
		b.WriteString(LoadingLabel + "\n")
	case v.Intro != nil:
		in := v.Intro
		fmt.Fprintf(&b, "%s\n", in.Title)
		if in.Subtitle != "" {
			fmt.Fprintf(&b, "%s\n", in.Subtitle)
		}
		if in.Venue != "" {
			fmt.Fprintf(&b, "%s\n", in.Venue)
		}
		if len(in.PriceTags) > 0 {
			fmt.Fprintf(&b, "Tarifs : %s\n", strings.Join(in.PriceTags, " · "))
		}
		b.WriteString("\n[n] Choisir une date\n")
	case v.Summary != nil:
		progress(&b, v.Progress)
		fmt.Fprintf(&b, "%s\n%s\n\n[o] %s\n[b] Retour\n", v.Summary.When, v.Summary.Ticket, v.Summary.CTA)
	case v.Step == StepDateSelection:
		progress(&b, v.Progress)
		b.WriteString("Choisissez une date\n")
		for i, d := range v.Dates {
			mark := " "
			if d.Disabled {
				mark = "x"
			}
			fmt.Fprintf(&b, "%s %d. %s, %s  [%s]\n", mark, i+1, d.Day, d.Time, d.Badge)
			if d.Note != "" {
				fmt.Fprintf(&b, "     %s\n", d.Note)
			}
		}
		b.WriteString("[b] Retour\n")
	case v.Step == StepTierSelection:
		progress(&b, v.Progress)
		b.WriteString("Choisissez un tarif\n")
		for i, t := range v.Tiers {
			fmt.Fprintf(&b, "  %d. %s  %s\n", i+1, t.Name, t.Price)
		}
		b.WriteString("[b] Retour\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func progress(b *strings.Builder, n int) {
	dots := make([]string, 3)
	for i := range dots {
		dots[i] = "○"
		if i < n {
			dots[i] = "●"
		}
	}
	fmt.Fprintf(b, "%s\n", strings.Join(dots, " "))
}
