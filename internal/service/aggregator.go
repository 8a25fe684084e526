package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/billetweb-booking/internal/model"
)

// MalformedRecordError reports a numeric field that Billetweb sent as a
// non-integer string.
type MalformedRecordError struct {
	Resource string
	ID       string
	Field    string
	Value    string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("billetweb %s: record %q: field %s: invalid integer %q", e.Resource, e.ID, e.Field, e.Value)
}

// Aggregate merges the three Billetweb feeds into one Snapshot.  It is a
// pure function of its inputs.
//
// Tiers keep only public, paid entries sorted by descending price (ties keep
// feed order).  Sessions keep feed order and are left-joined with their
// counter; a session without a counter gets remaining=0 and sold=0 and is
// therefore reported sold out.  Counters without a session are ignored and
// never parsed.
func Aggregate(sessions []model.Session, tiers []model.TicketTier, counters []model.AvailabilityCounter) (model.Snapshot, error) {
	byID := make(map[string]model.AvailabilityCounter, len(counters))
	for _, c := range counters {
		if _, dup := byID[c.ID]; !dup {
			byID[c.ID] = c
		}
	}

	merged := make([]model.AggregatedSession, 0, len(sessions))
	for _, s := range sessions {
		quota, err := parseCount("dates", s.ID, "quota", s.Quota)
		if err != nil {
			return model.Snapshot{}, err
		}
		// a session the feed has no counter for keeps zero remaining and sold
		var remaining, sold int
		if c, ok := byID[s.ID]; ok {
			if remaining, err = parseCount("avail", c.ID, "avail", c.Avail); err != nil {
				return model.Snapshot{}, err
			}
			if sold, err = parseCount("avail", c.ID, "sales", c.Sales); err != nil {
				return model.Snapshot{}, err
			}
		}
		merged = append(merged, model.AggregatedSession{
			ID:          s.ID,
			Start:       s.Start,
			Description: s.Description,
			Remaining:   remaining,
			Sold:        sold,
			Quota:       quota,
		})
	}

	return model.Snapshot{
		Sessions: merged,
		Tiers:    PublicTiers(tiers),
		Notices:  Notices(merged),
	}, nil
}

// PublicTiers returns the purchasable tiers sorted by descending price.
// The input slice is not modified.
func PublicTiers(tiers []model.TicketTier) []model.TicketTier {
	out := make([]model.TicketTier, 0, len(tiers))
	for _, t := range tiers {
		if t.Purchasable() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	return out
}

// Notices builds the French availability warnings: every low-stock session
// first, then every sold-out session, each group in session order.  It
// returns nil when there is nothing to report.
func Notices(sessions []model.AggregatedSession) []string {
	var low, soldOut []string
	for _, s := range sessions {
		switch s.Status() {
		case model.StatusLowStock:
			low = append(low, fmt.Sprintf(
				"Attention : la séance du %s est presque complète (%d places restantes).", s.Start, s.Remaining))
		case model.StatusSoldOut:
			soldOut = append(soldOut, fmt.Sprintf("La séance du %s est complète.", s.Start))
		}
	}
	if len(low)+len(soldOut) == 0 {
		return nil
	}
	return append(low, soldOut...)
}

// parseCount reads one of Billetweb's numeric strings.  Empty means zero.
func parseCount(resource, id, field, raw string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &MalformedRecordError{Resource: resource, ID: id, Field: field, Value: raw}
	}
	return n, nil
}
