// Package filter narrows a canonical record set by optional predicates.
package filter

import (
	"strings"
	"time"

	"github.com/vsinha/reqrecon/pkg/domain/entities"
)

// isoDate is the layout planned dates are matched against
const isoDate = "2006-01-02"

// Options holds the optional predicates. Zero values and empty lists are
// ignored; every set option must hold for a record to be kept.
type Options struct {
	Date            *time.Time
	Hour            string
	Clients         []string
	ExcludedClients []string
	Departments     []string
	Sectors         []string
	IsNextDay       *bool
}

// IsEmpty reports whether no predicate is set
func (o Options) IsEmpty() bool {
	return o.Date == nil && o.Hour == "" &&
		len(o.Clients) == 0 && len(o.ExcludedClients) == 0 &&
		len(o.Departments) == 0 && len(o.Sectors) == 0 &&
		o.IsNextDay == nil
}

type predicate func(entities.CanonicalRecord) bool

func (o Options) predicates() []predicate {
	var preds []predicate

	if o.Date != nil {
		day := o.Date.Format(isoDate)
		preds = append(preds, func(r entities.CanonicalRecord) bool {
			return strings.Contains(r.PlannedDate, day)
		})
	}
	if o.Hour != "" {
		preds = append(preds, func(r entities.CanonicalRecord) bool {
			return strings.Contains(r.PlannedHour, o.Hour)
		})
	}
	if len(o.Clients) > 0 {
		allowed := toSet(o.Clients)
		preds = append(preds, func(r entities.CanonicalRecord) bool {
			return allowed[r.Client]
		})
	}
	if len(o.ExcludedClients) > 0 {
		denied := toSet(o.ExcludedClients)
		preds = append(preds, func(r entities.CanonicalRecord) bool {
			return !denied[r.Client]
		})
	}
	if len(o.Departments) > 0 {
		allowed := toSet(o.Departments)
		preds = append(preds, func(r entities.CanonicalRecord) bool {
			return allowed[r.Department]
		})
	}
	if len(o.Sectors) > 0 {
		allowed := toSet(o.Sectors)
		preds = append(preds, func(r entities.CanonicalRecord) bool {
			return allowed[r.Sector]
		})
	}
	if o.IsNextDay != nil {
		want := *o.IsNextDay
		preds = append(preds, func(r entities.CanonicalRecord) bool {
			return r.IsNextDay == want
		})
	}

	return preds
}

// Apply returns the records matching every set option, in their original
// order. The input slice is never modified.
func Apply(records []entities.CanonicalRecord, opts Options) []entities.CanonicalRecord {
	preds := opts.predicates()

	out := make([]entities.CanonicalRecord, 0, len(records))
	for _, r := range records {
		if matchesAll(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(r entities.CanonicalRecord, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
