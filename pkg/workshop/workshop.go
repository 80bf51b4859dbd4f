// pkg/workshop/workshop.go
package workshop

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/dates"
	"github.com/jmunguiamm/integridad-informacion/pkg/model"
	"github.com/jmunguiamm/integridad-informacion/pkg/schema"
)

// Descriptor identifies one concrete workshop run derived from the
// implementation form. Several runs can share a calendar date; the code
// disambiguates them by submission order within the day.
type Descriptor struct {
	Date  string // canonical YYYY-MM-DD key
	Code  string // {day}{month}{2-digit-year}{sequence}, no padding on day/month/seq
	Label string // human-readable selector label
}

// Resolver derives workshop descriptors from the implementation form
type Resolver struct {
	schema *schema.Resolver
	logger *zap.Logger
}

// NewResolver creates a workshop resolver
func NewResolver(sr *schema.Resolver, logger *zap.Logger) *Resolver {
	return &Resolver{schema: sr, logger: logger}
}

var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// Descriptors lists every workshop run recorded in the implementation form,
// most recent date first. Rows whose date cell is blank or unparseable are
// skipped; an implementation form with no usable date column yields an empty
// list rather than an error, because workshop selection is optional.
func (r *Resolver) Descriptors(form0 *model.Table) []Descriptor {
	if form0 == nil || form0.IsEmpty() {
		return nil
	}

	dateCol := r.implementationDateColumn(form0)
	if dateCol == "" {
		if r.logger != nil {
			r.logger.Warn("No workshop date column in implementation form")
		}
		return nil
	}

	type entry struct {
		key   string
		at    time.Time
		order int
	}
	var entries []entry
	for i, row := range form0.Rows {
		nd := dates.Normalize(row.Get(dateCol))
		if nd.Status != model.DateParsed {
			continue
		}
		at, ok := dates.ParseTimestamp(row.Get(dateCol))
		if !ok {
			continue
		}
		entries = append(entries, entry{key: nd.Key, at: at, order: i})
	}

	// Sequence numbers follow submission order within each date.
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].at.Equal(entries[j].at) {
			return entries[i].at.Before(entries[j].at)
		}
		return entries[i].order < entries[j].order
	})

	seqByDate := map[string]int{}
	descriptors := make([]Descriptor, 0, len(entries))
	for _, e := range entries {
		seqByDate[e.key]++
		descriptors = append(descriptors, descriptorFor(e.at, seqByDate[e.key]))
	}

	// Present the most recent date first, earliest run first within a date.
	sort.SliceStable(descriptors, func(i, j int) bool {
		if descriptors[i].Date != descriptors[j].Date {
			return descriptors[i].Date > descriptors[j].Date
		}
		return descriptors[i].Code < descriptors[j].Code
	})
	return descriptors
}

// implementationDateColumn prefers the explicit "Fecha de implementación"
// column over the generic timestamp resolution, which would otherwise pick
// the form's own submission timestamp.
func (r *Resolver) implementationDateColumn(form0 *model.Table) string {
	for _, col := range form0.Columns {
		if schema.Slug(col) == "fecha de implementacion" {
			return col
		}
	}
	if ts := r.schema.Timestamp(form0); ts.Found() && !ts.Degraded {
		return ts.Name
	}
	return ""
}

func descriptorFor(at time.Time, seq int) Descriptor {
	code := fmt.Sprintf("%d%d%02d%d", at.Day(), int(at.Month()), at.Year()%100, seq)
	label := fmt.Sprintf("%d %s %d · Número del taller %s",
		at.Day(), spanishMonths[int(at.Month())-1], at.Year(), code)
	return Descriptor{
		Date:  at.Format(dates.DateKeyLayout),
		Code:  code,
		Label: label,
	}
}
