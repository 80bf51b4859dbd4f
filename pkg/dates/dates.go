// pkg/dates/dates.go
package dates

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

// DateKeyLayout is the canonical comparable form of a calendar date
const DateKeyLayout = "2006-01-02"

// Normalize maps one raw cell value to a comparable date key. The source
// forms are filled in a day-first locale, so ambiguous numeric dates resolve
// day-before-month. Blank cells yield the no-date state; values that cannot
// be parsed keep their raw text and never compare equal to a canonical key.
func Normalize(cell string) model.NormalizedDate {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return model.NoDate()
	}

	t, err := parse(trimmed)
	if err != nil {
		return model.UnparsedDate(cell)
	}
	return model.ParsedDate(t.Format(DateKeyLayout))
}

// ParseTimestamp interprets a raw cell as a point in time, used to recover
// submission order. The bool is false when the cell is blank or unparseable.
func ParseTimestamp(cell string) (time.Time, bool) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return time.Time{}, false
	}
	t, err := parse(trimmed)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parse(value string) (time.Time, error) {
	return dateparse.ParseAny(value, dateparse.PreferMonthFirst(false))
}
