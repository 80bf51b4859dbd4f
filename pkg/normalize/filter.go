// pkg/normalize/filter.go
package normalize

import (
	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/dates"
	"github.com/jmunguiamm/integridad-informacion/pkg/model"
	"github.com/jmunguiamm/integridad-informacion/pkg/schema"
)

// Filter scopes a form table to one workshop run. The date filter fails open:
// when no date column can be located at all, the table passes through
// unchanged rather than dropping every row of a misconfigured sheet.
type Filter struct {
	schema *schema.Resolver
	logger *zap.Logger
}

// NewFilter creates a row filter
func NewFilter(sr *schema.Resolver, logger *zap.Logger) *Filter {
	return &Filter{schema: sr, logger: logger}
}

// Apply narrows the table to the scope's workshop date and, when the table
// carries a workshop-code column and the scope names a code, to that exact
// code. Each stage short-circuits on an empty intermediate result.
func (f *Filter) Apply(t *model.Table, scope model.WorkshopScope) *model.Table {
	filtered := f.byDate(t, scope.Date)
	if filtered.IsEmpty() {
		return filtered
	}
	return f.byCode(filtered, scope.Code)
}

func (f *Filter) byDate(t *model.Table, date string) *model.Table {
	if date == "" || t.IsEmpty() {
		return t
	}

	dateCol := f.schema.Timestamp(t)
	if !dateCol.Found() {
		return t
	}
	if dateCol.Degraded && f.logger != nil {
		f.logger.Warn("Date filter running on fallback column",
			zap.String("column", dateCol.Name))
	}

	out := model.NewTable(t.Columns)
	for _, row := range t.Rows {
		if dates.Normalize(row.Get(dateCol.Name)).Matches(date) {
			out.AppendRow(row)
		}
	}
	if f.logger != nil {
		f.logger.Debug("Date filter applied",
			zap.String("date", date),
			zap.Int("kept", len(out.Rows)),
			zap.Int("total", len(t.Rows)))
	}
	return out
}

func (f *Filter) byCode(t *model.Table, code string) *model.Table {
	if code == "" || t.IsEmpty() {
		return t
	}

	codeCol := f.schema.TallerCode(t)
	if !codeCol.Found() {
		return t
	}

	want := model.NormalizeKey(code)
	out := model.NewTable(t.Columns)
	for _, row := range t.Rows {
		if model.NormalizeKey(row.Get(codeCol.Name)) == want {
			out.AppendRow(row)
		}
	}
	if f.logger != nil {
		f.logger.Debug("Workshop code filter applied",
			zap.String("code", code),
			zap.String("column", codeCol.Name),
			zap.Int("kept", len(out.Rows)),
			zap.Int("total", len(t.Rows)))
	}
	return out
}
