// pkg/loader/loader.go
package loader

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/connector"
	"github.com/jmunguiamm/integridad-informacion/pkg/model"
	"github.com/jmunguiamm/integridad-informacion/pkg/normalize"
)

// SourceColumn tags every joined row with the form it came from
const SourceColumn = "source_form"

// Tabs names the worksheets of the three survey forms. Blank entries are
// skipped, so a deployment that only runs some of the forms still loads.
type Tabs struct {
	Form0 string // implementation form
	Form1 string // perception form
	Form2 string // reaction form
}

// Loader assembles the cross-form union used by the analysis layer: every
// row of every configured form, tagged with its source, scoped to one
// workshop date.
type Loader struct {
	reader  connector.TableReader
	filter  *normalize.Filter
	sheetID string
	tabs    Tabs
	logger  *zap.Logger
}

// NewLoader creates a joined-response loader
func NewLoader(reader connector.TableReader, filter *normalize.Filter, sheetID string, tabs Tabs, logger *zap.Logger) *Loader {
	return &Loader{
		reader:  reader,
		filter:  filter,
		sheetID: sheetID,
		tabs:    tabs,
		logger:  logger,
	}
}

// Load returns the union table plus the name of the column holding the
// participant card code, or "" when no form exposes one. The perception and
// reaction forms are scoped to the workshop date; the implementation form
// describes the workshop itself and is never filtered.
func (l *Loader) Load(ctx context.Context, scope model.WorkshopScope) (*model.Table, string, error) {
	sources := []struct {
		tab    string
		tag    string
		scoped bool
	}{
		{l.tabs.Form0, "F0", false},
		{l.tabs.Form1, "F1", true},
		{l.tabs.Form2, "F2", true},
	}

	dateOnly := model.WorkshopScope{Date: scope.Date}
	var tables []*model.Table
	var tagged []*model.Table
	for _, src := range sources {
		if src.tab == "" {
			continue
		}
		t, err := l.reader.Read(ctx, l.sheetID, src.tab)
		if err != nil {
			return nil, "", err
		}
		trimColumns(t)
		if src.scoped && scope.Date != "" {
			t = l.filter.Apply(t, dateOnly)
		}
		tables = append(tables, t)
		tagged = append(tagged, tagSource(t, src.tag))
	}
	if len(tables) == 0 {
		return nil, "", model.NewDataError(model.KindConfiguration,
			"no form worksheets are configured")
	}

	columns := model.ColumnUnion(tables...)
	columns = append(columns, SourceColumn)

	union := model.NewTable(columns)
	for _, t := range tagged {
		for _, row := range t.Rows {
			full := make(model.Row, len(columns))
			for _, col := range columns {
				full[col] = row[col]
			}
			union.AppendRow(full)
		}
	}

	keyColumn := cardKeyColumn(columns)
	if keyColumn != "" {
		for _, row := range union.Rows {
			row[keyColumn] = model.NormalizeKey(row[keyColumn])
		}
	}

	l.logger.Info("Joined responses loaded",
		zap.Int("rows", len(union.Rows)),
		zap.Int("columns", len(union.Columns)),
		zap.String("key_column", keyColumn))
	return union, keyColumn, nil
}

// PromptSample renders up to n rows of a table as numbered lines for use in
// analysis prompts, columns in table order.
func PromptSample(t *model.Table, n int) string {
	if t == nil || t.IsEmpty() {
		return ""
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}

	var sb strings.Builder
	for i := 0; i < n; i++ {
		parts := make([]string, 0, len(t.Columns))
		for _, col := range t.Columns {
			parts = append(parts, fmt.Sprintf("%s=%s", col, t.Rows[i].Get(col)))
		}
		sb.WriteString(fmt.Sprintf("%d) %s\n", i+1, strings.Join(parts, " | ")))
	}
	return sb.String()
}

func trimColumns(t *model.Table) {
	for i, col := range t.Columns {
		trimmed := strings.TrimSpace(col)
		if trimmed == col {
			continue
		}
		t.Columns[i] = trimmed
		for _, row := range t.Rows {
			if _, ok := row[col]; ok {
				row[trimmed] = row[col]
				delete(row, col)
			}
		}
	}
}

func tagSource(t *model.Table, tag string) *model.Table {
	out := model.NewTable(append(append([]string{}, t.Columns...), SourceColumn))
	for _, row := range t.Rows {
		copied := make(model.Row, len(row)+1)
		for col, val := range row {
			copied[col] = val
		}
		copied[SourceColumn] = tag
		out.AppendRow(copied)
	}
	return out
}

// cardKeyColumn returns the first column whose name mentions the participant
// card, in union order.
func cardKeyColumn(columns []string) string {
	for _, col := range columns {
		if strings.Contains(strings.ToLower(col), "tarjeta") {
			return col
		}
	}
	return ""
}
