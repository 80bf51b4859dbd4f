// pkg/normalize/filter_test.go
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
	"github.com/jmunguiamm/integridad-informacion/pkg/schema"
)

func testFilter() *Filter {
	return NewFilter(schema.NewResolver(zap.NewNop()), zap.NewNop())
}

func TestFilterByDateKeepsMatchingRows(t *testing.T) {
	table := model.NewTable([]string{"Marca temporal", "Valor"})
	table.AppendRow(model.Row{"Marca temporal": "01/12/2025 09:00:00", "Valor": "a"})
	table.AppendRow(model.Row{"Marca temporal": "02/12/2025 09:00:00", "Valor": "b"})
	table.AppendRow(model.Row{"Marca temporal": "2025-12-01", "Valor": "c"})

	out := testFilter().Apply(table, model.WorkshopScope{Date: "2025-12-01"})
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "a", out.Rows[0]["Valor"])
	assert.Equal(t, "c", out.Rows[1]["Valor"])
}

func TestFilterFailsOpenWithoutColumns(t *testing.T) {
	table := model.NewTable(nil)
	table.AppendRow(model.Row{})

	out := testFilter().Apply(table, model.WorkshopScope{Date: "2025-12-01"})
	assert.Len(t, out.Rows, 1)
}

func TestFilterUnparseableDatesDropped(t *testing.T) {
	table := model.NewTable([]string{"Marca temporal"})
	table.AppendRow(model.Row{"Marca temporal": "no es fecha"})
	table.AppendRow(model.Row{"Marca temporal": ""})

	out := testFilter().Apply(table, model.WorkshopScope{Date: "2025-12-01"})
	assert.True(t, out.IsEmpty())
}

func TestFilterByWorkshopCodeExactMatch(t *testing.T) {
	table := model.NewTable([]string{"Marca temporal", "Número de taller"})
	table.AppendRow(model.Row{"Marca temporal": "01/12/2025", "Número de taller": "112251"})
	table.AppendRow(model.Row{"Marca temporal": "01/12/2025", "Número de taller": "112252"})
	table.AppendRow(model.Row{"Marca temporal": "01/12/2025", "Número de taller": "112251.0"})

	out := testFilter().Apply(table, model.WorkshopScope{Date: "2025-12-01", Code: "112251"})
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "112251", out.Rows[0]["Número de taller"])
	assert.Equal(t, "112251.0", out.Rows[1]["Número de taller"])
}

func TestFilterCodeIgnoredWithoutColumn(t *testing.T) {
	table := model.NewTable([]string{"Marca temporal"})
	table.AppendRow(model.Row{"Marca temporal": "01/12/2025"})

	out := testFilter().Apply(table, model.WorkshopScope{Date: "2025-12-01", Code: "112251"})
	assert.Len(t, out.Rows, 1)
}

func TestFilterNoScopePassesThrough(t *testing.T) {
	table := model.NewTable([]string{"Marca temporal"})
	table.AppendRow(model.Row{"Marca temporal": "01/12/2025"})

	out := testFilter().Apply(table, model.WorkshopScope{})
	assert.Len(t, out.Rows, 1)
}
