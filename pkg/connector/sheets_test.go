// pkg/connector/sheets_test.go
package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseWorksheet(t *testing.T) {
	titles := []string{"Respuestas F0", "Respuestas F1", "Respuestas F2"}

	title, exact := chooseWorksheet(titles, "Respuestas F1")
	assert.Equal(t, "Respuestas F1", title)
	assert.True(t, exact)

	title, exact = chooseWorksheet(titles, "f2")
	assert.Equal(t, "Respuestas F2", title)
	assert.False(t, exact)

	title, exact = chooseWorksheet(titles, "No existe")
	assert.Equal(t, "Respuestas F0", title)
	assert.False(t, exact)

	title, _ = chooseWorksheet(nil, "F1")
	assert.Equal(t, "", title)
}

func TestTableFromValues(t *testing.T) {
	values := [][]interface{}{
		{" Marca temporal ", "Número de tarjeta"},
		{"01/12/2025 09:00:00", 12.0},
		{"01/12/2025 10:00:00"}, // short row
	}

	table := tableFromValues(values)
	require.Equal(t, []string{"Marca temporal", "Número de tarjeta"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "12", table.Rows[0]["Número de tarjeta"])
	assert.Equal(t, "", table.Rows[1]["Número de tarjeta"])
}

func TestTableFromValuesEmpty(t *testing.T) {
	table := tableFromValues(nil)
	assert.True(t, table.IsEmpty())
	assert.Empty(t, table.Columns)
}

func TestValueRange(t *testing.T) {
	table := tableFromValues([][]interface{}{
		{"a", "b"},
		{"1", "2"},
	})

	vr := valueRange(table, true)
	require.Len(t, vr.Values, 2)
	assert.Equal(t, "a", vr.Values[0][0])
	assert.Equal(t, "1", vr.Values[1][0])

	vr = valueRange(table, false)
	require.Len(t, vr.Values, 1)
}
