// pkg/workshop/workshop_test.go
package workshop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
	"github.com/jmunguiamm/integridad-informacion/pkg/schema"
)

func testResolver() *Resolver {
	return NewResolver(schema.NewResolver(zap.NewNop()), zap.NewNop())
}

func form0(dateCol string, values ...string) *model.Table {
	t := model.NewTable([]string{dateCol, "Escuela"})
	for _, v := range values {
		t.AppendRow(model.Row{dateCol: v, "Escuela": "Sec. 5"})
	}
	return t
}

func TestDescriptorsTwoRunsSameDay(t *testing.T) {
	table := form0("Fecha de implementación",
		"01/12/2025 09:00:00",
		"01/12/2025 14:00:00",
	)

	descriptors := testResolver().Descriptors(table)
	require.Len(t, descriptors, 2)

	assert.Equal(t, "112251", descriptors[0].Code)
	assert.Equal(t, "112252", descriptors[1].Code)
	assert.Equal(t, "2025-12-01", descriptors[0].Date)
	assert.Equal(t, "1 dic 2025 · Número del taller 112251", descriptors[0].Label)
}

func TestDescriptorsSequenceFollowsSubmissionOrder(t *testing.T) {
	// The later submission appears first in the sheet but must get sequence 2.
	table := form0("Fecha de implementación",
		"01/12/2025 14:00:00",
		"01/12/2025 09:00:00",
	)

	descriptors := testResolver().Descriptors(table)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "112251", descriptors[0].Code)
	assert.Equal(t, "112252", descriptors[1].Code)
}

func TestDescriptorsMostRecentDateFirst(t *testing.T) {
	table := form0("Fecha de implementación",
		"01/11/2025",
		"01/12/2025",
	)

	descriptors := testResolver().Descriptors(table)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "2025-12-01", descriptors[0].Date)
	assert.Equal(t, "2025-11-01", descriptors[1].Date)
}

func TestDescriptorsSkipUnparseableDates(t *testing.T) {
	table := form0("Fecha de implementación",
		"01/12/2025",
		"pendiente",
		"",
	)

	descriptors := testResolver().Descriptors(table)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "112251", descriptors[0].Code)
}

func TestDescriptorsFallBackToTimestampColumn(t *testing.T) {
	table := form0("Marca temporal", "05/03/2025 08:30:00")

	descriptors := testResolver().Descriptors(table)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "2025-03-05", descriptors[0].Date)
	assert.Equal(t, "53251", descriptors[0].Code)
}

func TestDescriptorsPreferImplementationDate(t *testing.T) {
	table := model.NewTable([]string{"Marca temporal", "Fecha de implementación"})
	table.AppendRow(model.Row{
		"Marca temporal":          "02/12/2025 08:00:00",
		"Fecha de implementación": "01/12/2025",
	})

	descriptors := testResolver().Descriptors(table)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "2025-12-01", descriptors[0].Date)
}

func TestDescriptorsEmptyTable(t *testing.T) {
	assert.Empty(t, testResolver().Descriptors(nil))
	assert.Empty(t, testResolver().Descriptors(model.NewTable(nil)))
}
