// pkg/model/model_test.go
package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "12", NormalizeKey("12"))
	assert.Equal(t, "12", NormalizeKey(" 12 "))
	assert.Equal(t, "12", NormalizeKey("12.0"))
	assert.Equal(t, "12", NormalizeKey(" 12.0 "))
	assert.Equal(t, "12.5", NormalizeKey("12.5"))
	assert.Equal(t, "", NormalizeKey("   "))
}

func TestNormalizedDateMatches(t *testing.T) {
	parsed := ParsedDate("2025-12-01")
	assert.True(t, parsed.Matches("2025-12-01"))
	assert.False(t, parsed.Matches("2025-12-02"))

	unparsed := UnparsedDate("garbage")
	assert.False(t, unparsed.Matches("garbage"))
	assert.False(t, unparsed.Matches(""))

	none := NoDate()
	assert.False(t, none.Matches("2025-12-01"))
	assert.False(t, none.Matches(""))
}

func TestWorkshopScopeIdentifier(t *testing.T) {
	assert.Equal(t, "112251", WorkshopScope{Date: "2025-12-01", Code: "112251", LegacyCode: "L9"}.Identifier())
	assert.Equal(t, "L9", WorkshopScope{Date: "2025-12-01", LegacyCode: "L9"}.Identifier())
	assert.Equal(t, "2025-12-01", WorkshopScope{Date: "2025-12-01"}.Identifier())
	assert.Equal(t, FallbackWorkshopID, WorkshopScope{}.Identifier())
}

func TestDataErrorKindAndResolution(t *testing.T) {
	err := NewDataError(KindSchemaResolution, "perception form is missing a mandatory column").
		WithResolution("card_code", "").
		WithResolution("timestamp", "Marca temporal")

	assert.True(t, IsKind(err, KindSchemaResolution))
	assert.False(t, IsKind(err, KindEmptyInput))
	assert.Contains(t, err.Error(), "[SchemaResolution]")
	assert.Contains(t, err.Error(), "card_code=not found")
	assert.Contains(t, err.Error(), "timestamp=Marca temporal")
}

func TestWrapTransportUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := WrapTransport(cause, "failed to read worksheet")

	require.True(t, IsKind(err, KindTransport))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "failed to read worksheet")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestIsKindWrapped(t *testing.T) {
	inner := NewDataError(KindEmptyInput, "reaction form has no rows")
	wrapped := fmt.Errorf("run failed: %w", inner)
	assert.True(t, IsKind(wrapped, KindEmptyInput))
}

func TestTableCloneIsDeep(t *testing.T) {
	original := NewTable([]string{"a"})
	original.AppendRow(Row{"a": "1"})

	clone := original.Clone()
	clone.Rows[0]["a"] = "changed"
	clone.AppendRow(Row{"a": "2"})

	assert.Equal(t, "1", original.Rows[0]["a"])
	assert.Len(t, original.Rows, 1)
}

func TestColumnUnionFirstAppearanceOrder(t *testing.T) {
	t1 := NewTable([]string{"a", "b"})
	t2 := NewTable([]string{"b", "c"})
	t3 := NewTable([]string{"c", "d"})

	assert.Equal(t, []string{"a", "b", "c", "d"}, ColumnUnion(t1, t2, t3))
	assert.Equal(t, []string{"a", "b"}, ColumnUnion(t1, nil))
}

func TestFrameDisplay(t *testing.T) {
	assert.Equal(t, "Desconfianza y responsabilización de actores", FrameDistrust.Display())
	assert.Equal(t, "Polarización social y exclusión", FramePolarization.Display())
	assert.Equal(t, "Miedo y control", FrameFearControl.Display())
	assert.Equal(t, "4", Frame(4).Display())
}

func TestLongFormRecordAsRow(t *testing.T) {
	gender := "Mujer"
	rec := LongFormRecord{
		Taller:          "112251",
		MarcaTemporal:   "01/12/2025 10:00:00",
		Encuadre:        FrameDistrust.Display(),
		NumeroDeTarjeta: "12",
		Genero:          &gender,
		Pregunta:        QuestionEmotions,
		Valor:           "miedo",
	}

	row := rec.AsRow()
	for _, col := range LongFormColumns {
		_, ok := row[col]
		assert.True(t, ok, "missing column %q", col)
	}
	assert.Equal(t, "Mujer", row["Género"])

	rec.Genero = nil
	assert.Equal(t, "", rec.AsRow()["Género"])
}
