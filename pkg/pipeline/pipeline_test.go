// pkg/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/analysis"
	"github.com/jmunguiamm/integridad-informacion/pkg/config"
	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

type fakeReader struct {
	tables map[string]*model.Table
}

func (f *fakeReader) Read(_ context.Context, _, worksheet string) (*model.Table, error) {
	if t, ok := f.tables[worksheet]; ok {
		return t.Clone(), nil
	}
	return model.NewTable(nil), nil
}

func (f *fakeReader) Validate(context.Context, string) error {
	return nil
}

type fakeCompleter struct {
	response string
}

func (f *fakeCompleter) Complete(context.Context, analysis.Request) (string, error) {
	return f.response, nil
}

func testConfig() *config.Config {
	return &config.Config{
		FormsSheetID: "sheet-1",
		Form0Tab:     "F0",
		Form1Tab:     "F1",
		Form2Tab:     "F2",
	}
}

func testTables() map[string]*model.Table {
	f0 := model.NewTable([]string{"Fecha de implementación", "Escuela"})
	f0.AppendRow(model.Row{"Fecha de implementación": "01/12/2025 09:00:00", "Escuela": "Sec. 5"})

	f1 := model.NewTable([]string{"Marca temporal", "Número de tarjeta", "Género"})
	f1.AppendRow(model.Row{
		"Marca temporal":    "01/12/2025 09:30:00",
		"Número de tarjeta": "12",
		"Género":            "Mujer",
	})

	f2 := model.NewTable([]string{"Marca temporal", "Número de tarjeta", "¿Qué emociones identificas en la Noticia 1?"})
	f2.AppendRow(model.Row{
		"Marca temporal":    "01/12/2025 10:00:00",
		"Número de tarjeta": "12",
		"¿Qué emociones identificas en la Noticia 1?": "miedo, enojo",
	})

	return map[string]*model.Table{"F0": f0, "F1": f1, "F2": f2}
}

func testPipeline(completer analysis.Completer) *Pipeline {
	return NewPipeline(testConfig(), &fakeReader{tables: testTables()}, completer, zap.NewNop())
}

func TestPipelineRunEndToEnd(t *testing.T) {
	p := testPipeline(&fakeCompleter{})
	scope := model.WorkshopScope{Date: "2025-12-01", Code: "112251"}

	result, err := p.Run(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	assert.Equal(t, "112251", result.Records[0].Taller)
	assert.Equal(t, "miedo", result.Records[0].Valor)
	assert.Equal(t, "enojo", result.Records[1].Valor)

	require.NotNil(t, result.Table)
	assert.Equal(t, model.LongFormColumns, result.Table.Columns)
	assert.Len(t, result.Table.Rows, 2)

	assert.Equal(t, 1, p.Metrics().SuccessfulRuns)
	assert.Equal(t, 2, p.Metrics().TotalRecords)
}

func TestPipelineRunRecordsFailure(t *testing.T) {
	p := testPipeline(&fakeCompleter{})

	_, err := p.Run(context.Background(), model.WorkshopScope{Date: "2030-01-01"})
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindEmptyInput))

	assert.Equal(t, 1, p.Metrics().FailedRuns)
	assert.Equal(t, 1, p.Metrics().ErrorSummary()[model.KindEmptyInput])
}

func TestPipelineWorkshops(t *testing.T) {
	p := testPipeline(&fakeCompleter{})

	descriptors, err := p.Workshops(context.Background())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "112251", descriptors[0].Code)
	assert.Equal(t, "2025-12-01", descriptors[0].Date)
}

func TestPipelineAnalyzeReactions(t *testing.T) {
	p := testPipeline(&fakeCompleter{response: "## Reporte"})

	report, err := p.AnalyzeReactions(context.Background(), model.WorkshopScope{Date: "2025-12-01"})
	require.NoError(t, err)
	assert.Equal(t, "## Reporte", report)
}

func TestPipelineAnalyzeTrends(t *testing.T) {
	p := testPipeline(&fakeCompleter{
		response: `{"dominant_theme":"tema","rationale":"r","emotional_tone":"miedo","top_keywords":[],"representative_answers":[]}`,
	})

	result, err := p.AnalyzeTrends(context.Background(), model.WorkshopScope{Date: "2025-12-01"})
	require.NoError(t, err)
	assert.Equal(t, "tema", result.DominantTheme)
}
