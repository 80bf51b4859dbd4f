// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/analysis"
	"github.com/jmunguiamm/integridad-informacion/pkg/config"
	"github.com/jmunguiamm/integridad-informacion/pkg/connector"
	"github.com/jmunguiamm/integridad-informacion/pkg/loader"
	"github.com/jmunguiamm/integridad-informacion/pkg/model"
	"github.com/jmunguiamm/integridad-informacion/pkg/normalize"
	"github.com/jmunguiamm/integridad-informacion/pkg/schema"
	"github.com/jmunguiamm/integridad-informacion/pkg/workshop"
)

// Pipeline orchestrates the full run: read the form worksheets, normalize
// them into long-form records for the scoped workshop, and expose the
// analysis operations on top of the joined responses.
type Pipeline struct {
	cfg        *config.Config
	reader     connector.TableReader
	schema     *schema.Resolver
	filter     *normalize.Filter
	normalizer *normalize.Normalizer
	workshops  *workshop.Resolver
	loader     *loader.Loader
	analyzer   *analysis.Analyzer
	metrics    *RunMetrics
	logger     *zap.Logger
}

// NewPipeline wires the pipeline from configuration and a table reader
func NewPipeline(cfg *config.Config, reader connector.TableReader, completer analysis.Completer, logger *zap.Logger) *Pipeline {
	sr := schema.NewResolver(logger)
	filter := normalize.NewFilter(sr, logger)

	tabs := loader.Tabs{
		Form0: cfg.Form0Tab,
		Form1: cfg.Form1Tab,
		Form2: cfg.Form2Tab,
	}

	return &Pipeline{
		cfg:        cfg,
		reader:     reader,
		schema:     sr,
		filter:     filter,
		normalizer: normalize.NewNormalizer(sr, filter, normalize.DefaultOptions(), logger),
		workshops:  workshop.NewResolver(sr, logger),
		loader:     loader.NewLoader(reader, filter, cfg.FormsSheetID, tabs, logger),
		analyzer:   analysis.NewAnalyzer(completer, logger),
		metrics:    NewRunMetrics(logger),
		logger:     logger,
	}
}

// Result holds the output of one normalization run
type Result struct {
	Records     []model.LongFormRecord
	Diagnostics *normalize.Diagnostics
	Table       *model.Table
	Duration    time.Duration
}

// Workshops lists the workshop runs recorded in the implementation form,
// most recent first.
func (p *Pipeline) Workshops(ctx context.Context) ([]workshop.Descriptor, error) {
	if p.cfg.Form0Tab == "" {
		return nil, nil
	}
	form0, err := p.reader.Read(ctx, p.cfg.FormsSheetID, p.cfg.Form0Tab)
	if err != nil {
		return nil, err
	}
	return p.workshops.Descriptors(form0), nil
}

// Run normalizes the perception and reaction forms for the given scope and
// returns both the records and their canonical table rendering.
func (p *Pipeline) Run(ctx context.Context, scope model.WorkshopScope) (*Result, error) {
	started := time.Now()
	p.logger.Info("Starting normalization run",
		zap.String("workshop", scope.Identifier()))

	if p.cfg.Form1Tab == "" || p.cfg.Form2Tab == "" {
		return nil, model.NewDataError(model.KindConfiguration,
			"both FORM1_TAB and FORM2_TAB are required for normalization")
	}

	form1, err := p.reader.Read(ctx, p.cfg.FormsSheetID, p.cfg.Form1Tab)
	if err != nil {
		return nil, err
	}
	form2, err := p.reader.Read(ctx, p.cfg.FormsSheetID, p.cfg.Form2Tab)
	if err != nil {
		return nil, err
	}

	records, diag, err := p.normalizer.Normalize(ctx, form1, form2, scope)
	if err != nil {
		p.metrics.RecordRun(scope.Identifier(), 0, time.Since(started), err)
		return nil, err
	}

	result := &Result{
		Records:     records,
		Diagnostics: diag,
		Table:       recordTable(records),
		Duration:    time.Since(started),
	}
	p.metrics.RecordRun(scope.Identifier(), len(records), result.Duration, nil)
	return result, nil
}

// AnalyzeReactions runs the cross-form reaction analysis for the scope
func (p *Pipeline) AnalyzeReactions(ctx context.Context, scope model.WorkshopScope) (string, error) {
	joined, _, err := p.loader.Load(ctx, scope)
	if err != nil {
		return "", err
	}
	return p.analyzer.AnalyzeReactions(ctx, loader.PromptSample(joined, 200))
}

// AnalyzeTrends identifies the workshop's dominant theme from the
// implementation and perception forms.
func (p *Pipeline) AnalyzeTrends(ctx context.Context, scope model.WorkshopScope) (*analysis.TrendResult, error) {
	var form0Context string
	if p.cfg.Form0Tab != "" {
		form0, err := p.reader.Read(ctx, p.cfg.FormsSheetID, p.cfg.Form0Tab)
		if err != nil {
			return nil, err
		}
		form0Context = loader.PromptSample(form0, 50)
	}

	if p.cfg.Form1Tab == "" {
		return nil, model.NewDataError(model.KindConfiguration,
			"FORM1_TAB is required for trend analysis")
	}
	form1, err := p.reader.Read(ctx, p.cfg.FormsSheetID, p.cfg.Form1Tab)
	if err != nil {
		return nil, err
	}
	form1 = p.filter.Apply(form1, model.WorkshopScope{Date: scope.Date})

	return p.analyzer.AnalyzeTrends(ctx, form0Context, loader.PromptSample(form1, 100))
}

// GenerateNews rewrites a neutral story under the three narrative frames
func (p *Pipeline) GenerateNews(ctx context.Context, neutralStory string) ([]analysis.FramedStory, error) {
	return p.analyzer.GenerateNews(ctx, neutralStory)
}

// Metrics returns the accumulated run metrics
func (p *Pipeline) Metrics() *RunMetrics {
	return p.metrics
}

// recordTable renders records in the canonical 7-column order
func recordTable(records []model.LongFormRecord) *model.Table {
	t := model.NewTable(append([]string{}, model.LongFormColumns...))
	for _, rec := range records {
		t.AppendRow(rec.AsRow())
	}
	return t
}

// Export writes the normalized table to a worksheet when the connector also
// implements TableWriter.
func (p *Pipeline) Export(ctx context.Context, worksheet string, result *Result) error {
	writer, ok := p.reader.(connector.TableWriter)
	if !ok {
		return fmt.Errorf("configured connector cannot write worksheets")
	}
	return writer.Write(ctx, p.cfg.FormsSheetID, worksheet, result.Table, true)
}
