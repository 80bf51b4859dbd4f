// pkg/normalize/normalizer.go
package normalize

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/dates"
	"github.com/jmunguiamm/integridad-informacion/pkg/model"
	"github.com/jmunguiamm/integridad-informacion/pkg/schema"
)

// Options controls per-question-kind behavior of the normalizer. Exploding a
// kind splits its comma-separated multi-answers into one record per token.
type Options struct {
	ExplodeQuestions map[model.QuestionKind]bool
}

// DefaultOptions explodes every question kind
func DefaultOptions() Options {
	explode := make(map[model.QuestionKind]bool)
	for _, kind := range model.QuestionKinds() {
		explode[kind] = true
	}
	return Options{ExplodeQuestions: explode}
}

// Diagnostics captures intermediate state of one normalization run for
// logging and operator inspection. It is advisory output, never an input.
type Diagnostics struct {
	RunID        string
	Workshop     string
	Form1Schema  map[string]string
	Form2Schema  map[string]string
	PreExplosion []model.LongFormRecord
}

// Normalizer reshapes the wide per-submission form tables into long-form
// records, one per (participant, frame, question, atomic answer).
type Normalizer struct {
	schema *schema.Resolver
	filter *Filter
	opts   Options
	logger *zap.Logger
}

// NewNormalizer creates a normalizer with the given options
func NewNormalizer(sr *schema.Resolver, filter *Filter, opts Options, logger *zap.Logger) *Normalizer {
	if opts.ExplodeQuestions == nil {
		opts = DefaultOptions()
	}
	return &Normalizer{schema: sr, filter: filter, opts: opts, logger: logger}
}

// Normalize joins the perception form (form1) against the reaction form
// (form2) by participant card code and emits the long-form records for the
// scoped workshop. The gender join is a left join: reaction rows without a
// perception match keep a nil gender rather than being dropped.
func (n *Normalizer) Normalize(ctx context.Context, form1, form2 *model.Table, scope model.WorkshopScope) ([]model.LongFormRecord, *Diagnostics, error) {
	diag := &Diagnostics{
		RunID:    uuid.New().String(),
		Workshop: scope.Identifier(),
	}
	logger := n.logger.With(
		zap.String("run_id", diag.RunID),
		zap.String("workshop", diag.Workshop))

	if err := ctx.Err(); err != nil {
		return nil, diag, err
	}

	form1 = n.filter.Apply(form1, scope)
	form2 = n.filter.Apply(form2, scope)
	if form1.IsEmpty() {
		return nil, diag, model.NewDataError(model.KindEmptyInput,
			"perception form has no rows for workshop %q", diag.Workshop)
	}
	if form2.IsEmpty() {
		return nil, diag, model.NewDataError(model.KindEmptyInput,
			"reaction form has no rows for workshop %q", diag.Workshop)
	}

	s1 := n.schema.Resolve(form1)
	diag.Form1Schema = s1.State()
	if !s1.CardCode.Found() || !s1.Timestamp.Found() {
		return nil, diag, resolutionError("perception form", s1)
	}

	s2 := n.schema.Resolve(form2)
	diag.Form2Schema = s2.State()
	if !s2.CardCode.Found() || !s2.Timestamp.Found() {
		return nil, diag, resolutionError("reaction form", s2)
	}

	questions := n.schema.QuestionColumns(form2)
	if len(questions) == 0 {
		return nil, diag, model.NewDataError(model.KindNoQuestionsFound,
			"reaction form exposes no recognizable question columns")
	}

	genderByCard := genderIndex(form1, s1)

	var records []model.LongFormRecord
	skipped := 0
	for _, row := range form2.Rows {
		card := model.NormalizeKey(row.Get(s2.CardCode.Name))
		if card == "" {
			skipped++
			continue
		}
		rawTS := row.Get(s2.Timestamp.Name)
		if dates.Normalize(rawTS).Status != model.DateParsed {
			skipped++
			continue
		}

		for _, q := range questions {
			value := strings.TrimSpace(row.Get(q.Name))
			if value == "" {
				continue
			}
			records = append(records, model.LongFormRecord{
				Taller:          diag.Workshop,
				MarcaTemporal:   rawTS,
				Encuadre:        q.Frame.Display(),
				NumeroDeTarjeta: card,
				Genero:          genderByCard[card],
				Pregunta:        q.Kind,
				Valor:           value,
			})
		}
	}
	if len(records) == 0 {
		return nil, diag, model.NewDataError(model.KindNoMatchingRows,
			"no reaction rows carried a card code, parseable timestamp and at least one answer")
	}
	diag.PreExplosion = records

	out := n.explode(records)
	logger.Info("Normalization complete",
		zap.Int("reaction_rows", len(form2.Rows)),
		zap.Int("rows_skipped", skipped),
		zap.Int("records_pre_explosion", len(records)),
		zap.Int("records", len(out)))
	return out, diag, nil
}

// explode splits comma-separated multi-answers into one record per token for
// every kind enabled in the options. Tokens are trimmed, blanks dropped.
func (n *Normalizer) explode(records []model.LongFormRecord) []model.LongFormRecord {
	out := make([]model.LongFormRecord, 0, len(records))
	for _, rec := range records {
		if !n.opts.ExplodeQuestions[rec.Pregunta] {
			out = append(out, rec)
			continue
		}
		for _, token := range strings.Split(rec.Valor, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			exploded := rec
			exploded.Valor = token
			out = append(out, exploded)
		}
	}
	return out
}

// genderIndex builds the card-code to gender lookup from the perception
// form. The first submission per card wins; nil values mean the form has no
// gender column or the participant left it blank.
func genderIndex(form1 *model.Table, s schema.ResolvedSchema) map[string]*string {
	index := make(map[string]*string, len(form1.Rows))
	for _, row := range form1.Rows {
		card := model.NormalizeKey(row.Get(s.CardCode.Name))
		if card == "" {
			continue
		}
		if _, seen := index[card]; seen {
			continue
		}
		var gender *string
		if s.Gender.Found() {
			if g := row.Get(s.Gender.Name); g != "" {
				gender = &g
			}
		}
		index[card] = gender
	}
	return index
}

func resolutionError(form string, s schema.ResolvedSchema) *model.DataError {
	err := model.NewDataError(model.KindSchemaResolution,
		"%s is missing a mandatory column", form)
	for concept, column := range s.State() {
		err.WithResolution(concept, column)
	}
	return err
}
