// pkg/schema/schema.go
package schema

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

// Resolver locates semantically meaningful columns inside a table whose
// headers drift by deployment: accents, casing, extra whitespace and
// reordered columns are all tolerated. Matching happens on a normalized
// "slug" form of each header, so the rules never depend on exact text.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a column resolver
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// ResolvedColumn is the outcome of resolving one concept. Degraded marks a
// fallback resolution (e.g. "assume the first column is the timestamp") so
// callers and tests can tell a keyword match from a guess.
type ResolvedColumn struct {
	Name     string
	Degraded bool
}

// Found reports whether the concept resolved to any column
func (c ResolvedColumn) Found() bool {
	return c.Name != ""
}

// ResolvedSchema holds the per-concept resolution state for one table
type ResolvedSchema struct {
	Timestamp ResolvedColumn
	CardCode  ResolvedColumn
	Gender    ResolvedColumn
}

// State renders the resolution outcome per concept, for error reporting
func (s ResolvedSchema) State() map[string]string {
	state := make(map[string]string, 3)
	for concept, col := range map[string]ResolvedColumn{
		"timestamp": s.Timestamp,
		"card_code": s.CardCode,
		"gender":    s.Gender,
	} {
		if col.Found() {
			state[concept] = col.Name
		} else {
			state[concept] = "not found"
		}
	}
	return state
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug normalizes a column header for keyword matching: lower-cased, accents
// stripped, every run of non-alphanumeric characters collapsed to one space.
func Slug(header string) string {
	lowered := strings.ToLower(strings.TrimSpace(header))
	if stripped, _, err := transform.String(stripAccents, lowered); err == nil {
		lowered = stripped
	}

	var sb strings.Builder
	pendingSpace := false
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return sb.String()
}

// Resolve evaluates every concept once against the table
func (r *Resolver) Resolve(t *model.Table) ResolvedSchema {
	return ResolvedSchema{
		Timestamp: r.Timestamp(t),
		CardCode:  r.CardCode(t),
		Gender:    r.Gender(t),
	}
}

var timestampTokens = []string{"marca temporal", "timestamp", "fecha", "date"}

// Timestamp resolves the submission-time column. Forms put it first by
// platform convention, so the first column is checked before a full scan and
// used unconditionally, flagged degraded, when no header matches at all.
func (r *Resolver) Timestamp(t *model.Table) ResolvedColumn {
	if len(t.Columns) == 0 {
		return ResolvedColumn{}
	}

	first := t.Columns[0]
	if slugContainsAny(Slug(first), timestampTokens) {
		return ResolvedColumn{Name: first}
	}
	for _, col := range t.Columns {
		if slugContainsAny(Slug(col), timestampTokens) {
			return ResolvedColumn{Name: col}
		}
	}

	if r.logger != nil {
		r.logger.Warn("Timestamp column resolved by first-column fallback",
			zap.String("column", first))
	}
	return ResolvedColumn{Name: first, Degraded: true}
}

// CardCode resolves the participant card-code column. Headers containing
// both "numero" and "tarjeta" win over a bare "tarjeta"; among several
// candidates the one with more non-blank values wins, ties broken in favor
// of the canonical entry question (slug containing "ingresa") over a later
// confirmation or echo column.
func (r *Resolver) CardCode(t *model.Table) ResolvedColumn {
	candidates := columnsMatching(t, func(slug string) bool {
		return strings.Contains(slug, "numero") && strings.Contains(slug, "tarjeta")
	})
	if len(candidates) == 0 {
		candidates = columnsMatching(t, func(slug string) bool {
			return strings.Contains(slug, "tarjeta")
		})
	}
	if len(candidates) == 0 {
		return ResolvedColumn{}
	}
	return ResolvedColumn{Name: pickBest(t, candidates)}
}

// TallerCode resolves the "número de taller" column used to scope a table to
// one workshop run, with the same candidate priority rule as CardCode.
func (r *Resolver) TallerCode(t *model.Table) ResolvedColumn {
	candidates := columnsMatching(t, func(slug string) bool {
		return strings.Contains(slug, "numero") && strings.Contains(slug, "taller")
	})
	if len(candidates) == 0 {
		candidates = columnsMatching(t, func(slug string) bool {
			return strings.Contains(slug, "taller")
		})
	}
	if len(candidates) == 0 {
		return ResolvedColumn{}
	}
	return ResolvedColumn{Name: pickBest(t, candidates)}
}

var genderFallbackTokens = []string{"gender", "sexo", "identificas"}

// Gender resolves the optional gender column of the perception form
func (r *Resolver) Gender(t *model.Table) ResolvedColumn {
	for _, col := range t.Columns {
		if strings.Contains(Slug(col), "genero") {
			return ResolvedColumn{Name: col}
		}
	}
	for _, col := range t.Columns {
		if slugContainsAny(Slug(col), genderFallbackTokens) {
			return ResolvedColumn{Name: col}
		}
	}
	return ResolvedColumn{}
}

func columnsMatching(t *model.Table, predicate func(slug string) bool) []string {
	matched := []string{}
	for _, col := range t.Columns {
		if predicate(Slug(col)) {
			matched = append(matched, col)
		}
	}
	return matched
}

// pickBest orders candidates by non-blank count, then the "ingresa" bonus,
// then original column order.
func pickBest(t *model.Table, candidates []string) string {
	best := candidates[0]
	bestCount := t.NonBlankCount(best)
	bestIngresa := strings.Contains(Slug(best), "ingresa")

	for _, col := range candidates[1:] {
		count := t.NonBlankCount(col)
		ingresa := strings.Contains(Slug(col), "ingresa")
		if count > bestCount || (count == bestCount && ingresa && !bestIngresa) {
			best, bestCount, bestIngresa = col, count, ingresa
		}
	}
	return best
}

func slugContainsAny(slug string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(slug, token) {
			return true
		}
	}
	return false
}
