// pkg/schema/questions.go
package schema

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

// QuestionColumn is one reaction-form answer column together with the
// narrative frame and question kind it belongs to.
type QuestionColumn struct {
	Name  string
	Frame model.Frame
	Kind  model.QuestionKind
}

var (
	noticiaIndexRe  = regexp.MustCompile(`noticia\s*([0-9])`)
	trailingIndexRe = regexp.MustCompile(`([0-9])$`)
)

// QuestionColumns discovers every answer column of the reaction form in
// original column order. A column's kind comes from keywords in its slug;
// its frame comes from an explicit "noticia N" marker or a trailing digit,
// falling back to arrival order within the kind when the header carries no
// index at all.
func (r *Resolver) QuestionColumns(t *model.Table) []QuestionColumn {
	autoIndex := map[model.QuestionKind]int{}
	var questions []QuestionColumn

	for _, col := range t.Columns {
		slug := Slug(col)
		kind, ok := classifyQuestion(slug)
		if !ok {
			continue
		}

		frame, explicit := frameIndex(slug)
		if !explicit {
			autoIndex[kind]++
			frame = model.Frame(autoIndex[kind])
		} else if int(frame) > autoIndex[kind] {
			autoIndex[kind] = int(frame)
		}

		questions = append(questions, QuestionColumn{Name: col, Frame: frame, Kind: kind})
	}

	if r.logger != nil {
		r.logger.Debug("Question columns resolved", zap.Int("count", len(questions)))
	}
	return questions
}

func classifyQuestion(slug string) (model.QuestionKind, bool) {
	switch {
	case strings.Contains(slug, "emocion"):
		return model.QuestionEmotions, true
	case strings.Contains(slug, "elemento") || strings.Contains(slug, "atencion"):
		return model.QuestionElements, true
	case strings.Contains(slug, "confiabl") || strings.Contains(slug, "confianza") || strings.Contains(slug, "confiar"):
		return model.QuestionTrust, true
	default:
		return "", false
	}
}

func frameIndex(slug string) (model.Frame, bool) {
	if m := noticiaIndexRe.FindStringSubmatch(slug); m != nil {
		n, _ := strconv.Atoi(m[1])
		return model.Frame(n), true
	}
	if m := trailingIndexRe.FindStringSubmatch(slug); m != nil {
		n, _ := strconv.Atoi(m[1])
		return model.Frame(n), true
	}
	return 0, false
}
