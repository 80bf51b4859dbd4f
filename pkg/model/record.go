// pkg/model/record.go
package model

import "strconv"

// Frame identifies one of the three narrative framings applied to the
// generated news messages. Values come from the reaction form's question
// numbering, so unmapped indices are possible and pass through as-is.
type Frame int

const (
	// FrameDistrust is "Desconfianza y responsabilización de actores"
	FrameDistrust Frame = 1
	// FramePolarization is "Polarización social y exclusión"
	FramePolarization Frame = 2
	// FrameFearControl is "Miedo y control"
	FrameFearControl Frame = 3
)

// Display returns the Spanish display name used in the canonical output.
// Unmapped frame indices render their raw integer id.
func (f Frame) Display() string {
	switch f {
	case FrameDistrust:
		return "Desconfianza y responsabilización de actores"
	case FramePolarization:
		return "Polarización social y exclusión"
	case FrameFearControl:
		return "Miedo y control"
	default:
		return strconv.Itoa(int(f))
	}
}

// QuestionKind classifies a reaction-form answer column
type QuestionKind string

const (
	// QuestionEmotions covers "¿Qué emociones identificas...?" columns
	QuestionEmotions QuestionKind = "Emociones"
	// QuestionElements covers "¿Cuáles son los elementos... atención?" columns
	QuestionElements QuestionKind = "Elementos"
	// QuestionTrust covers "¿Qué tan confiable...?" columns
	QuestionTrust QuestionKind = "Confianza"
)

// QuestionKinds lists every kind in canonical order
func QuestionKinds() []QuestionKind {
	return []QuestionKind{QuestionEmotions, QuestionElements, QuestionTrust}
}

// LongFormRecord is the canonical output unit of the normalization pipeline:
// one row per (participant, narrative frame, question kind, atomic value).
// Records are never updated after creation and are not persisted anywhere.
type LongFormRecord struct {
	Taller          string       // workshop identifier
	MarcaTemporal   string       // raw submission timestamp from the reaction form
	Encuadre        string       // narrative frame display name
	NumeroDeTarjeta string       // normalized participant card code
	Genero          *string      // nil when the participant has no perception-form match
	Pregunta        QuestionKind // question classification
	Valor           string       // single answer token
}

// LongFormColumns is the canonical column order of the output table
var LongFormColumns = []string{
	"Taller",
	"Marca temporal",
	"Encuadre",
	"Número de tarjeta",
	"Género",
	"Pregunta",
	"Valor",
}

// AsRow renders the record in the canonical column order
func (r LongFormRecord) AsRow() Row {
	genero := ""
	if r.Genero != nil {
		genero = *r.Genero
	}
	return Row{
		"Taller":            r.Taller,
		"Marca temporal":    r.MarcaTemporal,
		"Encuadre":          r.Encuadre,
		"Número de tarjeta": r.NumeroDeTarjeta,
		"Género":            genero,
		"Pregunta":          string(r.Pregunta),
		"Valor":             r.Valor,
	}
}
