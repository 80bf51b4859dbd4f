// pkg/analysis/prompts.go
package analysis

import "fmt"

// Prompt texts live in Spanish because the workshops run in Spanish and the
// facilitators read the model output directly.

const reactionSystem = "Eres un analista pedagógico experto en alfabetización mediática."

// ReactionAnalysisPrompt builds the cross-form reaction analysis request
// from a numbered row sample of the joined responses.
func ReactionAnalysisPrompt(sample string) Request {
	prompt := fmt.Sprintf(`Eres un analista de talleres educativos sobre desinformación.

Tienes datos combinados de tres formularios:
- [F0] Contexto del grupo y del docente.
- [F1] Percepciones de inseguridad y emociones previas.
- [F2] Reacciones ante las noticias con diferentes encuadres narrativos.

Cada fila puede estar vinculada por un número de tarjeta que representa a una persona.

Tu tarea:
1. Identifica patrones de reacción emocional ante las tres noticias (miedo, enojo, empatía, desconfianza, indiferencia, etc.).
2. Distingue qué encuadres (desconfianza, polarización, miedo/control) provocaron más reacciones emocionales fuertes o reflexivas.
3. Detecta diferencias por contexto del grupo (según F0) y por percepciones iniciales (F1).
4. Resume los hallazgos en 4 secciones:
- "Principales patrones emocionales"
- "Comparación entre encuadres"
- "Factores del contexto que influyen"
- "Recomendaciones pedagógicas para la siguiente sesión"
5. Agrega un breve párrafo de síntesis general para el reporte final.

Datos:
%s

Responde en Markdown estructurado.`, sample)

	return Request{
		System:      reactionSystem,
		Prompt:      prompt,
		Temperature: 0.4,
		MaxTokens:   1200,
	}
}

const trendSystem = "Eres un analista de datos cualitativos especializado en emociones sociales."

// TrendAnalysisPrompt builds the dominant-theme analysis request from the
// implementation-form context and a perception-form sample.
func TrendAnalysisPrompt(form0Context, form1Sample string) Request {
	if form0Context == "" {
		form0Context = "(vacío)"
	}
	if form1Sample == "" {
		form1Sample = "(vacío)"
	}

	prompt := fmt.Sprintf(`Actúa como un analista de datos cualitativos experto en comunicación social, seguridad y percepción pública.
Tu tarea es interpretar información proveniente de talleres educativos sobre integridad de la información, desinformación y emociones sociales.

Dispones de dos fuentes de entrada:

[Formulario 0 – Contexto del grupo y del entorno local]
%s

[Formulario 1 – Percepciones de inseguridad y consumo informativo]
%s

Objetivo del análisis:
Identificar el tema o fenómeno dominante que genera inseguridad entre las personas participantes,
entendiendo el contexto y el tipo específico de problema (no solo la categoría general).

El tema dominante debe reflejar no solo "qué" tipo de fenómeno ocurre,
sino también "en qué contexto o modalidad" (por ejemplo: "violencia de género en espacios públicos",
"criminalidad asociada al narcotráfico", "corrupción institucional ligada a la seguridad", etc.).

Tareas específicas:
1. Analiza ambas fuentes para determinar el tema o fenómeno dominante con su contexto: tipo de hecho, actores, causas y entorno social o mediático.
2. Distingue las subdimensiones o manifestaciones del fenómeno (por ejemplo, "violencia" → "violencia de género" o "violencia digital").
3. Describe las emociones predominantes (miedo, enojo, desconfianza, indignación, tristeza, etc.) y su relación con el contexto del grupo.
4. Resume las causas percibidas y los actores involucrados (autoridades, grupos delictivos, comunidad, medios, etc.).
5. Sugiere hasta 10 palabras clave representativas del tema y su entorno.
6. Incluye 2 respuestas representativas de los formularios que ilustren el fenómeno y su tono emocional.

Formato de salida (JSON válido y estructurado):
{
"dominant_theme": "<tema o fenómeno dominante, frase corta y contextualizada>",
"rationale": "<explicación breve en 2-4 oraciones que justifique por qué se identificó este tema y cómo se manifiesta en contexto>",
"emotional_tone": "<emociones predominantes detectadas>",
"top_keywords": ["<palabra1>", "<palabra2>", "<palabra3>"],
"representative_answers": ["<cita1>", "<cita2>"]
}

Reglas:
- El tema debe ser específico y contextual (no solo "violencia" o "inseguridad").
- Usa solo información que pueda inferirse de los datos.
- Mantén tono analítico, educativo y en español mexicano natural.
- Devuelve únicamente JSON estructurado.`, form0Context, form1Sample)

	return Request{
		System:      trendSystem,
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   900,
	}
}

const newsSystem = "Eres un experto en narrativa persuasiva. Adaptas historias manteniendo los hechos, cambiando sólo el enfoque emocional."

const missingNeutralStory = "(Sin noticia neutral generada; describe de forma objetiva el tema dominante)"

// newsFrameInstructions holds the per-frame rewriting instructions in
// canonical frame order.
var newsFrameInstructions = []string{
	`Rol:
Redacta esta misma noticia como una persona que busca sembrar desconfianza y responsabilizar a actores específicos.

Instrucciones:
- Mantén los hechos principales sin inventar datos nuevos.
- Reescribe la narrativa enfatizando la desconfianza institucional y señalando culpables explícitos.
- Máximo 220 palabras. Evita listas.
- Usa estos elementos del encuadre:
Atribuye la responsabilidad a ciertos actores, culpando y/o exigiendo.
Usa un lenguaje causal ("por", "debido a", "por culpa de").
Orienta desconfianza institucional.
Duda sobre la imparcialidad o transparencia institucional.
Utiliza un lenguaje de reclamo generalizado ("todos son corruptos", "nunca dicen la verdad").
Usa referencias a traición, manipulación o colusión.
Suele deslegitimar fuentes oficiales o periodísticas.
Suele tener presencia de emojis con expresión escéptica o de advertencia (🤔 😒 ⚠️ 👀).
Usa signos como "¿?" y "…" para enfatizar la sospecha o ironía.
Incorpora mayúsculas parciales o exclamaciones para representar tono de hartazgo.`,

	`Rol:
Redacta esta noticia con un encuadre que polariza a dos grupos sociales, fomentando la exclusión del "otro".

Instrucciones:
- Conserva los hechos clave sin inventar nueva información.
- Usa lenguaje que contraste claramente "nosotros vs. ellos", apelando a emociones intensas.
- Máximo 220 palabras. Evita listas.
- Usa estos elementos del encuadre:
Usa un lenguaje emocional y alarmista.
Acentúa la contraposición de grupos usando palabras como "ellos" vs "nosotros".
Refuerza prejuicios y resentimientos.
Busca una validación emocional más que racional.
Hace uso de la culpabilización generalizada ("los migrantes", "los jóvenes", "las mujeres").
Hay una ausencia de pluralidad de voces, sólo se cuenta un lado de la historia.
Usa un lenguaje discriminatorio o juicios sin pruebas.
Contiene asociaciones repetitivas entre grupo y problema.
Usa signos de exclamación, mayúsculas parciales, puntos suspensivos (…) y emojis de conflicto (😡 😤 🔥 ⚔️ 💣 🚫).`,

	`Rol:
Reescribe la noticia utilizando un encuadre que enfatice el miedo y la necesidad de control o medidas extremas.

Instrucciones:
- Mantén los hechos originales, pero magnifica las consecuencias negativas y la sensación de amenaza.
- Sugiere medidas de control o vigilancia como respuesta.
- Máximo 220 palabras. Evita listas.
- Usa estos elementos del encuadre:
Usa un lenguaje apocalíptico de urgencia y totalizador.
Imágenes impactantes o repetición de violencia.
Ausencia de datos verificables.
Justificación del control o vigilancia.
Uso exagerado de signos de puntuación para remarcar desesperación o urgencia (‼️, ❗❗❗, …, ???, !!!).
Emojis que usa: 😱 😨 😰 💀 🔥 ⚠️ 🚨 💣 🔒 📹 🔔
Usa mayúsculas parciales para enfatizar un tono de alarma.
Limita la libertad a través de sugerencias y recomendaciones usando el peligro como justificación.
Usa la repetición de palabras o frases: "Ya es tarde… demasiado tarde… 😨"`,
}

// newsFramePrompt builds the rewriting request for one frame index (0-based)
func newsFramePrompt(neutralStory string, frameIdx int) Request {
	prompt := fmt.Sprintf(`Contexto:
Esta es la noticia neutral que debes reinterpretar:
---
%s
---

%s`, neutralStory, newsFrameInstructions[frameIdx])

	return Request{
		System:      newsSystem,
		Prompt:      prompt,
		Temperature: 0.55,
	}
}
