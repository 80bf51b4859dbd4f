// pkg/analysis/trends.go
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

// TrendResult is the structured outcome of the dominant-theme analysis
type TrendResult struct {
	DominantTheme         string   `json:"dominant_theme"`
	Rationale             string   `json:"rationale"`
	EmotionalTone         string   `json:"emotional_tone"`
	TopKeywords           []string `json:"top_keywords"`
	RepresentativeAnswers []string `json:"representative_answers"`
}

// Analyzer runs the qualitative analyses on top of a completion backend
type Analyzer struct {
	completer Completer
	logger    *zap.Logger
}

// NewAnalyzer creates an analyzer
func NewAnalyzer(completer Completer, logger *zap.Logger) *Analyzer {
	return &Analyzer{completer: completer, logger: logger}
}

// AnalyzeReactions produces the cross-form reaction report in Markdown from
// a numbered row sample of the joined responses.
func (a *Analyzer) AnalyzeReactions(ctx context.Context, sample string) (string, error) {
	report, err := a.completer.Complete(ctx, ReactionAnalysisPrompt(sample))
	if err != nil {
		return "", fmt.Errorf("reaction analysis failed: %w", err)
	}
	return report, nil
}

// Completion backends sometimes wrap the requested JSON in prose or fences.
var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// AnalyzeTrends identifies the dominant theme of the workshop from the
// implementation-form context and a perception-form sample.
func (a *Analyzer) AnalyzeTrends(ctx context.Context, form0Context, form1Sample string) (*TrendResult, error) {
	text, err := a.completer.Complete(ctx, TrendAnalysisPrompt(form0Context, form1Sample))
	if err != nil {
		return nil, fmt.Errorf("trend analysis failed: %w", err)
	}

	jsonStr := jsonObjectRe.FindString(text)
	if jsonStr == "" {
		return nil, fmt.Errorf("trend analysis returned no JSON object")
	}

	var result TrendResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to decode trend analysis: %w", err)
	}

	if a.logger != nil {
		a.logger.Info("Trend analysis complete",
			zap.String("dominant_theme", result.DominantTheme),
			zap.Int("keywords", len(result.TopKeywords)))
	}
	return &result, nil
}
