// pkg/analysis/news.go
package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

// FramedStory is one narrative reinterpretation of the neutral base story
type FramedStory struct {
	Frame model.Frame
	Text  string
}

// Models occasionally prefix output with a list marker or escaped slash.
var leadingJunkRe = regexp.MustCompile(`^(?:\s|\\|/|[\d.\-)])+`)

// GenerateNews rewrites the neutral story under each of the three narrative
// frames, in canonical frame order. A blank neutral story falls back to an
// instruction to describe the dominant theme objectively.
func (a *Analyzer) GenerateNews(ctx context.Context, neutralStory string) ([]FramedStory, error) {
	base := strings.TrimSpace(neutralStory)
	if base == "" {
		base = missingNeutralStory
	}

	frames := []model.Frame{model.FrameDistrust, model.FramePolarization, model.FrameFearControl}
	stories := make([]FramedStory, 0, len(frames))
	for i, frame := range frames {
		text, err := a.completer.Complete(ctx, newsFramePrompt(base, i))
		if err != nil {
			return nil, fmt.Errorf("news generation failed for frame %q: %w", frame.Display(), err)
		}
		text = leadingJunkRe.ReplaceAllString(text, "")
		stories = append(stories, FramedStory{Frame: frame, Text: text})

		if a.logger != nil {
			a.logger.Debug("Framed story generated",
				zap.String("frame", frame.Display()),
				zap.Int("length", len(text)))
		}
	}
	return stories, nil
}
