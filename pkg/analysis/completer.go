// pkg/analysis/completer.go
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

// Request is one chat completion call
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer produces one completion per request. The analysis services only
// depend on this interface so tests can substitute a canned backend.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// HTTPCompleter talks to an OpenAI-compatible chat completions endpoint
type HTTPCompleter struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPCompleter creates a completer for the given endpoint
func NewHTTPCompleter(baseURL, apiKey, model string, logger *zap.Logger) *HTTPCompleter {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &HTTPCompleter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete executes one chat completion call
func (c *HTTPCompleter) Complete(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", model.NewDataError(model.KindConfiguration, "OPENAI_API_KEY is required for analysis")
	}

	messages := []chatMessage{}
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    messages,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	started := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", model.WrapTransport(err, "chat completion request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", model.WrapTransport(err, "failed to read completion response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", model.WrapTransport(
			fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))),
			"chat completion request failed")
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", model.WrapTransport(err, "failed to decode completion response")
	}
	if parsed.Error != nil {
		return "", model.WrapTransport(fmt.Errorf("%s", parsed.Error.Message), "completion API error")
	}
	if len(parsed.Choices) == 0 {
		return "", model.WrapTransport(fmt.Errorf("response carried no choices"), "empty completion")
	}

	if c.logger != nil {
		c.logger.Debug("Completion finished",
			zap.String("model", c.model),
			zap.Duration("elapsed", time.Since(started)))
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
