package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vytor/patternmaster/internal/errors"
	"github.com/vytor/patternmaster/internal/logger"
	"google.golang.org/genai"
)

// GeminiClient maps chat-style requests onto the Gemini API. System messages
// become the system instruction and assistant turns become model turns.
type GeminiClient struct {
	cli        *genai.Client
	httpClient *http.Client
}

// NewGemini creates a Gemini client. An empty baseURL uses the public endpoint.
func NewGemini(ctx context.Context, apiKey, baseURL string) (*GeminiClient, error) {
	httpClient := &http.Client{}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, httpClient: httpClient}, nil
}

// CloseIdleConnections releases pooled connections to the provider.
func (g *GeminiClient) CloseIdleConnections() {
	g.httpClient.CloseIdleConnections()
}

var _ Client = (*GeminiClient)(nil)

func (g *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	op := opName(req)
	log := logger.FromContext(ctx).WithPrefix("llm").WithFields(map[string]any{"op": op, "model": req.Model})

	contents, system := toGeminiContents(req.Messages)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.PresencePenalty != 0 {
		cfg.PresencePenalty = genai.Ptr(float32(req.PresencePenalty))
	}
	if req.FrequencyPenalty != 0 {
		cfg.FrequencyPenalty = genai.Ptr(float32(req.FrequencyPenalty))
	}

	callCtx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.cli.Models.GenerateContent(callCtx, req.Model, contents, cfg)
	if err != nil {
		log.Warn("generate content failed after %v: %v", time.Since(start), err)
		return "", classify(callCtx, op, err)
	}
	log.Debug("generate content returned in %v", time.Since(start))

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.NewUpstreamError(op, fmt.Errorf("empty response"))
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

func toGeminiContents(msgs []Message) ([]*genai.Content, *genai.Content) {
	var (
		contents []*genai.Content
		system   []*genai.Part
	)
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			system = append(system, &genai.Part{Text: m.Content})
		case RoleAssistant:
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: m.Content}}})
		}
	}
	if len(system) == 0 {
		return contents, nil
	}
	return contents, &genai.Content{Parts: system}
}
