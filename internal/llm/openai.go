package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vytor/patternmaster/internal/errors"
	"github.com/vytor/patternmaster/internal/logger"
)

// OpenAIClient talks to a chat-completions compatible endpoint.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAI(apiKey, baseURL string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		// Per-request deadlines come from Request.Timeout; this is the outer bound.
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

var _ Client = (*OpenAIClient)(nil)

// CloseIdleConnections releases pooled connections to the provider.
func (c *OpenAIClient) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

type chatRequest struct {
	Model            string    `json:"model"`
	Messages         []Message `json:"messages"`
	Temperature      float64   `json:"temperature"`
	PresencePenalty  float64   `json:"presence_penalty,omitempty"`
	FrequencyPenalty float64   `json:"frequency_penalty,omitempty"`
	MaxTokens        int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	op := opName(req)
	log := logger.FromContext(ctx).WithPrefix("llm").WithFields(map[string]any{"op": op, "model": req.Model})

	if c.apiKey == "" {
		return "", errors.NewUpstreamError(op, fmt.Errorf("OPENAI_API_KEY is empty"))
	}

	payload, err := json.Marshal(chatRequest{
		Model:            req.Model,
		Messages:         req.Messages,
		Temperature:      req.Temperature,
		PresencePenalty:  req.PresencePenalty,
		FrequencyPenalty: req.FrequencyPenalty,
		MaxTokens:        req.MaxTokens,
	})
	if err != nil {
		return "", errors.NewUpstreamError(op, err)
	}

	callCtx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return "", errors.NewUpstreamError(op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Debug("sending completion request: timeout=%v, max_tokens=%d", req.Timeout, req.MaxTokens)
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("completion request failed after %v: %v", time.Since(start), err)
		return "", classify(callCtx, op, err)
	}
	defer resp.Body.Close()

	log.Debug("completion response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("completion request failed: status=%d, body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
		return "", errors.NewUpstreamError(op, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode completion response: %v", err)
		return "", classify(callCtx, op, err)
	}
	if len(out.Choices) == 0 {
		return "", errors.NewUpstreamError(op, fmt.Errorf("empty response"))
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
