// Package llm is the gateway to the language-model provider. Every call is
// bounded by its own timeout and fails with a TIMEOUT or UPSTREAM_ERROR
// application error.
package llm

import (
	"context"
	stderrors "errors"
	"net"
	"time"

	"github.com/vytor/patternmaster/internal/errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one completion call. Zero penalties and zero MaxTokens are left
// to the provider defaults; zero Timeout means the caller's context decides.
type Request struct {
	Op               string
	Model            string
	Messages         []Message
	Temperature      float64
	PresencePenalty  float64
	FrequencyPenalty float64
	MaxTokens        int
	Timeout          time.Duration
}

// Client performs a single completion and returns the trimmed text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// System and User build the two message kinds the prompts use.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }
func User(content string) Message   { return Message{Role: RoleUser, Content: content} }

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func opName(req Request) string {
	if req.Op != "" {
		return req.Op
	}
	return "completion"
}

// classify maps a transport failure to the gateway's error kinds.
func classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewTimeoutError(op, err)
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.NewTimeoutError(op, err)
	}
	return errors.NewUpstreamError(op, err)
}
