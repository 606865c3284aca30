package pattern

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/patternmaster/internal/llm"
	"github.com/vytor/patternmaster/internal/logger"
	"github.com/vytor/patternmaster/internal/models"
)

const validatorTimeout = 5 * time.Second

// Validator asks the model whether a symbolic pattern is ambiguous.
type Validator struct {
	client llm.Client
	model  string
}

func NewValidator(client llm.Client, model string) *Validator {
	return &Validator{client: client, model: model}
}

// Accept reports whether p may be served. The check is a substring match on
// "no", and a failed call accepts the pattern.
func (v *Validator) Accept(ctx context.Context, p models.Pattern) bool {
	log := logger.FromContext(ctx).WithPrefix("pattern")

	answer, err := v.client.Complete(ctx, llm.Request{
		Op:          OpValidate,
		Model:       v.model,
		Messages:    []llm.Message{llm.User(ValidatorPrompt(p.Sequence))},
		Temperature: 0.3,
		MaxTokens:   5,
		Timeout:     validatorTimeout,
	})
	if err != nil {
		log.Warn("validation call failed, accepting pattern: %v", err)
		return true
	}

	ok := strings.Contains(strings.ToLower(answer), "no")
	log.Debug("validation answer=%q accepted=%t", answer, ok)
	return ok
}
