package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/patternmaster/internal/llm"
)

// MockLLMClient is a mock implementation of llm.Client
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// Op matches a request by its Op label.
func Op(op string) any {
	return mock.MatchedBy(func(req llm.Request) bool { return req.Op == op })
}
