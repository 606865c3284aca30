package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/patternmaster/internal/errors"
)

func TestHasCode_WalksWrappedChain(t *testing.T) {
	inner := errors.NewTimeoutError("pattern completion", context.DeadlineExceeded)
	outer := errors.NewGenerationFailedError(fmt.Errorf("attempt 2: %w", inner))

	assert.True(t, errors.HasCode(outer, errors.ErrCodeGenerationFailed))
	assert.True(t, errors.HasCode(outer, errors.ErrCodeTimeout))
	assert.False(t, errors.HasCode(outer, errors.ErrCodeFormat))
	assert.False(t, errors.HasCode(fmt.Errorf("plain"), errors.ErrCodeTimeout))
	assert.False(t, errors.HasCode(nil, errors.ErrCodeTimeout))
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", errors.NewFormatError("expected 6 parts, got 3"))

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeFormat, appErr.Code)

	_, ok = errors.As(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestWithMessage(t *testing.T) {
	upstream := errors.NewUpstreamError("hint completion", fmt.Errorf("status 429"))

	out := errors.WithMessage(upstream, "Error generating hint")

	assert.Equal(t, "Error generating hint", out.Message)
	assert.Equal(t, errors.ErrCodeUpstream, out.Code)
	assert.Equal(t, http.StatusInternalServerError, out.Status)
	assert.Equal(t, "hint completion failed: status 429", out.Details)

	plain := errors.WithMessage(fmt.Errorf("disk full"), "Error generating hint")
	assert.Equal(t, errors.ErrCodeInternal, plain.Code)
	assert.Equal(t, "disk full", plain.Details)
}

func TestConstructorsStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errors.NewNotFoundError("user", "u1").Status)
	assert.Equal(t, http.StatusBadRequest, errors.NewValidationError("type", "unknown").Status)
	assert.Equal(t, http.StatusBadRequest, errors.NewBadRequestError("bad json").Status)

	gen := errors.NewGenerationFailedError(nil)
	assert.Equal(t, "Failed to generate pattern", gen.Message)
	assert.Equal(t, "Both primary and fallback pattern generation failed", gen.Details)
}

func TestDetails(t *testing.T) {
	assert.Equal(t, "", errors.Details(nil))
	assert.Equal(t, "plain", errors.Details(fmt.Errorf("plain")))
	assert.Equal(t, "invalid pattern format: missing hint", errors.Details(errors.NewFormatError("invalid pattern format: missing hint")))
	assert.Equal(t, "pattern \"x\" rejected as ambiguous after 3 attempts",
		errors.Details(errors.NewValidationRejectedError("x", 3)))
}
