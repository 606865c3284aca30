package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/patternmaster/internal/api"
	"github.com/vytor/patternmaster/internal/errors"
	"github.com/vytor/patternmaster/internal/hint"
	"github.com/vytor/patternmaster/internal/logger"
	"github.com/vytor/patternmaster/internal/pattern"
	"github.com/vytor/patternmaster/internal/repository/sqlstore"
	"github.com/vytor/patternmaster/internal/services"
	"github.com/vytor/patternmaster/internal/testutil"
	"github.com/vytor/patternmaster/internal/testutil/mocks"
)

type testServer struct {
	handler http.Handler
	client  *mocks.MockLLMClient
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	conn := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, conn) })

	client := new(mocks.MockLLMClient)
	completed := sqlstore.NewCompletedPatternRepository(conn)
	users := sqlstore.NewUserRepository(conn)

	gen := pattern.NewGenerator(client, pattern.Settings{
		PatternModel:         "gpt-4-turbo-preview",
		ValidatorModel:       "gpt-4",
		MaxValidationRetries: 3,
		FallbackTimeout:      time.Second,
	})
	patternSvc, err := services.NewPatternService(gen, completed, 64)
	require.NoError(t, err)

	srv := &api.Server{
		PatternService: patternSvc,
		HintService: services.NewHintService(hint.NewPipeline(client, hint.Settings{
			HintModel:       "gpt-4-turbo-preview",
			ConfidenceModel: "gpt-3.5-turbo",
			Timeout:         time.Second,
		})),
		UserService: services.NewUserService(users, completed),
		Store:       conn,
		CORSOrigin:  "*",
	}
	return &testServer{handler: srv.Routes(), client: client}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestGeneratePattern_ShapeEasy(t *testing.T) {
	ts := newTestServer(t)
	ts.client.On("Complete", mock.Anything, mocks.Op(pattern.OpPrimary)).
		Return("●●●●|●●●●●|Count shapes|shape|easy|Adding one shape", nil).Once()

	rec := ts.do(t, http.MethodPost, "/patterns/generate", map[string]string{"userId": "u1", "type": "shape", "difficulty": "easy"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"sequence": "●●●●",
		"answer": "●●●●●",
		"type": "shape",
		"difficulty": "easy",
		"hint": "Count shapes",
		"explanation": "Adding one shape"
	}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGeneratePattern_Timeout(t *testing.T) {
	ts := newTestServer(t)
	ts.client.On("Complete", mock.Anything, mocks.Op(pattern.OpPrimary)).
		Return("", errors.NewTimeoutError(pattern.OpPrimary, context.DeadlineExceeded)).Once()

	rec := ts.do(t, http.MethodPost, "/patterns/generate", map[string]string{"userId": "u1", "type": "numeric"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Request timeout","details":"Pattern generation took too long"}`, rec.Body.String())
	ts.client.AssertNotCalled(t, "Complete", mock.Anything, mocks.Op(pattern.OpFallback))
}

func TestGeneratePattern_Fallback(t *testing.T) {
	ts := newTestServer(t)
	ts.client.On("Complete", mock.Anything, mocks.Op(pattern.OpPrimary)).
		Return("", errors.NewUpstreamError(pattern.OpPrimary, fmt.Errorf("status 503"))).Once()
	ts.client.On("Complete", mock.Anything, mocks.Op(pattern.OpFallback)).
		Return("1, 2, 3, ?|4|Count|numeric|easy|Add one", nil).Once()

	rec := ts.do(t, http.MethodPost, "/patterns/generate", map[string]string{"userId": "u1", "type": "numeric", "difficulty": "hard"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Error generating primary pattern", body["error"])
	assert.Equal(t, "pattern completion failed: status 503", body["details"])
	fallback, ok := body["fallback"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "4", fallback["answer"])
	assert.Equal(t, "hard", fallback["difficulty"])
}

func TestGeneratePattern_TotalFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.client.On("Complete", mock.Anything, mocks.Op(pattern.OpPrimary)).Return("garbage", nil).Once()
	ts.client.On("Complete", mock.Anything, mocks.Op(pattern.OpFallback)).
		Return("", errors.NewUpstreamError(pattern.OpFallback, fmt.Errorf("status 500"))).Once()

	rec := ts.do(t, http.MethodPost, "/patterns/generate", map[string]string{"type": "logical"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to generate pattern","details":"Both primary and fallback pattern generation failed"}`, rec.Body.String())
}

func TestGeneratePattern_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/patterns/generate", map[string]string{"type": "colour"}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/patterns/generate", map[string]string{"difficulty": "insane"}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/patterns/generate", "{not json").Code)
	ts.client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestCompletedPatternsFeedDashboard(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/users/u1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/users", map[string]string{"id": "u1", "email": "ada@example.com", "displayName": "Ada"})
	require.Equal(t, http.StatusOK, rec.Code)

	for i, correct := range []bool{true, false} {
		rec = ts.do(t, http.MethodPost, "/patterns/completed", map[string]any{
			"userId":     "u1",
			"sequence":   fmt.Sprintf("%d, %d, ?", i, i+1),
			"answer":     fmt.Sprint(i + 2),
			"type":       "numeric",
			"difficulty": "easy",
			"correct":    correct,
			"attempts":   i + 1,
			"score":      10,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.NotEmpty(t, decode(t, rec)["id"])
	}

	rec = ts.do(t, http.MethodGet, "/users/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Ada", body["displayName"])
	progress, ok := body["progress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 20.0, progress["totalScore"])
	assert.Equal(t, 2.0, progress["gamesPlayed"])
	assert.Equal(t, 50.0, progress["successRate"])
	assert.Equal(t, "Focus on numeric patterns to improve your overall performance.", progress["recommendation"])

	rec = ts.do(t, http.MethodGet, "/users/u1/completed?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history, 1)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/users/u1/completed?limit=abc", nil).Code)
}

func TestCompletedPattern_Validation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/patterns/completed", map[string]any{"sequence": "1, 2, ?", "type": "numeric"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "userId")
}

func TestPatternOptions(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/patterns/options", map[string]string{"sequence": "Spring→Summer→?", "answer": "Fall", "type": "logical"})

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Options []string `json:"options"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.ElementsMatch(t, []string{"Fall", "Winter", "Autumn", "July"}, body.Options)
}

func TestHint_BothPaths(t *testing.T) {
	ts := newTestServer(t)
	ts.client.On("Complete", mock.Anything, mocks.Op(hint.OpHint)).
		Return("Key Observation: x\n\nHint: look at the gaps\n\nAnalysis: a\n\nTips:\n- t1\n\nRelated Topics: r", nil)
	ts.client.On("Complete", mock.Anything, mocks.Op(hint.OpConfidence)).Return("not a number", nil)

	for _, path := range []string{"/ai/hint", "/api/patterns/hint"} {
		rec := ts.do(t, http.MethodPost, path, map[string]any{
			"pattern":      map[string]string{"sequence": "1, 4, 9, ?", "type": "numeric", "difficulty": "medium"},
			"userAttempts": 2,
		})
		require.Equal(t, http.StatusOK, rec.Code, path)
		body := decode(t, rec)
		assert.Equal(t, "look at the gaps", body["hint"])
		assert.Equal(t, 0.9, body["confidence"])
		assert.Equal(t, 2.0, body["attemptNumber"])
	}
}

func TestHint_Errors(t *testing.T) {
	ts := newTestServer(t)
	ts.client.On("Complete", mock.Anything, mocks.Op(hint.OpHint)).
		Return("", errors.NewUpstreamError(hint.OpHint, fmt.Errorf("status 401"))).Once()

	pat := map[string]string{"sequence": "1, 4, 9, ?", "type": "numeric"}

	rec := ts.do(t, http.MethodPost, "/ai/hint", map[string]any{"pattern": pat, "userAttempts": 7})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/ai/hint", map[string]any{"pattern": pat, "userAttempts": 1})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Error generating hint","details":"hint completion failed: status 401"}`, rec.Body.String())
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return fmt.Errorf("connection refused") }

func TestHealthAndReadiness(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/readyz", nil).Code)

	down := (&api.Server{Store: failingPinger{}}).Routes()
	rec := httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/patterns/generate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery_LogsWithRequestID(t *testing.T) {
	var logs bytes.Buffer
	prev := logger.Default()
	logger.SetDefault(logger.New(logger.WithOutput(&logs), logger.WithColors(false)))
	t.Cleanup(func() { logger.SetDefault(prev) })

	ts := newTestServer(t)
	ts.client.On("Complete", mock.Anything, mocks.Op(pattern.OpPrimary)).Panic("provider exploded").Once()

	req := httptest.NewRequest(http.MethodPost, "/patterns/generate", bytes.NewBufferString(`{"type":"shape"}`))
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	var panicLine string
	for _, line := range strings.Split(logs.String(), "\n") {
		if strings.Contains(line, "panic recovered") {
			panicLine = line
		}
	}
	require.NotEmpty(t, panicLine, logs.String())
	assert.Contains(t, panicLine, "request_id=req-42")
	assert.Contains(t, logs.String(), "request completed with server error")
}
