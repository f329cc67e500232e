package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type modelCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeModels struct {
	mu    sync.Mutex
	calls []modelCall
	queue []fakeResponse
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, modelCall{model: model, contents: contents, config: config})
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func stubWait(t *testing.T) *[]time.Duration {
	t.Helper()
	var waited []time.Duration
	original := wait
	wait = func(ctx context.Context, d time.Duration) error {
		waited = append(waited, d)
		return ctx.Err()
	}
	t.Cleanup(func() { wait = original })
	return &waited
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	waited := stubWait(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(textResponse("retry ok"), nil)

	g := &Generator{models: models, model: "gemini-pro", maxRetries: 2, logger: zap.NewNop()}

	output, err := g.GenerateContent(context.Background(), "system", "message")
	require.NoError(t, err)
	assert.Equal(t, "retry ok", output)
	require.Len(t, models.calls, 2)
	assert.Equal(t, []time.Duration{retryBaseDelay}, *waited)

	for _, call := range models.calls {
		assert.Equal(t, "gemini-pro", call.model)
		require.NotNil(t, call.config.SystemInstruction)
		assert.Equal(t, "system", call.config.SystemInstruction.Parts[0].Text)
		assert.Equal(t, "application/json", call.config.ResponseMIMEType)
		require.Len(t, call.contents, 1)
		assert.Equal(t, "message", call.contents[0].Parts[0].Text)
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	stubWait(t)

	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := &Generator{models: models, model: "gemini-pro", maxRetries: 2, logger: zap.NewNop()}

	_, err := g.GenerateContent(context.Background(), "sys", "msg")
	require.Error(t, err)
	assert.Len(t, models.calls, 2)
}

func TestGeneratorStopsRetryingWhenContextIsCancelled(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"})
	models.enqueue(textResponse("too late"), nil)

	g := &Generator{models: models, model: "gemini-pro", maxRetries: 3, logger: zap.NewNop()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateContent(ctx, "sys", "msg")
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, models.calls, 1)
}

func TestGeneratorDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	})

	g := &Generator{models: models, model: "gemini-pro", maxRetries: 3, logger: zap.NewNop()}

	_, err := g.GenerateContent(context.Background(), "sys", "msg")
	require.Error(t, err)
	assert.Len(t, models.calls, 1)
}

func TestGeneratorDoesNotRetryClientErrors(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := &Generator{models: models, model: "gemini-pro", maxRetries: 3, logger: zap.NewNop()}

	_, err := g.GenerateContent(context.Background(), "", "msg")
	require.Error(t, err)
	assert.Len(t, models.calls, 1)
	assert.Nil(t, models.calls[0].config.SystemInstruction)
}

func TestGeneratorRejectsEmptyResponses(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(&genai.GenerateContentResponse{}, nil)

	g := &Generator{models: models, model: "gemini-pro", maxRetries: 1, logger: zap.NewNop()}

	_, err := g.GenerateContent(context.Background(), "sys", "msg")
	assert.ErrorContains(t, err, "empty response")

	_, err = g.GenerateContent(context.Background(), "sys", "  ")
	assert.ErrorContains(t, err, "message must not be empty")

	var nilGen *Generator
	_, err = nilGen.GenerateContent(context.Background(), "sys", "msg")
	assert.Error(t, err)
	assert.Empty(t, nilGen.Model())
}

func TestRetryDelay(t *testing.T) {
	d, ok := retryDelay(genai.APIError{Code: http.StatusTooManyRequests, Message: "Please retry in 12.5s."}, 1)
	assert.True(t, ok)
	assert.Equal(t, 12500*time.Millisecond, d)

	d, ok = retryDelay(genai.APIError{Code: http.StatusServiceUnavailable}, 3)
	assert.True(t, ok)
	assert.Equal(t, 4*retryBaseDelay, d)

	_, ok = retryDelay(errors.New("network down"), 1)
	assert.False(t, ok)
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), nil, " ", aiConfig())
	assert.Error(t, err)
}
