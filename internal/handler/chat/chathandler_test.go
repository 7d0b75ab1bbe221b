package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finchat/internal/ai"
	"finchat/internal/chatroom"
	"finchat/internal/config"
	"finchat/internal/db"
	"finchat/internal/db/migrations"
	"finchat/internal/middleware"
	"finchat/internal/prompts"
	"finchat/internal/summary"
	"finchat/internal/svc"
)

// scriptedProvider streams the same chunks for every request,
// including the auxiliary classify/condense completions.
type scriptedProvider struct {
	chunks []string
}

func (p *scriptedProvider) ID() string { return "scripted" }

func (p *scriptedProvider) Stream(ctx context.Context, req *ai.ChatRequest) (<-chan ai.StreamEvent, error) {
	events := make(chan ai.StreamEvent, len(p.chunks)+1)
	for _, chunk := range p.chunks {
		events <- ai.StreamEvent{Type: ai.EventTypeText, Text: chunk}
	}
	events <- ai.StreamEvent{Type: ai.EventTypeDone}
	close(events)
	return events, nil
}

func newTestContext(t *testing.T) *svc.ServiceContext {
	t.Helper()

	migrations.QuietMode = true
	store, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	rooms, err := chatroom.NewManager(t.TempDir(), 6)
	require.NoError(t, err)

	catalog, err := prompts.Load()
	require.NoError(t, err)

	provider := &scriptedProvider{chunks: []string{"Hello, ", "world"}}
	dispatcher := ai.NewDispatcher([]ai.Provider{provider}, "scripted", ai.DefaultRetryConfig(), 1024)

	return &svc.ServiceContext{
		Config:  config.Config{SecretKey: "test-secret"},
		DB:      store,
		Rooms:   rooms,
		AI:      dispatcher,
		Summary: summary.NewWorker(rooms, dispatcher, catalog, 4),
		Prompts: catalog,
	}
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, "u1")
	return req.WithContext(ctx)
}

func TestChatHandlerStreamsSSE(t *testing.T) {
	svcCtx := newTestContext(t)
	h := ChatHandler(svcCtx, "chat")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/chat", `{"message": "What is NISA?"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "data: {\"text\":\"Hello, \"}\n\n")
	assert.Contains(t, body, "data: {\"text\":\"world\"}\n\n")
	assert.NotContains(t, body, `"error"`)

	// Both sides of the turn were persisted.
	messages, err := svcCtx.Rooms.Messages("u1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "What is NISA?", messages[0].Content)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.Equal(t, "Hello, world", messages[1].Content)
}

func TestSeventhChatQueuesExactlyOneSummarization(t *testing.T) {
	svcCtx := newTestContext(t)
	h := ChatHandler(svcCtx, "chat")

	// The worker is never started, so queued jobs stay observable.
	for i := 1; i <= 7; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, authedRequest(http.MethodPost, "/chat", `{"message": "How should I invest?"}`))
		require.Equal(t, http.StatusOK, rec.Code, "call %d", i)
		if i < 7 {
			assert.Zero(t, svcCtx.Summary.Pending(), "no summarization before the seventh call (call %d)", i)
		}
	}

	// Each turn persists a user and an assistant message, so the
	// 14-message boundary lands exactly on the seventh call.
	assert.Equal(t, 1, svcCtx.Summary.Pending())

	messages, err := svcCtx.Rooms.Messages("u1")
	require.NoError(t, err)
	assert.Len(t, messages, 14)
}

func TestHistoryIsBareListAndClearEmptiesIt(t *testing.T) {
	svcCtx := newTestContext(t)

	rec := httptest.NewRecorder()
	ChatHandler(svcCtx, "chat").ServeHTTP(rec, authedRequest(http.MethodPost, "/chat", `{"message": "What is iDeCo?"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	// A populated history is a top-level JSON array, not a wrapper object.
	rec = httptest.NewRecorder()
	HistoryHandler(svcCtx).ServeHTTP(rec, authedRequest(http.MethodGet, "/conversation_history", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	body := strings.TrimSpace(rec.Body.String())
	assert.True(t, strings.HasPrefix(body, "["), "expected a JSON array, got %s", body)

	var history []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &history))
	assert.Len(t, history, 2)

	rec = httptest.NewRecorder()
	ClearHandler(svcCtx).ServeHTTP(rec, authedRequest(http.MethodPost, "/clear", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	// Cleared history is the empty array, never null or {"messages":[]}.
	rec = httptest.NewRecorder()
	HistoryHandler(svcCtx).ServeHTTP(rec, authedRequest(http.MethodGet, "/conversation_history", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestChatHandlerRejectsEmptyMessageBeforeStreaming(t *testing.T) {
	svcCtx := newTestContext(t)
	h := ChatHandler(svcCtx, "chat")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/chat", `{"message": "   "}`))

	// No chunk was produced, so the error is a plain HTTP response,
	// not an in-band SSE event.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEqual(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "message is required")
}
