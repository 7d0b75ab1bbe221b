package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"finchat/internal/ai"
	"finchat/internal/chatroom"
	"finchat/internal/prompts"
)

type fakeCompleter struct {
	response string
	err      error
	requests []*ai.ChatRequest
	notify   chan struct{}
}

func (f *fakeCompleter) Complete(ctx context.Context, req *ai.ChatRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.notify != nil {
		f.notify <- struct{}{}
	}
	return f.response, f.err
}

func newTestWorker(t *testing.T, completer Completer) (*Worker, *chatroom.Manager) {
	t.Helper()
	rooms, err := chatroom.NewManager(t.TempDir(), 4)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	catalog, err := prompts.Load()
	if err != nil {
		t.Fatalf("prompts.Load: %v", err)
	}
	return NewWorker(rooms, completer, catalog, 4), rooms
}

func seedConversation(t *testing.T, rooms *chatroom.Manager, userID string) {
	t.Helper()
	for _, e := range []chatroom.ThreadEntry{
		{Role: "user", Type: "question", Content: "what about NISA"},
		{Role: "assistant", Type: "answer", Content: "tax-free investing"},
	} {
		if err := rooms.AddThread(userID, e); err != nil {
			t.Fatalf("AddThread: %v", err)
		}
	}
	if err := rooms.UpdateUserMessages(userID, []chatroom.ThreadEntry{
		{Role: "user", Content: "what about NISA"},
		{Role: "assistant", Content: "tax-free investing"},
	}); err != nil {
		t.Fatalf("UpdateUserMessages: %v", err)
	}
}

func TestShouldSummarize(t *testing.T) {
	cases := []struct {
		length int
		want   bool
	}{
		{0, false},
		{1, false},
		{6, false},
		{7, true},
		{14, true},
		{15, false},
	}
	for _, c := range cases {
		if got := ShouldSummarize(c.length); got != c.want {
			t.Errorf("ShouldSummarize(%d) = %v, want %v", c.length, got, c.want)
		}
	}
}

func TestSummarizeOverwritesSummary(t *testing.T) {
	completer := &fakeCompleter{response: "fresh digest"}
	w, rooms := newTestWorker(t, completer)
	seedConversation(t, rooms, "u1")
	if err := rooms.SetSummary("u1", "old digest"); err != nil {
		t.Fatalf("SetSummary: %v", err)
	}

	if err := w.Summarize(context.Background(), "u1"); err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	got, err := rooms.Summary("u1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got != "fresh digest" {
		t.Errorf("summary = %q, want %q", got, "fresh digest")
	}

	if len(completer.requests) != 1 {
		t.Fatalf("expected 1 completion request, got %d", len(completer.requests))
	}
	prompt := completer.requests[0].Messages[0].Content
	if !strings.Contains(prompt, "old digest") {
		t.Error("prompt should embed the previous digest")
	}
	if !strings.Contains(prompt, "what about NISA") {
		t.Error("prompt should embed the history window")
	}
}

func TestSummarizeFailureKeepsPrevious(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("provider down")}
	w, rooms := newTestWorker(t, completer)
	seedConversation(t, rooms, "u1")
	if err := rooms.SetSummary("u1", "kept"); err != nil {
		t.Fatalf("SetSummary: %v", err)
	}

	if err := w.Summarize(context.Background(), "u1"); err == nil {
		t.Fatal("expected an error")
	}

	got, err := rooms.Summary("u1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got != "kept" {
		t.Errorf("summary = %q, want %q (unchanged)", got, "kept")
	}
}

func TestSubmitRunsInBackground(t *testing.T) {
	completer := &fakeCompleter{response: "digest", notify: make(chan struct{}, 1)}
	w, rooms := newTestWorker(t, completer)
	seedConversation(t, rooms, "u1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	if !w.Submit("u1") {
		t.Fatal("Submit returned false")
	}

	select {
	case <-completer.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("summarization job never ran")
	}
}

func TestSubmitDropsWhenFull(t *testing.T) {
	completer := &fakeCompleter{response: "digest"}
	rooms, err := chatroom.NewManager(t.TempDir(), 4)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	catalog, err := prompts.Load()
	if err != nil {
		t.Fatalf("prompts.Load: %v", err)
	}
	w := NewWorker(rooms, completer, catalog, 1)

	// Worker not started: first job fills the queue, second drops.
	if !w.Submit("u1") {
		t.Fatal("first submission should be accepted")
	}
	if w.Submit("u2") {
		t.Fatal("second submission should drop when the queue is full")
	}
}
