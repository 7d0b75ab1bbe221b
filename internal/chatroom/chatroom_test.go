package chatroom

import (
	"encoding/json"
	"os"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir(), 3)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestGetOrCreateIdempotent(t *testing.T) {
	m := newTestManager(t)

	first, err := m.GetOrCreate("u1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := m.GetOrCreate("u1")
	if err != nil {
		t.Fatalf("GetOrCreate again: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("file set size changed: %d vs %d", len(first), len(second))
	}
	for name, path := range first {
		if second[name] != path {
			t.Errorf("path for %s changed: %s vs %s", name, path, second[name])
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file %s not initialized: %v", name, err)
		}
	}
}

func TestAddMessagePreservesOrder(t *testing.T) {
	m := newTestManager(t)

	for _, content := range []string{"first", "second", "third"} {
		if err := m.AddMessage("u1", Message{Role: "user", Content: content}); err != nil {
			t.Fatalf("AddMessage: %v", err)
		}
	}

	msgs, err := m.Messages("u1")
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if msgs[i].Content != want {
			t.Errorf("message %d = %q, want %q", i, msgs[i].Content, want)
		}
	}
}

func TestUpdateUserMessagesDropOldest(t *testing.T) {
	m := newTestManager(t) // window of 3

	for i := 0; i < 5; i++ {
		pair := []ThreadEntry{
			{Role: "user", Content: string(rune('a' + i))},
		}
		if err := m.UpdateUserMessages("u1", pair); err != nil {
			t.Fatalf("UpdateUserMessages: %v", err)
		}
	}

	window, err := m.UserHistory("u1")
	if err != nil {
		t.Fatalf("UserHistory: %v", err)
	}
	if len(window) != 3 {
		t.Fatalf("window length = %d, want 3", len(window))
	}
	for i, want := range []string{"c", "d", "e"} {
		if window[i].Content != want {
			t.Errorf("window[%d] = %q, want %q", i, window[i].Content, want)
		}
	}
}

func TestUpdateUserMessagesShortWindow(t *testing.T) {
	m := newTestManager(t)

	if err := m.UpdateUserMessages("u1", []ThreadEntry{{Role: "user", Content: "only"}}); err != nil {
		t.Fatalf("UpdateUserMessages: %v", err)
	}

	window, err := m.UserHistory("u1")
	if err != nil {
		t.Fatalf("UserHistory: %v", err)
	}
	if len(window) != 1 {
		t.Fatalf("window length = %d, want 1", len(window))
	}
}

func TestLastConversationPair(t *testing.T) {
	m := newTestManager(t)

	entries := []ThreadEntry{
		{Role: "user", Type: "greeting", Content: "hi"},
		{Role: "assistant", Type: "greeting", Content: "hello"},
		{Role: "user", Type: "question", Content: "rates?"},
		{Role: "assistant", Type: "answer", Content: "low"},
	}
	for _, e := range entries {
		if err := m.AddThread("u1", e); err != nil {
			t.Fatalf("AddThread: %v", err)
		}
	}

	pair, ok, err := m.LastConversationPair("u1")
	if err != nil {
		t.Fatalf("LastConversationPair: %v", err)
	}
	if !ok {
		t.Fatal("expected a pair")
	}
	if pair[0].Content != "rates?" || pair[1].Content != "low" {
		t.Errorf("got pair (%q, %q), want (rates?, low)", pair[0].Content, pair[1].Content)
	}
}

func TestLastConversationPairTooShort(t *testing.T) {
	m := newTestManager(t)

	if err := m.AddThread("u1", ThreadEntry{Role: "user", Content: "hi"}); err != nil {
		t.Fatalf("AddThread: %v", err)
	}

	_, ok, err := m.LastConversationPair("u1")
	if err != nil {
		t.Fatalf("LastConversationPair: %v", err)
	}
	if ok {
		t.Fatal("expected no pair for a single entry")
	}
}

func TestLastConversationPairNoAdjacent(t *testing.T) {
	m := newTestManager(t)

	for _, e := range []ThreadEntry{
		{Role: "assistant", Content: "a"},
		{Role: "assistant", Content: "b"},
		{Role: "user", Content: "c"},
	} {
		if err := m.AddThread("u1", e); err != nil {
			t.Fatalf("AddThread: %v", err)
		}
	}

	_, ok, err := m.LastConversationPair("u1")
	if err != nil {
		t.Fatalf("LastConversationPair: %v", err)
	}
	if ok {
		t.Fatal("expected no adjacent (user, assistant) pair")
	}
}

func TestClearResetsEverything(t *testing.T) {
	m := newTestManager(t)

	if err := m.AddMessage("u1", Message{Role: "user", Content: "hi"}); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if err := m.AddThread("u1", ThreadEntry{Role: "user", Content: "hi"}); err != nil {
		t.Fatalf("AddThread: %v", err)
	}
	if err := m.SetSummary("u1", "a summary"); err != nil {
		t.Fatalf("SetSummary: %v", err)
	}

	if err := m.Clear("u1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	msgs, err := m.Messages("u1")
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("chat log not empty after clear: %d entries", len(msgs))
	}
	summary, err := m.Summary("u1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary != "" {
		t.Errorf("summary not empty after clear: %q", summary)
	}
}

func TestSummaryOverwrites(t *testing.T) {
	m := newTestManager(t)

	if err := m.SetSummary("u1", "first"); err != nil {
		t.Fatalf("SetSummary: %v", err)
	}
	if err := m.SetSummary("u1", "second"); err != nil {
		t.Fatalf("SetSummary: %v", err)
	}

	summary, err := m.Summary("u1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary != "second" {
		t.Errorf("summary = %q, want %q", summary, "second")
	}
}

func TestStrategyCacheLatest(t *testing.T) {
	m := newTestManager(t)

	if err := m.SaveStrategy("u1", "2025-01-01T00:00:00Z", json.RawMessage(`{"v":1}`)); err != nil {
		t.Fatalf("SaveStrategy: %v", err)
	}
	if err := m.SaveStrategy("u1", "2025-06-01T00:00:00Z", json.RawMessage(`{"v":2}`)); err != nil {
		t.Fatalf("SaveStrategy: %v", err)
	}

	key, raw, ok, err := m.LatestStrategy("u1")
	if err != nil {
		t.Fatalf("LatestStrategy: %v", err)
	}
	if !ok {
		t.Fatal("expected a cached strategy")
	}
	if key != "2025-06-01T00:00:00Z" {
		t.Errorf("latest key = %q", key)
	}
	var payload map[string]int
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal strategy: %v", err)
	}
	if payload["v"] != 2 {
		t.Errorf("latest strategy v = %d, want 2", payload["v"])
	}
}

func TestLatestStrategyEmpty(t *testing.T) {
	m := newTestManager(t)

	_, _, ok, err := m.LatestStrategy("u1")
	if err != nil {
		t.Fatalf("LatestStrategy: %v", err)
	}
	if ok {
		t.Fatal("expected no strategy for a fresh user")
	}
}
