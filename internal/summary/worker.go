// Package summary compresses chat histories into short digests off the
// request path.
package summary

import (
	"context"
	"fmt"
	"strings"

	"finchat/internal/ai"
	"finchat/internal/chatroom"
	"finchat/internal/logging"
	"finchat/internal/prompts"
)

// Interval is the canonical trigger modulus: a summarization job is
// submitted when the chat log length is a multiple of this.
const Interval = 7

// Completer produces a full (non-streaming) response.
type Completer interface {
	Complete(ctx context.Context, req *ai.ChatRequest) (string, error)
}

// Worker consumes summarization jobs from a bounded queue. Submission
// never blocks the request path; when the queue is full the job is
// dropped with a warning and the next trigger retries.
type Worker struct {
	rooms     *chatroom.Manager
	completer Completer
	catalog   *prompts.Catalog
	jobs      chan string
	done      chan struct{}
}

// NewWorker creates a summarization worker with the given queue depth.
func NewWorker(rooms *chatroom.Manager, completer Completer, catalog *prompts.Catalog, queueDepth int) *Worker {
	if queueDepth <= 0 {
		queueDepth = 32
	}
	return &Worker{
		rooms:     rooms,
		completer: completer,
		catalog:   catalog,
		jobs:      make(chan string, queueDepth),
		done:      make(chan struct{}),
	}
}

// Start launches the worker loop. It drains until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case userID := <-w.jobs:
				if err := w.Summarize(ctx, userID); err != nil {
					// Soft failure: the previous summary stays.
					logging.Errorf("summarization for %s failed: %v", userID, err)
				}
			}
		}
	}()
}

// Wait blocks until the worker loop has exited.
func (w *Worker) Wait() {
	<-w.done
}

// Submit enqueues a summarization job. Returns false when the queue is
// full and the job was dropped.
func (w *Worker) Submit(userID string) bool {
	select {
	case w.jobs <- userID:
		return true
	default:
		logging.Warnf("summary queue full, dropping job for %s", userID)
		return false
	}
}

// Pending reports the number of queued jobs.
func (w *Worker) Pending() int {
	return len(w.jobs)
}

// ShouldSummarize reports whether a log of the given length triggers a
// summarization job.
func ShouldSummarize(historyLen int) bool {
	return historyLen > 0 && historyLen%Interval == 0
}

// Summarize rebuilds the digest for one user and overwrites the stored
// summary on success.
func (w *Worker) Summarize(ctx context.Context, userID string) error {
	previous, err := w.rooms.Summary(userID)
	if err != nil {
		return fmt.Errorf("load summary: %w", err)
	}
	window, err := w.rooms.UserHistory(userID)
	if err != nil {
		return fmt.Errorf("load history window: %w", err)
	}
	pair, hasPair, err := w.rooms.LastConversationPair(userID)
	if err != nil {
		return fmt.Errorf("load last pair: %w", err)
	}

	var sb strings.Builder
	if previous != "" {
		sb.WriteString("Previous digest:\n")
		sb.WriteString(previous)
		sb.WriteString("\n\n")
	}
	if len(window) > 0 {
		sb.WriteString("Recent exchanges:\n")
		for _, entry := range window {
			fmt.Fprintf(&sb, "- %s: %s\n", entry.Role, entry.Content)
		}
		sb.WriteString("\n")
	}
	if hasPair {
		sb.WriteString("Latest exchange:\n")
		for _, entry := range pair {
			fmt.Fprintf(&sb, "- %s: %s\n", entry.Role, entry.Content)
		}
	}
	if sb.Len() == 0 {
		return nil
	}

	digest, err := w.completer.Complete(ctx, &ai.ChatRequest{
		System:   w.catalog.Pipeline.Summarizer,
		Messages: []ai.Message{{Role: "user", Content: sb.String()}},
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(digest) == "" {
		return fmt.Errorf("empty digest")
	}

	return w.rooms.SetSummary(userID, digest)
}
