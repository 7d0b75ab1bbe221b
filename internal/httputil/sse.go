package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter relays token chunks to the client as server-sent events.
// Each chunk is one event: `data: {"text": <chunk>}`. Errors after the
// headers are committed are delivered in-band as `data: {"error": <msg>}`
// since the status code can no longer change.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares the response for event streaming and commits
// the headers. Returns an error if the writer does not support flushing.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming unsupported by response writer")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// Text sends a single text chunk event.
func (s *SSEWriter) Text(chunk string) error {
	return s.send(map[string]string{"text": chunk})
}

// Error sends a terminal error event.
func (s *SSEWriter) Error(message string) error {
	return s.send(map[string]string{"error": message})
}

func (s *SSEWriter) send(payload map[string]string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
