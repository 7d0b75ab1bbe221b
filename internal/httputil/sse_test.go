package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEWriterWireFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, sse.Text("Hello"))
	require.NoError(t, sse.Text(`with "quotes" and
newline`))
	require.NoError(t, sse.Error("provider unavailable"))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	want := "data: {\"text\":\"Hello\"}\n\n" +
		"data: {\"text\":\"with \\\"quotes\\\" and\\nnewline\"}\n\n" +
		"data: {\"error\":\"provider unavailable\"}\n\n"
	assert.Equal(t, want, rec.Body.String())
}

// nonFlushingWriter hides the Flush method of the wrapped recorder.
type nonFlushingWriter struct {
	rec *httptest.ResponseRecorder
}

func (w nonFlushingWriter) Header() http.Header         { return w.rec.Header() }
func (w nonFlushingWriter) Write(b []byte) (int, error) { return w.rec.Write(b) }
func (w nonFlushingWriter) WriteHeader(code int)        { w.rec.WriteHeader(code) }

func TestSSEWriterRequiresFlusher(t *testing.T) {
	_, err := NewSSEWriter(nonFlushingWriter{httptest.NewRecorder()})
	assert.Error(t, err)
}
