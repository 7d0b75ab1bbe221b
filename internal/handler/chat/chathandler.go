package chat

import (
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/chat"
	"finchat/internal/middleware"
	"finchat/internal/svc"
	"finchat/internal/types"
)

// ChatHandler streams one chat turn over SSE. profile selects the
// system prompt surface; the desktop and mobility endpoints share
// everything else.
func ChatHandler(svcCtx *svc.ServiceContext, profile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}
		userID := middleware.GetUserID(r.Context())

		sink := &lazySink{w: w}
		l := chat.NewChatLogic(r.Context(), svcCtx)
		if err := l.Chat(userID, &req, profile, sink); err != nil {
			if sink.opened() {
				// Headers are committed; the failure has to go down
				// the stream.
				_ = sink.Error(err.Error())
			} else {
				httputil.Error(w, err)
			}
		}
	}
}

// lazySink defers the SSE response until the first chunk arrives, so
// failures before any output can still use a plain HTTP status.
type lazySink struct {
	w   http.ResponseWriter
	sse *httputil.SSEWriter
}

func (s *lazySink) open() error {
	if s.sse != nil {
		return nil
	}
	sse, err := httputil.NewSSEWriter(s.w)
	if err != nil {
		return err
	}
	s.sse = sse
	return nil
}

func (s *lazySink) opened() bool { return s.sse != nil }

func (s *lazySink) Text(chunk string) error {
	if err := s.open(); err != nil {
		return err
	}
	return s.sse.Text(chunk)
}

func (s *lazySink) Error(message string) error {
	if err := s.open(); err != nil {
		return err
	}
	return s.sse.Error(message)
}
