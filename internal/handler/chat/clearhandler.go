package chat

import (
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/chat"
	"finchat/internal/middleware"
	"finchat/internal/svc"
)

// Reset the caller's conversation state
func ClearHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := chat.NewClearLogic(r.Context(), svcCtx)
		resp, err := l.Clear(middleware.GetUserID(r.Context()))
		if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
