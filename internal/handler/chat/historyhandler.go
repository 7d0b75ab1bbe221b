package chat

import (
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/chat"
	"finchat/internal/middleware"
	"finchat/internal/svc"
)

// Full stored conversation for the caller, as a bare JSON list
func HistoryHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := chat.NewHistoryLogic(r.Context(), svcCtx)
		messages, err := l.History(middleware.GetUserID(r.Context()))
		if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, messages)
		}
	}
}
