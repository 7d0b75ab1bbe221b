package prompt

import (
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/prompt"
	"finchat/internal/svc"
)

func ListPromptsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := prompt.NewListPromptsLogic(r.Context(), svcCtx)
		resp, err := l.ListPrompts()
		if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
