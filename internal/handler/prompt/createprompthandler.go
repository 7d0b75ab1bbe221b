package prompt

import (
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/prompt"
	"finchat/internal/svc"
	"finchat/internal/types"
)

func CreatePromptHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreatePromptRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := prompt.NewCreatePromptLogic(r.Context(), svcCtx)
		resp, err := l.CreatePrompt(&req)
		if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
