package prompt

import (
	"database/sql"
	"errors"
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/prompt"
	"finchat/internal/svc"
	"finchat/internal/types"
)

func DeletePromptHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.DeletePromptRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := prompt.NewDeletePromptLogic(r.Context(), svcCtx)
		resp, err := l.DeletePrompt(&req)
		if errors.Is(err, sql.ErrNoRows) {
			httputil.NotFound(w, "prompt not found")
		} else if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
