package prompt

import (
	"database/sql"
	"errors"
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/prompt"
	"finchat/internal/middleware"
	"finchat/internal/svc"
	"finchat/internal/types"
)

// Pin a stored prompt as the caller's active system prompt
func SelectPromptHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SelectPromptRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := prompt.NewSelectPromptLogic(r.Context(), svcCtx)
		resp, err := l.SelectPrompt(middleware.GetUserID(r.Context()), &req)
		if errors.Is(err, sql.ErrNoRows) {
			httputil.NotFound(w, "prompt not found")
		} else if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
