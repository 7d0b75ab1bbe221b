package financial

import (
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/financial"
	"finchat/internal/middleware"
	"finchat/internal/svc"
	"finchat/internal/types"
)

// Run the full strategy generation chain for the caller
func SubmitHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.FinancialSubmitRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := financial.NewSubmitLogic(r.Context(), svcCtx)
		resp, err := l.Submit(middleware.GetUserID(r.Context()), &req)
		if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
