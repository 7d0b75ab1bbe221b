package financial

import (
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/financial"
	"finchat/internal/middleware"
	"finchat/internal/svc"
	"finchat/internal/types"
)

// Generate the long-horizon lifeplan narrative
func LifeplanHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LifeplanRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := financial.NewLifeplanLogic(r.Context(), svcCtx)
		resp, err := l.Lifeplan(middleware.GetUserID(r.Context()), &req)
		if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
