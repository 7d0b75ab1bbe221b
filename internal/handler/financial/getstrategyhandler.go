package financial

import (
	"database/sql"
	"errors"
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/financial"
	"finchat/internal/middleware"
	"finchat/internal/svc"
)

// Latest cached strategy for the caller
func GetStrategyHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := financial.NewGetStrategyLogic(r.Context(), svcCtx)
		resp, err := l.GetStrategy(middleware.GetUserID(r.Context()))
		if errors.Is(err, sql.ErrNoRows) {
			httputil.NotFound(w, "no strategy generated yet")
		} else if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
