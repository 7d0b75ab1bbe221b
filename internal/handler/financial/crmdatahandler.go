package financial

import (
	"database/sql"
	"errors"
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/financial"
	"finchat/internal/svc"
	"finchat/internal/types"
)

// Demo CRM record lookup by CIF id
func CRMDataHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CRMDataRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := financial.NewCRMDataLogic(r.Context(), svcCtx)
		record, err := l.CRMData(req.CifId)
		if errors.Is(err, sql.ErrNoRows) {
			httputil.NotFound(w, "unknown cif_id")
		} else if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, record)
		}
	}
}
