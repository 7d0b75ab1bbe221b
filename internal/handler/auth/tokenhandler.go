package auth

import (
	"errors"
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/auth"
	"finchat/internal/svc"
	"finchat/internal/types"
)

// Exchange credentials for a token pair
func TokenHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.TokenRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := auth.NewTokenLogic(r.Context(), svcCtx)
		resp, err := l.Token(&req)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httputil.Unauthorized(w, err.Error())
		} else if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
