package auth

import (
	"errors"
	"net/http"

	"finchat/internal/httputil"
	"finchat/internal/logic/auth"
	"finchat/internal/svc"
	"finchat/internal/types"
)

// Rotate a refresh token into a new token pair
func RefreshTokenHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RefreshTokenRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := auth.NewRefreshTokenLogic(r.Context(), svcCtx)
		resp, err := l.RefreshToken(&req)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httputil.Unauthorized(w, "invalid or expired refresh token")
		} else if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
