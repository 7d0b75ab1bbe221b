package auth

import (
	"net/http"
	"strings"

	"finchat/internal/httputil"
	"finchat/internal/logic/auth"
	"finchat/internal/svc"
)

// Report whether the presented access token is still valid
func ValidateTokenHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			httputil.Unauthorized(w, "missing bearer token")
			return
		}

		l := auth.NewValidateTokenLogic(r.Context(), svcCtx)
		httputil.OkJSON(w, l.ValidateToken(token))
	}
}
