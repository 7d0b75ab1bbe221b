package auth

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/middleware"
	"finchat/internal/svc"
	"finchat/internal/types"
)

type ValidateTokenLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Check an access token without consuming anything
func NewValidateTokenLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ValidateTokenLogic {
	return &ValidateTokenLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ValidateTokenLogic) ValidateToken(tokenString string) *types.ValidateTokenResponse {
	claims, err := middleware.ValidateJWT(tokenString, l.svcCtx.Config.SecretKey)
	if err != nil {
		return &types.ValidateTokenResponse{Valid: false}
	}
	resp := &types.ValidateTokenResponse{Valid: true}
	if sub, ok := claims["sub"].(string); ok {
		resp.Username = sub
	}
	return resp
}
