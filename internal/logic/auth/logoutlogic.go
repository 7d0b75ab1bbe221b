package auth

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/svc"
	"finchat/internal/types"
)

type LogoutLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Revoke the presented refresh token
func NewLogoutLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LogoutLogic {
	return &LogoutLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *LogoutLogic) Logout(req *types.LogoutRequest) (*types.LogoutResponse, error) {
	if req.RefreshToken == "" {
		return nil, errors.New("refresh_token is required")
	}
	if err := l.svcCtx.DB.DeleteRefreshToken(l.ctx, hashToken(req.RefreshToken)); err != nil {
		l.Errorf("Failed to revoke refresh token: %v", err)
		return nil, errors.New("failed to log out")
	}
	return &types.LogoutResponse{Success: true}, nil
}
