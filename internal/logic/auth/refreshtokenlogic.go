package auth

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/middleware"
	"finchat/internal/svc"
	"finchat/internal/types"
)

type RefreshTokenLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Rotate a refresh token into a fresh token pair
func NewRefreshTokenLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RefreshTokenLogic {
	return &RefreshTokenLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RefreshTokenLogic) RefreshToken(req *types.RefreshTokenRequest) (*types.TokenResponse, error) {
	if req.RefreshToken == "" {
		return nil, errors.New("refresh_token is required")
	}

	oldHash := hashToken(req.RefreshToken)
	userID, err := l.svcCtx.DB.GetRefreshToken(l.ctx, oldHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := l.svcCtx.DB.GetUserByID(l.ctx, userID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Rotate: the presented token is revoked before the new one is issued.
	if err := l.svcCtx.DB.DeleteRefreshToken(l.ctx, oldHash); err != nil {
		l.Errorf("Failed to revoke refresh token: %v", err)
		return nil, errors.New("failed to refresh token")
	}

	accessToken, err := middleware.IssueAccessToken(user.ID, user.Username, l.svcCtx.Config.SecretKey)
	if err != nil {
		return nil, errors.New("failed to refresh token")
	}
	rawRefresh, refreshHash, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := l.svcCtx.DB.SaveRefreshToken(l.ctx, refreshHash, user.ID, time.Now().Add(RefreshTokenTTL)); err != nil {
		return nil, errors.New("failed to refresh token")
	}

	return &types.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		TokenType:    "bearer",
	}, nil
}
