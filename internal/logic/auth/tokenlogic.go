package auth

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/crypto/bcrypt"

	"finchat/internal/middleware"
	"finchat/internal/svc"
	"finchat/internal/types"
)

type TokenLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Exchange credentials for an access/refresh token pair
func NewTokenLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TokenLogic {
	return &TokenLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *TokenLogic) Token(req *types.TokenRequest) (*types.TokenResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errors.New("username and password are required")
	}

	// The username field accepts either username or email.
	user, err := l.svcCtx.DB.GetUserByLogin(l.ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := middleware.IssueAccessToken(user.ID, user.Username, l.svcCtx.Config.SecretKey)
	if err != nil {
		l.Errorf("Failed to sign access token: %v", err)
		return nil, errors.New("failed to issue token")
	}

	rawRefresh, refreshHash, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := l.svcCtx.DB.SaveRefreshToken(l.ctx, refreshHash, user.ID, time.Now().Add(RefreshTokenTTL)); err != nil {
		l.Errorf("Failed to store refresh token: %v", err)
		return nil, errors.New("failed to issue token")
	}

	return &types.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		TokenType:    "bearer",
	}, nil
}
