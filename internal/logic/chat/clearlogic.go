package chat

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/svc"
	"finchat/internal/types"
)

type ClearLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Reset all per-user conversation state
func NewClearLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ClearLogic {
	return &ClearLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ClearLogic) Clear(userID string) (*types.ClearResponse, error) {
	if err := l.svcCtx.Rooms.Clear(userID); err != nil {
		l.Errorf("Failed to clear chat data for %s: %v", userID, err)
		return nil, err
	}
	return &types.ClearResponse{Status: "cleared"}, nil
}
