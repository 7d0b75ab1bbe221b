package prompt

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/svc"
	"finchat/internal/types"
)

type SelectPromptLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Record the user's active prompt for future chat turns
func NewSelectPromptLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SelectPromptLogic {
	return &SelectPromptLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SelectPromptLogic) SelectPrompt(userID string, req *types.SelectPromptRequest) (*types.SelectPromptResponse, error) {
	if req.PromptId == "" {
		return nil, errors.New("prompt_id is required")
	}
	if _, err := l.svcCtx.DB.GetPrompt(l.ctx, req.PromptId); err != nil {
		return nil, err
	}
	if err := l.svcCtx.DB.SelectPrompt(l.ctx, userID, req.PromptId); err != nil {
		l.Errorf("Failed to select prompt for %s: %v", userID, err)
		return nil, err
	}
	return &types.SelectPromptResponse{Selected: req.PromptId}, nil
}
