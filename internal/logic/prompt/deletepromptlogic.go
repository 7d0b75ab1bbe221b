package prompt

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/svc"
	"finchat/internal/types"
)

type DeletePromptLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Delete a prompt by id
func NewDeletePromptLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeletePromptLogic {
	return &DeletePromptLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DeletePromptLogic) DeletePrompt(req *types.DeletePromptRequest) (*types.DeletePromptResponse, error) {
	if err := l.svcCtx.DB.DeletePrompt(l.ctx, req.Id); err != nil {
		return nil, err
	}
	return &types.DeletePromptResponse{Success: true}, nil
}
