package prompt

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/svc"
	"finchat/internal/types"
)

type GetPromptLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Fetch one prompt by id
func NewGetPromptLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetPromptLogic {
	return &GetPromptLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetPromptLogic) GetPrompt(req *types.GetPromptRequest) (*types.Prompt, error) {
	p, err := l.svcCtx.DB.GetPrompt(l.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	out := toPromptType(p)
	return &out, nil
}
