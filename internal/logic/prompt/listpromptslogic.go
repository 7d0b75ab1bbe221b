package prompt

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/svc"
	"finchat/internal/types"
)

type ListPromptsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// List all stored prompts
func NewListPromptsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListPromptsLogic {
	return &ListPromptsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListPromptsLogic) ListPrompts() ([]types.Prompt, error) {
	prompts, err := l.svcCtx.DB.ListPrompts(l.ctx)
	if err != nil {
		l.Errorf("Failed to list prompts: %v", err)
		return nil, err
	}
	out := make([]types.Prompt, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, toPromptType(p))
	}
	return out, nil
}
