package prompt

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/db"
	"finchat/internal/svc"
	"finchat/internal/types"
)

type UpdatePromptLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Patch a prompt; empty fields keep their current values
func NewUpdatePromptLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdatePromptLogic {
	return &UpdatePromptLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UpdatePromptLogic) UpdatePrompt(req *types.UpdatePromptRequest) (*types.Prompt, error) {
	// Confirm existence first so a missing id reads as not-found
	// rather than a silent no-op update.
	if _, err := l.svcCtx.DB.GetPrompt(l.ctx, req.Id); err != nil {
		return nil, err
	}

	p, err := l.svcCtx.DB.UpdatePrompt(l.ctx, db.UpdatePromptParams{
		ID:          req.Id,
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		l.Errorf("Failed to update prompt %s: %v", req.Id, err)
		return nil, err
	}
	out := toPromptType(p)
	return &out, nil
}
