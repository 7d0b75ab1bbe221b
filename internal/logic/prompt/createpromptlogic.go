package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/db"
	"finchat/internal/svc"
	"finchat/internal/types"
)

type CreatePromptLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Create a new prompt
func NewCreatePromptLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CreatePromptLogic {
	return &CreatePromptLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CreatePromptLogic) CreatePrompt(req *types.CreatePromptRequest) (*types.Prompt, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, errors.New("content is required")
	}

	p, err := l.svcCtx.DB.CreatePrompt(l.ctx, db.CreatePromptParams{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Content:     req.Content,
	})
	if err != nil {
		l.Errorf("Failed to create prompt: %v", err)
		return nil, err
	}
	out := toPromptType(p)
	return &out, nil
}
