package financial

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/ai"
	"finchat/internal/svc"
	"finchat/internal/types"
)

type LifeplanLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLifeplanLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LifeplanLogic {
	return &LifeplanLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Lifeplan reuses the hearing and simulation stages of the strategy
// chain and finishes with the lifeplan narrative prompt covering the
// 65-year horizon.
func (l *LifeplanLogic) Lifeplan(userID string, req *types.LifeplanRequest) (*types.LifeplanResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("message is required")
	}

	submit := NewSubmitLogic(l.ctx, l.svcCtx)
	hearing, projection, err := submit.runHearingChain(userID, req.CifId, req.Message, req.Model)
	if err != nil {
		return nil, err
	}

	plan, err := l.svcCtx.AI.Complete(l.ctx, &ai.ChatRequest{
		Model:  req.Model,
		System: l.svcCtx.Prompts.Financial.Lifeplan,
		Messages: []ai.Message{{
			Role:    "user",
			Content: "Hearing outline:\n" + hearing + "\n\nProjection:\n" + projection,
		}},
		MaxTokens: 8192,
	})
	if err != nil {
		return nil, fmt.Errorf("lifeplan generation: %w", err)
	}

	return &types.LifeplanResponse{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Plan:        plan,
	}, nil
}
