package financial

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/ai"
	"finchat/internal/crm"
	"finchat/internal/svc"
	"finchat/internal/types"
)

type SubmitLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Run the strategy chain: hearing, simulation, proposal, extraction
func NewSubmitLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SubmitLogic {
	return &SubmitLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SubmitLogic) Submit(userID string, req *types.FinancialSubmitRequest) (*types.FinancialSubmitResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("message is required")
	}

	hearing, projection, err := l.runHearingChain(userID, req.CifId, req.Message, req.Model)
	if err != nil {
		return nil, err
	}

	proposal, err := l.svcCtx.AI.Complete(l.ctx, &ai.ChatRequest{
		Model:  req.Model,
		System: l.svcCtx.Prompts.Financial.Output,
		Messages: []ai.Message{{
			Role:    "user",
			Content: "Hearing outline:\n" + hearing + "\n\nProjection:\n" + projection,
		}},
		MaxTokens: 4096,
	})
	if err != nil {
		return nil, fmt.Errorf("proposal generation: %w", err)
	}

	strategy, err := extractSections(proposal)
	if err != nil {
		l.Errorf("Malformed proposal for %s: %v", userID, err)
		return nil, err
	}

	generatedAt := time.Now().Format(time.RFC3339)
	raw, err := json.Marshal(strategy)
	if err != nil {
		return nil, err
	}
	if err := l.svcCtx.Rooms.SaveStrategy(userID, generatedAt, raw); err != nil {
		l.Errorf("Failed to cache strategy for %s: %v", userID, err)
		return nil, err
	}

	return &types.FinancialSubmitResponse{
		GeneratedAt: generatedAt,
		Strategy:    strategy,
	}, nil
}

// runHearingChain performs the shared first two stages of the strategy
// and lifeplan chains: a hearing outline from the customer profile and
// message, then a 65-year projection from the outline.
func (l *SubmitLogic) runHearingChain(userID, cifID, message, model string) (hearing, projection string, err error) {
	hearingInput := "Customer message:\n" + message
	if cifID != "" {
		record, ok, err := crm.Lookup(cifID)
		if err != nil {
			return "", "", err
		}
		if !ok {
			return "", "", fmt.Errorf("unknown cif_id %s", cifID)
		}
		hearingInput = "Customer profile:\n" + string(record) + "\n\n" + hearingInput
	}

	hearing, err = l.svcCtx.AI.Complete(l.ctx, &ai.ChatRequest{
		Model:     model,
		System:    l.svcCtx.Prompts.Financial.Hearing,
		Messages:  []ai.Message{{Role: "user", Content: hearingInput}},
		MaxTokens: 2048,
	})
	if err != nil {
		return "", "", fmt.Errorf("hearing stage: %w", err)
	}

	projection, err = l.svcCtx.AI.Complete(l.ctx, &ai.ChatRequest{
		Model:     model,
		System:    l.svcCtx.Prompts.Financial.Simulation,
		Messages:  []ai.Message{{Role: "user", Content: hearing}},
		MaxTokens: 4096,
	})
	if err != nil {
		return "", "", fmt.Errorf("simulation stage: %w", err)
	}

	return hearing, projection, nil
}
