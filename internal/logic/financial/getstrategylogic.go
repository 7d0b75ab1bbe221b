package financial

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/svc"
	"finchat/internal/types"
)

type GetStrategyLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetStrategyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetStrategyLogic {
	return &GetStrategyLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetStrategy returns the most recently generated proposal for the user.
// The service has no row-level storage for strategies, so absence is
// reported as sql.ErrNoRows for the handler to translate.
func (l *GetStrategyLogic) GetStrategy(userID string) (*types.GetStrategyResponse, error) {
	generatedAt, raw, ok, err := l.svcCtx.Rooms.LatestStrategy(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sql.ErrNoRows
	}

	var strategy types.FinancialStrategy
	if err := json.Unmarshal(raw, &strategy); err != nil {
		l.Errorf("Corrupt cached strategy for %s: %v", userID, err)
		return nil, err
	}

	return &types.GetStrategyResponse{
		GeneratedAt: generatedAt,
		Strategy:    strategy,
	}, nil
}
