package financial

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/crm"
	"finchat/internal/svc"
)

type CRMDataLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCRMDataLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CRMDataLogic {
	return &CRMDataLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CRMDataLogic) CRMData(cifID string) (json.RawMessage, error) {
	record, ok, err := crm.Lookup(cifID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sql.ErrNoRows
	}
	return record, nil
}
