package chat

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/svc"
	"finchat/internal/types"
)

type HistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Return the full chat log for the user
func NewHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HistoryLogic {
	return &HistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// History returns the chat log as a bare list; an empty history is
// `[]`, never null or a wrapper object.
func (l *HistoryLogic) History(userID string) ([]types.ChatMessage, error) {
	msgs, err := l.svcCtx.Rooms.Messages(userID)
	if err != nil {
		return nil, err
	}

	out := make([]types.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, types.ChatMessage{
			Id:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			UserId:    m.UserID,
			Timestamp: m.Timestamp,
		})
	}
	return out, nil
}
