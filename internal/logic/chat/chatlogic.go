package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"finchat/internal/ai"
	"finchat/internal/chatroom"
	"finchat/internal/summary"
	"finchat/internal/svc"
	"finchat/internal/types"
)

// StreamSink receives the relayed token chunks. Implemented by the SSE
// writer in the handler layer.
type StreamSink interface {
	Text(chunk string) error
	Error(message string) error
}

type ChatLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// One full chat turn: classify, condense, persist, stream, summarize
func NewChatLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChatLogic {
	return &ChatLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Chat runs one turn for the user and relays the assistant's reply
// through sink. profile selects the system prompt surface ("chat" or
// "mobility"). An error return means nothing was streamed yet and the
// handler may still change the HTTP status; errors after streaming
// begins are delivered in-band through the sink.
func (l *ChatLogic) Chat(userID string, req *types.ChatRequest, profile string, sink StreamSink) error {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return errors.New("message is required")
	}

	if _, err := l.svcCtx.Rooms.GetOrCreate(userID); err != nil {
		return fmt.Errorf("provision chatroom: %w", err)
	}

	// Classify and condense before anything is persisted, so a failed
	// turn leaves no half-written state.
	intent, err := l.classify(message)
	if err != nil {
		return fmt.Errorf("classify intent: %w", err)
	}
	condensed, err := l.condense(message)
	if err != nil {
		return fmt.Errorf("condense message: %w", err)
	}

	systemPrompt, err := l.buildSystemPrompt(userID, profile, req.PromptId)
	if err != nil {
		return err
	}

	// Persist the user message strictly before streaming starts.
	if err := l.svcCtx.Rooms.AddMessage(userID, chatroom.Message{
		ID:        uuid.New().String(),
		Role:      "user",
		Content:   message,
		UserID:    userID,
		Timestamp: time.Now().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("persist user message: %w", err)
	}
	if err := l.svcCtx.Rooms.AddThread(userID, chatroom.ThreadEntry{
		Role:    "user",
		Type:    intent,
		Content: condensed,
	}); err != nil {
		return fmt.Errorf("persist user thread: %w", err)
	}

	events, err := l.svcCtx.AI.Stream(l.ctx, &ai.ChatRequest{
		Model:    req.Model,
		System:   systemPrompt,
		Messages: []ai.Message{{Role: "user", Content: message}},
	})
	if err != nil {
		return err
	}

	var reply strings.Builder
	for event := range events {
		switch event.Type {
		case ai.EventTypeText:
			if err := sink.Text(event.Text); err != nil {
				// Client went away; the user message stays persisted
				// without a paired assistant message.
				l.Infof("client disconnected mid-stream for %s: %v", userID, err)
				return nil
			}
			reply.WriteString(event.Text)
		case ai.EventTypeError:
			if reply.Len() == 0 {
				return event.Error
			}
			sink.Error(event.Error.Error())
			return nil
		case ai.EventTypeDone:
			// fall through to persistence below
		}
	}

	assistantText := reply.String()
	if strings.TrimSpace(assistantText) == "" {
		return nil
	}

	l.finishTurn(userID, condensed, assistantText)
	return nil
}

// finishTurn persists the assistant side of the exchange, updates the
// rolling window, and submits a summarization job when due. Failures
// here are logged, not surfaced: the client already has the reply.
func (l *ChatLogic) finishTurn(userID, condensedUser, assistantText string) {
	if err := l.svcCtx.Rooms.AddMessage(userID, chatroom.Message{
		ID:        uuid.New().String(),
		Role:      "assistant",
		Content:   assistantText,
		UserID:    userID,
		Timestamp: time.Now().Format(time.RFC3339),
	}); err != nil {
		l.Errorf("Failed to persist assistant message: %v", err)
		return
	}

	condensedReply, err := l.condenseReply(assistantText)
	if err != nil {
		l.Errorf("Failed to condense assistant reply: %v", err)
		condensedReply = truncate(assistantText, 200)
	}
	if err := l.svcCtx.Rooms.AddThread(userID, chatroom.ThreadEntry{
		Role:    "assistant",
		Type:    "answer",
		Content: condensedReply,
	}); err != nil {
		l.Errorf("Failed to persist assistant thread: %v", err)
	}

	if err := l.svcCtx.Rooms.UpdateUserMessages(userID, []chatroom.ThreadEntry{
		{Role: "user", Content: condensedUser},
		{Role: "assistant", Content: condensedReply},
	}); err != nil {
		l.Errorf("Failed to update history window: %v", err)
	}

	count, err := l.svcCtx.Rooms.MessageCount(userID)
	if err != nil {
		l.Errorf("Failed to count messages: %v", err)
		return
	}
	if summary.ShouldSummarize(count) {
		l.svcCtx.Summary.Submit(userID)
	}
}

// classify returns a one-word intent for the message.
func (l *ChatLogic) classify(message string) (string, error) {
	intent, err := l.svcCtx.AI.Complete(l.ctx, &ai.ChatRequest{
		System:    l.svcCtx.Prompts.Pipeline.Intent,
		Messages:  []ai.Message{{Role: "user", Content: message}},
		MaxTokens: 16,
	})
	if err != nil {
		return "", err
	}
	// One word only; providers occasionally add punctuation anyway.
	intent = strings.ToLower(strings.TrimSpace(intent))
	if i := strings.IndexAny(intent, " \n.,:;"); i > 0 {
		intent = intent[:i]
	}
	if intent == "" {
		intent = "other"
	}
	return intent, nil
}

// condense returns a one-sentence summary of the message.
func (l *ChatLogic) condense(message string) (string, error) {
	condensed, err := l.svcCtx.AI.Complete(l.ctx, &ai.ChatRequest{
		System:    l.svcCtx.Prompts.Pipeline.Condense,
		Messages:  []ai.Message{{Role: "user", Content: message}},
		MaxTokens: 128,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(condensed), nil
}

// condenseReply summarizes the assistant's reply for the thread history.
func (l *ChatLogic) condenseReply(reply string) (string, error) {
	condensed, err := l.svcCtx.AI.Complete(l.ctx, &ai.ChatRequest{
		System:    l.svcCtx.Prompts.Pipeline.TurnSummary,
		Messages:  []ai.Message{{Role: "user", Content: reply}},
		MaxTokens: 128,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(condensed), nil
}

// buildSystemPrompt assembles the system prompt: the base profile (or a
// stored prompt the user selected), then the digest, the rolling
// window, and the last exchange.
func (l *ChatLogic) buildSystemPrompt(userID, profile, promptID string) (string, error) {
	base := l.svcCtx.Prompts.Profile(profile)

	if promptID != "" {
		p, err := l.svcCtx.DB.GetPrompt(l.ctx, promptID)
		if err != nil {
			return "", errors.New("prompt not found")
		}
		base = p.Content
	} else if p, err := l.svcCtx.DB.GetSelectedPrompt(l.ctx, userID); err == nil {
		base = p.Content
	}

	var sb strings.Builder
	sb.WriteString(base)

	if digest, err := l.svcCtx.Rooms.Summary(userID); err == nil && digest != "" {
		sb.WriteString("\n\nConversation digest:\n")
		sb.WriteString(digest)
	}
	if window, err := l.svcCtx.Rooms.UserHistory(userID); err == nil && len(window) > 0 {
		sb.WriteString("\n\nRecent history:\n")
		for _, entry := range window {
			fmt.Fprintf(&sb, "- %s: %s\n", entry.Role, entry.Content)
		}
	}
	if pair, ok, err := l.svcCtx.Rooms.LastConversationPair(userID); err == nil && ok {
		sb.WriteString("\nLast exchange:\n")
		for _, entry := range pair {
			fmt.Fprintf(&sb, "- %s: %s\n", entry.Role, entry.Content)
		}
	}

	return sb.String(), nil
}

// truncate shortens s to at most max runes, not bytes, so multi-byte
// text is never cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
