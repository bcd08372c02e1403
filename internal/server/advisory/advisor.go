package advisory

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/logging"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
)

// Advisor answers one advisory query per call. Nothing is cached.
type Advisor struct {
	chat   ChatClient
	logger logging.Logger
}

func NewAdvisor(chat ChatClient, logger logging.Logger) *Advisor {
	return &Advisor{chat: chat, logger: logger}
}

// Advise validates the input and returns the assistant's answer. Chat
// failures are wrapped in common.ErrChat.
func (a *Advisor) Advise(ctx context.Context, category models.AdvisoryCategory, text string, maxTokens int) (string, error) {
	q, err := BuildQuery(category, text, maxTokens)
	if err != nil {
		return "", err
	}

	answer, err := a.chat.Complete(ctx, SystemInstruction, q.Prompt, q.MaxTokens)
	if err != nil {
		a.logger.Warn(ctx, "chat completion failed", "category", string(q.Category), "error", err)
		return "", fmt.Errorf("%w: %v", common.ErrChat, err)
	}
	return answer, nil
}
