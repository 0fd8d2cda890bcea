package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/camuig/clac/internal/config"
	"github.com/camuig/clac/internal/logger"
	"github.com/camuig/clac/internal/storage"
)

var ErrAdvisorDisabled = errors.New("deepseek commentary is disabled")

// Advisor asks DeepSeek for a short plain-language explanation of a stored
// calculation. It never changes the numbers.
type Advisor struct {
	client  *openai.Client
	model   string
	enabled bool
	cfg     *config.Config
	logger  *logger.Logger
}

func NewAdvisor(cfg *config.Config, log *logger.Logger) *Advisor {
	if !cfg.DeepSeek.Enabled {
		return &Advisor{enabled: false, cfg: cfg, logger: log}
	}

	ocfg := openai.DefaultConfig(cfg.DeepSeek.APIKey)
	ocfg.BaseURL = cfg.DeepSeek.BaseURL

	return &Advisor{
		client:  openai.NewClientWithConfig(ocfg),
		model:   cfg.DeepSeek.Model,
		enabled: true,
		cfg:     cfg,
		logger:  log,
	}
}

func (a *Advisor) Enabled() bool {
	return a.enabled
}

func (a *Advisor) Explain(ctx context.Context, entry *storage.HistoryEntry) (string, error) {
	if !a.enabled {
		return "", ErrAdvisorDisabled
	}

	userPrompt, err := BuildUserPrompt(entry)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.DeepSeekTimeout())
	defer cancel()

	a.logger.Info("sending explain request to DeepSeek", "kind", entry.Kind, "entry_id", entry.EntryID)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("deepseek API call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("deepseek returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	a.logger.Debug("AI raw response", "content", raw)

	text := CleanResponse(raw)
	if text == "" {
		return "", fmt.Errorf("deepseek returned an empty explanation")
	}
	return text, nil
}
