package aitext

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	langopenai "github.com/tmc/langchaingo/llms/openai"
)

// OpenAIConfig OpenAI 兼容接口（混元、硅基流动等都可以走这个）
type OpenAIConfig struct {
	BaseURL string
	Token   string
	Model   string
}

// OpenAICompleter 基于 langchaingo 的实现
type OpenAICompleter struct {
	llm llms.Model
}

func NewOpenAICompleter(cfg OpenAIConfig) (*OpenAICompleter, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: token required", ErrNotConfigured)
	}
	opts := []langopenai.Option{
		langopenai.WithToken(cfg.Token),
		langopenai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, langopenai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := langopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &OpenAICompleter{llm: llm}, nil
}

func (c *OpenAICompleter) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.TextParts(chatType(m.Role), m.Content))
	}
	var callOpts []llms.CallOption
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))

	resp, err := c.llm.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

func chatType(role string) schema.ChatMessageType {
	switch role {
	case RoleSystem:
		return schema.ChatMessageTypeSystem
	case RoleAssistant:
		return schema.ChatMessageTypeAI
	}
	return schema.ChatMessageTypeHuman
}
