// Package aitext 大模型文本补全：多厂商实现、限流重试，以及对返回文本的容错解析。
//
// 模型返回的文本一律视为不可信。解析失败在本包内消化，调用方只会拿到兜底值。
package aitext

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 一条对话消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options 单次调用参数
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Completer 文本补全服务
type Completer interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

// CompleterFunc 便于测试注入
type CompleterFunc func(ctx context.Context, messages []Message, opts Options) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	return f(ctx, messages, opts)
}

var (
	ErrUnparseable   = errors.New("ai response unparseable")
	ErrEmptyResponse = errors.New("ai returned empty response")
	ErrNotConfigured = errors.New("ai provider not configured")
)

// System/User/Assistant 构造消息
func System(content string) Message    { return Message{Role: RoleSystem, Content: content} }
func User(content string) Message      { return Message{Role: RoleUser, Content: content} }
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// Disabled 未配置模型时使用，所有调用走兜底
type Disabled struct{}

func (Disabled) Complete(context.Context, []Message, Options) (string, error) {
	return "", ErrNotConfigured
}
