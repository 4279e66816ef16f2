package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatOptions — необязательный JSON от вызывающего, перекрывающий
// системное сообщение.
type chatOptions struct {
	System string `json:"system"`
}

// Ask выполняет chat completion: системное сообщение плюс сообщение
// пользователя. optionsJSON может перекрыть текст системного сообщения;
// ошибка разбора не фатальна — используется текст из конфигурации.
func (c *Client) Ask(ctx context.Context, prompt, optionsJSON string) (string, error) {
	system := c.cfg.SystemPrompt
	if strings.TrimSpace(optionsJSON) != "" {
		var opts chatOptions
		if err := json.Unmarshal([]byte(optionsJSON), &opts); err != nil {
			c.logger.Warnw("Invalid chat options, falling back to default system prompt", "error", err)
		} else if strings.TrimSpace(opts.System) != "" {
			system = opts.System
		}
	}

	req := chatRequest{
		Model: c.cfg.ChatModel,
		Messages: []chatMessage{
			{Role: string(RoleSystem), Content: system},
			{Role: string(RoleUser), Content: prompt},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	var resp chatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/completions", c.orgHeader(), req, &resp); err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return chatAnswer(resp)
}

// chatAnswer извлекает choices[0].message.content; пустой ответ — ошибка,
// а не тихий успех.
func chatAnswer(resp chatResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: response has no choices")
	}
	answer := resp.Choices[0].Message.Content
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("chat completion: empty message content")
	}
	return answer, nil
}
