package openai

import (
	"context"
	"fmt"
	"net/http"
)

// Engine — элемент списка движков/моделей провайдера.
type Engine struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
	Ready bool   `json:"ready"`
}

// ListEngines возвращает список доступных движков.
func (c *Client) ListEngines(ctx context.Context) ([]Engine, error) {
	var out struct {
		Data []Engine `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/engines", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list engines: %w", err)
	}
	return out.Data, nil
}

// Ping проверяет доступность API и валидность секретов одним дешёвым
// запросом к legacy completions.
func (c *Client) Ping(ctx context.Context) error {
	body := struct {
		Model     string `json:"model"`
		Prompt    string `json:"prompt"`
		MaxTokens int    `json:"max_tokens"`
	}{Model: "gpt-3.5-turbo-instruct", Prompt: "ping", MaxTokens: 1}

	if err := c.doJSON(ctx, http.MethodPost, "/completions", c.orgHeader(), body, nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
