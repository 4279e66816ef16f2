package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
)

// visionPart — типизированная часть мультимодального сообщения:
// либо текст, либо ссылка на изображение.
type visionPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *visionImageURL `json:"image_url,omitempty"`
}

type visionImageURL struct {
	URL string `json:"url"`
}

// AskImage отправляет текст вместе с локальным изображением (встраивается
// как base64 data URL). Отсутствие файла — ошибка до любого сетевого вызова.
func (c *Client) AskImage(ctx context.Context, text, imagePath string) (string, error) {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("vision: read image %s: %w", imagePath, err)
	}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	req := chatRequest{
		Model: c.cfg.VisionModel,
		Messages: []chatMessage{
			{
				Role: string(RoleUser),
				Content: []visionPart{
					{Type: "text", Text: text},
					{Type: "image_url", ImageURL: &visionImageURL{URL: dataURL}},
				},
			},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	var resp chatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/completions", c.orgHeader(), req, &resp); err != nil {
		return "", fmt.Errorf("vision: %w", err)
	}
	answer, err := chatAnswer(resp)
	if err != nil {
		return "", fmt.Errorf("vision: %w", err)
	}
	return answer, nil
}
