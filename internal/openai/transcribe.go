package openai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe загружает аудиофайл на распознавание. Тело — multipart из двух
// частей: бинарный файл (audio/wav, байты без перекодирования) и имя модели.
// Отсутствие файла — ошибка до любого сетевого вызова.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	raw, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: read audio %s: %w", audioPath, err)
	}

	file := filePart{
		Field:       "file",
		Filename:    filepath.Base(audioPath),
		ContentType: "audio/wav",
		Data:        raw,
	}
	fields := map[string]string{"model": c.cfg.STTModel}

	var resp transcriptionResponse
	if err := c.doMultipart(ctx, "/audio/transcriptions", file, fields, &resp); err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	if resp.Text == "" {
		return "", fmt.Errorf("transcribe: response has no text")
	}
	return resp.Text, nil
}
