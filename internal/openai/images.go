package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// NormalizeImagePath приводит путь назначения к каноническому виду:
// относительный путь разрешается от текущей директории, расширение
// принудительно .png. Нормализация тотальна и идемпотентна.
func NormalizeImagePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = "image"
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}
	if ext := filepath.Ext(path); ext != ".png" {
		path = strings.TrimSuffix(path, ext) + ".png"
	}
	return filepath.Clean(path), nil
}

// GenerateImage генерирует изображение по prompt и скачивает результат
// в destPath (после нормализации). Возвращает итоговый путь файла.
func (c *Client) GenerateImage(ctx context.Context, prompt, destPath string) (string, error) {
	dest, err := NormalizeImagePath(destPath)
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("generate image: create output dir: %w", err)
	}

	req := imageRequest{
		Model:   c.cfg.ImageModel,
		Prompt:  prompt,
		N:       1,
		Size:    "1024x1024",
		Quality: "standard",
	}

	var resp imageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/images/generations", c.orgHeader(), req, &resp); err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	// 2xx без URL — ошибка, а не пустой успех
	if len(resp.Data) == 0 || strings.TrimSpace(resp.Data[0].URL) == "" {
		return "", fmt.Errorf("generate image: response has no image url")
	}

	if err := c.download(ctx, resp.Data[0].URL, dest); err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	c.logger.Infow("Image saved", "path", dest)
	return dest, nil
}
