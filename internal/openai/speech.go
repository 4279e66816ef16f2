package openai

import (
	"context"
	"fmt"
	"strings"
)

// Voices — поддерживаемые голоса синтеза речи.
var Voices = []string{"alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"}

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// Synthesize синтезирует речь и стримит аудио напрямую в destPath.
// Пустой voice — случайный выбор из Voices (источник случайности клиента,
// в тестах подменяется). Неизвестный голос отклоняется до запроса.
// Возвращает использованный голос.
func (c *Client) Synthesize(ctx context.Context, text, voice, destPath string) (string, error) {
	voice = strings.TrimSpace(voice)
	if voice == "" {
		voice = Voices[c.randInt(len(Voices))]
	} else if !validVoice(voice) {
		return "", fmt.Errorf("synthesize: unknown voice %q", voice)
	}

	req := speechRequest{Model: c.cfg.TTSModel, Input: text, Voice: voice}
	if err := c.postForFile(ctx, "/audio/speech", req, destPath); err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}
	c.logger.Infow("Speech saved", "path", destPath, "voice", voice)
	return voice, nil
}

func validVoice(v string) bool {
	for _, known := range Voices {
		if v == known {
			return true
		}
	}
	return false
}
