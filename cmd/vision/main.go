package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"OpenAIClient/internal/app/screenshotter"
	"OpenAIClient/internal/config"
	"OpenAIClient/internal/credentials"
	"OpenAIClient/internal/openai"

	"go.uber.org/zap"
)

// Первый аргумент — путь к изображению; остальные — текст вопроса.
// Без аргументов снимается скриншот всего экрана.
func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx := context.Background()
	store := credentials.New(sugar)
	client := openai.New(cfg, store, sugar)

	imagePath := flag.Arg(0)
	text := strings.Join(flag.Args()[min(1, flag.NArg()):], " ")
	if text == "" {
		text = "Что изображено на картинке?"
	}

	if imagePath == "" {
		shooter := screenshotter.New(cfg, sugar)
		imagePath, err = shooter.CaptureOnce()
		if err != nil {
			sugar.Errorw("Failed to capture screenshot", "error", err)
			return
		}
	}

	answer, err := client.AskImage(ctx, text, imagePath)
	if err != nil {
		sugar.Errorw("Vision request failed", "error", err)
		return
	}
	fmt.Println(answer)
}
