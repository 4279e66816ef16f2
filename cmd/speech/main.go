package main

import (
	"context"
	"flag"
	"strings"

	"OpenAIClient/internal/config"
	"OpenAIClient/internal/credentials"
	"OpenAIClient/internal/openai"
	"OpenAIClient/internal/service/tts/player"

	"go.uber.org/zap"
)

func main() {
	out := flag.String("out", "speech.mp3", "путь для сохранения синтезированного аудио")
	play := flag.Bool("play", true, "воспроизвести результат после синтеза")
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

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		sugar.Errorw("Empty text; pass the phrase as arguments")
		return
	}

	voice, err := client.Synthesize(ctx, text, cfg.Voice, *out)
	if err != nil {
		sugar.Errorw("Speech synthesis failed", "error", err)
		return
	}
	sugar.Infow("Speech synthesized", "voice", voice, "path", *out)

	if *play {
		if err := player.New().PlayFile(*out); err != nil {
			sugar.Errorw("Playback failed", "error", err)
		}
	}
}
