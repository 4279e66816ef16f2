package main

import (
	"context"
	"flag"
	"fmt"

	"OpenAIClient/internal/config"
	"OpenAIClient/internal/credentials"
	"OpenAIClient/internal/openai"

	"go.uber.org/zap"
)

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

	audioPath := flag.Arg(0)
	if audioPath == "" {
		sugar.Errorw("Empty audio path; pass the wav file as the first argument")
		return
	}

	text, err := client.Transcribe(ctx, audioPath)
	if err != nil {
		sugar.Errorw("Transcription failed", "error", err)
		return
	}
	fmt.Println(text)
}
