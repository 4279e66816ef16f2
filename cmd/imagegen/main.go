package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

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

	prompt := strings.Join(flag.Args(), " ")
	if prompt == "" {
		sugar.Errorw("Empty prompt; pass the image description as arguments")
		return
	}

	dest := filepath.Join(cfg.ImagesOutputDir, "generated")
	path, err := client.GenerateImage(ctx, prompt, dest)
	if err != nil {
		sugar.Errorw("Image generation failed", "error", err)
		return
	}
	fmt.Println(path)
}
