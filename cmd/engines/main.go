package main

import (
	"context"
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

	// Быстрая проверка доступности API перед листингом
	if err := client.Ping(ctx); err != nil {
		sugar.Warnw("API status check failed", "error", err)
	}

	engines, err := client.ListEngines(ctx)
	if err != nil {
		sugar.Errorw("Engine listing failed", "error", err)
		return
	}
	for _, e := range engines {
		fmt.Printf("%s\towner=%s\tready=%v\n", e.ID, e.Owner, e.Ready)
	}
}
