package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"OpenAIClient/internal/config"
	"OpenAIClient/internal/credentials"
	"OpenAIClient/internal/openai"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
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
		prompt = "Say hello"
	}

	// Необязательный JSON с перекрытием системного сообщения, напр. {"system":"..."}
	options := os.Getenv("CHAT_OPTIONS_JSON")

	answer, err := client.Ask(ctx, prompt, options)
	if err != nil {
		sugar.Errorw("Chat completion failed", "error", err)
		return
	}
	fmt.Println(answer)
}
