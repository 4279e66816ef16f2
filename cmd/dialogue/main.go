package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"OpenAIClient/internal/config"
	"OpenAIClient/internal/credentials"
	"OpenAIClient/internal/openai"
	"OpenAIClient/internal/service/dialogue"

	"go.uber.org/zap"
)

func main() {
	threadID := flag.String("thread", "", "продолжить существующий тред вместо создания нового")
	assistantID := flag.String("assistant", "", "использовать существующего ассистента вместо создания нового")
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
		sugar.Errorw("Empty message; pass the text as arguments")
		return
	}

	dlg := dialogue.NewWithAssistant(client, cfg, sugar, *assistantID)

	// Всё состояние диалога живёт у провайдера: по сохранённым id можно
	// продолжить разговор после перезапуска процесса.
	conv := *threadID
	if conv == "" {
		conv, err = dlg.CreateConversation(ctx, cfg.AssistantPrompt)
		if err != nil {
			sugar.Errorw("Failed to create conversation", "error", err)
			return
		}
		sugar.Infow("Conversation created", "thread", conv)
	}

	answer, err := dlg.Ask(ctx, conv, text)
	if err != nil {
		sugar.Errorw("Dialogue request failed", "error", err)
		return
	}
	fmt.Println(answer)
}
