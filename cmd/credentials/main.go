package main

import (
	"flag"

	"OpenAIClient/internal/config"
	"OpenAIClient/internal/credentials"

	"go.uber.org/zap"
)

// Управление секретами в окружении процесса: -clear удаляет оба значения,
// иначе сохраняет токен/организацию из флагов (пустые — интерактивный ввод).
func main() {
	clearFlag := flag.Bool("clear", false, "удалить сохранённые секреты")
	token := flag.String("token", "", "токен API (пусто — интерактивный ввод)")
	org := flag.String("org", "", "идентификатор организации (пусто — интерактивный ввод)")
	_ = config.NewConfig()

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

	store := credentials.New(sugar)

	if *clearFlag {
		if err := store.Clear(); err != nil {
			sugar.Errorw("Failed to clear credentials", "error", err)
		}
		return
	}

	if err := store.Set(*token, *org); err != nil {
		sugar.Errorw("Failed to store credentials", "error", err)
		return
	}
	sugar.Infow("Credentials are valid", "ok", store.Check())
}
