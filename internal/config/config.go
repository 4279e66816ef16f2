package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool   `env:"DEBUG_MODE"`       // Режим дебага
	APIToken  string `env:"OPENAI_API_TOKEN"` // Токен API. Если пуст — операции завершатся ошибкой предусловия
	OrgID     string `env:"OPENAI_ORG_ID"`    // Идентификатор организации
	BaseURL   string `env:"OPENAI_BASE_URL"`  // Базовый URL API, перекрывается для тестов

	// Модели для отдельных операций
	ChatModel   string `env:"OPENAI_CHAT_MODEL"`   // Модель для chat completions
	VisionModel string `env:"OPENAI_VISION_MODEL"` // Модель для запросов с изображениями
	ImageModel  string `env:"OPENAI_IMAGE_MODEL"`  // Модель генерации изображений
	TTSModel    string `env:"OPENAI_TTS_MODEL"`    // Модель синтеза речи
	STTModel    string `env:"OPENAI_STT_MODEL"`    // Модель распознавания речи

	// Параметры генерации текста
	SystemPrompt string  `env:"SYSTEM_PROMPT"` // Текст системного сообщения по умолчанию
	MaxTokens    int     `env:"MAX_TOKENS"`    // Лимит токенов ответа
	Temperature  float64 `env:"TEMPERATURE"`   // Температура генерации

	// Выходные файлы
	ImagesOutputDir string `env:"IMAGES_OUTPUT_DIR"` // Папка для сгенерированных изображений
	Voice           string `env:"OPENAI_TTS_VOICE"`  // Голос TTS; пусто — выбирается случайно

	// Диалог через Assistants (Threads)
	AssistantName   string        `env:"ASSISTANT_NAME"`    // Имя создаваемого ассистента
	AssistantPrompt string        `env:"ASSISTANT_PROMPT"`  // Инструкции ассистента диалога
	AssistantTool   string        `env:"ASSISTANT_TOOL"`    // Инструмент ассистента: code_interpreter|function|file_search
	RunPollInterval time.Duration `env:"RUN_POLL_INTERVAL"` // Интервал опроса статуса Run
	RunTimeout      time.Duration `env:"RUN_TIMEOUT"`       // Максимальное время ожидания завершения Run

	// Screenshotter — съёмка экрана как источник картинок для vision
	ScreenshotEnabled         bool   `env:"SCREENSHOT_ENABLED"`          // Включить фоновую съёмку
	ScreenshotIntervalSeconds int    `env:"SCREENSHOT_INTERVAL_SECONDS"` // Периодичность снятия скриншотов, в секундах
	ScreenshotDir             string `env:"SCREENSHOT_DIR"`              // Папка для сохранения скриншотов
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode: false,
		BaseURL:   "https://api.openai.com/v1",
		// Модели
		ChatModel:   "gpt-4o",
		VisionModel: "gpt-4o",
		ImageModel:  "dall-e-3",
		TTSModel:    "tts-1",
		STTModel:    "whisper-1",
		// Генерация текста
		SystemPrompt: "You are a helpful assistant.",
		MaxTokens:    1024,
		Temperature:  0.7,
		// Файлы
		ImagesOutputDir: "images",
		Voice:           "", // пусто — голос выбирается случайно из поддерживаемых
		// Диалог
		AssistantName:   "companion",
		AssistantPrompt: "You are a helpful assistant.",
		AssistantTool:   "code_interpreter",
		RunPollInterval: 500 * time.Millisecond,
		RunTimeout:      60 * time.Second,
		// Screenshotter
		ScreenshotEnabled:         false,
		ScreenshotIntervalSeconds: 2,
		ScreenshotDir:             "images",
	}
}

// NewConfig загружает конфигурацию приложения.
func NewConfig() *Config {
	_ = godotenv.Load()

	// Стартуем с дефолтов, затем перекрываем .env/окружением и флагами
	cfg := Defaults()
	_ = env.Parse(cfg)

	flag.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага для отображения доп. инфы")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "базовый URL API провайдера")
	flag.StringVar(&cfg.ChatModel, "chat-model", cfg.ChatModel, "модель chat completions")
	flag.StringVar(&cfg.VisionModel, "vision-model", cfg.VisionModel, "модель для запросов с изображениями")
	flag.StringVar(&cfg.ImageModel, "image-model", cfg.ImageModel, "модель генерации изображений")
	flag.StringVar(&cfg.TTSModel, "tts-model", cfg.TTSModel, "модель синтеза речи")
	flag.StringVar(&cfg.STTModel, "stt-model", cfg.STTModel, "модель распознавания речи")
	flag.StringVar(&cfg.SystemPrompt, "system-prompt", cfg.SystemPrompt, "текст системного сообщения по умолчанию")
	flag.IntVar(&cfg.MaxTokens, "max-tokens", cfg.MaxTokens, "лимит токенов ответа")
	flag.Float64Var(&cfg.Temperature, "temperature", cfg.Temperature, "температура генерации")
	flag.StringVar(&cfg.ImagesOutputDir, "images-output-dir", cfg.ImagesOutputDir, "папка для сгенерированных изображений")
	flag.StringVar(&cfg.Voice, "voice", cfg.Voice, "голос TTS (alloy, echo, nova...); пусто — случайный")
	// Диалог
	flag.StringVar(&cfg.AssistantName, "assistant-name", cfg.AssistantName, "имя создаваемого ассистента")
	flag.StringVar(&cfg.AssistantPrompt, "assistant-prompt", cfg.AssistantPrompt, "инструкции ассистента диалога")
	flag.StringVar(&cfg.AssistantTool, "assistant-tool", cfg.AssistantTool, "инструмент ассистента: code_interpreter|function|file_search")
	flag.DurationVar(&cfg.RunPollInterval, "run-poll-interval", cfg.RunPollInterval, "интервал опроса статуса Run, напр. 500ms")
	flag.DurationVar(&cfg.RunTimeout, "run-timeout", cfg.RunTimeout, "максимальное время ожидания завершения Run, напр. 60s")
	// Screenshotter
	flag.BoolVar(&cfg.ScreenshotEnabled, "screenshot-enabled", cfg.ScreenshotEnabled, "включить фоновую съёмку скриншотов")
	flag.IntVar(&cfg.ScreenshotIntervalSeconds, "screenshot-interval-seconds", cfg.ScreenshotIntervalSeconds, "периодичность снятия скриншотов, в секундах")
	flag.StringVar(&cfg.ScreenshotDir, "screenshot-dir", cfg.ScreenshotDir, "папка для сохранения скриншотов")
	flag.Parse()

	return cfg
}
