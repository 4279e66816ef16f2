package dialogue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"OpenAIClient/internal/config"
	"OpenAIClient/internal/openai"

	"go.uber.org/zap"
)

// AssistantAPI — примитивы диалогового протокола провайдера.
// Реализуется openai.Client; в тестах подменяется заглушкой.
type AssistantAPI interface {
	CreateAssistant(ctx context.Context, instructions, name string, tool openai.Tool, model string) (*openai.Assistant, error)
	CreateThread(ctx context.Context) (*openai.Thread, error)
	AddMessage(ctx context.Context, threadID string, role openai.Role, content string) (*openai.ThreadMessage, error)
	CreateRun(ctx context.Context, threadID, assistantID string) (*openai.Run, error)
	GetRunResult(ctx context.Context, threadID, runID string) (*openai.Run, error)
	GetThreadMessages(ctx context.Context, threadID string) ([]openai.ThreadMessage, error)
}

// Service реализует серверный контекст диалога через Assistants (Threads).
// Клиентская часть между вызовами хранит только идентификатор ассистента:
// всё остальное состояние живёт у провайдера и адресуется по id, поэтому
// после перезапуска диалог продолжается по сохранённому thread id.
type Service struct {
	api         AssistantAPI
	cfg         *config.Config
	logger      *zap.SugaredLogger
	assistantID string
}

func New(api AssistantAPI, cfg *config.Config, logger *zap.SugaredLogger) *Service {
	return &Service{api: api, cfg: cfg, logger: logger}
}

// NewWithAssistant создаёт сервис вокруг уже существующего ассистента.
func NewWithAssistant(api AssistantAPI, cfg *config.Config, logger *zap.SugaredLogger, assistantID string) *Service {
	return &Service{api: api, cfg: cfg, logger: logger, assistantID: assistantID}
}

// CreateConversation создаёт ассистента (однажды, если ID ещё не задан)
// и новый тред. Возвращает идентификатор треда.
func (s *Service) CreateConversation(ctx context.Context, instructions string) (string, error) {
	if s.assistantID == "" {
		asst, err := s.api.CreateAssistant(ctx, instructions, s.cfg.AssistantName, openai.Tool(s.cfg.AssistantTool), s.cfg.ChatModel)
		if err != nil {
			return "", fmt.Errorf("create assistant: %w", err)
		}
		s.assistantID = asst.ID
		s.logger.Infow("Assistant created", "id", asst.ID, "model", asst.Model)
	}

	th, err := s.api.CreateThread(ctx)
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	s.logger.Infow("Thread created", "id", th.ID)
	return th.ID, nil
}

// Ask отправляет сообщение пользователя в тред, запускает Run и опрашивает
// его до терминального статуса. Интервал и таймаут берутся из конфигурации,
// отмена — через ctx. Возвращает текст свежего ответа ассистента.
func (s *Service) Ask(ctx context.Context, threadID, text string) (string, error) {
	if threadID == "" {
		return "", errors.New("empty thread id")
	}
	if s.assistantID == "" {
		return "", errors.New("assistant is not initialized; call CreateConversation first")
	}

	if _, err := s.api.AddMessage(ctx, threadID, openai.RoleUser, text); err != nil {
		return "", fmt.Errorf("add message: %w", err)
	}

	run, err := s.api.CreateRun(ctx, threadID, s.assistantID)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}

	status, err := s.waitRun(ctx, threadID, run.ID)
	if err != nil {
		return "", err
	}
	if status != openai.RunStatusCompleted {
		return "", fmt.Errorf("run ended with status %s", status)
	}

	// Сообщения приходят в порядке сервера (по умолчанию свежие первыми);
	// берём первое сообщение роли assistant.
	msgs, err := s.api.GetThreadMessages(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}
	for _, m := range msgs {
		if m.Role == openai.RoleAssistant {
			return m.Text(), nil
		}
	}
	return "", errors.New("no assistant message found")
}

// waitRun опрашивает статус Run до терминального значения или таймаута.
func (s *Service) waitRun(ctx context.Context, threadID, runID string) (openai.RunStatus, error) {
	deadline := time.After(s.cfg.RunTimeout)
	ticker := time.NewTicker(s.cfg.RunPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline:
			return "", fmt.Errorf("run %s: timeout after %s", runID, s.cfg.RunTimeout)
		case <-ticker.C:
			r, err := s.api.GetRunResult(ctx, threadID, runID)
			if err != nil {
				return "", fmt.Errorf("get run: %w", err)
			}
			if r.Status.Terminal() {
				return r.Status, nil
			}
			s.logger.Debugw("Run is not finished yet", "run", runID, "status", r.Status)
		}
	}
}
