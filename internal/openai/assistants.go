package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Tool — тип инструмента ассистента. Закрытое множество: любое другое
// значение отклоняется до построения запроса.
type Tool string

const (
	ToolCodeInterpreter Tool = "code_interpreter"
	ToolFunction        Tool = "function"
	ToolFileSearch      Tool = "file_search"
)

// Role роли сообщений в треде.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// RunStatus — статус асинхронного Run. Множество открытое: провайдер может
// вернуть значение, неизвестное клиенту, тогда оно трактуется как нетерминальное.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
	RunStatusCancelled  RunStatus = "cancelled"
	RunStatusExpired    RunStatus = "expired"
	RunStatusIncomplete RunStatus = "incomplete"
)

// Terminal сообщает, завершён ли Run. Всё, что не входит в терминальное
// множество, подлежит повторному опросу вызывающей стороной.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired, RunStatusIncomplete:
		return true
	}
	return false
}

// toolDescriptor — элемент массива tools в запросе создания ассистента.
type toolDescriptor struct {
	Type     string        `json:"type"`
	Function *functionSpec `json:"function,omitempty"`
}

// functionSpec — заглушка описания функции: провайдер требует хотя бы имя.
type functionSpec struct {
	Name string `json:"name"`
}

// Assistant — снимок ассистента, как его вернул провайдер.
type Assistant struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Model        string           `json:"model"`
	Instructions string           `json:"instructions"`
	Tools        []toolDescriptor `json:"tools"`
}

// Thread — контейнер диалога; клиент хранит только идентификатор.
type Thread struct {
	ID string `json:"id"`
}

// ThreadMessage — сообщение треда. Content — массив типизированных частей;
// текст извлекается через Text().
type ThreadMessage struct {
	ID        string           `json:"id"`
	Role      Role             `json:"role"`
	Content   []MessageContent `json:"content"`
	CreatedAt int64            `json:"created_at"`
}

// MessageContent — одна типизированная часть содержимого сообщения.
type MessageContent struct {
	Type string       `json:"type"`
	Text *TextContent `json:"text,omitempty"`
}

// TextContent — текстовая часть сообщения.
type TextContent struct {
	Value string `json:"value"`
}

// Text склеивает текстовые части сообщения в одну строку.
func (m ThreadMessage) Text() string {
	var b strings.Builder
	for _, part := range m.Content {
		if part.Type == "text" && part.Text != nil {
			b.WriteString(part.Text.Value)
		}
	}
	return b.String()
}

// Run — снимок асинхронной задачи. Переходы статуса полностью на стороне
// провайдера, клиент их только наблюдает.
type Run struct {
	ID          string    `json:"id"`
	ThreadID    string    `json:"thread_id"`
	AssistantID string    `json:"assistant_id"`
	Status      RunStatus `json:"status"`
}

// toolDescriptorFor отображает тип инструмента в дескриптор запроса.
// Отображение тотально на трёх допустимых значениях.
func toolDescriptorFor(tool Tool) (toolDescriptor, error) {
	switch tool {
	case ToolCodeInterpreter:
		return toolDescriptor{Type: string(ToolCodeInterpreter)}, nil
	case ToolFunction:
		return toolDescriptor{Type: string(ToolFunction), Function: &functionSpec{Name: "noop"}}, nil
	case ToolFileSearch:
		return toolDescriptor{Type: string(ToolFileSearch)}, nil
	}
	return toolDescriptor{}, fmt.Errorf("unknown assistant tool %q", tool)
}

// CreateAssistant создаёт ассистента с инструкциями, именем, одним
// инструментом и моделью. Ассистент неизменяем после создания.
func (c *Client) CreateAssistant(ctx context.Context, instructions, name string, tool Tool, model string) (*Assistant, error) {
	descriptor, err := toolDescriptorFor(tool)
	if err != nil {
		return nil, fmt.Errorf("create assistant: %w", err)
	}

	body := struct {
		Instructions string           `json:"instructions"`
		Name         string           `json:"name"`
		Tools        []toolDescriptor `json:"tools"`
		Model        string           `json:"model"`
	}{Instructions: instructions, Name: name, Tools: []toolDescriptor{descriptor}, Model: model}

	var out Assistant
	if err := c.doJSON(ctx, http.MethodPost, "/assistants", c.betaHeader(), body, &out); err != nil {
		return nil, fmt.Errorf("create assistant: %w", err)
	}
	return &out, nil
}

// CreateThread создаёт пустой тред; тело запроса пустое по протоколу.
func (c *Client) CreateThread(ctx context.Context) (*Thread, error) {
	var out Thread
	if err := c.doJSON(ctx, http.MethodPost, "/threads", c.betaHeader(), struct{}{}, &out); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	return &out, nil
}

// AddMessage добавляет сообщение в тред. Операция не идемпотентна:
// повторный вызов добавит дубликат.
func (c *Client) AddMessage(ctx context.Context, threadID string, role Role, content string) (*ThreadMessage, error) {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
	default:
		return nil, fmt.Errorf("add message: unknown role %q", role)
	}
	if threadID == "" {
		return nil, fmt.Errorf("add message: empty thread id")
	}

	body := struct {
		Role    Role   `json:"role"`
		Content string `json:"content"`
	}{Role: role, Content: content}

	var out ThreadMessage
	if err := c.doJSON(ctx, http.MethodPost, "/threads/"+threadID+"/messages", c.betaHeader(), body, &out); err != nil {
		return nil, fmt.Errorf("add message: %w", err)
	}
	return &out, nil
}

// CreateRun запускает обработку треда ассистентом. Возвращается начальный
// снимок, обычно в статусе queued.
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID string) (*Run, error) {
	if threadID == "" || assistantID == "" {
		return nil, fmt.Errorf("create run: empty thread or assistant id")
	}

	body := struct {
		AssistantID string `json:"assistant_id"`
	}{AssistantID: assistantID}

	var out Run
	if err := c.doJSON(ctx, http.MethodPost, "/threads/"+threadID+"/runs", c.betaHeader(), body, &out); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	return &out, nil
}

// GetRunResult возвращает текущий снимок Run. Чистое чтение без побочных
// эффектов; цикл опроса (интервал, таймаут, отмена) — забота вызывающего,
// терминальность определяется через RunStatus.Terminal.
func (c *Client) GetRunResult(ctx context.Context, threadID, runID string) (*Run, error) {
	var out Run
	if err := c.doJSON(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, c.betaHeader(), nil, &out); err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &out, nil
}

// GetThreadMessages возвращает сообщения треда ровно в том порядке,
// в котором их отдал сервер; клиент не пересортировывает.
func (c *Client) GetThreadMessages(ctx context.Context, threadID string) ([]ThreadMessage, error) {
	var out struct {
		Data []ThreadMessage `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/threads/"+threadID+"/messages", c.betaHeader(), nil, &out); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out.Data, nil
}
