package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolDescriptorMappingIsTotal(t *testing.T) {
	d, err := toolDescriptorFor(ToolCodeInterpreter)
	require.NoError(t, err)
	assert.Equal(t, "code_interpreter", d.Type)
	assert.Nil(t, d.Function)

	d, err = toolDescriptorFor(ToolFileSearch)
	require.NoError(t, err)
	assert.Equal(t, "file_search", d.Type)
	assert.Nil(t, d.Function)

	d, err = toolDescriptorFor(ToolFunction)
	require.NoError(t, err)
	assert.Equal(t, "function", d.Type)
	require.NotNil(t, d.Function)
	assert.NotEmpty(t, d.Function.Name)
}

func TestUnknownToolRejectedBeforeRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.CreateAssistant(context.Background(), "inst", "name", Tool("web_browsing"), "gpt-4o")
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestUnknownRoleRejectedBeforeRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.AddMessage(context.Background(), "thr_1", Role("moderator"), "hi")
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestRunStatusTerminalSet(t *testing.T) {
	terminal := []RunStatus{RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired, RunStatusIncomplete}
	for _, s := range terminal {
		assert.True(t, s.Terminal(), "status %s must be terminal", s)
	}
	// Неизвестные провайдерские статусы трактуются как «ещё не завершено»
	for _, s := range []RunStatus{RunStatusQueued, RunStatusInProgress, RunStatus("requires_action"), RunStatus("warming_up")} {
		assert.False(t, s.Terminal(), "status %s must not be terminal", s)
	}
}

// mockProvider эмулирует полный диалоговый протокол провайдера:
// ассистент → тред → сообщение → run с прогрессом статуса → сообщения.
func mockProvider(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	runPolls := 0
	statuses := []RunStatus{RunStatusQueued, RunStatusInProgress, RunStatusCompleted}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /assistants", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "assistants=v2", r.Header.Get("OpenAI-Beta"))
		var body struct {
			Tools []toolDescriptor `json:"tools"`
			Model string           `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Tools, 1)
		fmt.Fprintf(w, `{"id":"asst_1","name":"companion","model":%q,"instructions":"inst"}`, body.Model)
	})
	mux.HandleFunc("POST /threads", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "assistants=v2", r.Header.Get("OpenAI-Beta"))
		fmt.Fprint(w, `{"id":"thr_1"}`)
	})
	mux.HandleFunc("POST /threads/thr_1/messages", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Role    Role   `json:"role"`
			Content string `json:"content"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, RoleUser, body.Role)
		fmt.Fprintf(w, `{"id":"msg_1","role":"user","content":[{"type":"text","text":{"value":%q}}]}`, body.Content)
	})
	mux.HandleFunc("POST /threads/thr_1/runs", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AssistantID string `json:"assistant_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "asst_1", body.AssistantID)
		fmt.Fprint(w, `{"id":"run_1","thread_id":"thr_1","assistant_id":"asst_1","status":"queued"}`)
	})
	mux.HandleFunc("GET /threads/thr_1/runs/run_1", func(w http.ResponseWriter, r *http.Request) {
		status := statuses[min(runPolls, len(statuses)-1)]
		runPolls++
		fmt.Fprintf(w, `{"id":"run_1","thread_id":"thr_1","assistant_id":"asst_1","status":%q}`, status)
	})
	mux.HandleFunc("GET /threads/thr_1/messages", func(w http.ResponseWriter, r *http.Request) {
		// Порядок сервера: свежие первыми
		fmt.Fprint(w, `{"data":[
			{"id":"msg_2","role":"assistant","content":[{"type":"text","text":{"value":"4"}}]},
			{"id":"msg_1","role":"user","content":[{"type":"text","text":{"value":"2+2?"}}]}
		]}`)
	})

	return httptest.NewServer(mux), &runPolls
}

func TestConversationalWorkflowEndToEnd(t *testing.T) {
	srv, _ := mockProvider(t)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	asst, err := c.CreateAssistant(ctx, "inst", "companion", ToolCodeInterpreter, "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "asst_1", asst.ID)

	th, err := c.CreateThread(ctx)
	require.NoError(t, err)
	assert.Equal(t, "thr_1", th.ID)

	msg, err := c.AddMessage(ctx, th.ID, RoleUser, "2+2?")
	require.NoError(t, err)
	assert.Equal(t, "msg_1", msg.ID)

	run, err := c.CreateRun(ctx, th.ID, asst.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusQueued, run.Status)

	// Цикл опроса принадлежит вызывающему: крутим до терминального статуса
	for !run.Status.Terminal() {
		run, err = c.GetRunResult(ctx, th.ID, run.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, RunStatusCompleted, run.Status)

	msgs, err := c.GetThreadMessages(ctx, th.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleAssistant, msgs[0].Role)
	assert.Equal(t, "4", msgs[0].Text())
	assert.Equal(t, "2+2?", msgs[1].Text())
}

func TestGetRunResultIsPureRead(t *testing.T) {
	srv, polls := mockProvider(t)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	// Статус не регрессирует: терминальное значение остаётся терминальным
	// при любом числе повторных чтений.
	var prevTerminal bool
	for range 6 {
		r, err := c.GetRunResult(ctx, "thr_1", "run_1")
		require.NoError(t, err)
		if prevTerminal {
			assert.True(t, r.Status.Terminal())
		}
		prevTerminal = r.Status.Terminal()
	}
	assert.Equal(t, 6, *polls)
}
