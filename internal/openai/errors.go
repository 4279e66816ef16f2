package openai

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrCredentials — предусловие не выполнено: токен или организация не заданы.
// Возвращается до любого сетевого вызова.
var ErrCredentials = errors.New("openai: credentials are not configured")

// APIError — ответ провайдера со статусом вне 2xx.
// Тело обрезается до 4 КиБ и сохраняется для диагностики.
type APIError struct {
	StatusCode int
	Path       string
	Body       []byte
}

func (e *APIError) Error() string {
	body := bytes.TrimSpace(e.Body)
	if len(body) == 0 {
		return fmt.Sprintf("openai: %s: status=%d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("openai: %s: status=%d, body=%s", e.Path, e.StatusCode, body)
}
