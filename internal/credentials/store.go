package credentials

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Имена переменных окружения — единственное место хранения секретов.
const (
	EnvAPIToken = "OPENAI_API_TOKEN"
	EnvOrgID    = "OPENAI_ORG_ID"
)

// Store управляет парой секретов (токен API и идентификатор организации)
// в переменных окружения процесса. Авторитетного состояния нет:
// каждое чтение отражает текущее окружение.
type Store struct {
	logger *zap.SugaredLogger
	in     *bufio.Reader // источник интерактивного ввода; по умолчанию stdin
	out    io.Writer     // вывод подсказок при интерактивном вводе
}

func New(logger *zap.SugaredLogger) *Store {
	return &Store{logger: logger, in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// NewWithInput создаёт Store с заданным источником ввода (для тестов и скриптов).
func NewWithInput(logger *zap.SugaredLogger, in io.Reader, out io.Writer) *Store {
	return &Store{logger: logger, in: bufio.NewReader(in), out: out}
}

// Set сохраняет токен и идентификатор организации в окружение.
// Пустые аргументы запрашиваются интерактивно; если значение осталось пустым —
// ошибка, окружение не меняется. После записи выполняется повторная проверка.
func (s *Store) Set(token, orgID string) error {
	var err error
	if strings.TrimSpace(token) == "" {
		token, err = s.prompt("Enter API token: ")
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("credentials: empty API token")
	}

	if strings.TrimSpace(orgID) == "" {
		orgID, err = s.prompt("Enter organization id: ")
		if err != nil {
			return fmt.Errorf("read organization id: %w", err)
		}
	}
	if strings.TrimSpace(orgID) == "" {
		return fmt.Errorf("credentials: empty organization id")
	}

	if err := os.Setenv(EnvAPIToken, strings.TrimSpace(token)); err != nil {
		return fmt.Errorf("set %s: %w", EnvAPIToken, err)
	}
	if err := os.Setenv(EnvOrgID, strings.TrimSpace(orgID)); err != nil {
		return fmt.Errorf("set %s: %w", EnvOrgID, err)
	}

	// Сразу перепроверяем то, что записали
	if !s.Check() {
		return fmt.Errorf("credentials: verification after set failed")
	}
	s.logger.Infow("Credentials stored")
	return nil
}

// Check проверяет, что оба секрета заданы и не пустые.
// Обязательное предусловие каждой аутентифицированной операции;
// сетевых вызовов не делает.
func (s *Store) Check() bool {
	ok := true
	if strings.TrimSpace(os.Getenv(EnvAPIToken)) == "" {
		s.logger.Errorw("Credential is missing or blank", "env", EnvAPIToken)
		ok = false
	}
	if strings.TrimSpace(os.Getenv(EnvOrgID)) == "" {
		s.logger.Errorw("Credential is missing or blank", "env", EnvOrgID)
		ok = false
	}
	return ok
}

// Clear удаляет оба секрета из окружения. Удаление отсутствующего
// значения считается успехом; результат по каждому полю логируется отдельно.
func (s *Store) Clear() error {
	var firstErr error
	for _, name := range []string{EnvAPIToken, EnvOrgID} {
		if err := os.Unsetenv(name); err != nil {
			s.logger.Errorw("Failed to clear credential", "env", name, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("unset %s: %w", name, err)
			}
			continue
		}
		s.logger.Infow("Credential cleared", "env", name)
	}
	return firstErr
}

// Token возвращает текущий токен API (может быть пустым).
func (s *Store) Token() string { return strings.TrimSpace(os.Getenv(EnvAPIToken)) }

// OrgID возвращает текущий идентификатор организации (может быть пустым).
func (s *Store) OrgID() string { return strings.TrimSpace(os.Getenv(EnvOrgID)) }

func (s *Store) prompt(label string) (string, error) {
	if _, err := fmt.Fprint(s.out, label); err != nil {
		return "", err
	}
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
