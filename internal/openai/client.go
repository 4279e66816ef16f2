package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"

	"OpenAIClient/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Заголовки провайдера, общие для всех операций.
const (
	headerOrganization = "OpenAI-Organization"
	headerBeta         = "OpenAI-Beta"
	assistantsVersion  = "assistants=v2"
)

// CredentialSource отдаёт текущие секреты и проверяет их наличие.
// Реализуется credentials.Store; в тестах подменяется заглушкой.
type CredentialSource interface {
	Token() string
	OrgID() string
	Check() bool
}

// Client — тонкий клиент HTTP API провайдера. Состояния между вызовами
// не хранит: каждый метод — один запрос (или запрос плюс скачивание файла).
type Client struct {
	http   *http.Client
	cfg    *config.Config
	creds  CredentialSource
	logger *zap.SugaredLogger

	// Генератор границы multipart; подменяется в тестах для детерминизма.
	newBoundary func() string
	// Источник случайности для выбора голоса TTS.
	randInt func(n int) int
}

func New(cfg *config.Config, creds CredentialSource, logger *zap.SugaredLogger) *Client {
	return &Client{
		http:        http.DefaultClient,
		cfg:         cfg,
		creds:       creds,
		logger:      logger,
		newBoundary: func() string { return "form-" + uuid.NewString() },
		randInt:     rand.Intn,
	}
}

// doJSON выполняет аутентифицированный запрос с JSON-телом (или без тела)
// и декодирует JSON-ответ в out. extra — заголовки поверх обязательных.
func (c *Client) doJSON(ctx context.Context, method, path string, extra map[string]string, in, out any) error {
	if !c.creds.Check() {
		return ErrCredentials
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.Token())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response %s: %w", path, err)
	}
	return nil
}

// filePart — бинарная часть multipart-запроса.
type filePart struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// doMultipart выполняет аутентифицированный multipart-запрос: одна бинарная
// часть плюс текстовые поля, граница генерируется через newBoundary.
func (c *Client) doMultipart(ctx context.Context, path string, file filePart, fields map[string]string, out any) error {
	if !c.creds.Check() {
		return ErrCredentials
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(c.newBoundary()); err != nil {
		return fmt.Errorf("multipart boundary: %w", err)
	}

	h := make(map[string][]string)
	h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename)}
	h["Content-Type"] = []string{file.ContentType}
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("multipart file part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return fmt.Errorf("multipart file content: %w", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("multipart field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("multipart finalize: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.Token())
	req.Header.Set(headerOrganization, c.creds.OrgID())
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response %s: %w", path, err)
	}
	return nil
}

// download стримит тело ответа напрямую в файл назначения, минуя память.
// Используется для скачивания картинок и аудио.
func (c *Client) download(ctx context.Context, rawURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(rawURL, resp)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return nil
}

// postForFile — аутентифицированный POST, тело ответа которого и есть
// результат (синтез речи); стримится напрямую в файл назначения.
func (c *Client) postForFile(ctx context.Context, path string, in any, destPath string) error {
	if !c.creds.Check() {
		return ErrCredentials
	}

	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.Token())
	req.Header.Set(headerOrganization, c.creds.OrgID())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(path, resp)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return nil
}

func (c *Client) apiError(path string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if len(body) == 0 {
		body = []byte(resp.Status)
	}
	return &APIError{StatusCode: resp.StatusCode, Path: path, Body: body}
}

// orgHeader — заголовок для org-scoped вызовов (chat, completions, images, audio).
func (c *Client) orgHeader() map[string]string {
	return map[string]string{headerOrganization: c.creds.OrgID()}
}

// betaHeader — заголовок протокола Assistants для всех вызовов
// assistant/thread/message/run.
func (c *Client) betaHeader() map[string]string {
	return map[string]string{headerBeta: assistantsVersion}
}
