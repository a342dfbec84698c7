// Пакет rasclient — HTTP-клиент к RAS Management API.
// Единственная точка исходящих вызовов к Retro AIM Server: сериализация
// запросов, таймауты, повторы с backoff при сетевых сбоях и перевод
// ответов сервера в типизированные ошибки (*Error).
//
// Клиент не хранит состояние между запросами, кроме базового URL,
// который можно менять на лету (настройки консоли, last-write-wins).
package rasclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client — клиент RAS Management API.
type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	maxRetries  int
	backoffBase time.Duration

	// Базовый URL защищён RWMutex: настройки консоли могут менять его
	// во время работы, читатели — все исходящие запросы.
	mu      sync.RWMutex
	baseURL string
}

// Options — параметры создания клиента.
type Options struct {
	// Timeout — таймаут одного HTTP-запроса (по умолчанию 10s).
	Timeout time.Duration
	// MaxRetries — число повторов при сетевом сбое (по умолчанию 3).
	MaxRetries int
	// BackoffBase — начальная задержка перед повтором, удваивается
	// с каждой попыткой (по умолчанию 200ms).
	BackoffBase time.Duration
	// HTTPClient — готовый HTTP-клиент (для тестов). Если задан,
	// Timeout игнорируется.
	HTTPClient *http.Client
}

// New создаёт клиент RAS Management API.
// baseURL проверяется сразу: некорректный URL — ошибка KindConfig.
func New(baseURL string, opts Options, logger *slog.Logger) (*Client, error) {
	normalized, err := validateBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	} else if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = 200 * time.Millisecond
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		httpClient:  httpClient,
		logger:      logger.With(slog.String("component", "ras_client")),
		maxRetries:  opts.MaxRetries,
		backoffBase: opts.BackoffBase,
		baseURL:     normalized,
	}, nil
}

// validateBaseURL проверяет и нормализует базовый URL RAS.
func validateBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", &Error{Kind: KindConfig, Message: fmt.Sprintf("некорректный URL %q: %v", raw, err), Err: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &Error{Kind: KindConfig, Message: fmt.Sprintf("URL %q: ожидалась схема http или https", raw)}
	}
	if parsed.Host == "" {
		return "", &Error{Kind: KindConfig, Message: fmt.Sprintf("URL %q: отсутствует хост", raw)}
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

// SetBaseURL меняет целевой адрес RAS.
// При некорректном URL возвращает ошибку KindConfig, прежний адрес сохраняется.
func (c *Client) SetBaseURL(raw string) error {
	normalized, err := validateBaseURL(raw)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.baseURL = normalized
	c.mu.Unlock()

	c.logger.Info("Базовый URL RAS обновлён", slog.String("base_url", normalized))
	return nil
}

// BaseURL возвращает текущий базовый URL RAS.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// do выполняет один запрос к RAS с повторами при сетевых сбоях.
// operation — имя операции для логов и метрик.
// body сериализуется в JSON (nil — запрос без тела).
// out — приёмник JSON-ответа (nil — тело ответа игнорируется).
//
// Повторяются только сбои транспорта (соединение, таймаут): управляющие
// операции RAS идемпотентны либо безопасно завершаются конфликтом при
// повторной доставке. Ответ с не-2xx статусом — терминальная ошибка.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Message: fmt.Sprintf("сериализация тела запроса: %v", err), Err: err}
		}
	}

	reqURL := c.BaseURL() + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Экспоненциальный backoff: base, 2*base, 4*base, ...
			delay := c.backoffBase << (attempt - 1)
			c.logger.Debug("Повтор запроса к RAS",
				slog.String("operation", operation),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				observeRequest(operation, outcomeTransport)
				return &Error{Kind: KindTransport, Message: "запрос отменён", Err: ctx.Err()}
			}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
		if err != nil {
			observeRequest(operation, outcomeTransport)
			return &Error{Kind: KindTransport, Message: fmt.Sprintf("создание запроса %s: %v", operation, err), Err: err}
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Отмена контекста — не повторяем.
			if ctx.Err() != nil {
				observeRequest(operation, outcomeTransport)
				return &Error{Kind: KindTransport, Message: "запрос отменён", Err: ctx.Err()}
			}
			lastErr = err
			continue
		}

		return c.handleResponse(operation, resp, out)
	}

	observeRequest(operation, outcomeTransport)
	return &Error{
		Kind:    KindTransport,
		Message: fmt.Sprintf("%s: RAS недоступен после %d попыток: %v", operation, c.maxRetries+1, lastErr),
		Err:     lastErr,
	}
}

// handleResponse разбирает ответ RAS: 2xx декодируется в out,
// остальные статусы превращаются в типизированную ошибку.
func (c *Client) handleResponse(operation string, resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := classifyStatus(resp.StatusCode)
		message := decodeErrorBody(resp.Body)
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}

		c.logger.Warn("RAS отклонил запрос",
			slog.String("operation", operation),
			slog.Int("status", resp.StatusCode),
			slog.String("kind", kind.String()),
		)
		observeRequest(operation, kind.String())

		return &Error{Kind: kind, StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			observeRequest(operation, outcomeTransport)
			return &Error{
				Kind:       KindTransport,
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("декодирование ответа %s: %v", operation, err),
				Err:        err,
			}
		}
	}

	observeRequest(operation, outcomeOK)
	return nil
}

// decodeErrorBody извлекает сообщение из тела ошибки RAS.
// Ожидаемая форма — JSON {"message": "..."}; любой другой формат
// возвращается как сырой текст (обрезанный до разумной длины).
func decodeErrorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}

	return strings.TrimSpace(string(raw))
}
