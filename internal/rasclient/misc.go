// misc.go — вспомогательные операции RAS Management API:
// версия сервера и отправка мгновенных сообщений.
package rasclient

import (
	"context"
	"net/http"
	"time"
)

// instantMessageRequest — тело POST /instant-message.
type instantMessageRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// ServerVersion возвращает информацию о сборке RAS (GET /version).
func (c *Client) ServerVersion(ctx context.Context) (*Version, error) {
	var version Version
	if err := c.do(ctx, "ServerVersion", http.MethodGet, "/version", nil, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// SendInstantMessage отправляет мгновенное сообщение от имени
// пользователя from пользователю to.
func (c *Client) SendInstantMessage(ctx context.Context, from, to, text string) error {
	body := instantMessageRequest{From: from, To: to, Text: text}
	return c.do(ctx, "SendInstantMessage", http.MethodPost, "/instant-message", body, nil)
}

// CheckReady проверяет доступность RAS через GET /version.
// Реализует handlers.ReadinessChecker.
func (c *Client) CheckReady() (string, string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	version, err := c.ServerVersion(ctx)
	if err != nil {
		return "fail", "RAS недоступен: " + err.Error()
	}

	return "ok", "RAS " + version.Version + " доступен"
}
