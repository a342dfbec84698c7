// sessions.go — операции над активными сессиями RAS.
// Endpoints: GET /session, GET /session/{screenname}, DELETE /session/{id}.
package rasclient

import (
	"context"
	"net/http"
	"net/url"
)

// ListSessions возвращает все активные сессии.
// Сервер без подключённых клиентов — пустой срез, не ошибка.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var resp sessionListResponse
	if err := c.do(ctx, "ListSessions", http.MethodGet, "/session", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Sessions == nil {
		resp.Sessions = []Session{}
	}
	return resp.Sessions, nil
}

// ListUserSessions возвращает активные сессии одного пользователя.
func (c *Client) ListUserSessions(ctx context.Context, screenName string) ([]Session, error) {
	var resp sessionListResponse
	path := "/session/" + url.PathEscape(screenName)
	if err := c.do(ctx, "ListUserSessions", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Sessions == nil {
		resp.Sessions = []Session{}
	}
	return resp.Sessions, nil
}

// TerminateSession принудительно завершает сессию по её ID.
// Отключает AIM/ICQ-клиент; учётная запись не затрагивается.
func (c *Client) TerminateSession(ctx context.Context, sessionID string) error {
	path := "/session/" + url.PathEscape(sessionID)
	return c.do(ctx, "TerminateSession", http.MethodDelete, path, nil, nil)
}
