// users.go — операции над учётными записями RAS.
// Endpoints: GET/POST/DELETE /user, GET/PATCH /user/{screenname}/account,
// PUT /user/password.
package rasclient

import (
	"context"
	"net/http"
	"net/url"
)

// createUserRequest — тело POST /user.
type createUserRequest struct {
	ScreenName string `json:"screen_name"`
	Password   string `json:"password"`
}

// deleteUserRequest — тело DELETE /user.
// RAS принимает screen_name в теле запроса, не в пути.
type deleteUserRequest struct {
	ScreenName string `json:"screen_name"`
}

// updateAccountRequest — тело PATCH /user/{screenname}/account.
type updateAccountRequest struct {
	SuspendedStatus string `json:"suspended_status"`
}

// resetPasswordRequest — тело PUT /user/password.
type resetPasswordRequest struct {
	ScreenName string `json:"screen_name"`
	Password   string `json:"password"`
}

// ListUsers возвращает все учётные записи.
// Пустой сервер — пустой срез, не ошибка.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, "ListUsers", http.MethodGet, "/user", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// GetUser возвращает детали учётной записи по screen name.
func (c *Client) GetUser(ctx context.Context, screenName string) (*User, error) {
	var user User
	path := "/user/" + url.PathEscape(screenName) + "/account"
	if err := c.do(ctx, "GetUser", http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser создаёт учётную запись.
func (c *Client) CreateUser(ctx context.Context, screenName, password string) error {
	body := createUserRequest{ScreenName: screenName, Password: password}
	return c.do(ctx, "CreateUser", http.MethodPost, "/user", body, nil)
}

// SetSuspendedStatus меняет статус блокировки учётной записи.
// Пустая строка снимает блокировку (StatusActive).
func (c *Client) SetSuspendedStatus(ctx context.Context, screenName, status string) error {
	body := updateAccountRequest{SuspendedStatus: status}
	path := "/user/" + url.PathEscape(screenName) + "/account"
	return c.do(ctx, "SetSuspendedStatus", http.MethodPatch, path, body, nil)
}

// ResetPassword устанавливает новый пароль учётной записи.
func (c *Client) ResetPassword(ctx context.Context, screenName, password string) error {
	body := resetPasswordRequest{ScreenName: screenName, Password: password}
	return c.do(ctx, "ResetPassword", http.MethodPut, "/user/password", body, nil)
}

// DeleteUser удаляет учётную запись.
// Повторное удаление той же записи — ошибка KindNotFound.
func (c *Client) DeleteUser(ctx context.Context, screenName string) error {
	body := deleteUserRequest{ScreenName: screenName}
	return c.do(ctx, "DeleteUser", http.MethodDelete, "/user", body, nil)
}
