// chat.go — операции над публичными чат-комнатами RAS.
// Endpoints: GET/POST /chat/room/public, DELETE /chat/room/public/{name}.
package rasclient

import (
	"context"
	"net/http"
	"net/url"
)

// createChatRoomRequest — тело POST /chat/room/public.
type createChatRoomRequest struct {
	Name string `json:"name"`
}

// ListChatRooms возвращает все публичные чат-комнаты.
func (c *Client) ListChatRooms(ctx context.Context) ([]ChatRoom, error) {
	var rooms []ChatRoom
	if err := c.do(ctx, "ListChatRooms", http.MethodGet, "/chat/room/public", nil, &rooms); err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []ChatRoom{}
	}
	return rooms, nil
}

// CreateChatRoom создаёт публичную чат-комнату.
func (c *Client) CreateChatRoom(ctx context.Context, name string) error {
	body := createChatRoomRequest{Name: name}
	return c.do(ctx, "CreateChatRoom", http.MethodPost, "/chat/room/public", body, nil)
}

// DeleteChatRoom удаляет публичную чат-комнату по имени.
func (c *Client) DeleteChatRoom(ctx context.Context, name string) error {
	path := "/chat/room/public/" + url.PathEscape(name)
	return c.do(ctx, "DeleteChatRoom", http.MethodDelete, path, nil, nil)
}
