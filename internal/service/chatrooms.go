// chatrooms.go — сервис управления публичными чат-комнатами RAS.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ukozi/raspyman/internal/rasclient"
)

// Максимальная длина имени чат-комнаты в AIM.
const maxRoomNameLen = 48

// ChatRoomClient — операции RAS-клиента, нужные сервису чат-комнат.
type ChatRoomClient interface {
	ListChatRooms(ctx context.Context) ([]rasclient.ChatRoom, error)
	CreateChatRoom(ctx context.Context, name string) error
	DeleteChatRoom(ctx context.Context, name string) error
}

// ChatRoomService — сервис публичных чат-комнат.
type ChatRoomService struct {
	ras    ChatRoomClient
	logger *slog.Logger
}

// NewChatRoomService создаёт сервис чат-комнат.
func NewChatRoomService(ras ChatRoomClient, logger *slog.Logger) *ChatRoomService {
	return &ChatRoomService{
		ras:    ras,
		logger: logger.With(slog.String("component", "chatroom_service")),
	}
}

// List возвращает все публичные чат-комнаты.
func (s *ChatRoomService) List(ctx context.Context) ([]rasclient.ChatRoom, error) {
	return s.ras.ListChatRooms(ctx)
}

// Create создаёт публичную чат-комнату.
func (s *ChatRoomService) Create(ctx context.Context, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: пустое имя комнаты", ErrValidation)
	}
	if len(trimmed) > maxRoomNameLen {
		return fmt.Errorf("%w: имя комнаты длиннее %d символов", ErrValidation, maxRoomNameLen)
	}

	if err := s.ras.CreateChatRoom(ctx, trimmed); err != nil {
		return err
	}

	s.logger.Info("Чат-комната создана", slog.String("name", trimmed))
	return nil
}

// Delete удаляет публичную чат-комнату по имени.
func (s *ChatRoomService) Delete(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: пустое имя комнаты", ErrValidation)
	}

	if err := s.ras.DeleteChatRoom(ctx, name); err != nil {
		return err
	}

	s.logger.Info("Чат-комната удалена", slog.String("name", name))
	return nil
}
