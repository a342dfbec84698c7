// messages.go — отправка мгновенных сообщений через RAS.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Максимальная длина текста мгновенного сообщения.
const maxMessageLen = 2048

// MessageClient — операции RAS-клиента для отправки сообщений.
type MessageClient interface {
	SendInstantMessage(ctx context.Context, from, to, text string) error
}

// MessageService — сервис отправки мгновенных сообщений.
type MessageService struct {
	ras    MessageClient
	logger *slog.Logger
}

// NewMessageService создаёт сервис сообщений.
func NewMessageService(ras MessageClient, logger *slog.Logger) *MessageService {
	return &MessageService{
		ras:    ras,
		logger: logger.With(slog.String("component", "message_service")),
	}
}

// Send отправляет мгновенное сообщение от имени from пользователю to.
func (s *MessageService) Send(ctx context.Context, from, to, text string) error {
	if strings.TrimSpace(from) == "" {
		return fmt.Errorf("%w: пустой отправитель", ErrValidation)
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: пустой получатель", ErrValidation)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: пустой текст сообщения", ErrValidation)
	}
	if len(text) > maxMessageLen {
		return fmt.Errorf("%w: сообщение длиннее %d символов", ErrValidation, maxMessageLen)
	}

	if err := s.ras.SendInstantMessage(ctx, from, to, text); err != nil {
		return err
	}

	s.logger.Info("Мгновенное сообщение отправлено",
		slog.String("from", from),
		slog.String("to", to),
	)
	return nil
}
