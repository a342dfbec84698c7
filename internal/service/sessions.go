// sessions.go — сервис наблюдения за активными сессиями RAS.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ukozi/raspyman/internal/rasclient"
)

// SessionClient — операции RAS-клиента, нужные сервису сессий.
type SessionClient interface {
	ListSessions(ctx context.Context) ([]rasclient.Session, error)
	ListUserSessions(ctx context.Context, screenName string) ([]rasclient.Session, error)
	TerminateSession(ctx context.Context, sessionID string) error
}

// SessionService — сервис активных сессий.
type SessionService struct {
	ras    SessionClient
	logger *slog.Logger
}

// NewSessionService создаёт сервис сессий.
func NewSessionService(ras SessionClient, logger *slog.Logger) *SessionService {
	return &SessionService{
		ras:    ras,
		logger: logger.With(slog.String("component", "session_service")),
	}
}

// List возвращает все активные сессии.
func (s *SessionService) List(ctx context.Context) ([]rasclient.Session, error) {
	return s.ras.ListSessions(ctx)
}

// ListForUser возвращает активные сессии одного пользователя.
func (s *SessionService) ListForUser(ctx context.Context, screenName string) ([]rasclient.Session, error) {
	if strings.TrimSpace(screenName) == "" {
		return nil, fmt.Errorf("%w: пустой screen name", ErrValidation)
	}
	return s.ras.ListUserSessions(ctx, screenName)
}

// Terminate принудительно завершает сессию.
func (s *SessionService) Terminate(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: пустой ID сессии", ErrValidation)
	}

	if err := s.ras.TerminateSession(ctx, sessionID); err != nil {
		return err
	}

	s.logger.Info("Сессия завершена", slog.String("session_id", sessionID))
	return nil
}
