// users.go — сервис управления учётными записями RAS.
// Валидация входных данных до обращения к серверу, остальное —
// прозрачный проброс в RAS-клиент.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ukozi/raspyman/internal/rasclient"
)

// Ограничения AIM на учётные данные: screen name 3-16 символов,
// начинается с буквы; пароль 4-16 символов.
const (
	minScreenNameLen = 3
	maxScreenNameLen = 16
	minPasswordLen   = 4
	maxPasswordLen   = 16
)

// validSuspendedStatuses — статусы блокировки, которые понимает RAS.
var validSuspendedStatuses = map[string]bool{
	rasclient.StatusActive:       true,
	rasclient.StatusSuspended:    true,
	rasclient.StatusDeleted:      true,
	rasclient.StatusExpired:      true,
	rasclient.StatusSuspendedAge: true,
}

// UserClient — операции RAS-клиента, нужные сервису учётных записей.
type UserClient interface {
	ListUsers(ctx context.Context) ([]rasclient.User, error)
	GetUser(ctx context.Context, screenName string) (*rasclient.User, error)
	CreateUser(ctx context.Context, screenName, password string) error
	SetSuspendedStatus(ctx context.Context, screenName, status string) error
	ResetPassword(ctx context.Context, screenName, password string) error
	DeleteUser(ctx context.Context, screenName string) error
}

// UserService — сервис управления учётными записями.
type UserService struct {
	ras    UserClient
	logger *slog.Logger
}

// NewUserService создаёт сервис учётных записей.
func NewUserService(ras UserClient, logger *slog.Logger) *UserService {
	return &UserService{
		ras:    ras,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// List возвращает все учётные записи.
func (s *UserService) List(ctx context.Context) ([]rasclient.User, error) {
	return s.ras.ListUsers(ctx)
}

// Get возвращает детали учётной записи.
func (s *UserService) Get(ctx context.Context, screenName string) (*rasclient.User, error) {
	if strings.TrimSpace(screenName) == "" {
		return nil, fmt.Errorf("%w: пустой screen name", ErrValidation)
	}
	return s.ras.GetUser(ctx, screenName)
}

// Create создаёт учётную запись после локальной валидации.
func (s *UserService) Create(ctx context.Context, screenName, password string) error {
	if err := validateScreenName(screenName); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	if err := s.ras.CreateUser(ctx, screenName, password); err != nil {
		return err
	}

	s.logger.Info("Учётная запись создана", slog.String("screen_name", screenName))
	return nil
}

// SetStatus меняет статус блокировки учётной записи.
// Пустой статус снимает блокировку.
func (s *UserService) SetStatus(ctx context.Context, screenName, status string) error {
	if strings.TrimSpace(screenName) == "" {
		return fmt.Errorf("%w: пустой screen name", ErrValidation)
	}
	if !validSuspendedStatuses[status] {
		return fmt.Errorf("%w: недопустимый статус %q", ErrValidation, status)
	}

	if err := s.ras.SetSuspendedStatus(ctx, screenName, status); err != nil {
		return err
	}

	s.logger.Info("Статус учётной записи изменён",
		slog.String("screen_name", screenName),
		slog.String("status", status),
	)
	return nil
}

// ResetPassword устанавливает новый пароль учётной записи.
func (s *UserService) ResetPassword(ctx context.Context, screenName, password string) error {
	if strings.TrimSpace(screenName) == "" {
		return fmt.Errorf("%w: пустой screen name", ErrValidation)
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	if err := s.ras.ResetPassword(ctx, screenName, password); err != nil {
		return err
	}

	s.logger.Info("Пароль учётной записи сброшен", slog.String("screen_name", screenName))
	return nil
}

// Delete удаляет учётную запись.
func (s *UserService) Delete(ctx context.Context, screenName string) error {
	if strings.TrimSpace(screenName) == "" {
		return fmt.Errorf("%w: пустой screen name", ErrValidation)
	}

	if err := s.ras.DeleteUser(ctx, screenName); err != nil {
		return err
	}

	s.logger.Info("Учётная запись удалена", slog.String("screen_name", screenName))
	return nil
}

// validateScreenName проверяет screen name по правилам AIM.
func validateScreenName(screenName string) error {
	trimmed := strings.TrimSpace(screenName)
	if len(trimmed) < minScreenNameLen || len(trimmed) > maxScreenNameLen {
		return fmt.Errorf("%w: screen name должен содержать от %d до %d символов",
			ErrValidation, minScreenNameLen, maxScreenNameLen)
	}
	first := rune(trimmed[0])
	if !unicode.IsLetter(first) {
		return fmt.Errorf("%w: screen name должен начинаться с буквы", ErrValidation)
	}
	return nil
}

// validatePassword проверяет длину пароля.
func validatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return fmt.Errorf("%w: пароль должен содержать от %d до %d символов",
			ErrValidation, minPasswordLen, maxPasswordLen)
	}
	return nil
}
