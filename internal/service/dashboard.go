// dashboard.go — сводная статистика для страницы Dashboard.
// Каждый показатель запрашивается у RAS независимо: сбой одного
// не скрывает остальные.
package service

import (
	"context"
	"log/slog"

	"github.com/ukozi/raspyman/internal/rasclient"
)

// DashboardClient — операции RAS-клиента, нужные для сводки.
type DashboardClient interface {
	ListUsers(ctx context.Context) ([]rasclient.User, error)
	ListSessions(ctx context.Context) ([]rasclient.Session, error)
	ListChatRooms(ctx context.Context) ([]rasclient.ChatRoom, error)
	ServerVersion(ctx context.Context) (*rasclient.Version, error)
	BaseURL() string
}

// DashboardStats — сводка состояния RAS для Dashboard.
// Поля со значением -1 означают, что показатель получить не удалось.
type DashboardStats struct {
	BaseURL        string             `json:"base_url"`
	Reachable      bool               `json:"reachable"`
	TotalUsers     int                `json:"total_users"`
	ActiveSessions int                `json:"active_sessions"`
	PublicRooms    int                `json:"public_rooms"`
	Version        *rasclient.Version `json:"version,omitempty"`
}

// DashboardService — сервис сводной статистики.
type DashboardService struct {
	ras    DashboardClient
	logger *slog.Logger
}

// NewDashboardService создаёт сервис сводки.
func NewDashboardService(ras DashboardClient, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		ras:    ras,
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// Stats собирает сводку. Ошибки отдельных показателей логируются
// и помечаются значением -1, ошибка не возвращается: страница
// Dashboard должна отображаться даже при частично недоступном RAS.
func (s *DashboardService) Stats(ctx context.Context) *DashboardStats {
	stats := &DashboardStats{
		BaseURL:        s.ras.BaseURL(),
		TotalUsers:     -1,
		ActiveSessions: -1,
		PublicRooms:    -1,
	}

	if version, err := s.ras.ServerVersion(ctx); err == nil {
		stats.Version = version
		stats.Reachable = true
	} else {
		s.logger.Warn("RAS недоступен для сводки", slog.String("error", err.Error()))
	}

	if users, err := s.ras.ListUsers(ctx); err == nil {
		stats.TotalUsers = len(users)
		stats.Reachable = true
	} else {
		s.logger.Warn("Ошибка получения числа пользователей", slog.String("error", err.Error()))
	}

	if sessions, err := s.ras.ListSessions(ctx); err == nil {
		stats.ActiveSessions = len(sessions)
		stats.Reachable = true
	} else {
		s.logger.Warn("Ошибка получения числа сессий", slog.String("error", err.Error()))
	}

	if rooms, err := s.ras.ListChatRooms(ctx); err == nil {
		stats.PublicRooms = len(rooms)
		stats.Reachable = true
	} else {
		s.logger.Warn("Ошибка получения числа чат-комнат", slog.String("error", err.Error()))
	}

	return stats
}
