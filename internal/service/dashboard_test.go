package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ukozi/raspyman/internal/rasclient"
)

// fakeDashboardClient — мок DashboardClient с управляемыми сбоями.
type fakeDashboardClient struct {
	usersErr    error
	sessionsErr error
	roomsErr    error
	versionErr  error
}

func (f *fakeDashboardClient) ListUsers(context.Context) ([]rasclient.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return []rasclient.User{{ScreenName: "a"}, {ScreenName: "b"}}, nil
}

func (f *fakeDashboardClient) ListSessions(context.Context) ([]rasclient.Session, error) {
	if f.sessionsErr != nil {
		return nil, f.sessionsErr
	}
	return []rasclient.Session{{ID: "s1"}}, nil
}

func (f *fakeDashboardClient) ListChatRooms(context.Context) ([]rasclient.ChatRoom, error) {
	if f.roomsErr != nil {
		return nil, f.roomsErr
	}
	return []rasclient.ChatRoom{}, nil
}

func (f *fakeDashboardClient) ServerVersion(context.Context) (*rasclient.Version, error) {
	if f.versionErr != nil {
		return nil, f.versionErr
	}
	return &rasclient.Version{Version: "0.17.0"}, nil
}

func (f *fakeDashboardClient) BaseURL() string { return "http://localhost:5000" }

func TestDashboardService_StatsAllOK(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardClient{}, testLogger())

	stats := svc.Stats(context.Background())
	if !stats.Reachable {
		t.Error("Reachable = false при доступном RAS")
	}
	if stats.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, ожидается 2", stats.TotalUsers)
	}
	if stats.ActiveSessions != 1 {
		t.Errorf("ActiveSessions = %d, ожидается 1", stats.ActiveSessions)
	}
	if stats.PublicRooms != 0 {
		t.Errorf("PublicRooms = %d, ожидается 0", stats.PublicRooms)
	}
	if stats.Version == nil || stats.Version.Version != "0.17.0" {
		t.Errorf("Version = %+v, ожидается 0.17.0", stats.Version)
	}
	if stats.BaseURL != "http://localhost:5000" {
		t.Errorf("BaseURL = %q", stats.BaseURL)
	}
}

func TestDashboardService_StatsPartialFailure(t *testing.T) {
	// Сбой одного показателя не скрывает остальные
	ras := &fakeDashboardClient{usersErr: errors.New("boom")}
	svc := NewDashboardService(ras, testLogger())

	stats := svc.Stats(context.Background())
	if stats.TotalUsers != -1 {
		t.Errorf("TotalUsers = %d, ожидается -1 при сбое", stats.TotalUsers)
	}
	if stats.ActiveSessions != 1 {
		t.Errorf("ActiveSessions = %d, ожидается 1", stats.ActiveSessions)
	}
}

func TestDashboardService_StatsUnreachable(t *testing.T) {
	err := &rasclient.Error{Kind: rasclient.KindTransport, Message: "connection refused"}
	ras := &fakeDashboardClient{
		usersErr:    err,
		sessionsErr: err,
		roomsErr:    err,
		versionErr:  err,
	}
	svc := NewDashboardService(ras, testLogger())

	stats := svc.Stats(context.Background())
	if stats.Reachable {
		t.Error("Reachable = true при недоступном RAS")
	}
	if stats.TotalUsers != -1 || stats.ActiveSessions != -1 || stats.PublicRooms != -1 {
		t.Errorf("показатели должны быть -1: %+v", stats)
	}
	if stats.Version != nil {
		t.Errorf("Version = %+v, ожидается nil", stats.Version)
	}
}
