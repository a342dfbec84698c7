// Точка входа raspyman — web-консоль администратора Retro AIM Server.
// Загружает конфигурацию, создаёт клиент RAS Management API, сервисный
// слой и HTTP handlers, запускает мониторинг зависимостей
// (topologymetrics), HTTP-сервер с аутентификацией и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/ukozi/raspyman/internal/api/handlers"
	"github.com/ukozi/raspyman/internal/api/middleware"
	"github.com/ukozi/raspyman/internal/config"
	"github.com/ukozi/raspyman/internal/rasclient"
	"github.com/ukozi/raspyman/internal/server"
	"github.com/ukozi/raspyman/internal/service"
	"github.com/ukozi/raspyman/internal/ui/auth"
	uihandlers "github.com/ukozi/raspyman/internal/ui/handlers"
	uimiddleware "github.com/ukozi/raspyman/internal/ui/middleware"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("raspyman запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("ras_url", cfg.RASURL),
	)

	if os.Getenv("RM_RAS_URL") == "" {
		logger.Warn("RM_RAS_URL не задана, используется значение по умолчанию",
			slog.String("default", cfg.RASURL),
		)
	}

	// 3. Клиент RAS Management API
	rasClient, err := rasclient.New(cfg.RASURL, rasclient.Options{
		Timeout:     cfg.RASTimeout,
		MaxRetries:  cfg.RASRetries,
		BackoffBase: cfg.RASBackoff,
	}, logger)
	if err != nil {
		logger.Error("Ошибка создания RAS-клиента", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Сервисный слой
	usersSvc := service.NewUserService(rasClient, logger)
	sessionsSvc := service.NewSessionService(rasClient, logger)
	chatRoomsSvc := service.NewChatRoomService(rasClient, logger)
	directorySvc := service.NewDirectoryService(rasClient, logger)
	dashboardSvc := service.NewDashboardService(rasClient, logger)
	messagesSvc := service.NewMessageService(rasClient, logger)

	// 5. HTTP handlers
	healthHandler := handlers.NewHealthHandler(rasClient)
	apiHandler := handlers.NewAPIHandler(
		usersSvc,
		sessionsSvc,
		chatRoomsSvc,
		directorySvc,
		dashboardSvc,
		messagesSvc,
		rasClient,
		logger,
	)

	// 6. JWT middleware (опционально, если задан RM_JWT_JWKS_URL)
	var jwtAuth *middleware.JWTAuth
	if cfg.JWTEnabled() {
		jwtAuth, err = middleware.NewJWTAuth(
			cfg.JWTJWKSURL,
			cfg.JWTIssuer,
			cfg.JWTRolesClaim,
			logger,
		)
		if err != nil {
			logger.Error("Ошибка создания JWT middleware", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("JWT middleware инициализирован",
			slog.String("jwks_url", cfg.JWTJWKSURL),
			slog.String("issuer", cfg.JWTIssuer),
		)
	}

	// 7. Локальная аутентификация UI (опционально, если задан RM_ADMIN_USER)
	var authHandler *uihandlers.AuthHandler
	var uiAuth *uimiddleware.UIAuth
	if cfg.AuthEnabled() {
		secureCookie := strings.HasPrefix(cfg.RASURL, "https")

		sessionMgr, sessionErr := auth.NewSessionManager(cfg.SessionSecret, secureCookie)
		if sessionErr != nil {
			logger.Error("Ошибка создания Session Manager", slog.String("error", sessionErr.Error()))
			os.Exit(1)
		}

		if cfg.SessionSecret == "" {
			logger.Warn("RM_SESSION_SECRET не задан, UI-сессии не сохраняются между рестартами")
		}

		authHandler = uihandlers.NewAuthHandler(sessionMgr, cfg.AdminUser, cfg.AdminPassword, logger)
		uiAuth = uimiddleware.NewUIAuth(sessionMgr, logger, jwtAuth != nil)

		logger.Info("Локальная аутентификация UI включена",
			slog.String("admin_user", cfg.AdminUser),
		)
	} else {
		logger.Info("Аутентификация UI отключена (RM_ADMIN_USER не задана)")
	}

	// 8. topologymetrics — мониторинг доступности RAS
	ctx := context.Background()
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"raspyman",
		cfg.DephealthGroup,
		cfg.RASURL,
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 9. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler, healthHandler, authHandler, uiAuth, jwtAuth)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 10. Graceful shutdown фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("raspyman остановлен")
}
