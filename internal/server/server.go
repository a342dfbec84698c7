// Пакет server — HTTP-сервер web-консоли с graceful shutdown.
// Без TLS — консоль предназначена для локальной сети администратора.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ukozi/raspyman/internal/api/handlers"
	"github.com/ukozi/raspyman/internal/api/middleware"
	"github.com/ukozi/raspyman/internal/config"
	uihandlers "github.com/ukozi/raspyman/internal/ui/handlers"
	uimiddleware "github.com/ukozi/raspyman/internal/ui/middleware"
	"github.com/ukozi/raspyman/internal/ui/static"
)

// Верхняя граница диапазона портов консоли.
// Если настроенный порт занят, пробуются следующие до этой границы.
const maxPort = 8009

// Server — HTTP-сервер консоли.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
// authHandler и uiAuth могут быть nil — тогда консоль работает без входа.
// jwtAuth может быть nil — тогда API доступен без Bearer token.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	apiHandler *handlers.APIHandler,
	healthHandler *handlers.HealthHandler,
	authHandler *uihandlers.AuthHandler,
	uiAuth *uimiddleware.UIAuth,
	jwtAuth *middleware.JWTAuth,
) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.RequestID())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))

	// Публичные endpoints: health, metrics, статика, вход.
	router.Get("/health/live", healthHandler.HealthLive)
	router.Get("/health/ready", healthHandler.HealthReady)
	router.Get("/metrics", healthHandler.GetMetrics)

	router.Handle("/static/*", http.StripPrefix("/static/",
		http.FileServer(static.FileSystem())))

	if authHandler != nil {
		router.Get("/login", servePage("login.html"))
		router.Post("/login", authHandler.HandleLogin)
		router.Post("/logout", authHandler.HandleLogout)
		router.Get("/whoami", authHandler.HandleWhoami)
	}

	// Защищённые маршруты: UI-сессия и/или JWT с исключениями.
	router.Group(func(r chi.Router) {
		if uiAuth != nil {
			r.Use(uiAuth.Middleware())
		}

		r.Get("/", servePage("index.html"))

		r.Route("/api/v1", func(r chi.Router) {
			// JWT применяется только к API: интеграции ходят с Bearer token,
			// браузер — с session cookie.
			if jwtAuth != nil {
				r.Use(jwtAuth.Middleware())
			}
			r.Use(middleware.RequireWriter())

			r.Get("/dashboard", apiHandler.GetDashboard)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", apiHandler.ListUsers)
				r.Post("/", apiHandler.CreateUser)
				r.Get("/{screenName}", apiHandler.GetUser)
				r.Delete("/{screenName}", apiHandler.DeleteUser)
				r.Patch("/{screenName}/status", apiHandler.UpdateUserStatus)
				r.Put("/{screenName}/password", apiHandler.ResetUserPassword)
				r.Get("/{screenName}/sessions", apiHandler.ListUserSessions)
			})

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", apiHandler.ListSessions)
				r.Delete("/{id}", apiHandler.TerminateSession)
			})

			r.Route("/chatrooms", func(r chi.Router) {
				r.Get("/", apiHandler.ListChatRooms)
				r.Post("/", apiHandler.CreateChatRoom)
				r.Delete("/{name}", apiHandler.DeleteChatRoom)
			})

			r.Route("/directory", func(r chi.Router) {
				r.Get("/", apiHandler.GetDirectory)
				r.Get("/categories", apiHandler.ListCategories)
				r.Post("/categories", apiHandler.CreateCategory)
				r.Delete("/categories/{id}", apiHandler.DeleteCategory)
				r.Get("/categories/{id}/keywords", apiHandler.ListCategoryKeywords)
				r.Post("/keywords", apiHandler.CreateKeyword)
				r.Delete("/keywords/{id}", apiHandler.DeleteKeyword)
			})

			r.Post("/messages", apiHandler.SendMessage)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/backend", apiHandler.GetBackendSettings)
				r.Put("/backend", apiHandler.UpdateBackendSettings)
			})
		})
	})

	srv := &http.Server{
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// servePage отдаёт встроенную HTML-страницу.
func servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static.FS(), name)
	}
}

// listen открывает TCP listener на настроенном порту.
// Если порт занят, пробуются следующие порты диапазона до 8009.
func (s *Server) listen() (net.Listener, error) {
	for port := s.cfg.Port; port <= maxPort; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			if port != s.cfg.Port {
				s.logger.Warn("Настроенный порт занят, выбран следующий свободный",
					slog.Int("configured_port", s.cfg.Port),
					slog.Int("port", port),
				)
			}
			return ln, nil
		}
		if !isAddrInUse(err) {
			return nil, fmt.Errorf("открытие listener на порту %d: %w", port, err)
		}
		s.logger.Debug("Порт занят", slog.Int("port", port))
	}
	return nil, fmt.Errorf("все порты диапазона %d-%d заняты", s.cfg.Port, maxPort)
}

// isAddrInUse определяет ошибку занятого адреса.
func isAddrInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	ln, err := s.listen()
	if err != nil {
		return err
	}
	s.httpServer.Addr = ln.Addr().String()

	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.Serve(ln)
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}

// Handler возвращает корневой http.Handler сервера (для тестов).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
