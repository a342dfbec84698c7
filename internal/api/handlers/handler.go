// handler.go — основной обработчик JSON API консоли.
// Объединяет доменные сервисы и делегирует им запросы.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/ukozi/raspyman/internal/api/errors"
	"github.com/ukozi/raspyman/internal/rasclient"
	"github.com/ukozi/raspyman/internal/service"
)

// APIHandler — основной обработчик API консоли.
type APIHandler struct {
	users     *service.UserService
	sessions  *service.SessionService
	chatRooms *service.ChatRoomService
	directory *service.DirectoryService
	dashboard *service.DashboardService
	messages  *service.MessageService
	ras       *rasclient.Client
	logger    *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	users *service.UserService,
	sessions *service.SessionService,
	chatRooms *service.ChatRoomService,
	directory *service.DirectoryService,
	dashboard *service.DashboardService,
	messages *service.MessageService,
	ras *rasclient.Client,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		users:     users,
		sessions:  sessions,
		chatRooms: chatRooms,
		directory: directory,
		dashboard: dashboard,
		messages:  messages,
		ras:       ras,
		logger:    logger.With(slog.String("component", "api_handler")),
	}
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError переводит ошибку сервисного слоя или RAS-клиента
// в стандартный JSON-ответ ошибки.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, operation string, err error) {
	// Локальная валидация сервисного слоя
	if errors.Is(err, service.ErrValidation) {
		apierrors.ValidationError(w, err.Error())
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		apierrors.NotFound(w, err.Error())
		return
	}

	// Типизированные ошибки RAS-клиента
	var rasErr *rasclient.Error
	if errors.As(err, &rasErr) {
		switch rasErr.Kind {
		case rasclient.KindNotFound:
			apierrors.NotFound(w, rasErr.Message)
		case rasclient.KindValidation:
			if rasErr.StatusCode == http.StatusConflict {
				apierrors.Conflict(w, rasErr.Message)
			} else {
				apierrors.ValidationError(w, rasErr.Message)
			}
		case rasclient.KindAuth:
			// RAS отклонил учётные данные самой консоли —
			// для её пользователя это сбой backend'а
			apierrors.RASUnavailable(w, "RAS отклонил запрос консоли: "+rasErr.Message)
		default:
			apierrors.RASUnavailable(w, rasErr.Message)
		}
		return
	}

	h.logger.Error("Необработанная ошибка",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	apierrors.InternalError(w, "Внутренняя ошибка консоли")
}
