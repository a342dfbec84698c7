// errors.go — классификация ошибок RAS Management API.
// Все ошибки клиента приводятся к *Error с фиксированным набором Kind,
// чтобы вызывающий код мог выбрать реакцию без разбора текста ошибки.
package rasclient

import (
	"errors"
	"fmt"
)

// Kind — категория ошибки клиента.
type Kind int

const (
	// KindTransport — сетевая ошибка, таймаут или нераспознанный ответ сервера.
	KindTransport Kind = iota
	// KindConfig — некорректный базовый URL.
	KindConfig
	// KindValidation — RAS отклонил входные данные (400, 409, 422).
	KindValidation
	// KindNotFound — целевая сущность отсутствует (404).
	KindNotFound
	// KindAuth — ошибка аутентификации или прав доступа (401, 403).
	KindAuth
)

// String возвращает строковое представление категории.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	default:
		return "transport"
	}
}

// Error — типизированная ошибка RAS-клиента.
type Error struct {
	// Kind — категория ошибки.
	Kind Kind
	// StatusCode — HTTP статус ответа (0, если ответа не было).
	StatusCode int
	// Message — сообщение из тела ответа RAS или описание сбоя.
	Message string
	// Err — исходная ошибка транспорта (может быть nil).
	Err error
}

// Error реализует интерфейс error.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("RAS API [%s, статус %d]: %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("RAS API [%s]: %s", e.Kind, e.Message)
}

// Unwrap возвращает исходную ошибку транспорта.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind сообщает, относится ли err к указанной категории.
func IsKind(err error, kind Kind) bool {
	var rasErr *Error
	if errors.As(err, &rasErr) {
		return rasErr.Kind == kind
	}
	return false
}

// classifyStatus переводит HTTP статус в категорию ошибки.
// Неизвестные статусы деградируют в KindTransport.
func classifyStatus(status int) Kind {
	switch status {
	case 400, 409, 422:
		return KindValidation
	case 404:
		return KindNotFound
	case 401, 403:
		return KindAuth
	default:
		return KindTransport
	}
}
