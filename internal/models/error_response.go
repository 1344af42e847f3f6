package models

import "net/http"

// ErrorKind - категория бизнес-ошибки. HTTP-статус вычисляется
// только на границе (в обработчиках), а не в сервисах.
type ErrorKind string

const (
	KindValidation        ErrorKind = "Validation"        // Некорректные или отсутствующие данные
	KindNotFound          ErrorKind = "NotFound"          // Сущность не найдена
	KindForbidden         ErrorKind = "Forbidden"         // Нет прав на операцию
	KindUnauthorized      ErrorKind = "Unauthorized"      // Пользователь не определен
	KindInvalidState      ErrorKind = "InvalidState"      // Операция невозможна в текущем статусе
	KindInvalidTransition ErrorKind = "InvalidTransition" // Переход статуса не разрешен
	KindConflict          ErrorKind = "Conflict"          // Нарушение уникальности или проигранная гонка
	KindInternal          ErrorKind = "Internal"          // Внутренняя ошибка
)

// ErrorResponse описывает ошибку с категорией и сообщением.
type ErrorResponse struct {
	Kind    ErrorKind `json:"-"`
	Message string    `json:"reason"`
}

// NewErrorResponse создает новую ошибку с категорией и сообщением.
func NewErrorResponse(kind ErrorKind, message string) *ErrorResponse {
	return &ErrorResponse{
		Kind:    kind,
		Message: message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// StatusCode возвращает HTTP-статус для категории ошибки.
func (e *ErrorResponse) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindInvalidState, KindInvalidTransition:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
