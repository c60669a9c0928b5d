package errors

import (
	"fmt"
)

// AppError - типизированная ошибка приложения с HTTP-статусом
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails возвращает копию ошибки с дополнительными деталями,
// не трогая sentinel-значение
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithReason возвращает копию ошибки с уточнённым сообщением
func (e *AppError) WithReason(reason string) *AppError {
	clone := *e
	clone.Message = fmt.Sprintf("%s: %s", e.Message, reason)
	return &clone
}
