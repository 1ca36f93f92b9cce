package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind группирует коды ошибок по тому, как их показывать клиенту
type Kind string

const (
	KindValidation Kind = "validation"
	KindResolution Kind = "resolution"
	KindInternal   Kind = "internal"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Field      string                 `json:"field,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is сравнивает ошибки по коду, поэтому копии из WithField/WithMessage
// совпадают с исходной sentinel-ошибкой
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Kind возвращает группу ошибки по HTTP статусу
func (e *AppError) Kind() Kind {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return KindResolution
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return KindValidation
	default:
		return KindInternal
	}
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithField возвращает копию ошибки с привязкой к полю запроса
func (e *AppError) WithField(field string) *AppError {
	c := e.clone()
	c.Field = field
	return c
}

// WithMessage возвращает копию ошибки с уточнённым сообщением
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	c := e.clone()
	c.Message = fmt.Sprintf(format, args...)
	return c
}

// WithDetails возвращает копию ошибки с дополнительными деталями
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	c := e.clone()
	c.Details = details
	return c
}

func (e *AppError) clone() *AppError {
	c := *e
	return &c
}

// As достаёт *AppError из цепочки обёрнутых ошибок
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
