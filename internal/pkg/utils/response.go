package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/airport-locator/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// ErrorResponse - {errors:[{field, code, message}]}
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

type ErrorItem struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Meta struct {
	Total     int     `json:"total,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	RequestID string  `json:"requestId,omitempty"`
	TimeMSec  float64 `json:"timeMs,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

// SendError отдаёт AppError с его статусом; всё остальное - 500 без деталей
func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return SendErrors(c, appErr)
	}
	return SendErrors(c, errors.ErrInternalServer)
}

// SendErrors отдаёт несколько ошибок; статус берётся из первой
func SendErrors(c *fiber.Ctx, errs ...*errors.AppError) error {
	if len(errs) == 0 {
		errs = []*errors.AppError{errors.ErrInternalServer}
	}

	items := make([]ErrorItem, 0, len(errs))
	for _, e := range errs {
		items = append(items, ErrorItem{
			Field:   e.Field,
			Code:    e.Code,
			Message: e.Message,
		})
	}

	status := errs[0].StatusCode
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(ErrorResponse{Errors: items})
}
