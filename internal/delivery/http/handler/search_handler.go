package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/airport-locator/internal/delivery/http/middleware"
	"github.com/airport-locator/internal/pkg/errors"
	"github.com/airport-locator/internal/pkg/utils"
	"github.com/airport-locator/internal/pkg/validator"
	"github.com/airport-locator/internal/usecase"
	"github.com/airport-locator/internal/usecase/dto"
)

// SearchHandler - обработчик для поисковых запросов
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

// NewSearchHandler - создание нового SearchHandler
func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Ближайшие аэропорты
// @Description Разрешает запрос (координаты "lat,lon", IATA код или название города) и возвращает ближайшие активные аэропорты, отсортированные по расстоянию.
// @Tags Search
// @Produce json
// @Param query query string true "Координаты, IATA код или город"
// @Param isoCountry query string false "Фильтр по стране (2 буквы)"
// @Param unit query string false "Единица расстояния (km, mi)" default(km)
// @Param limit query int false "Количество результатов, приводится к 1..10" default(3)
// @Param routeFactor query number false "Коэффициент маршрута 0.5..3.0 для оценки пути по дорогам"
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation.WithMessage("invalid query parameters"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendErrors(c, validator.Errors(err)...)
	}

	result, err := h.searchUC.Search(c.UserContext(), req)
	if err != nil {
		h.logError(c, "Search failed", err)
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     result.Total,
		RequestID: middleware.RequestID(c),
	})
}

// Resolve godoc
// @Summary Разрешение запроса в координату
// @Description Возвращает координату для пары "lat,lon", IATA кода или названия города. Результат кешируется.
// @Tags Search
// @Produce json
// @Param query query string true "Координаты, IATA код или город"
// @Param isoCountry query string false "Подсказка страны (2 буквы)"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResolveResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resolve [get]
func (h *SearchHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation.WithMessage("invalid query parameters"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendErrors(c, validator.Errors(err)...)
	}

	result, err := h.searchUC.Resolve(c.UserContext(), req)
	if err != nil {
		h.logError(c, "Resolve failed", err)
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Distance godoc
// @Summary Расстояние между двумя точками
// @Description Разрешает оба запроса и возвращает расстояние по haversine и по эллипсоиду WGS-84 (с указанием формулы), а также оценку пути по дорогам.
// @Tags Search
// @Produce json
// @Param from query string true "Откуда: координаты, IATA код или город"
// @Param to query string true "Куда: координаты, IATA код или город"
// @Param isoCountry query string false "Подсказка страны (2 буквы)"
// @Param unit query string false "Единица расстояния (km, mi)" default(km)
// @Param routeFactor query number false "Коэффициент маршрута 0.5..3.0"
// @Success 200 {object} utils.SuccessResponse{data=dto.DistanceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/distance [get]
func (h *SearchHandler) Distance(c *fiber.Ctx) error {
	var req dto.DistanceRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation.WithMessage("invalid query parameters"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendErrors(c, validator.Errors(err)...)
	}

	result, err := h.searchUC.Distance(c.UserContext(), req)
	if err != nil {
		h.logError(c, "Distance failed", err)
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// logError пишет в лог только внутренние ошибки; 4xx - обычный исход
func (h *SearchHandler) logError(c *fiber.Ctx, msg string, err error) {
	if appErr, ok := errors.As(err); ok && appErr.Kind() != errors.KindInternal {
		return
	}
	h.logger.Error(msg,
		zap.String("path", c.Path()),
		zap.String("request_id", middleware.RequestID(c)),
		zap.Error(err))
}
