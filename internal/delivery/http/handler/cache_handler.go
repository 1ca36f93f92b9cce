package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/airport-locator/internal/pkg/errors"
	"github.com/airport-locator/internal/pkg/utils"
	"github.com/airport-locator/internal/pkg/validator"
	"github.com/airport-locator/internal/usecase"
	"github.com/airport-locator/internal/usecase/dto"
)

// CacheHandler - операции с кешем поиска
type CacheHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

func NewCacheHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *CacheHandler {
	return &CacheHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Invalidate godoc
// @Summary Инвалидация кеша по префиксу
// @Description Удаляет закешированные результаты, ключ которых начинается с prefix (только пространство search:). Для хранилищ без удаления по префиксу ничего не делает и возвращает deleted=0.
// @Tags Cache
// @Accept json
// @Produce json
// @Param request body dto.InvalidateCacheRequest true "Префикс ключей"
// @Success 200 {object} utils.SuccessResponse{data=dto.InvalidateCacheResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/cache/invalidate [post]
func (h *CacheHandler) Invalidate(c *fiber.Ctx) error {
	var req dto.InvalidateCacheRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation.WithMessage("invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendErrors(c, validator.Errors(err)...)
	}

	result, err := h.searchUC.InvalidateCache(c.UserContext(), req.Prefix)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Cache invalidated via API",
		zap.String("prefix", result.Prefix),
		zap.Int("deleted", result.Deleted))

	return utils.SendSuccess(c, result, nil)
}
