package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/scenic-route-service/internal/pkg/errors"
	"github.com/scenic-route-service/internal/pkg/utils"
	"github.com/scenic-route-service/internal/pkg/validator"
	"github.com/scenic-route-service/internal/usecase"
	"github.com/scenic-route-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// RouteHandler - обработчик запросов генерации маршрутов
type RouteHandler struct {
	routeUC            *usecase.RouteUseCase
	validateLocationUC *usecase.ValidateLocationUseCase
	logger             *zap.Logger
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(
	routeUC *usecase.RouteUseCase,
	validateLocationUC *usecase.ValidateLocationUseCase,
	logger *zap.Logger,
) *RouteHandler {
	return &RouteHandler{
		routeUC:            routeUC,
		validateLocationUC: validateLocationUC,
		logger:             logger,
	}
}

// Generate godoc
// @Summary Синхронная генерация живописного маршрута
// @Description Строит маршрут от старта до финиша с остановками у интересных мест в рамках бюджета времени. Блокирует до готовности результата.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.GenerateRouteRequest true "Параметры маршрута"
// @Success 200 {object} utils.SuccessResponse{data=dto.GenerateRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/routes/generate [post]
func (h *RouteHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason(err.Error()))
	}

	result, err := h.routeUC.Generate(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Enqueue godoc
// @Summary Асинхронная генерация живописного маршрута
// @Description Ставит запрос в очередь и сразу возвращает идентификатор. Прогресс отслеживается через /routes/{id}/progress.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.GenerateRouteRequest true "Параметры маршрута"
// @Success 202 {object} utils.SuccessResponse{data=dto.EnqueueRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/routes [post]
func (h *RouteHandler) Enqueue(c *fiber.Ctx) error {
	var req dto.GenerateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason(err.Error()))
	}

	result, err := h.routeUC.Enqueue(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendAccepted(c, result)
}

// GetRoute godoc
// @Summary Получение сгенерированного маршрута
// @Description Возвращает запись генерации целиком, включая выбранный вариант маршрута, когда он готов
// @Tags Routes
// @Produce json
// @Param id path string true "ID генерации"
// @Success 200 {object} utils.SuccessResponse{data=domain.Generation}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id} [get]
func (h *RouteHandler) GetRoute(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason("invalid route id"))
	}

	gen, err := h.routeUC.GetGeneration(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, gen, nil)
}

// GetProgress godoc
// @Summary Прогресс генерации маршрута
// @Description Возвращает статус и процент выполнения для поллинга из клиента
// @Tags Routes
// @Produce json
// @Param id path string true "ID генерации"
// @Success 200 {object} utils.SuccessResponse{data=dto.ProgressResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id}/progress [get]
func (h *RouteHandler) GetProgress(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason("invalid route id"))
	}

	progress, err := h.routeUC.GetProgress(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, progress, nil)
}

// ValidateLocation godoc
// @Summary Проверка нахождения на маршруте
// @Description Сравнивает текущую позицию путешественника с закодированным путём маршрута и сообщает, в допуске ли она
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.ValidateLocationRequest true "Позиция и закодированный путь"
// @Success 200 {object} utils.SuccessResponse{data=dto.ValidateLocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/routes/validate-location [post]
func (h *RouteHandler) ValidateLocation(c *fiber.Ctx) error {
	var req dto.ValidateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason(err.Error()))
	}

	result, err := h.validateLocationUC.Validate(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
