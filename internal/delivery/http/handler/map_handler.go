package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/infrastructure-map/internal/mapview"
	"github.com/infrastructure-map/internal/pkg/utils"
	"github.com/infrastructure-map/internal/usecase"
	"go.uber.org/zap"
)

// MapHandler - хендлер для рендеринга страницы карты
type MapHandler struct {
	mapUC    *usecase.MapUseCase
	renderer *mapview.Renderer
	logger   *zap.Logger
}

// NewMapHandler - создание нового хендлера страницы карты
func NewMapHandler(mapUC *usecase.MapUseCase, renderer *mapview.Renderer, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		mapUC:    mapUC,
		renderer: renderer,
		logger:   logger,
	}
}

// RenderMap godoc
// @Summary Map page
// @Description HTML страница: кнопки фильтра, карта Leaflet и список объектов
// @Tags Map
// @Produce html
// @Param filter query string false "All, Healthcare, Education, Transportation, Utilities, PublicServices"
// @Success 200 {string} string "HTML"
// @Failure 400 {object} utils.ErrorResponse
// @Router / [get]
func (h *MapHandler) RenderMap(c *fiber.Ctx) error {
	filter, err := usecase.ParseFilter(c.Query("filter"))
	if err != nil {
		return utils.SendError(c, err)
	}

	page, err := h.mapUC.Page(c.Context(), filter, mapview.ServerLinks)
	if err != nil {
		h.logger.Error("Failed to build map page", zap.String("filter", filter.String()), zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return h.renderer.Render(c.Response().BodyWriter(), page)
}
