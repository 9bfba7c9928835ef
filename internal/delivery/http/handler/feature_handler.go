package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/infrastructure-map/internal/pkg/errors"
	"github.com/infrastructure-map/internal/pkg/utils"
	"github.com/infrastructure-map/internal/pkg/validator"
	"github.com/infrastructure-map/internal/usecase"
	"github.com/infrastructure-map/internal/usecase/dto"
	"go.uber.org/zap"
)

const mimeGeoJSON = "application/geo+json"

// FeatureHandler - обработчик запросов к объектам инфраструктуры
type FeatureHandler struct {
	mapUC  *usecase.MapUseCase
	logger *zap.Logger
}

// NewFeatureHandler - создание нового FeatureHandler
func NewFeatureHandler(mapUC *usecase.MapUseCase, logger *zap.Logger) *FeatureHandler {
	return &FeatureHandler{
		mapUC:  mapUC,
		logger: logger,
	}
}

// GetCategories godoc
// @Summary List categories
// @Description Категории в порядке отображения: цвет слоя, класс кнопки, количество объектов
// @Tags Features
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.CategoryInfo}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/categories [get]
func (h *FeatureHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.mapUC.Categories(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, categories, &utils.Meta{
		Total: len(categories),
	})
}

// GetLayers godoc
// @Summary Visible layers
// @Description Слои для активного фильтра, по одному на категорию, с маркерами
// @Tags Features
// @Produce json
// @Param filter query string false "Active filter, defaults to All"
// @Param bbox query string false "minLon,minLat,maxLon,maxLat"
// @Success 200 {object} utils.SuccessResponse{data=dto.LayersResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/layers [get]
func (h *FeatureHandler) GetLayers(c *fiber.Ctx) error {
	req, err := h.parseLayersRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	filter, err := usecase.ParseFilter(req.Filter)
	if err != nil {
		return utils.SendError(c, err)
	}
	bbox, err := usecase.ParseBBox(req.BBox)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.mapUC.Layers(c.Context(), filter, bbox)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:  result.Total,
		Filter: result.Filter,
	})
}

// GetFeatures godoc
// @Summary Features as GeoJSON
// @Description GeoJSON FeatureCollection видимых объектов
// @Tags Features
// @Produce application/geo+json
// @Param filter query string false "Active filter, defaults to All"
// @Param bbox query string false "minLon,minLat,maxLon,maxLat"
// @Success 200 {object} map[string]interface{} "FeatureCollection"
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/features [get]
func (h *FeatureHandler) GetFeatures(c *fiber.Ctx) error {
	req, err := h.parseLayersRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	filter, err := usecase.ParseFilter(req.Filter)
	if err != nil {
		return utils.SendError(c, err)
	}
	bbox, err := usecase.ParseBBox(req.BBox)
	if err != nil {
		return utils.SendError(c, err)
	}

	fc, err := h.mapUC.FeatureCollection(c.Context(), filter, bbox)
	if err != nil {
		return utils.SendError(c, err)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		h.logger.Error("Failed to encode feature collection", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	c.Set(fiber.HeaderContentType, mimeGeoJSON)
	return c.Send(data)
}

// GetFeature godoc
// @Summary Feature by ID
// @Description Один объект по идентификатору
// @Tags Features
// @Produce json
// @Param id path string true "Feature UUID"
// @Success 200 {object} utils.SuccessResponse{data=dto.FeatureResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/features/{id} [get]
func (h *FeatureHandler) GetFeature(c *fiber.Ctx) error {
	feature, err := h.mapUC.GetFeature(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, feature, nil)
}

func (h *FeatureHandler) parseLayersRequest(c *fiber.Ctx) (*dto.LayersRequest, error) {
	var req dto.LayersRequest
	if err := c.QueryParser(&req); err != nil {
		return nil, errors.ErrInvalidRequest
	}

	if err := validator.Validate(&req); err != nil {
		h.logger.Debug("Invalid layers request", zap.Error(err))
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	return &req, nil
}
