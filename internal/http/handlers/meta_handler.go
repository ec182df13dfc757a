package handlers

import (
	"github.com/campaignhub/backend/internal/http/dto"
	"github.com/campaignhub/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// GetActivityMeta exposes the closed enums so UI pickers never hardcode them.
func (h *MetaHandler) GetActivityMeta(c *fiber.Ctx) error {
	return c.JSON(dto.ActivityMetaResponse{
		Categories: models.ActivityCategories(),
		Types:      models.ActivityTypes(),
		TimeRanges: models.KnownTimeRanges(),
	})
}
