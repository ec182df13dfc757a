package handlers

import (
	"errors"

	"github.com/campaignhub/backend/internal/http/dto"
	"github.com/campaignhub/backend/internal/models"
	"github.com/campaignhub/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeServiceError is the one place service errors turn into HTTP statuses:
// field-level rejects are 400, the not-found sentinels are 404, everything
// else is logged and masked as a generic 500. Raw error text never reaches
// the response body outside the validation case.
func writeServiceError(c *fiber.Ctx, log *zap.Logger, err error, logMsg string) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, services.ErrOrganizationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "organization not found"})
	case errors.Is(err, services.ErrCampaignNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	default:
		log.Error(logMsg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
}
