package handlers

import (
	"strconv"

	"github.com/campaignhub/backend/internal/http/dto"
	"github.com/campaignhub/backend/internal/middleware"
	"github.com/campaignhub/backend/internal/models"
	"github.com/campaignhub/backend/internal/repositories"
	"github.com/campaignhub/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	orgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid organizationId", Field: "organizationId"})
	}

	campaign := &models.Campaign{
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		BudgetCents:    req.BudgetCents,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}

	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)
	if err := h.campaignService.Create(c.Context(), tenantID, userID, campaign); err != nil {
		return writeServiceError(c, h.log, err, "create campaign failed")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	campaign, err := h.campaignService.GetByID(c.Context(), id, middleware.GetTenantID(c))
	if err != nil {
		return writeServiceError(c, h.log, err, "get campaign failed")
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	filter := repositories.CampaignFilter{Limit: 20}

	if v := c.Query("organizationId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid organizationId", Field: "organizationId"})
		}
		filter.OrganizationID = &id
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	campaigns, err := h.campaignService.List(c.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.log.Error("list campaigns failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	existing, err := h.campaignService.GetByID(c.Context(), id, tenantID)
	if err != nil {
		return writeServiceError(c, h.log, err, "get campaign failed")
	}

	campaign := &models.Campaign{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		BudgetCents: existing.BudgetCents,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Description == nil {
		campaign.Description = existing.Description
	}
	if req.BudgetCents != nil {
		campaign.BudgetCents = *req.BudgetCents
	}
	if req.StartDate == nil {
		campaign.StartDate = existing.StartDate
	}
	if req.EndDate == nil {
		campaign.EndDate = existing.EndDate
	}

	if err := h.campaignService.Update(c.Context(), id, tenantID, userID, campaign); err != nil {
		return writeServiceError(c, h.log, err, "update campaign failed")
	}

	updated, _ := h.campaignService.GetByID(c.Context(), id, tenantID)
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	if err := h.campaignService.Delete(c.Context(), id, middleware.GetTenantID(c), middleware.GetUserID(c)); err != nil {
		return writeServiceError(c, h.log, err, "delete campaign failed")
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}
