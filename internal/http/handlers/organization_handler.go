package handlers

import (
	"strconv"

	"github.com/campaignhub/backend/internal/http/dto"
	"github.com/campaignhub/backend/internal/middleware"
	"github.com/campaignhub/backend/internal/models"
	"github.com/campaignhub/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
	log        *zap.Logger
}

func NewOrganizationHandler(orgService *services.OrganizationService, log *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService, log: log}
}

func (h *OrganizationHandler) CreateOrganization(c *fiber.Ctx) error {
	var req dto.CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	org := &models.Organization{Name: req.Name, Website: req.Website}

	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)
	if err := h.orgService.Create(c.Context(), tenantID, userID, org); err != nil {
		return writeServiceError(c, h.log, err, "create organization failed")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: org})
}

func (h *OrganizationHandler) GetOrganization(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid organization id"})
	}

	org, err := h.orgService.GetByID(c.Context(), id, middleware.GetTenantID(c))
	if err != nil {
		return writeServiceError(c, h.log, err, "get organization failed")
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: org})
}

func (h *OrganizationHandler) ListOrganizations(c *fiber.Ctx) error {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	orgs, err := h.orgService.List(c.Context(), middleware.GetTenantID(c), limit, offset)
	if err != nil {
		h.log.Error("list organizations failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: orgs})
}

func (h *OrganizationHandler) UpdateOrganization(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid organization id"})
	}

	var req dto.UpdateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	org := &models.Organization{Name: req.Name, Website: req.Website, Status: req.Status}

	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)
	if err := h.orgService.Update(c.Context(), id, tenantID, userID, org); err != nil {
		return writeServiceError(c, h.log, err, "update organization failed")
	}

	updated, _ := h.orgService.GetByID(c.Context(), id, tenantID)
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *OrganizationHandler) DeleteOrganization(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid organization id"})
	}

	if err := h.orgService.Delete(c.Context(), id, middleware.GetTenantID(c), middleware.GetUserID(c)); err != nil {
		return writeServiceError(c, h.log, err, "delete organization failed")
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *OrganizationHandler) AddMember(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid organization id"})
	}

	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid userId", Field: "userId"})
	}

	member, err := h.orgService.AddMember(c.Context(), orgID, middleware.GetTenantID(c), middleware.GetUserID(c), userID, req.Role)
	if err != nil {
		return writeServiceError(c, h.log, err, "add member failed")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: member})
}

func (h *OrganizationHandler) RemoveMember(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid organization id"})
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	if err := h.orgService.RemoveMember(c.Context(), orgID, middleware.GetTenantID(c), middleware.GetUserID(c), userID); err != nil {
		return writeServiceError(c, h.log, err, "remove member failed")
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *OrganizationHandler) ListMembers(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid organization id"})
	}

	members, err := h.orgService.ListMembers(c.Context(), orgID, middleware.GetTenantID(c))
	if err != nil {
		return writeServiceError(c, h.log, err, "list members failed")
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: members})
}
