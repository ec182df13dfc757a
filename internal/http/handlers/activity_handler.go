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

type ActivityHandler struct {
	activityService *services.ActivityService
	log             *zap.Logger
}

func NewActivityHandler(activityService *services.ActivityService, log *zap.Logger) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, log: log}
}

func (h *ActivityHandler) ListActivities(c *fiber.Ctx) error {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "missing tenant context"})
	}

	var q services.ActivityListQuery
	if v := c.Query("organizationId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid organizationId", Field: "organizationId"})
		}
		q.OrganizationID = &id
	}
	if v := c.Query("campaignId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaignId", Field: "campaignId"})
		}
		q.CampaignID = &id
	}
	if v := c.Query("category"); v != "" {
		q.Category = &v
	}
	if v := c.Query("type"); v != "" {
		q.Type = &v
	}
	q.TimeRange = c.Query("timeRange")
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid page", Field: "page"})
		}
		q.Page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid limit", Field: "limit"})
		}
		q.Limit = n
	}

	items, pagination, err := h.activityService.List(c.Context(), tenantID, q)
	if err != nil {
		return h.mapError(c, err, "list activities failed")
	}

	return c.JSON(dto.ActivityListResponse{Data: items, Pagination: pagination})
}

func (h *ActivityHandler) CreateActivity(c *fiber.Ctx) error {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "missing tenant context"})
	}

	var req dto.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	activity := models.Activity{
		TenantID:    tenantID,
		Type:        req.Type,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	var parseErr *dto.ErrorResponse
	activity.OrganizationID, parseErr = parseOptionalUUID(req.OrganizationID, "organizationId")
	if parseErr == nil {
		activity.CampaignID, parseErr = parseOptionalUUID(req.CampaignID, "campaignId")
	}
	if parseErr == nil {
		activity.UserID, parseErr = parseOptionalUUID(req.UserID, "userId")
	}
	if parseErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(*parseErr)
	}

	// Request provenance is captured server-side, never trusted from the body.
	if actorID := middleware.GetUserID(c); actorID != uuid.Nil {
		activity.ActorUserID = &actorID
	}
	if ip := c.IP(); ip != "" {
		activity.IPAddress = &ip
	}
	if ua := c.Get("User-Agent"); ua != "" {
		activity.UserAgent = &ua
	}

	if err := h.activityService.Record(c.Context(), &activity); err != nil {
		return h.mapError(c, err, "record activity failed")
	}

	return c.Status(fiber.StatusCreated).JSON(activity)
}

func (h *ActivityHandler) GetStats(c *fiber.Ctx) error {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "missing tenant context"})
	}

	var organizationID *uuid.UUID
	if v := c.Query("organizationId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid organizationId", Field: "organizationId"})
		}
		organizationID = &id
	}

	stats, err := h.activityService.Stats(c.Context(), tenantID, organizationID, c.Query("timeRange"))
	if err != nil {
		return h.mapError(c, err, "activity stats failed")
	}

	resp := dto.ActivityStatsResponse{
		CategoryStats: make([]dto.CategoryCount, 0, len(stats.CategoryStats)),
		TypeStats:     make([]dto.TypeCount, 0, len(stats.TypeStats)),
		RecentCount:   stats.RecentCount,
		TimeRange:     stats.TimeRange,
	}
	for _, g := range stats.CategoryStats {
		resp.CategoryStats = append(resp.CategoryStats, dto.CategoryCount{Category: g.Value, Count: g.Count})
	}
	for _, g := range stats.TypeStats {
		resp.TypeStats = append(resp.TypeStats, dto.TypeCount{Type: g.Value, Count: g.Count})
	}

	return c.JSON(resp)
}

func (h *ActivityHandler) mapError(c *fiber.Ctx, err error, logMsg string) error {
	return writeServiceError(c, h.log, err, logMsg)
}

func parseOptionalUUID(s *string, field string) (*uuid.UUID, *dto.ErrorResponse) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, &dto.ErrorResponse{Error: "invalid " + field, Field: field}
	}
	return &id, nil
}
