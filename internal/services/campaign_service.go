package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campaignhub/backend/internal/models"
	"github.com/campaignhub/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrCampaignNotFound mirrors ErrOrganizationNotFound: missing row and
// cross-tenant row look the same, storage failures do not.
var ErrCampaignNotFound = errors.New("campaign not found")

// CampaignStore is what the service needs from persistence. Implemented by
// repositories.CampaignRepo.
type CampaignStore interface {
	Create(ctx context.Context, c *models.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	Update(ctx context.Context, c *models.Campaign) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f repositories.CampaignFilter) ([]models.Campaign, error)
}

type CampaignService struct {
	store    CampaignStore
	orgStore OrganizationStore
	activity *ActivityService
	log      *zap.Logger
}

func NewCampaignService(
	store CampaignStore,
	orgStore OrganizationStore,
	activity *ActivityService,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		store:    store,
		orgStore: orgStore,
		activity: activity,
		log:      log,
	}
}

func (s *CampaignService) Create(ctx context.Context, tenantID, actorID uuid.UUID, c *models.Campaign) error {
	if c.Name == "" {
		return &models.ValidationError{Field: "name", Message: "name is required"}
	}
	if c.BudgetCents < 0 {
		return &models.ValidationError{Field: "budgetCents", Message: "budget cannot be negative"}
	}

	org, err := s.orgStore.GetByID(ctx, c.OrganizationID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrOrganizationNotFound
	}
	if err != nil {
		return err
	}
	if org.TenantID != tenantID {
		return ErrOrganizationNotFound
	}

	c.TenantID = tenantID
	if c.Status == "" {
		c.Status = models.CampaignStatusDraft
	}

	if err := s.store.Create(ctx, c); err != nil {
		return err
	}

	s.activity.LogEvent(ctx, models.Activity{
		TenantID:       tenantID,
		OrganizationID: &c.OrganizationID,
		CampaignID:     &c.ID,
		ActorUserID:    &actorID,
		Type:           models.ActivityTypeCampaignCreated,
		Category:       models.ActivityCategoryCampaign,
		Title:          fmt.Sprintf("Campaign %q created", c.Name),
		Metadata:       map[string]any{"budget_cents": c.BudgetCents, "status": c.Status},
	})

	return nil
}

func (s *CampaignService) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*models.Campaign, error) {
	c, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.TenantID != tenantID {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

func (s *CampaignService) List(ctx context.Context, tenantID uuid.UUID, f repositories.CampaignFilter) ([]models.Campaign, error) {
	f.TenantID = tenantID
	return s.store.List(ctx, f)
}

// Update applies field changes and logs one activity per meaningful change:
// status transitions and budget moves get their own audit entries on top of
// the generic campaign_updated one.
func (s *CampaignService) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, c *models.Campaign) error {
	existing, err := s.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}

	if c.Name == "" {
		c.Name = existing.Name
	}
	if c.Status == "" {
		c.Status = existing.Status
	} else if c.Status != existing.Status {
		if !models.IsValidCampaignTransition(existing.Status, c.Status) {
			return &models.ValidationError{
				Field:   "status",
				Message: fmt.Sprintf("invalid transition from %s to %s", existing.Status, c.Status),
			}
		}
	}
	if c.BudgetCents < 0 {
		return &models.ValidationError{Field: "budgetCents", Message: "budget cannot be negative"}
	}

	c.ID = id
	c.TenantID = existing.TenantID
	c.OrganizationID = existing.OrganizationID

	if err := s.store.Update(ctx, c); err != nil {
		return err
	}

	s.activity.LogEvent(ctx, models.Activity{
		TenantID:       tenantID,
		OrganizationID: &existing.OrganizationID,
		CampaignID:     &id,
		ActorUserID:    &actorID,
		Type:           models.ActivityTypeCampaignUpdated,
		Category:       models.ActivityCategoryCampaign,
		Title:          fmt.Sprintf("Campaign %q updated", c.Name),
	})

	if c.Status != existing.Status {
		s.activity.LogEvent(ctx, models.Activity{
			TenantID:       tenantID,
			OrganizationID: &existing.OrganizationID,
			CampaignID:     &id,
			ActorUserID:    &actorID,
			Type:           models.ActivityTypeStatusChanged,
			Category:       models.ActivityCategoryCampaign,
			Title:          fmt.Sprintf("Campaign %q moved from %s to %s", c.Name, existing.Status, c.Status),
			Metadata:       map[string]any{"old_status": existing.Status, "new_status": c.Status},
		})
	}

	if c.BudgetCents != existing.BudgetCents {
		s.activity.LogEvent(ctx, models.Activity{
			TenantID:       tenantID,
			OrganizationID: &existing.OrganizationID,
			CampaignID:     &id,
			ActorUserID:    &actorID,
			Type:           models.ActivityTypeBudgetChanged,
			Category:       models.ActivityCategoryCampaign,
			Title:          fmt.Sprintf("Campaign %q budget changed", c.Name),
			Metadata:       map[string]any{"old_budget_cents": existing.BudgetCents, "new_budget_cents": c.BudgetCents},
		})
	}

	return nil
}

func (s *CampaignService) Delete(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	existing, err := s.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.LogEvent(ctx, models.Activity{
		TenantID:       tenantID,
		OrganizationID: &existing.OrganizationID,
		CampaignID:     &id,
		ActorUserID:    &actorID,
		Type:           models.ActivityTypeCampaignDeleted,
		Category:       models.ActivityCategoryCampaign,
		Title:          fmt.Sprintf("Campaign %q deleted", existing.Name),
	})

	return nil
}
