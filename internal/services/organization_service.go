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

// ErrOrganizationNotFound covers both a genuinely missing row and a row
// outside the caller's tenant; the two are indistinguishable on purpose.
// Any other error from the store is a storage failure and propagates as-is
// so handlers can report it as an internal error instead of a 404.
var ErrOrganizationNotFound = errors.New("organization not found")

// OrganizationStore is what the service needs from persistence. Implemented
// by repositories.OrganizationRepo.
type OrganizationStore interface {
	Create(ctx context.Context, o *models.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.Organization, error)
	Update(ctx context.Context, o *models.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, m *models.OrganizationMember) error
	RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]models.OrganizationMember, error)
}

type OrganizationService struct {
	store    OrganizationStore
	activity *ActivityService
	log      *zap.Logger
}

func NewOrganizationService(
	store OrganizationStore,
	activity *ActivityService,
	log *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		store:    store,
		activity: activity,
		log:      log,
	}
}

func (s *OrganizationService) Create(ctx context.Context, tenantID, actorID uuid.UUID, o *models.Organization) error {
	if o.Name == "" {
		return &models.ValidationError{Field: "name", Message: "name is required"}
	}
	o.TenantID = tenantID
	if o.Status == "" {
		o.Status = models.OrganizationStatusActive
	}

	if err := s.store.Create(ctx, o); err != nil {
		return err
	}

	s.activity.LogEvent(ctx, models.Activity{
		TenantID:       tenantID,
		OrganizationID: &o.ID,
		ActorUserID:    &actorID,
		Type:           models.ActivityTypeOrganizationCreated,
		Category:       models.ActivityCategoryOrganization,
		Title:          fmt.Sprintf("Organization %q created", o.Name),
		Metadata:       map[string]any{"name": o.Name},
	})

	return nil
}

// GetByID enforces tenant scoping: an organization outside the caller's
// tenant is indistinguishable from a missing one.
func (s *OrganizationService) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*models.Organization, error) {
	o, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	if o.TenantID != tenantID {
		return nil, ErrOrganizationNotFound
	}
	return o, nil
}

func (s *OrganizationService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.Organization, error) {
	return s.store.List(ctx, tenantID, limit, offset)
}

func (s *OrganizationService) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, o *models.Organization) error {
	existing, err := s.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}

	if o.Name == "" {
		o.Name = existing.Name
	}
	if o.Status == "" {
		o.Status = existing.Status
	}
	o.ID = id
	o.TenantID = existing.TenantID

	if err := s.store.Update(ctx, o); err != nil {
		return err
	}

	s.activity.LogEvent(ctx, models.Activity{
		TenantID:       tenantID,
		OrganizationID: &id,
		ActorUserID:    &actorID,
		Type:           models.ActivityTypeOrganizationUpdated,
		Category:       models.ActivityCategoryOrganization,
		Title:          fmt.Sprintf("Organization %q updated", o.Name),
	})

	return nil
}

func (s *OrganizationService) Delete(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	existing, err := s.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	// The deleted org's id stays on the audit row even though the row it
	// pointed at is gone; activities carry no foreign keys.
	s.activity.LogEvent(ctx, models.Activity{
		TenantID:       tenantID,
		OrganizationID: &id,
		ActorUserID:    &actorID,
		Type:           models.ActivityTypeOrganizationDeleted,
		Category:       models.ActivityCategoryOrganization,
		Title:          fmt.Sprintf("Organization %q deleted", existing.Name),
	})

	return nil
}

func (s *OrganizationService) AddMember(ctx context.Context, orgID, tenantID, actorID, userID uuid.UUID, role string) (*models.OrganizationMember, error) {
	if role == "" {
		role = models.MemberRoleMember
	}
	if !models.IsValidMemberRole(role) {
		return nil, &models.ValidationError{Field: "role", Message: fmt.Sprintf("unknown role %q", role)}
	}

	if _, err := s.GetByID(ctx, orgID, tenantID); err != nil {
		return nil, err
	}

	m := &models.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: role}
	if err := s.store.AddMember(ctx, m); err != nil {
		return nil, err
	}

	s.activity.LogEvent(ctx, models.Activity{
		TenantID:       tenantID,
		OrganizationID: &orgID,
		UserID:         &userID,
		ActorUserID:    &actorID,
		Type:           models.ActivityTypeUserAdded,
		Category:       models.ActivityCategoryUser,
		Title:          "User added to organization",
		Metadata:       map[string]any{"role": role},
	})

	return m, nil
}

func (s *OrganizationService) RemoveMember(ctx context.Context, orgID, tenantID, actorID, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, orgID, tenantID); err != nil {
		return err
	}

	if err := s.store.RemoveMember(ctx, orgID, userID); err != nil {
		return err
	}

	s.activity.LogEvent(ctx, models.Activity{
		TenantID:       tenantID,
		OrganizationID: &orgID,
		UserID:         &userID,
		ActorUserID:    &actorID,
		Type:           models.ActivityTypeUserRemoved,
		Category:       models.ActivityCategoryUser,
		Title:          "User removed from organization",
	})

	return nil
}

func (s *OrganizationService) ListMembers(ctx context.Context, orgID, tenantID uuid.UUID) ([]models.OrganizationMember, error) {
	if _, err := s.GetByID(ctx, orgID, tenantID); err != nil {
		return nil, err
	}
	return s.store.ListMembers(ctx, orgID)
}
