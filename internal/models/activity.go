package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Activity categories
const (
	ActivityCategoryOrganization = "organization"
	ActivityCategoryUser         = "user"
	ActivityCategoryCampaign     = "campaign"
	ActivityCategorySystem       = "system"
	ActivityCategoryAudit        = "audit"
)

// Activity types
const (
	ActivityTypeOrganizationCreated = "organization_created"
	ActivityTypeOrganizationUpdated = "organization_updated"
	ActivityTypeOrganizationDeleted = "organization_deleted"
	ActivityTypeUserAdded           = "user_added"
	ActivityTypeUserRemoved         = "user_removed"
	ActivityTypeStatusChanged       = "status_changed"
	ActivityTypeBudgetChanged       = "budget_changed"
	ActivityTypeCampaignCreated     = "campaign_created"
	ActivityTypeCampaignUpdated     = "campaign_updated"
	ActivityTypeCampaignDeleted     = "campaign_deleted"
	ActivityTypeAssetUploaded       = "asset_uploaded"
	ActivityTypeTargetingUpdated    = "targeting_updated"
	ActivityTypeSystemAction        = "system_action"
)

// ActivityCategories lists the closed set of categories, in display order.
func ActivityCategories() []string {
	return []string{
		ActivityCategoryOrganization,
		ActivityCategoryUser,
		ActivityCategoryCampaign,
		ActivityCategorySystem,
		ActivityCategoryAudit,
	}
}

// ActivityTypes lists the closed set of types, in display order.
func ActivityTypes() []string {
	return []string{
		ActivityTypeOrganizationCreated,
		ActivityTypeOrganizationUpdated,
		ActivityTypeOrganizationDeleted,
		ActivityTypeUserAdded,
		ActivityTypeUserRemoved,
		ActivityTypeStatusChanged,
		ActivityTypeBudgetChanged,
		ActivityTypeCampaignCreated,
		ActivityTypeCampaignUpdated,
		ActivityTypeCampaignDeleted,
		ActivityTypeAssetUploaded,
		ActivityTypeTargetingUpdated,
		ActivityTypeSystemAction,
	}
}

func IsValidActivityCategory(category string) bool {
	switch category {
	case ActivityCategoryOrganization, ActivityCategoryUser, ActivityCategoryCampaign,
		ActivityCategorySystem, ActivityCategoryAudit:
		return true
	}
	return false
}

func IsValidActivityType(t string) bool {
	switch t {
	case ActivityTypeOrganizationCreated, ActivityTypeOrganizationUpdated, ActivityTypeOrganizationDeleted,
		ActivityTypeUserAdded, ActivityTypeUserRemoved,
		ActivityTypeStatusChanged, ActivityTypeBudgetChanged,
		ActivityTypeCampaignCreated, ActivityTypeCampaignUpdated, ActivityTypeCampaignDeleted,
		ActivityTypeAssetUploaded, ActivityTypeTargetingUpdated, ActivityTypeSystemAction:
		return true
	}
	return false
}

// Activity is one immutable audit/event record. Rows are append-only: there is
// no update or delete path anywhere in the service.
type Activity struct {
	ID             uuid.UUID      `json:"id"`
	TenantID       uuid.UUID      `json:"tenantId"`
	OrganizationID *uuid.UUID     `json:"organizationId,omitempty"`
	CampaignID     *uuid.UUID     `json:"campaignId,omitempty"`
	UserID         *uuid.UUID     `json:"userId,omitempty"`
	ActorUserID    *uuid.UUID     `json:"actorUserId,omitempty"`
	Type           string         `json:"type"`
	Category       string         `json:"category"`
	Title          string         `json:"title"`
	Description    *string        `json:"description,omitempty"`
	Metadata       map[string]any `json:"metadata"`
	IPAddress      *string        `json:"ipAddress,omitempty"`
	UserAgent      *string        `json:"userAgent,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// ValidationError is a field-level reject reported synchronously to the caller.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the fields required on every write. id and createdAt are
// server-assigned and deliberately not checked here.
func (a *Activity) Validate() error {
	if a.TenantID == uuid.Nil {
		return &ValidationError{Field: "tenantId", Message: "tenant is required"}
	}
	if !IsValidActivityType(a.Type) {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown activity type %q", a.Type)}
	}
	if !IsValidActivityCategory(a.Category) {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("unknown activity category %q", a.Category)}
	}
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(a.Title) > 255 {
		return &ValidationError{Field: "title", Message: "title must be at most 255 characters"}
	}
	return nil
}
