package dto

import "time"

// Activities

type CreateActivityRequest struct {
	OrganizationID *string        `json:"organizationId,omitempty"`
	CampaignID     *string        `json:"campaignId,omitempty"`
	UserID         *string        `json:"userId,omitempty"`
	Type           string         `json:"type"`
	Category       string         `json:"category"`
	Title          string         `json:"title"`
	Description    *string        `json:"description,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Organizations

type CreateOrganizationRequest struct {
	Name    string  `json:"name"`
	Website *string `json:"website,omitempty"`
}

type UpdateOrganizationRequest struct {
	Name    string  `json:"name"`
	Website *string `json:"website,omitempty"`
	Status  string  `json:"status,omitempty"`
}

type AddMemberRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
}

// Campaigns

type CreateCampaignRequest struct {
	OrganizationID string     `json:"organizationId"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	BudgetCents    int64      `json:"budgetCents"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
}

type UpdateCampaignRequest struct {
	Name        string     `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	BudgetCents *int64     `json:"budgetCents,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}
