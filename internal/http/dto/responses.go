package dto

import "github.com/campaignhub/backend/internal/models"

type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type ActivityListResponse struct {
	Data       []models.Activity `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type ActivityStatsResponse struct {
	CategoryStats []CategoryCount `json:"categoryStats"`
	TypeStats     []TypeCount     `json:"typeStats"`
	RecentCount   int             `json:"recentCount"`
	TimeRange     string          `json:"timeRange"`
}

type ActivityMetaResponse struct {
	Categories []string `json:"categories"`
	Types      []string `json:"types"`
	TimeRanges []string `json:"timeRanges"`
}
