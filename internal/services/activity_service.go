package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campaignhub/backend/internal/events"
	"github.com/campaignhub/backend/internal/models"
	"github.com/campaignhub/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100

	// recentWindow is the fixed lookback for the stats recentCount; it does
	// not follow the requested time range.
	recentWindow = time.Hour
)

// ErrStoreUnavailable masks storage-engine detail from public callers.
var ErrStoreUnavailable = errors.New("activity store unavailable")

// ActivityStore is the persistence contract for the append-only event log.
// Implemented by repositories.ActivityRepo; tests substitute an in-memory fake.
type ActivityStore interface {
	Create(ctx context.Context, a *models.Activity) error
	Count(ctx context.Context, f repositories.ActivityFilter) (int, error)
	List(ctx context.Context, f repositories.ActivityFilter, limit, offset int) ([]models.Activity, error)
	GroupCount(ctx context.Context, f repositories.ActivityFilter, field string) ([]repositories.GroupCount, error)
}

type ActivityService struct {
	store     ActivityStore
	publisher events.Publisher
	log       *zap.Logger
}

func NewActivityService(store ActivityStore, publisher events.Publisher, log *zap.Logger) *ActivityService {
	return &ActivityService{
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// Record is the strict write path: validation errors and a generic storage
// failure are reported to the caller. On success the activity carries its
// server-assigned id and createdAt.
func (s *ActivityService) Record(ctx context.Context, a *models.Activity) error {
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	if err := a.Validate(); err != nil {
		return err
	}

	if err := s.store.Create(ctx, a); err != nil {
		s.log.Error("activity insert failed", zap.String("type", a.Type), zap.Error(err))
		return ErrStoreUnavailable
	}

	_ = s.publisher.Publish(ctx, events.StreamActivity, events.Event{
		Type: events.EventActivityCreated,
		Payload: map[string]any{
			"activity_id": a.ID.String(),
			"tenant_id":   a.TenantID.String(),
			"type":        a.Type,
			"category":    a.Category,
			"title":       a.Title,
		},
	})

	return nil
}

// LogEvent is the best-effort write path used by other services to describe
// their side effects. It never fails the caller: every error, storage
// failures included, is recorded for operators and swallowed. The return
// value says whether the entry was actually written.
func (s *ActivityService) LogEvent(ctx context.Context, a models.Activity) bool {
	if err := s.Record(ctx, &a); err != nil {
		s.log.Warn("activity dropped",
			zap.String("type", a.Type),
			zap.String("tenant_id", a.TenantID.String()),
			zap.Error(err))
		return false
	}
	return true
}

// ActivityListQuery is the caller-supplied part of a list request. The tenant
// is taken from the authenticated context, never from here.
type ActivityListQuery struct {
	OrganizationID *uuid.UUID
	CampaignID     *uuid.UUID
	Category       *string
	Type           *string
	TimeRange      string
	Page           int
	Limit          int
}

func (q *ActivityListQuery) normalize() error {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 1 {
		return &models.ValidationError{Field: "page", Message: "page must be >= 1"}
	}
	if q.Limit == 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit < 1 || q.Limit > MaxPageLimit {
		return &models.ValidationError{Field: "limit", Message: fmt.Sprintf("limit must be between 1 and %d", MaxPageLimit)}
	}
	if q.Category != nil && !models.IsValidActivityCategory(*q.Category) {
		return &models.ValidationError{Field: "category", Message: fmt.Sprintf("unknown activity category %q", *q.Category)}
	}
	if q.Type != nil && !models.IsValidActivityType(*q.Type) {
		return &models.ValidationError{Field: "type", Message: fmt.Sprintf("unknown activity type %q", *q.Type)}
	}
	if q.TimeRange == "" {
		q.TimeRange = models.DefaultTimeRange
	}
	return nil
}

func (q ActivityListQuery) filter(tenantID uuid.UUID, now time.Time) repositories.ActivityFilter {
	f := repositories.ActivityFilter{
		TenantID:       tenantID,
		OrganizationID: q.OrganizationID,
		CampaignID:     q.CampaignID,
		Category:       q.Category,
		Type:           q.Type,
	}
	if since, ok := models.ResolveTimeRange(q.TimeRange, now); ok {
		f.Since = &since
	}
	return f
}

// List returns one page of the tenant's feed plus pagination metadata. Count
// and fetch share a single predicate built from one now instant.
func (s *ActivityService) List(ctx context.Context, tenantID uuid.UUID, q ActivityListQuery) ([]models.Activity, models.Pagination, error) {
	if err := q.normalize(); err != nil {
		return nil, models.Pagination{}, err
	}

	f := q.filter(tenantID, time.Now())

	total, err := s.store.Count(ctx, f)
	if err != nil {
		s.log.Error("activity count failed", zap.Error(err))
		return nil, models.Pagination{}, ErrStoreUnavailable
	}

	items, err := s.store.List(ctx, f, q.Limit, (q.Page-1)*q.Limit)
	if err != nil {
		s.log.Error("activity list failed", zap.Error(err))
		return nil, models.Pagination{}, ErrStoreUnavailable
	}
	if items == nil {
		items = []models.Activity{}
	}

	return items, models.NewPagination(q.Page, q.Limit, total), nil
}

// ActivityStats aggregates the feed for dashboards.
type ActivityStats struct {
	CategoryStats []repositories.GroupCount
	TypeStats     []repositories.GroupCount
	RecentCount   int
	TimeRange     string
}

// Stats computes category and type histograms over the requested window plus
// a recent count over the last hour, all against one now instant.
func (s *ActivityService) Stats(ctx context.Context, tenantID uuid.UUID, organizationID *uuid.UUID, timeRange string) (*ActivityStats, error) {
	if timeRange == "" {
		timeRange = models.DefaultTimeRange
	}

	now := time.Now()
	f := repositories.ActivityFilter{TenantID: tenantID, OrganizationID: organizationID}
	if since, ok := models.ResolveTimeRange(timeRange, now); ok {
		f.Since = &since
	}

	categoryStats, err := s.store.GroupCount(ctx, f, "category")
	if err != nil {
		s.log.Error("activity category stats failed", zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	typeStats, err := s.store.GroupCount(ctx, f, "type")
	if err != nil {
		s.log.Error("activity type stats failed", zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	recentSince := now.Add(-recentWindow)
	recentCount, err := s.store.Count(ctx, repositories.ActivityFilter{
		TenantID:       tenantID,
		OrganizationID: organizationID,
		Since:          &recentSince,
	})
	if err != nil {
		s.log.Error("activity recent count failed", zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	return &ActivityStats{
		CategoryStats: categoryStats,
		TypeStats:     typeStats,
		RecentCount:   recentCount,
		TimeRange:     timeRange,
	}, nil
}
