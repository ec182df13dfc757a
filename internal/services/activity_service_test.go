package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/campaignhub/backend/internal/events"
	"github.com/campaignhub/backend/internal/models"
	"github.com/campaignhub/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore is an in-memory ActivityStore applying the same predicate
// semantics as the SQL repository.
type memStore struct {
	items   []models.Activity
	seqs    []int64
	nextSeq int64
	failing bool
}

func (m *memStore) Create(_ context.Context, a *models.Activity) error {
	if m.failing {
		return errors.New("connection refused")
	}
	a.ID = uuid.New()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.nextSeq++
	m.items = append(m.items, *a)
	m.seqs = append(m.seqs, m.nextSeq)
	return nil
}

// seed inserts directly, bypassing the service, for fixtures with chosen
// timestamps.
func (m *memStore) seed(a models.Activity) {
	a.ID = uuid.New()
	m.nextSeq++
	m.items = append(m.items, a)
	m.seqs = append(m.seqs, m.nextSeq)
}

func (m *memStore) matches(f repositories.ActivityFilter, a models.Activity) bool {
	if a.TenantID != f.TenantID {
		return false
	}
	if f.OrganizationID != nil && (a.OrganizationID == nil || *a.OrganizationID != *f.OrganizationID) {
		return false
	}
	if f.CampaignID != nil && (a.CampaignID == nil || *a.CampaignID != *f.CampaignID) {
		return false
	}
	if f.Category != nil && a.Category != *f.Category {
		return false
	}
	if f.Type != nil && a.Type != *f.Type {
		return false
	}
	if f.Since != nil && a.CreatedAt.Before(*f.Since) {
		return false
	}
	return true
}

func (m *memStore) Count(_ context.Context, f repositories.ActivityFilter) (int, error) {
	if m.failing {
		return 0, errors.New("connection refused")
	}
	count := 0
	for _, a := range m.items {
		if m.matches(f, a) {
			count++
		}
	}
	return count, nil
}

func (m *memStore) List(_ context.Context, f repositories.ActivityFilter, limit, offset int) ([]models.Activity, error) {
	if m.failing {
		return nil, errors.New("connection refused")
	}

	type row struct {
		a   models.Activity
		seq int64
	}
	var matched []row
	for i, a := range m.items {
		if m.matches(f, a) {
			matched = append(matched, row{a, m.seqs[i]})
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].a.CreatedAt.Equal(matched[j].a.CreatedAt) {
			return matched[i].a.CreatedAt.After(matched[j].a.CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]models.Activity, 0, end-offset)
	for _, r := range matched[offset:end] {
		out = append(out, r.a)
	}
	return out, nil
}

func (m *memStore) GroupCount(_ context.Context, f repositories.ActivityFilter, field string) ([]repositories.GroupCount, error) {
	if m.failing {
		return nil, errors.New("connection refused")
	}
	if field != "category" && field != "type" {
		return nil, fmt.Errorf("unsupported group field %q", field)
	}

	tally := map[string]int{}
	for _, a := range m.items {
		if !m.matches(f, a) {
			continue
		}
		if field == "category" {
			tally[a.Category]++
		} else {
			tally[a.Type]++
		}
	}

	var groups []repositories.GroupCount
	for v, c := range tally {
		groups = append(groups, repositories.GroupCount{Value: v, Count: c})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Value < groups[j].Value
	})
	return groups, nil
}

type stubPublisher struct {
	published []events.Event
}

func (p *stubPublisher) Publish(_ context.Context, _ string, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func newTestService(store ActivityStore) (*ActivityService, *stubPublisher) {
	pub := &stubPublisher{}
	return NewActivityService(store, pub, zap.NewNop()), pub
}

func seedActivity(store *memStore, tenantID uuid.UUID, typ, category string, age time.Duration) {
	store.seed(models.Activity{
		TenantID:  tenantID,
		Type:      typ,
		Category:  category,
		Title:     typ,
		CreatedAt: time.Now().Add(-age),
	})
}

func TestListPagination(t *testing.T) {
	store := &memStore{}
	svc, _ := newTestService(store)
	tenant := uuid.New()

	for i := 0; i < 3; i++ {
		seedActivity(store, tenant, models.ActivityTypeOrganizationUpdated, models.ActivityCategoryOrganization, time.Duration(5-i)*time.Minute)
	}
	for i := 0; i < 2; i++ {
		seedActivity(store, tenant, models.ActivityTypeSystemAction, models.ActivityCategorySystem, time.Duration(2-i)*time.Minute)
	}

	items, p, err := svc.List(context.Background(), tenant, ActivityListQuery{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].CreatedAt.Before(items[1].CreatedAt) {
		t.Error("items are not ordered most recent first")
	}
	if p.Total != 5 || p.TotalPages != 3 || !p.HasNext || p.HasPrev {
		t.Errorf("pagination = %+v, want total=5 totalPages=3 hasNext=true hasPrev=false", p)
	}

	// A page past the end is empty but keeps the correct total.
	items, p, err = svc.List(context.Background(), tenant, ActivityListQuery{Page: 9, Limit: 2})
	if err != nil {
		t.Fatalf("List past end: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items past the end, want 0", len(items))
	}
	if p.Total != 5 {
		t.Errorf("total = %d, want 5", p.Total)
	}
}

func TestPaginationRoundTrip(t *testing.T) {
	store := &memStore{}
	svc, _ := newTestService(store)
	tenant := uuid.New()

	for i := 0; i < 7; i++ {
		seedActivity(store, tenant, models.ActivityTypeCampaignUpdated, models.ActivityCategoryCampaign, time.Duration(i)*time.Minute)
	}

	var all []models.Activity
	page := 1
	for {
		items, p, err := svc.List(context.Background(), tenant, ActivityListQuery{Page: page, Limit: 3, TimeRange: models.TimeRangeAll})
		if err != nil {
			t.Fatalf("List page %d: %v", page, err)
		}
		all = append(all, items...)
		if !p.HasNext {
			break
		}
		page++
	}

	if len(all) != 7 {
		t.Fatalf("concatenated pages contain %d items, want 7", len(all))
	}
	seen := map[uuid.UUID]bool{}
	for i, a := range all {
		if seen[a.ID] {
			t.Errorf("duplicate item %v across pages", a.ID)
		}
		seen[a.ID] = true
		if i > 0 && all[i-1].CreatedAt.Before(a.CreatedAt) {
			t.Errorf("item %d out of order", i)
		}
	}
}

func TestCountMatchesList(t *testing.T) {
	store := &memStore{}
	svc, _ := newTestService(store)
	tenant := uuid.New()

	seedActivity(store, tenant, models.ActivityTypeUserAdded, models.ActivityCategoryUser, time.Minute)
	seedActivity(store, tenant, models.ActivityTypeUserRemoved, models.ActivityCategoryUser, 2*time.Minute)
	seedActivity(store, tenant, models.ActivityTypeSystemAction, models.ActivityCategorySystem, 3*time.Minute)

	category := models.ActivityCategoryUser
	items, p, err := svc.List(context.Background(), tenant, ActivityListQuery{Category: &category, Limit: 100})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != p.Total {
		t.Errorf("len(items) = %d, total = %d; count and list disagree", len(items), p.Total)
	}
	if p.Total != 2 {
		t.Errorf("total = %d, want 2", p.Total)
	}
}

func TestTenantIsolation(t *testing.T) {
	store := &memStore{}
	svc, _ := newTestService(store)
	tenantA := uuid.New()
	tenantB := uuid.New()

	seedActivity(store, tenantA, models.ActivityTypeCampaignCreated, models.ActivityCategoryCampaign, time.Minute)
	seedActivity(store, tenantB, models.ActivityTypeCampaignCreated, models.ActivityCategoryCampaign, time.Minute)

	items, p, err := svc.List(context.Background(), tenantA, ActivityListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if p.Total != 1 || len(items) != 1 {
		t.Fatalf("tenant A sees %d items (total %d), want exactly 1", len(items), p.Total)
	}
	if items[0].TenantID != tenantA {
		t.Errorf("tenant A received an activity owned by %v", items[0].TenantID)
	}
}

func TestTimeRangeFilter(t *testing.T) {
	store := &memStore{}
	svc, _ := newTestService(store)
	tenant := uuid.New()

	seedActivity(store, tenant, models.ActivityTypeSystemAction, models.ActivityCategorySystem, 2*time.Hour)
	seedActivity(store, tenant, models.ActivityTypeSystemAction, models.ActivityCategorySystem, 30*time.Minute)

	items, p, err := svc.List(context.Background(), tenant, ActivityListQuery{TimeRange: models.TimeRange1h})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if p.Total != 1 || len(items) != 1 {
		t.Fatalf("got %d items (total %d), want 1", len(items), p.Total)
	}

	// Unrecognized tokens behave like "all".
	_, p, err = svc.List(context.Background(), tenant, ActivityListQuery{TimeRange: "fortnight"})
	if err != nil {
		t.Fatalf("List with unrecognized range: %v", err)
	}
	if p.Total != 2 {
		t.Errorf("unrecognized range total = %d, want 2 (no bound)", p.Total)
	}
}

func TestListQueryValidation(t *testing.T) {
	store := &memStore{}
	svc, _ := newTestService(store)
	tenant := uuid.New()

	badCategory := "billing"
	badType := "campaign_launched"
	tests := []struct {
		name  string
		query ActivityListQuery
		field string
	}{
		{"limit too large", ActivityListQuery{Limit: 101}, "limit"},
		{"negative limit", ActivityListQuery{Limit: -1}, "limit"},
		{"negative page", ActivityListQuery{Page: -2}, "page"},
		{"bad category", ActivityListQuery{Category: &badCategory}, "category"},
		{"bad type", ActivityListQuery{Type: &badType}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.List(context.Background(), tenant, tt.query)
			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("List = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestRecordValidationPersistsNothing(t *testing.T) {
	store := &memStore{}
	svc, _ := newTestService(store)

	bad := []models.Activity{
		{TenantID: uuid.New(), Type: models.ActivityTypeSystemAction, Category: models.ActivityCategorySystem, Title: ""},
		{TenantID: uuid.New(), Type: "not_a_type", Category: models.ActivityCategorySystem, Title: "x"},
		{TenantID: uuid.New(), Type: models.ActivityTypeSystemAction, Category: "not_a_category", Title: "x"},
		{Type: models.ActivityTypeSystemAction, Category: models.ActivityCategorySystem, Title: "x"},
	}

	for _, a := range bad {
		a := a
		err := svc.Record(context.Background(), &a)
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Record(%+v) = %v, want *ValidationError", a, err)
		}
	}
	if len(store.items) != 0 {
		t.Errorf("store has %d items after rejected writes, want 0", len(store.items))
	}
}

func TestRecordAssignsDefaultsAndPublishes(t *testing.T) {
	store := &memStore{}
	svc, pub := newTestService(store)
	tenant := uuid.New()

	a := models.Activity{
		TenantID: tenant,
		Type:     models.ActivityTypeAssetUploaded,
		Category: models.ActivityCategoryCampaign,
		Title:    "Creative uploaded",
	}
	if err := svc.Record(context.Background(), &a); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if a.ID == uuid.Nil || a.CreatedAt.IsZero() {
		t.Error("Record did not assign id/createdAt")
	}
	if a.Metadata == nil {
		t.Error("Record did not default metadata to an empty map")
	}

	if len(pub.published) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.published))
	}
	event := pub.published[0]
	if event.Type != events.EventActivityCreated {
		t.Errorf("event type = %q, want %q", event.Type, events.EventActivityCreated)
	}
	if event.Payload["tenant_id"] != tenant.String() {
		t.Errorf("event tenant_id = %v, want %v", event.Payload["tenant_id"], tenant)
	}
}

func TestLogEventNeverFailsCaller(t *testing.T) {
	svc, _ := newTestService(&memStore{failing: true})

	ok := svc.LogEvent(context.Background(), models.Activity{
		TenantID: uuid.New(),
		Type:     models.ActivityTypeSystemAction,
		Category: models.ActivityCategorySystem,
		Title:    "background job finished",
	})
	if ok {
		t.Error("LogEvent against a failing store reported a successful write")
	}

	// Invalid input is swallowed too on the best-effort path.
	ok = svc.LogEvent(context.Background(), models.Activity{})
	if ok {
		t.Error("LogEvent with an invalid activity reported a successful write")
	}
}

func TestStoreFailureIsMasked(t *testing.T) {
	svc, _ := newTestService(&memStore{failing: true})

	_, _, err := svc.List(context.Background(), uuid.New(), ActivityListQuery{})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("List = %v, want ErrStoreUnavailable", err)
	}

	_, err = svc.Stats(context.Background(), uuid.New(), nil, "")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Stats = %v, want ErrStoreUnavailable", err)
	}

	a := models.Activity{
		TenantID: uuid.New(),
		Type:     models.ActivityTypeSystemAction,
		Category: models.ActivityCategorySystem,
		Title:    "x",
	}
	if err := svc.Record(context.Background(), &a); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Record = %v, want ErrStoreUnavailable", err)
	}
}

func TestStats(t *testing.T) {
	store := &memStore{}
	svc, _ := newTestService(store)
	tenant := uuid.New()

	for i := 0; i < 3; i++ {
		seedActivity(store, tenant, models.ActivityTypeOrganizationUpdated, models.ActivityCategoryOrganization, 10*time.Minute)
	}
	for i := 0; i < 2; i++ {
		seedActivity(store, tenant, models.ActivityTypeUserAdded, models.ActivityCategoryUser, 20*time.Minute)
	}
	// Outside the default 24h window and the 1h recent window.
	seedActivity(store, tenant, models.ActivityTypeSystemAction, models.ActivityCategorySystem, 48*time.Hour)

	stats, err := svc.Stats(context.Background(), tenant, nil, "")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TimeRange != models.DefaultTimeRange {
		t.Errorf("timeRange = %q, want %q", stats.TimeRange, models.DefaultTimeRange)
	}

	wantCategories := map[string]int{
		models.ActivityCategoryOrganization: 3,
		models.ActivityCategoryUser:         2,
	}
	if len(stats.CategoryStats) != len(wantCategories) {
		t.Fatalf("got %d category buckets, want %d", len(stats.CategoryStats), len(wantCategories))
	}
	for _, g := range stats.CategoryStats {
		if wantCategories[g.Value] != g.Count {
			t.Errorf("category %q count = %d, want %d", g.Value, g.Count, wantCategories[g.Value])
		}
	}

	wantTypes := map[string]int{
		models.ActivityTypeOrganizationUpdated: 3,
		models.ActivityTypeUserAdded:           2,
	}
	for _, g := range stats.TypeStats {
		if wantTypes[g.Value] != g.Count {
			t.Errorf("type %q count = %d, want %d", g.Value, g.Count, wantTypes[g.Value])
		}
	}

	if stats.RecentCount != 5 {
		t.Errorf("recentCount = %d, want 5", stats.RecentCount)
	}
}

func TestStatsRecentCountIgnoresTimeRange(t *testing.T) {
	store := &memStore{}
	svc, _ := newTestService(store)
	tenant := uuid.New()

	seedActivity(store, tenant, models.ActivityTypeSystemAction, models.ActivityCategorySystem, 30*time.Minute)
	seedActivity(store, tenant, models.ActivityTypeSystemAction, models.ActivityCategorySystem, 3*time.Hour)

	stats, err := svc.Stats(context.Background(), tenant, nil, models.TimeRangeAll)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	// Histograms cover everything, recentCount stays pinned to the last hour.
	total := 0
	for _, g := range stats.CategoryStats {
		total += g.Count
	}
	if total != 2 {
		t.Errorf("histogram total = %d, want 2", total)
	}
	if stats.RecentCount != 1 {
		t.Errorf("recentCount = %d, want 1", stats.RecentCount)
	}
}
