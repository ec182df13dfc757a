package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campaignhub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityFilter is the normalized predicate shared by Count, List and
// GroupCount so all three always agree on the matching set. TenantID is
// mandatory; every other field is applied only when set.
type ActivityFilter struct {
	TenantID       uuid.UUID
	OrganizationID *uuid.UUID
	CampaignID     *uuid.UUID
	Category       *string
	Type           *string
	Since          *time.Time
}

func (f ActivityFilter) whereClause() (string, []any) {
	where := []string{"tenant_id = $1"}
	args := []any{f.TenantID}
	argIdx := 2

	if f.OrganizationID != nil {
		where = append(where, fmt.Sprintf("organization_id = $%d", argIdx))
		args = append(args, *f.OrganizationID)
		argIdx++
	}
	if f.CampaignID != nil {
		where = append(where, fmt.Sprintf("campaign_id = $%d", argIdx))
		args = append(args, *f.CampaignID)
		argIdx++
	}
	if f.Category != nil {
		where = append(where, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *f.Category)
		argIdx++
	}
	if f.Type != nil {
		where = append(where, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *f.Type)
		argIdx++
	}
	if f.Since != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *f.Since)
		argIdx++
	}

	return " WHERE " + strings.Join(where, " AND "), args
}

// GroupCount is one histogram bucket from a grouped aggregation.
type GroupCount struct {
	Value string
	Count int
}

type ActivityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

const activityColumns = `id, tenant_id, organization_id, campaign_id, user_id, actor_user_id,
	       type, category, title, description, metadata, ip_address, user_agent, created_at`

func (r *ActivityRepo) Create(ctx context.Context, a *models.Activity) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO activities (tenant_id, organization_id, campaign_id, user_id, actor_user_id,
		        type, category, title, description, metadata, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`, a.TenantID, a.OrganizationID, a.CampaignID, a.UserID, a.ActorUserID,
		a.Type, a.Category, a.Title, a.Description, a.Metadata, a.IPAddress, a.UserAgent,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *ActivityRepo) Count(ctx context.Context, f ActivityFilter) (int, error) {
	where, args := f.whereClause()

	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM activities"+where, args...).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// List returns one page, most recent first. Ties on created_at are broken by
// the insert sequence so pagination stays stable under equal timestamps.
func (r *ActivityRepo) List(ctx context.Context, f ActivityFilter, limit, offset int) ([]models.Activity, error) {
	where, args := f.whereClause()
	query := fmt.Sprintf(
		"SELECT %s FROM activities%s ORDER BY created_at DESC, seq DESC LIMIT $%d OFFSET $%d",
		activityColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.TenantID, &a.OrganizationID, &a.CampaignID, &a.UserID,
			&a.ActorUserID, &a.Type, &a.Category, &a.Title, &a.Description, &a.Metadata,
			&a.IPAddress, &a.UserAgent, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// GroupCount builds a histogram over category or type. The field name is
// interpolated into SQL, so only the two known columns are accepted.
func (r *ActivityRepo) GroupCount(ctx context.Context, f ActivityFilter, field string) ([]GroupCount, error) {
	if field != "category" && field != "type" {
		return nil, fmt.Errorf("unsupported group field %q", field)
	}

	where, args := f.whereClause()
	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM activities%s GROUP BY %s ORDER BY COUNT(*) DESC, %s",
		field, where, field, field,
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []GroupCount
	for rows.Next() {
		var g GroupCount
		if err := rows.Scan(&g.Value, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
