package repositories

import (
	"context"
	"errors"

	"github.com/campaignhub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrganizationRepo struct {
	pool *pgxpool.Pool
}

func NewOrganizationRepo(pool *pgxpool.Pool) *OrganizationRepo {
	return &OrganizationRepo{pool: pool}
}

func (r *OrganizationRepo) Create(ctx context.Context, o *models.Organization) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO organizations (tenant_id, name, website, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, o.TenantID, o.Name, o.Website, o.Status).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *OrganizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var o models.Organization
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, website, status, created_at, updated_at
		FROM organizations WHERE id = $1
	`, id).Scan(&o.ID, &o.TenantID, &o.Name, &o.Website, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrganizationRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.Organization, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, name, website, status, created_at, updated_at
		FROM organizations WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []models.Organization
	for rows.Next() {
		var o models.Organization
		if err := rows.Scan(&o.ID, &o.TenantID, &o.Name, &o.Website, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (r *OrganizationRepo) Update(ctx context.Context, o *models.Organization) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE organizations SET name = $1, website = $2, status = $3, updated_at = now()
		WHERE id = $4
	`, o.Name, o.Website, o.Status, o.ID)
	return err
}

func (r *OrganizationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	return err
}

func (r *OrganizationRepo) AddMember(ctx context.Context, m *models.OrganizationMember) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO organization_members (organization_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id, user_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING added_at
	`, m.OrganizationID, m.UserID, m.Role).Scan(&m.AddedAt)
}

func (r *OrganizationRepo) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM organization_members WHERE organization_id = $1 AND user_id = $2
	`, orgID, userID)
	return err
}

func (r *OrganizationRepo) ListMembers(ctx context.Context, orgID uuid.UUID) ([]models.OrganizationMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT organization_id, user_id, role, added_at
		FROM organization_members WHERE organization_id = $1
		ORDER BY added_at
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.OrganizationMember
	for rows.Next() {
		var m models.OrganizationMember
		if err := rows.Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.AddedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
