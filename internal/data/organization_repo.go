// Package data contains PostgreSQL repositories. All queries are
// parameterized and scoped by organization where the table carries a
// tenant; repositories never trust an organization ID from a request
// body.
package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/whirkplace/whirkplace-api/internal/data/pgxutil"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

const orgColumns = `id, name, slug, plan_tier, status, created_at, updated_at`

// OrganizationRepo provides database operations for organizations.
type OrganizationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewOrganizationRepo creates a new OrganizationRepo with real time provider.
func NewOrganizationRepo(db *sql.DB) *OrganizationRepo {
	return &OrganizationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewOrganizationRepoWithTimeProvider creates a new OrganizationRepo with a custom time provider.
func NewOrganizationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *OrganizationRepo {
	return &OrganizationRepo{DB: db, timeProvider: tp}
}

// Create inserts a new organization on the requested plan tier.
func (r *OrganizationRepo) Create(ctx context.Context, req *model.CreateOrganizationRequest) (*model.Organization, error) {
	if req == nil {
		return nil, apperrors.Validation("create organization request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Organization
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO organizations (name, slug, plan_tier, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+orgColumns,
			req.Name, req.Slug, req.PlanTier, model.OrgStatusActive, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Organization])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an organization by ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	return r.getByQuery(ctx, `SELECT `+orgColumns+` FROM organizations WHERE id = $1`, id)
}

// GetBySlug retrieves an organization by slug.
func (r *OrganizationRepo) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	return r.getByQuery(ctx, `SELECT `+orgColumns+` FROM organizations WHERE slug = $1`, slug)
}

// List retrieves organizations with pagination, newest first.
func (r *OrganizationRepo) List(ctx context.Context, limit, offset int) ([]*model.Organization, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Organization
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+orgColumns+`
			FROM organizations
			WHERE status != $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`,
			model.OrgStatusDeleted, limit, offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Organization])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	return toPointers(rowsOut), nil
}

// UpdatePlan moves an organization to a new plan tier.
func (r *OrganizationRepo) UpdatePlan(ctx context.Context, id string, tier plan.Tier) (*model.Organization, error) {
	if !tier.Valid() {
		return nil, apperrors.Validation("unknown plan tier")
	}

	var out model.Organization
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE organizations
			SET plan_tier = $2, updated_at = $3
			WHERE id = $1
			RETURNING `+orgColumns,
			id, tier, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Organization])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// UpdateStatus transitions an organization's lifecycle status.
func (r *OrganizationRepo) UpdateStatus(ctx context.Context, id string, status model.OrgStatus) (*model.Organization, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("unknown organization status")
	}

	var out model.Organization
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE organizations
			SET status = $2, updated_at = $3
			WHERE id = $1
			RETURNING `+orgColumns,
			id, status, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Organization])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

func (r *OrganizationRepo) getByQuery(ctx context.Context, query string, arg any) (*model.Organization, error) {
	var out model.Organization
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Organization])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("organization not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
