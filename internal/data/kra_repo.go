package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/whirkplace/whirkplace-api/internal/data/database"
	"github.com/whirkplace/whirkplace-api/internal/data/pgxutil"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

const kraColumns = `id, organization_id, user_id, title, description, status, due_date, created_at, updated_at`

// KRARepo provides database operations for key result areas.
type KRARepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewKRARepo creates a new KRARepo with real time provider.
func NewKRARepo(db *sql.DB) *KRARepo {
	return &KRARepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewKRARepoWithTimeProvider creates a new KRARepo with a custom time provider.
func NewKRARepoWithTimeProvider(db *sql.DB, tp TimeProvider) *KRARepo {
	return &KRARepo{DB: db, timeProvider: tp}
}

// Create inserts a KRA in orgID. New KRAs start on_track.
func (r *KRARepo) Create(ctx context.Context, orgID string, req *model.CreateKRARequest) (*model.KRA, error) {
	if req == nil {
		return nil, apperrors.Validation("create kra request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.KRA
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO kras (organization_id, user_id, title, description, status, due_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+kraColumns,
			orgID, req.UserID, req.Title, req.Description, model.KRAStatusOnTrack, req.DueDate, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.KRA])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a KRA by ID within orgID.
func (r *KRARepo) GetByID(ctx context.Context, orgID, id string) (*model.KRA, error) {
	var out model.KRA
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+kraColumns+` FROM kras WHERE id = $1 AND organization_id = $2`,
			id, orgID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.KRA])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("kra not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves KRAs in orgID matching filter, most recently updated first.
func (r *KRARepo) List(ctx context.Context, orgID string, filter model.KRAFilter) ([]*model.KRA, error) {
	opts := []database.ListQueryOption{
		database.WithCondition(database.WhereCond("organization_id", database.Equal, orgID)),
		database.WithOrderBy("updated_at", "DESC"),
	}
	if filter.UserID != "" {
		opts = append(opts, database.WithCondition(database.WhereCond("user_id", database.Equal, filter.UserID)))
	}
	if len(filter.Statuses) > 0 {
		opts = append(opts, database.WithCondition(database.WhereCond("status", database.In, filter.Statuses)))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("kras", opts...))

	var rowsOut []model.KRA
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.KRA])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPointers(rowsOut), nil
}

// UpdateStatus moves a KRA to a new status within orgID.
func (r *KRARepo) UpdateStatus(ctx context.Context, orgID, id string, status model.KRAStatus) (*model.KRA, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("unknown kra status")
	}

	var out model.KRA
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE kras
			SET status = $3, updated_at = $4
			WHERE id = $1 AND organization_id = $2
			RETURNING `+kraColumns,
			id, orgID, status, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.KRA])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("kra not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a KRA within orgID.
func (r *KRARepo) Delete(ctx context.Context, orgID, id string) error {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`DELETE FROM kras WHERE id = $1 AND organization_id = $2`,
			id, orgID,
		)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	if affected == 0 {
		return apperrors.NotFound("kra not found")
	}
	return nil
}
