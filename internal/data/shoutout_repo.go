package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/whirkplace/whirkplace-api/internal/data/database"
	"github.com/whirkplace/whirkplace-api/internal/data/pgxutil"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

const (
	shoutoutColumns = `id, organization_id, from_user_id, to_user_id, category_id, message, created_at`
	categoryColumns = `id, organization_id, name, emoji, created_at`
)

// ShoutoutRepo provides database operations for shoutouts and their
// categories.
type ShoutoutRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewShoutoutRepo creates a new ShoutoutRepo with real time provider.
func NewShoutoutRepo(db *sql.DB) *ShoutoutRepo {
	return &ShoutoutRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewShoutoutRepoWithTimeProvider creates a new ShoutoutRepo with a custom time provider.
func NewShoutoutRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ShoutoutRepo {
	return &ShoutoutRepo{DB: db, timeProvider: tp}
}

// Create inserts a shoutout from fromUserID in orgID.
func (r *ShoutoutRepo) Create(ctx context.Context, orgID, fromUserID string, req *model.CreateShoutoutRequest) (*model.Shoutout, error) {
	if req == nil {
		return nil, apperrors.Validation("create shoutout request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.ToUserID == fromUserID {
		return nil, apperrors.Validation("cannot send a shoutout to yourself")
	}

	var out model.Shoutout
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO shoutouts (organization_id, from_user_id, to_user_id, category_id, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+shoutoutColumns,
			orgID, fromUserID, req.ToUserID, req.CategoryID, req.Message, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Shoutout])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves shoutouts in orgID matching filter, newest first.
func (r *ShoutoutRepo) List(ctx context.Context, orgID string, filter model.ShoutoutFilter) ([]*model.Shoutout, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	opts := []database.ListQueryOption{
		database.WithCondition(database.WhereCond("organization_id", database.Equal, orgID)),
		database.WithOrderBy("created_at", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if filter.ToUserID != "" {
		opts = append(opts, database.WithCondition(database.WhereCond("to_user_id", database.Equal, filter.ToUserID)))
	}
	if filter.FromUserID != "" {
		opts = append(opts, database.WithCondition(database.WhereCond("from_user_id", database.Equal, filter.FromUserID)))
	}
	if filter.CategoryID != "" {
		opts = append(opts, database.WithCondition(database.WhereCond("category_id", database.Equal, filter.CategoryID)))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("shoutouts", opts...))

	var rowsOut []model.Shoutout
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Shoutout])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPointers(rowsOut), nil
}

// CountSince returns how many shoutouts orgID produced at or after since.
func (r *ShoutoutRepo) CountSince(ctx context.Context, orgID string, since time.Time) (int, error) {
	var count int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT COUNT(*) FROM shoutouts WHERE organization_id = $1 AND created_at >= $2`,
			orgID, since,
		).Scan(&count)
	}); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return count, nil
}

// Delete removes a shoutout within orgID.
func (r *ShoutoutRepo) Delete(ctx context.Context, orgID, id string) error {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`DELETE FROM shoutouts WHERE id = $1 AND organization_id = $2`,
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
		return apperrors.NotFound("shoutout not found")
	}
	return nil
}

// CreateCategory inserts a shoutout category in orgID.
func (r *ShoutoutRepo) CreateCategory(ctx context.Context, orgID string, req *model.CreateCategoryRequest) (*model.ShoutoutCategory, error) {
	if req == nil {
		return nil, apperrors.Validation("create category request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.ShoutoutCategory
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO shoutout_categories (organization_id, name, emoji, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+categoryColumns,
			orgID, req.Name, req.Emoji, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ShoutoutCategory])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListCategories returns orgID's categories sorted by name.
func (r *ShoutoutRepo) ListCategories(ctx context.Context, orgID string) ([]*model.ShoutoutCategory, error) {
	var rowsOut []model.ShoutoutCategory
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+categoryColumns+` FROM shoutout_categories WHERE organization_id = $1 ORDER BY name`,
			orgID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ShoutoutCategory])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPointers(rowsOut), nil
}

// DeleteCategory removes a category within orgID. Shoutouts keep their
// rows; shoutouts.category_id is ON DELETE SET NULL.
func (r *ShoutoutRepo) DeleteCategory(ctx context.Context, orgID, id string) error {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`DELETE FROM shoutout_categories WHERE id = $1 AND organization_id = $2`,
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
		return apperrors.NotFound("category not found")
	}
	return nil
}
