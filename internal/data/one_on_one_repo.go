package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/whirkplace/whirkplace-api/internal/data/pgxutil"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

const oneOnOneColumns = `id, organization_id, manager_id, member_id, scheduled_at, notes, completed_at, created_at, updated_at`

// OneOnOneRepo provides database operations for one-on-one meetings.
type OneOnOneRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewOneOnOneRepo creates a new OneOnOneRepo with real time provider.
func NewOneOnOneRepo(db *sql.DB) *OneOnOneRepo {
	return &OneOnOneRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewOneOnOneRepoWithTimeProvider creates a new OneOnOneRepo with a custom time provider.
func NewOneOnOneRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *OneOnOneRepo {
	return &OneOnOneRepo{DB: db, timeProvider: tp}
}

// Create schedules a one-on-one between managerID and the member in orgID.
func (r *OneOnOneRepo) Create(ctx context.Context, orgID, managerID string, req *model.CreateOneOnOneRequest) (*model.OneOnOne, error) {
	if req == nil {
		return nil, apperrors.Validation("create one-on-one request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.MemberID == managerID {
		return nil, apperrors.Validation("cannot schedule a one-on-one with yourself")
	}

	now := r.timeProvider.Now().UTC()
	var out model.OneOnOne
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO one_on_ones (organization_id, manager_id, member_id, scheduled_at, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+oneOnOneColumns,
			orgID, managerID, req.MemberID, req.ScheduledAt.UTC(), req.Notes, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.OneOnOne])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a one-on-one by ID within orgID.
func (r *OneOnOneRepo) GetByID(ctx context.Context, orgID, id string) (*model.OneOnOne, error) {
	var out model.OneOnOne
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+oneOnOneColumns+` FROM one_on_ones WHERE id = $1 AND organization_id = $2`,
			id, orgID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.OneOnOne])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("one-on-one not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByParticipant returns one-on-ones in orgID where userID is the
// manager or the member, soonest scheduled first.
func (r *OneOnOneRepo) ListByParticipant(ctx context.Context, orgID, userID string) ([]*model.OneOnOne, error) {
	var rowsOut []model.OneOnOne
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+oneOnOneColumns+`
			FROM one_on_ones
			WHERE organization_id = $1 AND (manager_id = $2 OR member_id = $2)
			ORDER BY scheduled_at`,
			orgID, userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.OneOnOne])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPointers(rowsOut), nil
}

// Update applies a partial update to a one-on-one within orgID.
// Setting Completed to true stamps completed_at; setting it to false
// clears it.
func (r *OneOnOneRepo) Update(ctx context.Context, orgID, id string, req *model.UpdateOneOnOneRequest) (*model.OneOnOne, error) {
	if req == nil {
		return nil, apperrors.Validation("update one-on-one request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	sets := []string{}
	args := []any{id, orgID}
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if req.Notes != nil {
		addSet("notes", strings.TrimSpace(*req.Notes))
	}
	if req.ScheduledAt != nil {
		addSet("scheduled_at", req.ScheduledAt.UTC())
	}
	if req.Completed != nil {
		if *req.Completed {
			addSet("completed_at", now)
		} else {
			addSet("completed_at", nil)
		}
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, orgID, id)
	}
	addSet("updated_at", now)

	query := `UPDATE one_on_ones SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 AND organization_id = $2 RETURNING ` + oneOnOneColumns

	var out model.OneOnOne
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.OneOnOne])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("one-on-one not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a one-on-one within orgID.
func (r *OneOnOneRepo) Delete(ctx context.Context, orgID, id string) error {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`DELETE FROM one_on_ones WHERE id = $1 AND organization_id = $2`,
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
		return apperrors.NotFound("one-on-one not found")
	}
	return nil
}
