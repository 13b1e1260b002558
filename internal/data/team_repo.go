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

const teamColumns = `id, organization_id, name, manager_id, created_at, updated_at`

// TeamRepo provides database operations for teams.
type TeamRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTeamRepo creates a new TeamRepo with real time provider.
func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTeamRepoWithTimeProvider creates a new TeamRepo with a custom time provider.
func NewTeamRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TeamRepo {
	return &TeamRepo{DB: db, timeProvider: tp}
}

// Create inserts a new team into orgID.
func (r *TeamRepo) Create(ctx context.Context, orgID string, req *model.CreateTeamRequest) (*model.Team, error) {
	if req == nil {
		return nil, apperrors.Validation("create team request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Team
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO teams (organization_id, name, manager_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING `+teamColumns,
			orgID, req.Name, req.ManagerID, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Team])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a team by ID within orgID.
func (r *TeamRepo) GetByID(ctx context.Context, orgID, id string) (*model.Team, error) {
	var out model.Team
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+teamColumns+` FROM teams WHERE id = $1 AND organization_id = $2`,
			id, orgID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Team])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("team not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByOrg retrieves all teams in orgID, sorted by name.
func (r *TeamRepo) ListByOrg(ctx context.Context, orgID string) ([]*model.Team, error) {
	var rowsOut []model.Team
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+teamColumns+` FROM teams WHERE organization_id = $1 ORDER BY name`,
			orgID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Team])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	return toPointers(rowsOut), nil
}

// Update applies a partial update to a team within orgID.
func (r *TeamRepo) Update(ctx context.Context, orgID, id string, req *model.UpdateTeamRequest) (*model.Team, error) {
	if req == nil {
		return nil, apperrors.Validation("update team request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	sets := []string{}
	args := []any{id, orgID}
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.ManagerID != nil {
		addSet("manager_id", *req.ManagerID)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, orgID, id)
	}
	addSet("updated_at", r.timeProvider.Now().UTC())

	query := `UPDATE teams SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 AND organization_id = $2 RETURNING ` + teamColumns

	var out model.Team
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Team])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("team not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a team within orgID. Members keep their user records;
// the users.team_id foreign key is ON DELETE SET NULL.
func (r *TeamRepo) Delete(ctx context.Context, orgID, id string) error {
	var tag int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`DELETE FROM teams WHERE id = $1 AND organization_id = $2`,
			id, orgID,
		)
		if err != nil {
			return err
		}
		tag = ct.RowsAffected()
		return nil
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	if tag == 0 {
		return apperrors.NotFound("team not found")
	}
	return nil
}
