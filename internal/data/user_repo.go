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

const userColumns = `id, organization_id, team_id, email, first_name, last_name, role, active, created_at, updated_at`

// UserRepo provides database operations for users.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider.
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new user into orgID.
func (r *UserRepo) Create(ctx context.Context, orgID string, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("create user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (organization_id, team_id, email, first_name, last_name, role, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $7)
			RETURNING `+userColumns,
			orgID, req.TeamID, req.Email, req.FirstName, req.LastName, req.Role, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a user by ID within orgID.
func (r *UserRepo) GetByID(ctx context.Context, orgID, id string) (*model.User, error) {
	return r.getByQuery(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND organization_id = $2`,
		id, orgID)
}

// GetByEmail retrieves a user by email across all organizations. Used
// only by the auth service to resolve a provider identity; everything
// request-scoped goes through the org-scoped getters.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
}

// ListByOrg retrieves users in orgID, optionally filtered to a team.
func (r *UserRepo) ListByOrg(ctx context.Context, orgID string, teamID *string, limit, offset int) ([]*model.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1`
	args := []any{orgID}
	if teamID != nil {
		query += fmt.Sprintf(" AND team_id = $%d", len(args)+1)
		args = append(args, *teamID)
	}
	query += fmt.Sprintf(" ORDER BY last_name, first_name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	return toPointers(rowsOut), nil
}

// CountActiveByOrg returns the number of active users in orgID.
func (r *UserRepo) CountActiveByOrg(ctx context.Context, orgID string) (int, error) {
	var count int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT COUNT(*) FROM users WHERE organization_id = $1 AND active`,
			orgID,
		).Scan(&count)
	}); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return count, nil
}

// Update applies a partial update to a user within orgID.
func (r *UserRepo) Update(ctx context.Context, orgID, id string, req *model.UpdateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("update user request is required")
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
	if req.FirstName != nil {
		addSet("first_name", strings.TrimSpace(*req.FirstName))
	}
	if req.LastName != nil {
		addSet("last_name", strings.TrimSpace(*req.LastName))
	}
	if req.Role != nil {
		addSet("role", *req.Role)
	}
	if req.TeamID != nil {
		addSet("team_id", *req.TeamID)
	}
	if req.Active != nil {
		addSet("active", *req.Active)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, orgID, id)
	}
	addSet("updated_at", r.timeProvider.Now().UTC())

	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 AND organization_id = $2 RETURNING ` + userColumns

	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Deactivate marks a user inactive. Inactive users keep their history
// but can no longer log in and stop receiving reminders.
func (r *UserRepo) Deactivate(ctx context.Context, orgID, id string) error {
	active := false
	_, err := r.Update(ctx, orgID, id, &model.UpdateUserRequest{Active: &active})
	return err
}

func (r *UserRepo) getByQuery(ctx context.Context, query string, args ...any) (*model.User, error) {
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
