package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/whirkplace/whirkplace-api/internal/data/pgxutil"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

const (
	checkInColumns   = `id, organization_id, user_id, week_start, mood, highlights, blockers, created_at, updated_at`
	exemptionColumns = `id, organization_id, user_id, reason, starts_at, ends_at, created_at`
)

// CheckInRepo provides database operations for weekly check-ins and
// check-in exemptions.
type CheckInRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCheckInRepo creates a new CheckInRepo with real time provider.
func NewCheckInRepo(db *sql.DB) *CheckInRepo {
	return &CheckInRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewCheckInRepoWithTimeProvider creates a new CheckInRepo with a custom time provider.
func NewCheckInRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *CheckInRepo {
	return &CheckInRepo{DB: db, timeProvider: tp}
}

// Upsert submits the check-in for userID's current week. Resubmitting
// within the same week overwrites the earlier answers; the (user,
// week_start) unique constraint makes this a clean upsert.
func (r *CheckInRepo) Upsert(ctx context.Context, orgID, userID string, req *model.CreateCheckInRequest) (*model.CheckIn, error) {
	if req == nil {
		return nil, apperrors.Validation("check-in request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	weekStart := model.WeekStartOf(now)

	var out model.CheckIn
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO check_ins (organization_id, user_id, week_start, mood, highlights, blockers, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			ON CONFLICT (user_id, week_start) DO UPDATE
			SET mood = EXCLUDED.mood,
			    highlights = EXCLUDED.highlights,
			    blockers = EXCLUDED.blockers,
			    updated_at = EXCLUDED.updated_at
			RETURNING `+checkInColumns,
			orgID, userID, weekStart, req.Mood, req.Highlights, req.Blockers, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CheckIn])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetCurrent returns userID's check-in for the week containing now, or
// a not-found error when none was submitted yet.
func (r *CheckInRepo) GetCurrent(ctx context.Context, orgID, userID string) (*model.CheckIn, error) {
	weekStart := model.WeekStartOf(r.timeProvider.Now())

	var out model.CheckIn
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+checkInColumns+`
			FROM check_ins
			WHERE organization_id = $1 AND user_id = $2 AND week_start = $3`,
			orgID, userID, weekStart,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CheckIn])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("no check-in for the current week")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByWeek returns all check-ins in orgID for the week starting at weekStart.
func (r *CheckInRepo) ListByWeek(ctx context.Context, orgID string, weekStart time.Time) ([]*model.CheckIn, error) {
	var rowsOut []model.CheckIn
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+checkInColumns+`
			FROM check_ins
			WHERE organization_id = $1 AND week_start = $2
			ORDER BY created_at`,
			orgID, weekStart,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CheckIn])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPointers(rowsOut), nil
}

// ListByUser returns userID's check-in history, newest week first.
func (r *CheckInRepo) ListByUser(ctx context.Context, orgID, userID string, limit int) ([]*model.CheckIn, error) {
	if limit <= 0 {
		limit = 26
	}

	var rowsOut []model.CheckIn
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+checkInColumns+`
			FROM check_ins
			WHERE organization_id = $1 AND user_id = $2
			ORDER BY week_start DESC
			LIMIT $3`,
			orgID, userID, limit,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CheckIn])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPointers(rowsOut), nil
}

// CountByWeek returns how many check-ins orgID received for the week
// starting at weekStart. Feeds the analytics participation rate.
func (r *CheckInRepo) CountByWeek(ctx context.Context, orgID string, weekStart time.Time) (int, error) {
	var count int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT COUNT(*) FROM check_ins WHERE organization_id = $1 AND week_start = $2`,
			orgID, weekStart,
		).Scan(&count)
	}); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return count, nil
}

// ListMissingForWeek returns active users who have not submitted a
// check-in for the week starting at weekStart and are not covered by an
// exemption at asOf. This is the reminder batch query; it spans all
// organizations.
func (r *CheckInRepo) ListMissingForWeek(ctx context.Context, weekStart, asOf time.Time, limit int) ([]*model.User, error) {
	if limit <= 0 {
		limit = 100
	}

	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+prefixedUserColumns("u")+`
			FROM users u
			JOIN organizations o ON o.id = u.organization_id
			WHERE u.active
			  AND o.status = 'active'
			  AND NOT EXISTS (
				SELECT 1 FROM check_ins c
				WHERE c.user_id = u.id AND c.week_start = $1
			  )
			  AND NOT EXISTS (
				SELECT 1 FROM check_in_exemptions e
				WHERE e.user_id = u.id
				  AND e.starts_at <= $2
				  AND (e.ends_at IS NULL OR e.ends_at > $2)
			  )
			ORDER BY u.organization_id, u.id
			LIMIT $3`,
			weekStart, asOf, limit,
		)
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

// CreateExemption inserts a check-in exemption for a user in orgID.
func (r *CheckInRepo) CreateExemption(ctx context.Context, orgID string, req *model.CreateExemptionRequest) (*model.CheckInExemption, error) {
	if req == nil {
		return nil, apperrors.Validation("exemption request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.CheckInExemption
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO check_in_exemptions (organization_id, user_id, reason, starts_at, ends_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+exemptionColumns,
			orgID, req.UserID, req.Reason, req.StartsAt.UTC(), req.EndsAt, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CheckInExemption])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListExemptions returns the exemptions in orgID, newest first.
func (r *CheckInRepo) ListExemptions(ctx context.Context, orgID string) ([]*model.CheckInExemption, error) {
	var rowsOut []model.CheckInExemption
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+exemptionColumns+`
			FROM check_in_exemptions
			WHERE organization_id = $1
			ORDER BY created_at DESC`,
			orgID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CheckInExemption])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPointers(rowsOut), nil
}

// DeleteExemption removes an exemption within orgID.
func (r *CheckInRepo) DeleteExemption(ctx context.Context, orgID, id string) error {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`DELETE FROM check_in_exemptions WHERE id = $1 AND organization_id = $2`,
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
		return apperrors.NotFound("exemption not found")
	}
	return nil
}
