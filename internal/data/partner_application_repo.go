package data

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/whirkplace/whirkplace-api/internal/data/pgxutil"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

const partnerAppColumns = `id, company_name, contact_name, contact_email, message, created_at`

// PartnerApplicationRepo provides database operations for partner
// program applications. These arrive from the public site and carry no
// organization scope.
type PartnerApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPartnerApplicationRepo creates a new PartnerApplicationRepo with real time provider.
func NewPartnerApplicationRepo(db *sql.DB) *PartnerApplicationRepo {
	return &PartnerApplicationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPartnerApplicationRepoWithTimeProvider creates a new PartnerApplicationRepo with a custom time provider.
func NewPartnerApplicationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PartnerApplicationRepo {
	return &PartnerApplicationRepo{DB: db, timeProvider: tp}
}

// Create records a partner application.
func (r *PartnerApplicationRepo) Create(ctx context.Context, req *model.CreatePartnerApplicationRequest) (*model.PartnerApplication, error) {
	if req == nil {
		return nil, apperrors.Validation("partner application is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.PartnerApplication
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO partner_applications (company_name, contact_name, contact_email, message, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+partnerAppColumns,
			req.CompanyName, req.ContactName, req.ContactEmail, req.Message, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PartnerApplication])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves partner applications, newest first.
func (r *PartnerApplicationRepo) List(ctx context.Context, limit, offset int) ([]*model.PartnerApplication, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.PartnerApplication
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+partnerAppColumns+`
			FROM partner_applications
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`,
			limit, offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.PartnerApplication])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPointers(rowsOut), nil
}
