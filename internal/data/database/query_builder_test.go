package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_Basic(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("shoutouts"))
	assert.Equal(t, `SELECT * FROM "shoutouts"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_ConditionsAndPagination(t *testing.T) {
	opts := NewListQueryOptions("shoutouts",
		WithCondition(WhereCond("organization_id", Equal, "org-1")),
		WithCondition(WhereCond("category_id", Equal, "cat-9")),
		WithOrderBy("created_at", "desc"),
		WithLimit(20),
		WithOffset(40),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t,
		`SELECT * FROM "shoutouts" WHERE "organization_id" = $1 AND "category_id" = $2 ORDER BY "created_at" DESC LIMIT $3 OFFSET $4`,
		query)
	assert.Equal(t, []any{"org-1", "cat-9", 20, 40}, args)
}

func TestBuildListQuery_InCondition(t *testing.T) {
	opts := NewListQueryOptions("kras",
		WithCondition(WhereCond("status", In, []string{"at_risk", "off_track"})),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT * FROM "kras" WHERE "status" IN ($1, $2)`, query)
	assert.Equal(t, []any{"at_risk", "off_track"}, args)
}

func TestBuildListQuery_EmptyInSkipped(t *testing.T) {
	opts := NewListQueryOptions("kras",
		WithCondition(WhereCond("status", In, []string{})),
		WithCondition(WhereCond("user_id", Equal, "u-1")),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT * FROM "kras" WHERE "user_id" = $1`, query)
	assert.Equal(t, []any{"u-1"}, args)
}

func TestBuildListQuery_NullChecks(t *testing.T) {
	opts := NewListQueryOptions("one_on_ones",
		WithCondition(WhereCond("organization_id", Equal, "org-1")),
		WithCondition(WhereCond("completed_at", IsNull, nil)),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT * FROM "one_on_ones" WHERE "organization_id" = $1 AND "completed_at" IS NULL`, query)
	assert.Equal(t, []any{"org-1"}, args)
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	opts := NewListQueryOptions("check_ins",
		WithCountOnly(),
		WithCondition(WhereCond("organization_id", Equal, "org-1")),
		WithLimit(10), // ignored for counts
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT COUNT(*) FROM "check_ins" WHERE "organization_id" = $1`, query)
	assert.Equal(t, []any{"org-1"}, args)
}

func TestBuildListQuery_SanitizesIdentifiers(t *testing.T) {
	opts := NewListQueryOptions(`users"; DROP TABLE users; --`,
		WithColumns("id", `email" OR 1=1`),
	)
	query, _ := BuildListQuery(opts)
	assert.Contains(t, query, `FROM "users""; DROP TABLE users; --"`)
	assert.Contains(t, query, `"email"" OR 1=1"`)
}
