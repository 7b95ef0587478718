package roles

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleRow struct {
	id   int64
	name string
	perm *string
}

type stubRows struct {
	rows []roleRow
	idx  int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if len(dest) != 3 {
		return fmt.Errorf("expected 3 columns, got %d", len(dest))
	}
	row := r.rows[r.idx-1]
	*dest[0].(*int64) = row.id
	*dest[1].(*string) = row.name
	text := dest[2].(*pgtype.Text)
	if row.perm == nil {
		*text = pgtype.Text{}
	} else {
		*text = pgtype.Text{String: *row.perm, Valid: true}
	}
	return nil
}

type stubQuerier struct {
	rows []roleRow
}

func (q stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &stubRows{rows: q.rows}, nil
}

func ptr(s string) *string { return &s }

func TestListRolesGroupsPermissions(t *testing.T) {
	repo := NewRepository(stubQuerier{rows: []roleRow{
		{1, "auditor", nil},
		{2, "finance", ptr("billing.manage")},
		{2, "finance", ptr("billing.view")},
		{3, "support", ptr("users.view")},
	}})

	roles, err := repo.ListRoles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Role{
		{ID: 1, Name: "auditor"},
		{ID: 2, Name: "finance", Permissions: []string{"billing.manage", "billing.view"}},
		{ID: 3, Name: "support", Permissions: []string{"users.view"}},
	}, roles)
}
