package roles_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-portal/internal/roles"
)

func TestListRolesFlagsUncheckedPermissions(t *testing.T) {
	svc := roles.NewService(stubRepo{roles: []roles.Role{
		{ID: 1, Name: "finance", Permissions: []string{"Billing.View", "billing.view", "finance.gl.view"}},
		{ID: 2, Name: "guest"},
	}})

	list, err := svc.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{"Billing.View", "finance.gl.view"}, list[0].Unchecked)
	assert.Empty(t, list[1].Unchecked)
}
