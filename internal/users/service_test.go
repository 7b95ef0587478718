package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-portal/internal/users"
)

func TestDirectoryOrdersActiveFirst(t *testing.T) {
	svc := users.NewService(stubRepo{users: []users.User{
		{ID: 3, Email: "zed@odyssey.local", IsActive: true},
		{ID: 4, Email: "amy@odyssey.local"},
		{ID: 1, Email: "Root@odyssey.local", IsActive: true, IsSuperAdmin: true},
	}})

	dir, err := svc.Directory(context.Background())
	require.NoError(t, err)

	var order []int64
	for _, u := range dir.Users {
		order = append(order, u.ID)
	}
	assert.Equal(t, []int64{1, 3, 4}, order)
	assert.Equal(t, 2, dir.Active)
	assert.Equal(t, 1, dir.SuperAdmins)
}

func TestDirectoryEmpty(t *testing.T) {
	dir, err := users.NewService(stubRepo{}).Directory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dir.Users)
	assert.Zero(t, dir.Active)
}
