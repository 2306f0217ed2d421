package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPermission(t *testing.T) {
	t.Run("builds module.action code", func(t *testing.T) {
		p, err := NewPermission("AR", "Write")
		require.NoError(t, err)
		assert.Equal(t, "ar.write", p.Code)
		assert.Equal(t, "ar", p.Module)
		assert.Equal(t, "write", p.Action)
	})

	t.Run("rejects empty parts", func(t *testing.T) {
		_, err := NewPermission("", "write")
		assert.Error(t, err)
	})
}

func TestNewPermissionFromCode(t *testing.T) {
	p, err := NewPermissionFromCode("customer.read")
	require.NoError(t, err)
	assert.Equal(t, "customer", p.Module)
	assert.Equal(t, "read", p.Action)

	_, err = NewPermissionFromCode("nodot")
	assert.Error(t, err)
}

func TestRoleSetPermissions(t *testing.T) {
	role, err := NewRole(uuid.New(), "Accountant", "")
	require.NoError(t, err)

	arRead, _ := NewPermissionFromCode("ar.read")
	arWrite, _ := NewPermissionFromCode("ar.write")

	role.SetPermissions([]Permission{*arRead, *arWrite, *arRead})

	assert.Len(t, role.Permissions, 2)
	assert.True(t, role.HasPermission("ar.read"))
	assert.True(t, role.HasPermission("ar.write"))
	assert.False(t, role.HasPermission("ap.write"))
	assert.ElementsMatch(t, []string{"ar.read", "ar.write"}, role.PermissionCodes())
}

func TestNewSystemRole(t *testing.T) {
	role, err := NewSystemRole("Company Admin", "Full access within a company")
	require.NoError(t, err)
	assert.True(t, role.IsSystem)
	assert.Nil(t, role.CompanyID)
}
