package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates active customer", func(t *testing.T) {
		companyID := uuid.New()
		customer, err := NewCustomer(companyID, "  Acme Corp  ", uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", customer.Name)
		assert.Equal(t, companyID, customer.TenantID)
		assert.True(t, customer.IsActive())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer(uuid.New(), "", uuid.New())
		assert.Error(t, err)
	})
}

func TestCustomerUpdate(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "Acme", uuid.New())
	require.NoError(t, err)

	require.NoError(t, customer.Update("Acme Corp", "Jamie Lin", "02-1234-5678", "AP@Acme.example", "Taipei", "12345678", ""))
	assert.Equal(t, "Acme Corp", customer.Name)
	assert.Equal(t, "ap@acme.example", customer.Email)
}

func TestCustomerDeactivate(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "Acme", uuid.New())
	require.NoError(t, err)

	customer.Deactivate()
	assert.False(t, customer.IsActive())

	customer.Activate()
	assert.True(t, customer.IsActive())
}

func TestNewVendor(t *testing.T) {
	vendor, err := NewVendor(uuid.New(), "Supplies Inc", uuid.New())
	require.NoError(t, err)
	assert.True(t, vendor.IsActive())

	_, err = NewVendor(uuid.New(), "  ", uuid.New())
	assert.Error(t, err)
}
