package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("alice", "password1", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEqual(t, "password1", user.PasswordHash)
		assert.True(t, user.VerifyPassword("password1"))
		assert.False(t, user.VerifyPassword("wrong-pass1"))
	})

	t.Run("lowercases username and email", func(t *testing.T) {
		user, err := NewUser("Alice.W", "password1", "Alice@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "alice.w", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewUser("ab", "password1", "")
		assert.Error(t, err)
	})

	t.Run("rejects password without digits", func(t *testing.T) {
		_, err := NewUser("alice", "passwords", "")
		assert.Error(t, err)
	})
}

func TestUserRecordLoginFailure(t *testing.T) {
	t.Run("locks after reaching threshold", func(t *testing.T) {
		user, err := NewUser("alice", "password1", "")
		require.NoError(t, err)

		for i := 1; i < 5; i++ {
			locked := user.RecordLoginFailure(5, 30*time.Minute)
			assert.False(t, locked, "attempt %d should not lock", i)
			assert.Equal(t, UserStatusActive, user.Status)
		}

		locked := user.RecordLoginFailure(5, 30*time.Minute)
		assert.True(t, locked)
		assert.Equal(t, UserStatusLocked, user.Status)
		require.NotNil(t, user.LockedUntil)
		assert.True(t, user.LockedUntil.After(time.Now().Add(29*time.Minute)))
	})

	t.Run("success resets the counter", func(t *testing.T) {
		user, err := NewUser("alice", "password1", "")
		require.NoError(t, err)

		user.RecordLoginFailure(5, 30*time.Minute)
		user.RecordLoginFailure(5, 30*time.Minute)
		user.RecordLoginSuccess()

		assert.Equal(t, 0, user.FailedAttempts)
		assert.NotNil(t, user.LastLoginAt)
	})
}

func TestUserIsLocked(t *testing.T) {
	t.Run("locked within window", func(t *testing.T) {
		user, _ := NewUser("alice", "password1", "")
		require.NoError(t, user.Lock(30*time.Minute))
		assert.True(t, user.IsLocked())
	})

	t.Run("lock expired", func(t *testing.T) {
		user, _ := NewUser("alice", "password1", "")
		require.NoError(t, user.Lock(30*time.Minute))
		past := time.Now().Add(-time.Minute)
		user.LockedUntil = &past
		assert.False(t, user.IsLocked())
	})
}

func TestUserUnlockIfExpired(t *testing.T) {
	t.Run("unlocks when window has passed", func(t *testing.T) {
		user, _ := NewUser("alice", "password1", "")
		user.FailedAttempts = 5
		require.NoError(t, user.Lock(30*time.Minute))

		unlocked := user.UnlockIfExpired(time.Now().Add(31 * time.Minute))
		assert.True(t, unlocked)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Equal(t, 0, user.FailedAttempts)
		assert.Nil(t, user.LockedUntil)
	})

	t.Run("keeps lock within window", func(t *testing.T) {
		user, _ := NewUser("alice", "password1", "")
		require.NoError(t, user.Lock(30*time.Minute))

		unlocked := user.UnlockIfExpired(time.Now().Add(10 * time.Minute))
		assert.False(t, unlocked)
		assert.Equal(t, UserStatusLocked, user.Status)
	})
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewUser("alice", "password1", "")
	require.NoError(t, err)

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := user.ChangePassword("wrong-pass1", "newpassword2")
		assert.Error(t, err)
		assert.True(t, user.VerifyPassword("password1"))
	})

	t.Run("changes with correct current password", func(t *testing.T) {
		require.NoError(t, user.ChangePassword("password1", "newpassword2"))
		assert.True(t, user.VerifyPassword("newpassword2"))
		assert.False(t, user.VerifyPassword("password1"))
	})
}

func TestDefaultMembership(t *testing.T) {
	userID := uuid.New()
	first := NewMembership(userID, uuid.New(), false)
	second := NewMembership(userID, uuid.New(), true)

	t.Run("prefers the default flag", func(t *testing.T) {
		m := DefaultMembership([]*Membership{first, second})
		require.NotNil(t, m)
		assert.Equal(t, second.CompanyID, m.CompanyID)
	})

	t.Run("falls back to the first membership", func(t *testing.T) {
		m := DefaultMembership([]*Membership{first})
		require.NotNil(t, m)
		assert.Equal(t, first.CompanyID, m.CompanyID)
	})

	t.Run("nil for no memberships", func(t *testing.T) {
		assert.Nil(t, DefaultMembership(nil))
	})
}
