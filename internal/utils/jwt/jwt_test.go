package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avc/smm-panel/internal/domain"
)

func TestManager_GenerateAndValidate(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	t.Run("Success - user role", func(t *testing.T) {
		token, err := manager.Generate(42, domain.RoleUser)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, role, err := manager.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), userID)
		assert.Equal(t, domain.RoleUser, role)
	})

	t.Run("Success - admin role", func(t *testing.T) {
		token, err := manager.Generate(0, domain.RoleAdmin)
		require.NoError(t, err)

		userID, role, err := manager.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, int64(0), userID)
		assert.Equal(t, domain.RoleAdmin, role)
	})

	t.Run("Invalid token", func(t *testing.T) {
		_, _, err := manager.Validate("not-a-token")
		assert.Error(t, err)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour)
		token, err := other.Generate(1, domain.RoleUser)
		require.NoError(t, err)

		_, _, err = manager.Validate(token)
		assert.Error(t, err)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := NewManager("test-secret", -time.Hour)
		token, err := expired.Generate(1, domain.RoleUser)
		require.NoError(t, err)

		_, _, err = manager.Validate(token)
		assert.Error(t, err)
	})
}
