package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBCryptHasher(t *testing.T) {
	hasher := NewBCryptHasher(bcrypt.MinCost)

	t.Run("Hash and check", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "secret123", hash)

		assert.NoError(t, hasher.Check(hash, "secret123"))
	})

	t.Run("Wrong password", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)

		assert.Error(t, hasher.Check(hash, "wrong"))
	})

	t.Run("Empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.Error(t, err)
	})

	t.Run("Empty hash", func(t *testing.T) {
		assert.Error(t, hasher.Check("", "secret123"))
	})

	t.Run("Invalid cost falls back to default", func(t *testing.T) {
		h := NewBCryptHasher(1000)
		assert.Equal(t, DefaultCost, h.cost)
	})
}
