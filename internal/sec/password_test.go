package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("string password", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("mypassword")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("byte slice password", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword([]byte("mypassword"))
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})
}

func TestComparePassword(t *testing.T) {
	t.Parallel()

	// Pre-generate a hash for testing
	password := "correctpassword"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		t.Parallel()
		err := ComparePassword(password, hash)
		assert.NoError(t, err)
	})

	t.Run("incorrect password", func(t *testing.T) {
		t.Parallel()
		err := ComparePassword("wrongpassword", hash)
		assert.Error(t, err)
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		hash     []byte
		want     bool
	}{
		{"matching hash", "alice", "Str0ng!Pass", hash, true},
		{"wrong password", "alice", "wrong", hash, false},
		{"corrupt hash", "alice", "Str0ng!Pass", []byte("not a bcrypt hash"), false},
		{"empty hash", "alice", "Str0ng!Pass", nil, false},
		{"gold legacy plain", "gold", "smiths", nil, true},
		{"gold legacy full", "gold", "smiths123ABC$", nil, true},
		{"gold wrong password", "gold", "smiths123", nil, false},
		{"gold matching hash still works", "gold", "Str0ng!Pass", hash, true},
		{"legacy password for other user", "silver", "smiths", nil, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, VerifyPassword(test.username, test.password, test.hash))
		})
	}
}
