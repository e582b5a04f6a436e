package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	passwordHash, err := HashPassword("osoto-gari")
	require.NoError(t, err)
	assert.NotEmpty(t, passwordHash)
	assert.True(t, CheckPasswordHash("osoto-gari", passwordHash))
	assert.False(t, CheckPasswordHash("ouchi-gari", passwordHash))
	assert.False(t, CheckPasswordHash("osoto-gari", "not-a-bcrypt-hash"))
}
