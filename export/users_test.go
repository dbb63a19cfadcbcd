package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsers_UniqueEmails(t *testing.T) {
	users := GenerateUsers(200, 42)

	require.Len(t, users, 200)
	emails := map[string]bool{}
	for _, u := range users {
		assert.NotEmpty(t, u.Name)
		assert.Contains(t, u.Email, "@")
		assert.False(t, emails[u.Email], "duplicate email %q", u.Email)
		emails[u.Email] = true
	}
}

func TestGenerateUsers_DeterministicForSeed(t *testing.T) {
	assert.Equal(t, GenerateUsers(50, 7), GenerateUsers(50, 7))
	assert.NotEqual(t, GenerateUsers(50, 7), GenerateUsers(50, 8))
}
