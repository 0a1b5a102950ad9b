package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VithorDosSantos/reflora/core"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, ComparePassword(hash, "correct horse battery staple"))
}

func TestPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("secret")
	assert.NoError(t, err)

	err = ComparePassword(hash, "not the secret")
	assert.Error(t, err)
	assert.Equal(t, core.KindUnauthenticated, core.KindOf(err))
	assert.Equal(t, "incorrect password", core.MessageOf(err))
}

func TestPasswordHashIsSalted(t *testing.T) {
	first, err := HashPassword("secret")
	assert.NoError(t, err)
	second, err := HashPassword("secret")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
