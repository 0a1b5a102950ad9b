package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(ValidationError("missing field")))
	assert.Equal(t, KindUnauthenticated, KindOf(UnauthenticatedError("access denied")))
	assert.Equal(t, KindNotFound, KindOf(NotFoundError("sensor not found")))
	assert.Equal(t, KindConflict, KindOf(ConflictError("email is already registered")))
	assert.Equal(t, KindServer, KindOf(ServerError(errors.New("boom"))))

	// untagged errors are server errors
	assert.Equal(t, KindServer, KindOf(errors.New("boom")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("while deleting: %w", NotFoundError("sensor not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "sensor not found", MessageOf(err))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "missing field", MessageOf(ValidationError("missing field")))

	// the cause of a server error never leaks into the message
	cause := errors.New("pq: relation does not exist")
	assert.Equal(t, "internal server error", MessageOf(ServerError(cause)))
	assert.Equal(t, "internal server error", MessageOf(errors.New("boom")))
}

func TestServerErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := ServerError(cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "boom")
}
