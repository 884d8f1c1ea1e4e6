package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad %d", 1)))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, KindConflict, KindOf(Conflict("dup")))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("outer: %w", NotFound("user %d not found", 5))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(nil, KindUnexpected))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "bad 1", Validation("bad %d", 1).Error())

	cause := errors.New("disk full")
	err := Wrap(KindUnexpected, cause, "")
	assert.Equal(t, "disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}
