package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("save: %w", Conflict("campaign was modified concurrently"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, errors.Is(ErrConflict, Conflict("specific")), "a sentinel never matches a specific message")
}

func TestErrorMessageListsViolations(t *testing.T) {
	err := InvalidTransition("not ready", "a", "b")
	assert.Equal(t, "not ready: a; b", err.Error())
	assert.Equal(t, []string{"a", "b"}, ViolationsOf(err))
	assert.Nil(t, ViolationsOf(errors.New("plain")))
}
