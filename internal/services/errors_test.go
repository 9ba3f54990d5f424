package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	nf := notFound(EntityFood, 7)
	assert.EqualError(t, nf, "food 7 not found")
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.False(t, errors.Is(nf, ErrValidation))

	wrapped := fmt.Errorf("outer: %w", nf)
	var target *NotFoundError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, EntityFood, target.Entity)
	assert.Equal(t, uint(7), target.ID)

	v := invalid("limit", "must be between 1 and %d", 100)
	assert.EqualError(t, v, "invalid limit: must be between 1 and 100")
	assert.True(t, errors.Is(v, ErrValidation))

	c := &ConflictError{Entity: EntityUser, ID: 3, Reason: "user still owns 1 meal(s)"}
	assert.EqualError(t, c, "user 3 cannot be deleted: user still owns 1 meal(s)")
	assert.True(t, errors.Is(c, ErrConflict))

	assert.EqualError(t, &NotFoundError{Entity: EntityUser}, "user not found")
}

func TestWrapStorageKeepsTaxonomy(t *testing.T) {
	nf := notFound(EntityMeal, 1)
	assert.Same(t, nf, wrapStorage("get meal", nf))
	assert.Nil(t, wrapStorage("noop", nil))

	err := wrapStorage("update meal", errors.New("disk full"))
	assert.EqualError(t, err, "failed to update meal: disk full")
}
