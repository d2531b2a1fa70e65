package helper

import (
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// GivenUniqueID returns a fresh time-ordered UUID.
func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}

// GivenItems returns the n distinct items "item-0" .. "item-<n-1>".
func GivenItems(n int) []any {
	items := make([]any, n)
	for i := range items {
		items[i] = "item-" + strconv.Itoa(i)
	}

	return items
}
